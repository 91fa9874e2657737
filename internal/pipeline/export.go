package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"nba-projection-lab/internal/domain"
	"nba-projection-lab/internal/idhash"
	"nba-projection-lab/internal/logging"
	"nba-projection-lab/internal/observability"
	"nba-projection-lab/internal/orchestrator"
	"nba-projection-lab/internal/projection"
	"nba-projection-lab/internal/reporting"
)

// Output file names.
const (
	ProjectionsFile = "season_projections.csv"
	AuctionFile     = "auction_values.csv"
	ContractsFile   = "stat_contracts.csv"
	CoverageFile    = "lookup_coverage.csv"
	GameDayFile     = "gameday_projections.csv"
	ReportFile      = "REPORT.md"
	FingerprintFile = "RUN_FINGERPRINT"
)

// Exporter writes a run's outputs to a directory.
type Exporter struct {
	outputDir  string
	clock      func() time.Time
	withReport bool
	log        logrus.FieldLogger
}

// NewExporter creates an exporter writing into outputDir.
func NewExporter(outputDir string) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		clock:     func() time.Time { return time.Now().UTC() },
		log:       logging.OrDiscard(nil),
	}
}

// WithClock sets a custom clock function for deterministic output.
func (e *Exporter) WithClock(clock func() time.Time) *Exporter {
	e.clock = clock
	return e
}

// WithReport enables the Markdown summary.
func (e *Exporter) WithReport(enabled bool) *Exporter {
	e.withReport = enabled
	return e
}

// WithLogger sets the logger.
func (e *Exporter) WithLogger(l logrus.FieldLogger) *Exporter {
	e.log = logging.OrDiscard(l)
	return e
}

// ExportResult describes the written outputs.
type ExportResult struct {
	Files       []string // paths, in write order
	Fingerprint string   // sha256 hex over the CSV outputs
	RunCode     string   // base58 short form of Fingerprint
}

// Export writes the run outputs with a fresh exporter.
func Export(ctx context.Context, outputDir string, result *orchestrator.RunResult) (*ExportResult, error) {
	return NewExporter(outputDir).Export(ctx, result)
}

// Export writes:
//   - season_projections.csv
//   - auction_values.csv
//   - stat_contracts.csv
//   - lookup_coverage.csv
//   - gameday_projections.csv
//   - REPORT.md (when enabled)
//   - RUN_FINGERPRINT
//
// The fingerprint covers the CSV files only, so identical inputs give an
// identical fingerprint regardless of run id or clock.
func (e *Exporter) Export(ctx context.Context, result *orchestrator.RunResult) (*ExportResult, error) {
	if result == nil {
		return nil, fmt.Errorf("export: nil run result")
	}
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	projections := make([]*domain.SeasonProjection, len(result.Projections))
	for i := range result.Projections {
		projections[i] = &result.Projections[i]
	}
	values := make([]*domain.AuctionValue, len(result.Auction.Values))
	for i := range result.Auction.Values {
		values[i] = &result.Auction.Values[i]
	}
	contracts := ContractRows(result)

	artifacts := map[string][]byte{
		ProjectionsFile: []byte(reporting.RenderProjectionsCSV(projections)),
		AuctionFile:     []byte(reporting.RenderAuctionCSV(values)),
		ContractsFile:   []byte(reporting.RenderContractsCSV(contracts)),
		CoverageFile:    []byte(reporting.RenderCoverageCSV(result.Coverage)),
		GameDayFile:     []byte(reporting.RenderGameDayCSV(result.GameDay)),
	}
	fingerprint := idhash.ComputeFingerprint(artifacts)
	code, err := idhash.RunCode(fingerprint)
	if err != nil {
		return nil, err
	}

	out := &ExportResult{Fingerprint: fingerprint, RunCode: code}
	for _, name := range []string{ProjectionsFile, AuctionFile, ContractsFile, CoverageFile, GameDayFile} {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.write(out, name, artifacts[name]); err != nil {
			return nil, err
		}
	}

	if e.withReport {
		report := reporting.Build(e.clock(), result.RunID, projections, values)
		report.Contracts = contracts
		report.Coverage = result.Coverage
		if err := e.write(out, ReportFile, []byte(reporting.RenderMarkdown(report))); err != nil {
			return nil, err
		}
	}

	stamp := fmt.Sprintf("sha256=%s\ncode=%s\n", fingerprint, code)
	if err := e.write(out, FingerprintFile, []byte(stamp)); err != nil {
		return nil, err
	}

	observability.RecordReports(len(out.Files))
	e.log.WithFields(logrus.Fields{
		"phase":    "export",
		"files":    len(out.Files),
		"run_code": code,
		"dir":      e.outputDir,
	}).Info("outputs written")
	return out, nil
}

func (e *Exporter) write(out *ExportResult, name string, data []byte) error {
	path := filepath.Join(e.outputDir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	out.Files = append(out.Files, path)
	return nil
}

// ContractRows flattens every projected player's stat contracts in player order.
func ContractRows(result *orchestrator.RunResult) []reporting.ContractRow {
	var rows []reporting.ContractRow
	for i := range result.Contexts {
		for _, c := range projection.StatContracts(result.Contexts[i], result.Projections[i]) {
			rows = append(rows, reporting.ContractRow{PlayerID: result.Contexts[i].PlayerID, StatContract: c})
		}
	}
	return rows
}
