package domain

// StatSummary is a mean/stddev pair from a historical aggregate.
type StatSummary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// AgeProfile aggregates production for (age, position, role).
type AgeProfile struct {
	Age           int                    `json:"age"`
	Position      Position               `json:"position"`
	Role          Role                   `json:"role"`
	SampleSize    int                    `json:"sample_size"`
	Stats         map[string]StatSummary `json:"stats"`
	FantasyPoints StatSummary            `json:"fantasy_pts"`
}

// Mean returns the profile mean for s and whether it is present.
func (p *AgeProfile) Mean(s Stat) (float64, bool) {
	v, ok := p.Stats[s.String()]
	return v.Mean, ok
}

// BracketKey keys every bracket-keyed table.
type BracketKey struct {
	Bracket  AgeBracket `json:"bracket"`
	Position Position   `json:"position"`
	Role     Role       `json:"role"`
}

// CeilingProfile holds the average fantasy output of ceiling games.
type CeilingProfile struct {
	BracketKey
	SampleSize           int     `json:"sample_size"`
	AvgCeilingFantasyPts float64 `json:"avg_ceiling_fantasy_pts"`
}

// DurabilityProfile holds the average games played per season.
type DurabilityProfile struct {
	BracketKey
	SampleSize     int     `json:"sample_size"`
	AvgGamesPlayed float64 `json:"avg_games_played"`
}

// UsageProfile holds the 10th-90th percentile minutes band.
type UsageProfile struct {
	BracketKey
	SampleSize int     `json:"sample_size"`
	MinutesP10 float64 `json:"minutes_p10"`
	MinutesP90 float64 `json:"minutes_p90"`
}

// ScheduleEffect holds rest-related scoring deltas (multiplier = 1 + delta).
type ScheduleEffect struct {
	BracketKey
	SampleSize       int     `json:"sample_size"`
	B2BScoringDrop   float64 `json:"b2b_scoring_dropoff"`
	RestScoringBoost float64 `json:"rest_scoring_boost"`
}

// CityEffect holds travel-destination scoring deltas.
type CityEffect struct {
	BracketKey
	SampleSize             int     `json:"sample_size"`
	HotSpotScoringDrop     float64 `json:"hot_spot_scoring_dropoff"`
	AltitudeB2BDrop        float64 `json:"altitude_b2b_dropoff"`
	AltitudeOneDayRestDrop float64 `json:"altitude_one_day_rest_dropoff"`
}

// DeathSpotEffect holds the residual penalty of each compound pattern beyond
// what the schedule and city effects already predict.
type DeathSpotEffect struct {
	BracketKey
	SampleSize              int     `json:"sample_size"`
	PartyB2BResidual        float64 `json:"party_b2b_residual"`
	AltitudeB2BResidual     float64 `json:"altitude_b2b_residual"`
	CrossCountryB2BResidual float64 `json:"cross_country_b2b_residual"`
	PartyToAltitudeResidual float64 `json:"party_to_altitude_residual"`
	CompoundResidual        float64 `json:"compound_residual"`
}

// Residual returns the residual delta for a pattern.
func (e *DeathSpotEffect) Residual(p DeathSpotPattern) (float64, bool) {
	switch p {
	case DeathSpotPartyB2B:
		return e.PartyB2BResidual, true
	case DeathSpotAltitudeB2B:
		return e.AltitudeB2BResidual, true
	case DeathSpotCrossCountryB2B:
		return e.CrossCountryB2BResidual, true
	case DeathSpotPartyToAltitude:
		return e.PartyToAltitudeResidual, true
	case DeathSpotCompound:
		return e.CompoundResidual, true
	}
	return 0, false
}

// MatchupKey keys the matchup adjustment table.
type MatchupKey struct {
	Bracket     AgeBracket  `json:"bracket"`
	Position    Position    `json:"position"`
	Role        Role        `json:"role"`
	DefenseTier DefenseTier `json:"defense_tier"`
	Location    Location    `json:"location"`
}

// MatchupAdjustment holds per-stat multipliers for a matchup bucket.
type MatchupAdjustment struct {
	MatchupKey
	SampleSize    int     `json:"sample_size"`
	Points        float64 `json:"points"`
	Rebounds      float64 `json:"rebounds"`
	Assists       float64 `json:"assists"`
	Steals        float64 `json:"steals"`
	Blocks        float64 `json:"blocks"`
	Threes        float64 `json:"threes"`
	FantasyPoints float64 `json:"fantasy_pts"`
}

// NeutralMatchup is substituted when the matchup chain misses.
func NeutralMatchup(key MatchupKey) MatchupAdjustment {
	return MatchupAdjustment{
		MatchupKey:    key,
		Points:        1,
		Rebounds:      1,
		Assists:       1,
		Steals:        1,
		Blocks:        1,
		Threes:        1,
		FantasyPoints: 1,
	}
}

// ForStat returns the matchup multiplier covering s, if any.
func (m *MatchupAdjustment) ForStat(s Stat) (float64, bool) {
	switch s {
	case StatPoints:
		return m.Points, true
	case StatRebounds:
		return m.Rebounds, true
	case StatAssists:
		return m.Assists, true
	case StatSteals:
		return m.Steals, true
	case StatBlocks:
		return m.Blocks, true
	case StatThreesMade, StatThreesAttempted:
		return m.Threes, true
	}
	return 0, false
}

// SGPWeights converts category z-scores into a composite value.
type SGPWeights struct {
	CategoryWeights map[Category]float64            `json:"category_weights"`
	PositionalBonus map[string]map[Category]float64 `json:"positional_bonus"`
}
