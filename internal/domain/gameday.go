package domain

// DefenseTier buckets an opponent's defensive rating.
type DefenseTier string

const (
	DefenseElite   DefenseTier = "Elite"
	DefenseGood    DefenseTier = "Good"
	DefenseAverage DefenseTier = "Average"
	DefensePoor    DefenseTier = "Poor"
)

// Location is home or road.
type Location string

const (
	LocationHome Location = "Home"
	LocationRoad Location = "Road"
)

// Other returns the opposite location.
func (l Location) Other() Location {
	if l == LocationHome {
		return LocationRoad
	}
	return LocationHome
}

// DeathSpotPattern names a compound schedule pattern with a residual penalty.
type DeathSpotPattern string

const (
	DeathSpotNone            DeathSpotPattern = ""
	DeathSpotPartyB2B        DeathSpotPattern = "party_b2b"
	DeathSpotAltitudeB2B     DeathSpotPattern = "altitude_b2b"
	DeathSpotCrossCountryB2B DeathSpotPattern = "cross_country_b2b"
	DeathSpotPartyToAltitude DeathSpotPattern = "party_to_altitude"
	DeathSpotCompound        DeathSpotPattern = "compound"
)

// GameContext describes one upcoming game for a player.
type GameContext struct {
	IsBackToBack bool             `json:"is_back_to_back"`
	RestDays     int              `json:"rest_days"`
	Opponent     string           `json:"opponent"`
	DefenseTier  DefenseTier      `json:"defense_tier"`
	Location     Location         `json:"location"`
	PostHotSpot  bool             `json:"post_hot_spot"`
	PostAltitude bool             `json:"post_altitude"`
	DeathSpot    DeathSpotPattern `json:"death_spot,omitempty"`
}

// GameDayProjection is a season projection adjusted for one matchup.
// Ephemeral: computed on demand, never persisted.
type GameDayProjection struct {
	PlayerID string
	Opponent string
	Location Location

	Stats           StatLine
	FieldGoalPct    float64
	ThreePointPct   float64
	FreeThrowPct    float64
	FantasyPoints   float64
	StatMultipliers StatLine

	ScheduleMultiplier  float64
	CityMultiplier      float64
	DeathSpotMultiplier float64
	MatchupMultiplier   float64
	// CompoundMultiplier is the clamped product of the four components.
	CompoundMultiplier float64
}
