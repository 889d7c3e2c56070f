// Package constraints defines the typed constraint library: the closed
// enumeration of constraint kinds, their default hardness and priority,
// per-sport weight multipliers, and the Constraint interface concrete
// constraint types implement.
package constraints

// Hardness classifies whether a constraint must be satisfied, should be
// optimized, or is merely a nice-to-have.
type Hardness int

const (
	Hard Hardness = iota
	Soft
	Preference
)

func (h Hardness) String() string {
	switch h {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Preference:
		return "preference"
	default:
		return "unknown"
	}
}

// Kind is the closed enumeration of constraint kinds.
type Kind string

const (
	TeamRest                Kind = "TEAM_REST"
	VenueAvailability       Kind = "VENUE_AVAILABILITY"
	ReligiousDayRestriction Kind = "RELIGIOUS_DAY_RESTRICTION"
	ChampionshipDates       Kind = "CHAMPIONSHIP_DATES"
	SeriesStructure         Kind = "SERIES_STRUCTURE"
	WeatherWindow           Kind = "WEATHER_WINDOW"
	TVBroadcastMandatory    Kind = "TV_BROADCAST_MANDATORY"
	TravelDistance          Kind = "TRAVEL_DISTANCE"
	HomeAwayBalance         Kind = "HOME_AWAY_BALANCE"
	ConsecutiveHomeGames    Kind = "CONSECUTIVE_HOME_GAMES"
	ConsecutiveAwayGames    Kind = "CONSECUTIVE_AWAY_GAMES"
	TVBroadcastPreferred    Kind = "TV_BROADCAST_PREFERRED"
	RivalryGame             Kind = "RIVALRY_GAME"
	WeekendDistribution     Kind = "WEEKEND_DISTRIBUTION"
	FanTravelPreference     Kind = "FAN_TRAVEL_PREFERENCE"
)

// KindInfo is the default hardness/priority/category row for a Kind, per
// the table the constraint library is required to support.
type KindInfo struct {
	Kind         Kind
	Hardness     Hardness
	BasePriority int
	Category     string
}

// DefaultKindTable returns the closed table of supported kinds with their
// defaults. Order matches the table so iteration is deterministic.
func DefaultKindTable() []KindInfo {
	return []KindInfo{
		{TeamRest, Hard, 100, "scheduling"},
		{VenueAvailability, Hard, 95, "facilities"},
		{ReligiousDayRestriction, Hard, 90, "religious"},
		{ChampionshipDates, Hard, 80, "tournament"},
		{SeriesStructure, Hard, 95, "structure"},
		{WeatherWindow, Hard, 90, "temporal"},
		{TVBroadcastMandatory, Hard, 85, "media"},
		{TravelDistance, Soft, 70, "logistics"},
		{HomeAwayBalance, Soft, 65, "fairness"},
		{ConsecutiveHomeGames, Soft, 60, "balance"},
		{ConsecutiveAwayGames, Soft, 60, "balance"},
		{TVBroadcastPreferred, Soft, 55, "media"},
		{RivalryGame, Soft, 50, "tradition"},
		{WeekendDistribution, Soft, 45, "attendance"},
		{FanTravelPreference, Preference, 30, "fan_experience"},
	}
}

var kindInfoByKind = func() map[Kind]KindInfo {
	m := make(map[Kind]KindInfo, len(DefaultKindTable()))
	for _, ki := range DefaultKindTable() {
		m[ki.Kind] = ki
	}
	return m
}()

// LookupKind returns the default info for kind and whether it is a
// recognized kind. An unrecognized kind is rejected by process(), per §4.3.
func LookupKind(k Kind) (KindInfo, bool) {
	ki, ok := kindInfoByKind[k]
	return ki, ok
}
