package constraints

// SportProfile carries the per-sport weight multipliers applied during
// process() (§4.2). A kind absent from Multipliers gets the neutral 1.0
// multiplier.
type SportProfile struct {
	Sport       string
	Multipliers map[Kind]float64
}

// DefaultSportProfiles returns the selected-examples table from §4.2:
// football amplifies rest/broadcast/travel; basketball amplifies
// consecutive-away; baseball/softball amplify weather/series while
// relaxing rest.
func DefaultSportProfiles() map[string]SportProfile {
	return map[string]SportProfile{
		"football": {
			Sport: "football",
			Multipliers: map[Kind]float64{
				TeamRest:             1.5,
				TVBroadcastMandatory: 1.8,
				TravelDistance:       1.3,
			},
		},
		"basketball": {
			Sport: "basketball",
			Multipliers: map[Kind]float64{
				ConsecutiveAwayGames: 1.4,
			},
		},
		"baseball": {
			Sport: "baseball",
			Multipliers: map[Kind]float64{
				WeatherWindow:   2.0,
				SeriesStructure: 1.6,
				TeamRest:        0.8,
			},
		},
		"softball": {
			Sport: "softball",
			Multipliers: map[Kind]float64{
				WeatherWindow:   2.0,
				SeriesStructure: 1.6,
				TeamRest:        0.8,
			},
		},
	}
}

// Multiplier returns the weight multiplier for kind under the given sport,
// defaulting to 1.0 when the sport or kind is not profiled.
func Multiplier(profiles map[string]SportProfile, sport string, k Kind) float64 {
	profile, ok := profiles[sport]
	if !ok {
		return 1.0
	}
	if m, ok := profile.Multipliers[k]; ok {
		return m
	}
	return 1.0
}
