package ethnicity

// Race is the closed set of race categories derived from ethnicity flags.
// Declaration order doubles as the deterministic secondary sort key for
// ranked output, so keep it stable.
type Race int

const (
	RaceWhiteCaucasian Race = iota
	RaceBlackAfrican
	RaceNativeAmerican
	RaceAsian
	RacePacificIslander
	RaceMultiracial
	RaceHispanic
	RaceOther
)

var raceNames = map[Race]string{
	RaceWhiteCaucasian:  "WhiteCaucasian",
	RaceBlackAfrican:    "BlackAfrican",
	RaceNativeAmerican:  "NativeAmerican",
	RaceAsian:           "Asian",
	RacePacificIslander: "PacificIslander",
	RaceMultiracial:     "Multiracial",
	RaceHispanic:        "Hispanic",
	RaceOther:           "Other",
}

func (r Race) String() string {
	if name, ok := raceNames[r]; ok {
		return name
	}
	return "Unknown"
}

// AllRaces returns every race category in declaration order.
func AllRaces() []Race {
	return []Race{
		RaceWhiteCaucasian,
		RaceBlackAfrican,
		RaceNativeAmerican,
		RaceAsian,
		RacePacificIslander,
		RaceMultiracial,
		RaceHispanic,
		RaceOther,
	}
}

// CountByRace folds a sequence of races into a fresh per-race count map.
// Every race category is present in the result, zero-valued when unobserved,
// so downstream iteration covers the full domain.
func CountByRace(races []Race) map[Race]uint {
	counts := make(map[Race]uint, len(raceNames))
	for _, race := range AllRaces() {
		counts[race] = 0
	}
	for _, race := range races {
		counts[race]++
	}
	return counts
}
