package app

import (
	"github.com/montanaflynn/stats"

	"matchlens/domain/ethnicity"
)

// diagnose summarizes the spread of observed sample sizes across both index
// domains. Statistics errors only occur on empty input, which cannot happen
// here since both count maps cover the full race domain.
func diagnose(general, hispanicSub map[ethnicity.Race]uint) SampleDiagnostics {
	var samples []float64
	for _, race := range ethnicity.AllRaces() {
		if race == ethnicity.RaceHispanic {
			continue
		}
		samples = append(samples, float64(general[race]), float64(hispanicSub[race]))
	}

	min, _ := stats.Min(samples)
	max, _ := stats.Max(samples)
	mean, _ := stats.Mean(samples)
	median, _ := stats.Median(samples)

	return SampleDiagnostics{Min: min, Max: max, Mean: mean, Median: median}
}
