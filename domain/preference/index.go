package preference

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"matchlens/domain/core"
	"matchlens/domain/demographics"
	"matchlens/domain/ethnicity"
)

// RacialPreference is one ranked entry of the preference index. Weight is a
// normalized index across all entries, not a probability in isolation.
type RacialPreference struct {
	Race     ethnicity.Race
	Hispanic bool
	Weight   float64
	Count    uint
}

// Label renders the entry's race, with the Hispanic-variant suffix used in
// ranked output.
func (p RacialPreference) Label() string {
	if p.Hispanic {
		return fmt.Sprintf("%sHispanic", p.Race)
	}
	return p.Race.String()
}

// Calculator turns observed per-race match counts into a population-adjusted
// preference index. Counts below SampleCutoff are zeroed rather than reported
// as statistically unstable ratios.
type Calculator struct {
	SampleCutoff uint
}

// NewCalculator creates a preference index calculator.
func NewCalculator(sampleCutoff uint) *Calculator {
	return &Calculator{SampleCutoff: sampleCutoff}
}

// indexRaces is the shared domain of both halves of the index: every race
// except Hispanic, which is reported only through the sub-race breakdown.
func indexRaces() []ethnicity.Race {
	races := make([]ethnicity.Race, 0, len(ethnicity.AllRaces())-1)
	for _, race := range ethnicity.AllRaces() {
		if race != ethnicity.RaceHispanic {
			races = append(races, race)
		}
	}
	return races
}

// Compute combines observed counts with the baseline into a ranked index
// whose weights sum to 1.0. Every race of both domains is present in the
// result; suppressed entries carry weight zero. It fails with
// core.ErrDegenerateDistribution when every count falls below the cutoff.
func (c *Calculator) Compute(generalCounts, hispanicSubCounts map[ethnicity.Race]uint, baseline demographics.Baseline) ([]RacialPreference, error) {
	hispanicShare := baseline.General.Weight(ethnicity.RaceHispanic)

	var prefs []RacialPreference
	for _, race := range indexRaces() {
		count := generalCounts[race]
		prefs = append(prefs, RacialPreference{
			Race:   race,
			Count:  count,
			Weight: c.rawWeight(count, baseline.General.Weight(race)),
		})
	}
	for _, race := range indexRaces() {
		count := hispanicSubCounts[race]
		// Double normalization: by the Hispanic share of the overall
		// population, then by the race's share within the Hispanic
		// subpopulation.
		prefs = append(prefs, RacialPreference{
			Race:     race,
			Hispanic: true,
			Count:    count,
			Weight:   c.rawWeight(count, hispanicShare*baseline.HispanicSub.Weight(race)),
		})
	}

	weights := make([]float64, len(prefs))
	for i, p := range prefs {
		weights[i] = p.Weight
	}
	total := floats.Sum(weights)
	if total == 0 {
		return nil, fmt.Errorf("%w: all observed counts fall below the sample cutoff of %d", core.ErrDegenerateDistribution, c.SampleCutoff)
	}

	floats.Scale(1/total, weights)
	for i := range prefs {
		prefs[i].Weight = weights[i]
	}

	sortPreferences(prefs)
	return prefs, nil
}

func (c *Calculator) rawWeight(count uint, expected float64) float64 {
	if count < c.SampleCutoff || expected == 0 {
		return 0
	}
	return float64(count) / expected
}

// sortPreferences orders by descending weight. Ties break on race
// declaration order, then non-Hispanic before the Hispanic variant, so
// ranking is reproducible across runs.
func sortPreferences(prefs []RacialPreference) {
	sort.Slice(prefs, func(i, j int) bool {
		a, b := prefs[i], prefs[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.Race != b.Race {
			return a.Race < b.Race
		}
		return !a.Hispanic && b.Hispanic
	})
}
