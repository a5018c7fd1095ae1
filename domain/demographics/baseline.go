package demographics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"matchlens/domain/core"
	"matchlens/domain/ethnicity"
)

// WeightTolerance is the floating tolerance within which a distribution's
// fractions must sum to 1.0.
const WeightTolerance = 1e-9

// CountyPopulationRecord is one row of the general population baseline,
// following the census "race alone" breakdown plus the Hispanic/Latino total.
type CountyPopulationRecord struct {
	County                             string
	WhiteAlone                         uint
	BlackAfricanAmericanAlone          uint
	AmericanIndianAlaskaNativeAlone    uint
	AsianAlone                         uint
	NativeHawaiianPacificIslanderAlone uint
	SomeOtherRaceAlone                 uint
	TwoOrMoreRaces                     uint
	HispanicLatino                     uint
}

// CountyHispanicPopulationRecord is one row of the Hispanic-subpopulation
// baseline. Within the subpopulation "Hispanic" is not itself a race label,
// so there is no such column.
type CountyHispanicPopulationRecord struct {
	County                                string
	WhiteHispanic                         uint
	BlackAfricanAmericanHispanic          uint
	AmericanIndianAlaskaNativeHispanic    uint
	AsianHispanic                         uint
	NativeHawaiianPacificIslanderHispanic uint
	SomeOtherRaceHispanic                 uint
	TwoOrMoreRacesHispanic                uint
}

// RaceWeightDistribution maps each race in its domain to its population
// fraction. Fractions sum to 1.0 within WeightTolerance.
type RaceWeightDistribution map[ethnicity.Race]float64

// Weight returns the fraction for race, or zero when race is outside the
// distribution's domain.
func (d RaceWeightDistribution) Weight(race ethnicity.Race) float64 {
	return d[race]
}

// Sum returns the total of all fractions.
func (d RaceWeightDistribution) Sum() float64 {
	values := make([]float64, 0, len(d))
	for _, race := range ethnicity.AllRaces() {
		if w, ok := d[race]; ok {
			values = append(values, w)
		}
	}
	return floats.Sum(values)
}

// Validate checks the sum-to-one invariant.
func (d RaceWeightDistribution) Validate() error {
	if math.Abs(d.Sum()-1.0) > WeightTolerance {
		return fmt.Errorf("race weight distribution sums to %v, want 1.0", d.Sum())
	}
	return nil
}

// Baseline bundles the two independently normalized distributions an
// analysis run compares observed matches against.
type Baseline struct {
	General     RaceWeightDistribution
	HispanicSub RaceWeightDistribution
}

// Build aggregates county records into the two baseline distributions.
// Records for multiple sub-regions of the same area are additive. It fails
// with core.ErrEmptyBaseline when either record set is empty or sums to a
// zero population.
func Build(general []CountyPopulationRecord, hispanic []CountyHispanicPopulationRecord) (Baseline, error) {
	if len(general) == 0 {
		return Baseline{}, fmt.Errorf("%w: no general population records", core.ErrEmptyBaseline)
	}
	if len(hispanic) == 0 {
		return Baseline{}, fmt.Errorf("%w: no hispanic population records", core.ErrEmptyBaseline)
	}

	generalDist, err := normalize(sumGeneral(general), "general population")
	if err != nil {
		return Baseline{}, err
	}
	hispanicDist, err := normalize(sumHispanic(hispanic), "hispanic population")
	if err != nil {
		return Baseline{}, err
	}

	return Baseline{General: generalDist, HispanicSub: hispanicDist}, nil
}

func sumGeneral(records []CountyPopulationRecord) map[ethnicity.Race]float64 {
	counts := map[ethnicity.Race]float64{
		ethnicity.RaceWhiteCaucasian:  0,
		ethnicity.RaceBlackAfrican:    0,
		ethnicity.RaceNativeAmerican:  0,
		ethnicity.RaceAsian:           0,
		ethnicity.RacePacificIslander: 0,
		ethnicity.RaceMultiracial:     0,
		ethnicity.RaceHispanic:        0,
		ethnicity.RaceOther:           0,
	}
	for _, r := range records {
		counts[ethnicity.RaceWhiteCaucasian] += float64(r.WhiteAlone)
		counts[ethnicity.RaceBlackAfrican] += float64(r.BlackAfricanAmericanAlone)
		counts[ethnicity.RaceNativeAmerican] += float64(r.AmericanIndianAlaskaNativeAlone)
		counts[ethnicity.RaceAsian] += float64(r.AsianAlone)
		counts[ethnicity.RacePacificIslander] += float64(r.NativeHawaiianPacificIslanderAlone)
		counts[ethnicity.RaceMultiracial] += float64(r.TwoOrMoreRaces)
		counts[ethnicity.RaceHispanic] += float64(r.HispanicLatino)
		counts[ethnicity.RaceOther] += float64(r.SomeOtherRaceAlone)
	}
	return counts
}

func sumHispanic(records []CountyHispanicPopulationRecord) map[ethnicity.Race]float64 {
	counts := map[ethnicity.Race]float64{
		ethnicity.RaceWhiteCaucasian:  0,
		ethnicity.RaceBlackAfrican:    0,
		ethnicity.RaceNativeAmerican:  0,
		ethnicity.RaceAsian:           0,
		ethnicity.RacePacificIslander: 0,
		ethnicity.RaceMultiracial:     0,
		ethnicity.RaceOther:           0,
	}
	for _, r := range records {
		counts[ethnicity.RaceWhiteCaucasian] += float64(r.WhiteHispanic)
		counts[ethnicity.RaceBlackAfrican] += float64(r.BlackAfricanAmericanHispanic)
		counts[ethnicity.RaceNativeAmerican] += float64(r.AmericanIndianAlaskaNativeHispanic)
		counts[ethnicity.RaceAsian] += float64(r.AsianHispanic)
		counts[ethnicity.RacePacificIslander] += float64(r.NativeHawaiianPacificIslanderHispanic)
		counts[ethnicity.RaceMultiracial] += float64(r.TwoOrMoreRacesHispanic)
		counts[ethnicity.RaceOther] += float64(r.SomeOtherRaceHispanic)
	}
	return counts
}

func normalize(counts map[ethnicity.Race]float64, label string) (RaceWeightDistribution, error) {
	values := make([]float64, 0, len(counts))
	for _, v := range counts {
		values = append(values, v)
	}
	total := floats.Sum(values)
	if total == 0 {
		return nil, fmt.Errorf("%w: %s total is zero", core.ErrEmptyBaseline, label)
	}

	dist := make(RaceWeightDistribution, len(counts))
	for race, count := range counts {
		dist[race] = count / total
	}
	return dist, nil
}
