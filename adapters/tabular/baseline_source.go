package tabular

import (
	"context"
	"fmt"
	"log"

	"matchlens/domain/demographics"
	"matchlens/ports"
)

var generalColumns = []string{
	"county",
	"white_alone",
	"black_african_american_alone",
	"american_indian_alaska_native_alone",
	"asian_alone",
	"native_hawaiian_pacific_islander_alone",
	"some_other_race_alone",
	"two_or_more_races",
	"hispanic_latino",
}

var hispanicColumns = []string{
	"county",
	"white_hispanic",
	"black_african_american_hispanic",
	"american_indian_alaska_native_hispanic",
	"asian_hispanic",
	"native_hawaiian_pacific_islander_hispanic",
	"some_other_race_hispanic",
	"two_or_more_races_hispanic",
}

// BaselineReader reads the two census baseline files.
type BaselineReader struct {
	generalPath  string
	hispanicPath string
}

// NewBaselineReader creates a baseline reader over the general-population
// and Hispanic-subpopulation files (CSV or Excel each).
func NewBaselineReader(generalPath, hispanicPath string) *BaselineReader {
	return &BaselineReader{generalPath: generalPath, hispanicPath: hispanicPath}
}

var _ ports.BaselineSource = (*BaselineReader)(nil)

// ReadGeneral loads the general population baseline records.
func (r *BaselineReader) ReadGeneral(ctx context.Context) ([]demographics.CountyPopulationRecord, []ports.SkippedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t, err := readTable(r.generalPath)
	if err != nil {
		return nil, nil, err
	}
	cols, err := t.requireColumns(generalColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		records []demographics.CountyPopulationRecord
		skipped []ports.SkippedRow
	)
	for i, row := range t.rows {
		line := i + 2
		rec, err := bindGeneralRecord(row, cols)
		if err != nil {
			log.Printf("[BaselineReader] skipping line %d of %s: %v", line, r.generalPath, err)
			skipped = append(skipped, ports.SkippedRow{Line: line, Reason: err})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// ReadHispanic loads the Hispanic-subpopulation baseline records.
func (r *BaselineReader) ReadHispanic(ctx context.Context) ([]demographics.CountyHispanicPopulationRecord, []ports.SkippedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t, err := readTable(r.hispanicPath)
	if err != nil {
		return nil, nil, err
	}
	cols, err := t.requireColumns(hispanicColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		records []demographics.CountyHispanicPopulationRecord
		skipped []ports.SkippedRow
	)
	for i, row := range t.rows {
		line := i + 2
		rec, err := bindHispanicRecord(row, cols)
		if err != nil {
			log.Printf("[BaselineReader] skipping line %d of %s: %v", line, r.hispanicPath, err)
			skipped = append(skipped, ports.SkippedRow{Line: line, Reason: err})
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func bindGeneralRecord(row []string, cols map[string]int) (demographics.CountyPopulationRecord, error) {
	rec := demographics.CountyPopulationRecord{County: cell(row, cols["county"])}

	fields := []struct {
		name string
		dst  *uint
	}{
		{"white_alone", &rec.WhiteAlone},
		{"black_african_american_alone", &rec.BlackAfricanAmericanAlone},
		{"american_indian_alaska_native_alone", &rec.AmericanIndianAlaskaNativeAlone},
		{"asian_alone", &rec.AsianAlone},
		{"native_hawaiian_pacific_islander_alone", &rec.NativeHawaiianPacificIslanderAlone},
		{"some_other_race_alone", &rec.SomeOtherRaceAlone},
		{"two_or_more_races", &rec.TwoOrMoreRaces},
		{"hispanic_latino", &rec.HispanicLatino},
	}
	for _, f := range fields {
		n, err := parseCount(cell(row, cols[f.name]))
		if err != nil {
			return demographics.CountyPopulationRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return rec, nil
}

func bindHispanicRecord(row []string, cols map[string]int) (demographics.CountyHispanicPopulationRecord, error) {
	rec := demographics.CountyHispanicPopulationRecord{County: cell(row, cols["county"])}

	fields := []struct {
		name string
		dst  *uint
	}{
		{"white_hispanic", &rec.WhiteHispanic},
		{"black_african_american_hispanic", &rec.BlackAfricanAmericanHispanic},
		{"american_indian_alaska_native_hispanic", &rec.AmericanIndianAlaskaNativeHispanic},
		{"asian_hispanic", &rec.AsianHispanic},
		{"native_hawaiian_pacific_islander_hispanic", &rec.NativeHawaiianPacificIslanderHispanic},
		{"some_other_race_hispanic", &rec.SomeOtherRaceHispanic},
		{"two_or_more_races_hispanic", &rec.TwoOrMoreRacesHispanic},
	}
	for _, f := range fields {
		n, err := parseCount(cell(row, cols[f.name]))
		if err != nil {
			return demographics.CountyHispanicPopulationRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}
	return rec, nil
}
