package tabular

import (
	"context"
	"fmt"
	"log"

	"matchlens/domain/ethnicity"
	"matchlens/domain/profile"
	"matchlens/ports"
)

// ethnicityColumns maps each 0/1 indicator column of the match log to its
// flag, in column order.
var ethnicityColumns = []struct {
	name string
	flag ethnicity.Set
}{
	{"native_american", ethnicity.NativeAmerican},
	{"southeast_asian", ethnicity.SoutheastAsian},
	{"black_african_descent", ethnicity.BlackAfricanDescent},
	{"east_asian", ethnicity.EastAsian},
	{"hispanic_latino", ethnicity.HispanicLatino},
	{"middle_eastern", ethnicity.MiddleEastern},
	{"pacific_islander", ethnicity.PacificIslander},
	{"south_asian", ethnicity.SouthAsian},
	{"white_caucasian", ethnicity.WhiteCaucasian},
	{"other", ethnicity.Other},
}

var matchLogColumns = func() []string {
	cols := []string{"name", "matched", "convo", "last_reply", "specified"}
	for _, ec := range ethnicityColumns {
		cols = append(cols, ec.name)
	}
	return cols
}()

// MatchLogReader reads a match log file into validated profiles.
type MatchLogReader struct {
	path string
}

// NewMatchLogReader creates a match log reader for a CSV or Excel file.
func NewMatchLogReader(path string) *MatchLogReader {
	return &MatchLogReader{path: path}
}

var _ ports.MatchLogSource = (*MatchLogReader)(nil)

// ReadProfiles loads the match log. Rows that fail to parse or violate the
// profile invariants are skipped with their line number; the rest of the
// file is still processed.
func (r *MatchLogReader) ReadProfiles(ctx context.Context) ([]profile.Profile, []ports.SkippedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	t, err := readTable(r.path)
	if err != nil {
		return nil, nil, err
	}
	cols, err := t.requireColumns(matchLogColumns)
	if err != nil {
		return nil, nil, err
	}

	var (
		profiles []profile.Profile
		skipped  []ports.SkippedRow
	)
	for i, row := range t.rows {
		line := i + 2 // header is line 1
		p, err := bindProfile(row, cols)
		if err != nil {
			log.Printf("[MatchLogReader] skipping line %d: %v", line, err)
			skipped = append(skipped, ports.SkippedRow{Line: line, Reason: err})
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, skipped, nil
}

func bindProfile(row []string, cols map[string]int) (profile.Profile, error) {
	matched, err := parseFlag(cell(row, cols["matched"]))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("matched: %w", err)
	}
	convo, err := parseFlag(cell(row, cols["convo"]))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("convo: %w", err)
	}
	lastReplied, err := profile.ParseWhoLastReplied(cell(row, cols["last_reply"]))
	if err != nil {
		return profile.Profile{}, err
	}
	specified, err := parseFlag(cell(row, cols["specified"]))
	if err != nil {
		return profile.Profile{}, fmt.Errorf("specified: %w", err)
	}

	var set ethnicity.Set
	for _, ec := range ethnicityColumns {
		on, err := parseFlag(cell(row, cols[ec.name]))
		if err != nil {
			return profile.Profile{}, fmt.Errorf("%s: %w", ec.name, err)
		}
		if on {
			set |= ec.flag
		}
	}

	return profile.New(cell(row, cols["name"]), matched, convo, lastReplied, specified, set)
}
