package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"matchlens/domain/core"
	"matchlens/domain/demographics"
	"matchlens/domain/ethnicity"
	"matchlens/domain/funnel"
	"matchlens/domain/preference"
	"matchlens/domain/profile"
	"matchlens/ports"
)

// Filters restricts the profile set before aggregation.
type Filters struct {
	OnlyMet       bool // keep profiles that resulted in a date
	OnlyConvo     bool // keep profiles with a message-based conversation
	OnlySpecified bool // keep profiles that self-reported ethnicity
}

// Options configures a single analysis run.
type Options struct {
	SampleCutoff uint
	Filters      Filters
}

// Totals summarizes how much input survived ingestion and filtering.
type Totals struct {
	Profiles       int
	WithBackground int
	FilteredOut    int

	SkippedMatchRows    int
	SkippedBaselineRows int
}

// SampleDiagnostics describes the spread of observed per-race sample sizes,
// a quick read on how much the cutoff is suppressing.
type SampleDiagnostics struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// Report is the complete result of one analysis run. Preference and funnel
// sections may individually be unavailable when the data cannot support
// them; that is a reportable condition, not a failure of the run.
type Report struct {
	RunID        core.RunID
	GeneratedAt  time.Time
	SampleCutoff uint

	Totals      Totals
	Diagnostics SampleDiagnostics

	Preferences           []preference.RacialPreference
	PreferenceUnavailable string

	Funnel            *funnel.Metrics
	FunnelUnavailable string
}

// AnalysisService runs the one-shot pipeline: load inputs, classify,
// aggregate, compute the preference index and funnel metrics.
type AnalysisService struct {
	matches  ports.MatchLogSource
	baseline ports.BaselineSource
}

// NewAnalysisService creates an analysis service over the given sources.
func NewAnalysisService(matches ports.MatchLogSource, baseline ports.BaselineSource) *AnalysisService {
	return &AnalysisService{matches: matches, baseline: baseline}
}

// Run executes the full analysis. It fails only on fatal preconditions
// (unreadable input, schema mismatch, empty baseline); per-row problems are
// absorbed into the report's skip counts.
func (s *AnalysisService) Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{
		RunID:        core.NewRunID(),
		GeneratedAt:  time.Now(),
		SampleCutoff: opts.SampleCutoff,
	}
	log.Printf("[AnalysisService] run %s starting", report.RunID)

	profiles, generalRecords, hispanicRecords, err := s.loadInputs(ctx, report)
	if err != nil {
		return nil, err
	}

	baseline, err := demographics.Build(generalRecords, hispanicRecords)
	if err != nil {
		return nil, err
	}

	kept := applyFilters(profiles, opts.Filters)
	report.Totals.Profiles = len(kept)
	report.Totals.FilteredOut = len(profiles) - len(kept)
	for _, p := range kept {
		if p.HasBackgroundInfo() {
			report.Totals.WithBackground++
		}
	}

	generalCounts, hispanicCounts := aggregate(kept)
	report.Diagnostics = diagnose(generalCounts, hispanicCounts)

	calc := preference.NewCalculator(opts.SampleCutoff)
	prefs, err := calc.Compute(generalCounts, hispanicCounts, baseline)
	switch {
	case err == nil:
		report.Preferences = prefs
	case core.IsReportableCondition(err):
		report.PreferenceUnavailable = err.Error()
	default:
		return nil, err
	}

	metrics, err := funnel.Compute(kept)
	switch {
	case err == nil:
		report.Funnel = &metrics
	case core.IsReportableCondition(err):
		report.FunnelUnavailable = err.Error()
	default:
		return nil, err
	}

	log.Printf("[AnalysisService] run %s complete: %d profiles, %d skipped rows",
		report.RunID, report.Totals.Profiles, report.Totals.SkippedMatchRows+report.Totals.SkippedBaselineRows)
	return report, nil
}

// loadInputs reads the three input files concurrently. Computation after
// this point is synchronous and pure.
func (s *AnalysisService) loadInputs(ctx context.Context, report *Report) ([]profile.Profile, []demographics.CountyPopulationRecord, []demographics.CountyHispanicPopulationRecord, error) {
	var (
		profiles        []profile.Profile
		generalRecords  []demographics.CountyPopulationRecord
		hispanicRecords []demographics.CountyHispanicPopulationRecord

		skippedMatches  []ports.SkippedRow
		skippedGeneral  []ports.SkippedRow
		skippedHispanic []ports.SkippedRow
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, skippedMatches, err = s.matches.ReadProfiles(ctx)
		if err != nil {
			return fmt.Errorf("match log: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		generalRecords, skippedGeneral, err = s.baseline.ReadGeneral(ctx)
		if err != nil {
			return fmt.Errorf("general baseline: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		hispanicRecords, skippedHispanic, err = s.baseline.ReadHispanic(ctx)
		if err != nil {
			return fmt.Errorf("hispanic baseline: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	report.Totals.SkippedMatchRows = len(skippedMatches)
	report.Totals.SkippedBaselineRows = len(skippedGeneral) + len(skippedHispanic)
	return profiles, generalRecords, hispanicRecords, nil
}

func applyFilters(profiles []profile.Profile, f Filters) []profile.Profile {
	kept := make([]profile.Profile, 0, len(profiles))
	for _, p := range profiles {
		if f.OnlyMet && p.WhoLastReplied != profile.RepliedMet {
			continue
		}
		if f.OnlyConvo && !p.Convo {
			continue
		}
		if f.OnlySpecified && !p.EthnicitySpecified {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// aggregate folds profiles into the two observed count maps: classified
// races of all profiles, and sub-races of Hispanic-tagged profiles.
func aggregate(profiles []profile.Profile) (map[ethnicity.Race]uint, map[ethnicity.Race]uint) {
	var races, subraces []ethnicity.Race
	for _, p := range profiles {
		if p.Race != nil {
			races = append(races, *p.Race)
		}
		if p.IsHispanic() {
			if subrace, err := ethnicity.ClassifyHispanicSubrace(p.Ethnicity); err == nil {
				subraces = append(subraces, subrace)
			}
		}
	}
	return ethnicity.CountByRace(races), ethnicity.CountByRace(subraces)
}
