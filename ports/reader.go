package ports

import (
	"context"

	"matchlens/domain/demographics"
	"matchlens/domain/profile"
)

// SkippedRow records one input row that was dropped during ingestion, with
// its 1-based line number in the source file.
type SkippedRow struct {
	Line   int
	Reason error
}

// MatchLogSource provides validated profiles from a match log. Malformed
// rows and invalid profiles are skipped, not fatal; they come back as
// SkippedRows so the run can report how much input was dropped.
type MatchLogSource interface {
	ReadProfiles(ctx context.Context) ([]profile.Profile, []SkippedRow, error)
}

// BaselineSource provides the external census population records. Per-row
// recovery applies here too, but a file that yields no records at all is a
// fatal precondition for the run.
type BaselineSource interface {
	ReadGeneral(ctx context.Context) ([]demographics.CountyPopulationRecord, []SkippedRow, error)
	ReadHispanic(ctx context.Context) ([]demographics.CountyHispanicPopulationRecord, []SkippedRow, error)
}
