package ethnicity

import (
	"errors"
	"testing"

	"matchlens/domain/core"
)

func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want Race
	}{
		{"single white", NewSet(WhiteCaucasian), RaceWhiteCaucasian},
		{"single black", NewSet(BlackAfricanDescent), RaceBlackAfrican},
		{"single native american", NewSet(NativeAmerican), RaceNativeAmerican},
		{"single east asian", NewSet(EastAsian), RaceAsian},
		{"single southeast asian", NewSet(SoutheastAsian), RaceAsian},
		{"single south asian", NewSet(SouthAsian), RaceAsian},
		{"single pacific islander", NewSet(PacificIslander), RacePacificIslander},
		{"single hispanic", NewSet(HispanicLatino), RaceHispanic},
		{"single other", NewSet(Other), RaceOther},
		{"asian combination", NewSet(SoutheastAsian, EastAsian), RaceAsian},
		{"full asian group", NewSet(SoutheastAsian, EastAsian, SouthAsian), RaceAsian},
		{"hispanic dominates co-occurring flags", NewSet(HispanicLatino, WhiteCaucasian), RaceHispanic},
		{"hispanic with two others", NewSet(HispanicLatino, BlackAfricanDescent, EastAsian), RaceHispanic},
		{"disjoint groupings are multiracial", NewSet(NativeAmerican, EastAsian), RaceMultiracial},
		{"white plus black is multiracial", NewSet(WhiteCaucasian, BlackAfricanDescent), RaceMultiracial},
		{"middle eastern is stripped before mapping", NewSet(MiddleEastern, WhiteCaucasian), RaceWhiteCaucasian},
		{"middle eastern stripped from asian combo", NewSet(MiddleEastern, EastAsian, SouthAsian), RaceAsian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.set)
			if err != nil {
				t.Fatalf("Classify(%s) returned error: %v", tt.set, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.set, got, tt.want)
			}
		})
	}
}

func TestClassify_Errors(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr error
	}{
		{"empty set", NewSet(), core.ErrEmptyEthnicity},
		{"middle eastern only", NewSet(MiddleEastern), core.ErrUnsupportedOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.set)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Classify(%s) error = %v, want %v", tt.set, err, tt.wantErr)
			}
			if !core.IsClassificationError(err) {
				t.Errorf("expected %v to be a classification error", err)
			}
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	set := NewSet(HispanicLatino, WhiteCaucasian, MiddleEastern)
	first, err := Classify(set)
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := Classify(set)
		if err != nil || got != first {
			t.Fatalf("call %d: Classify(%s) = (%v, %v), want (%v, nil)", i, set, got, err, first)
		}
	}
}

// Totality: every non-empty set not reducible to unsupported flags only must
// classify to exactly one race.
func TestClassify_Totality(t *testing.T) {
	allFlags := []Set{
		NativeAmerican, SoutheastAsian, BlackAfricanDescent, EastAsian,
		HispanicLatino, MiddleEastern, PacificIslander, SouthAsian,
		WhiteCaucasian, Other,
	}

	// Enumerate every combination of the ten flags.
	for mask := 1; mask < 1<<len(allFlags); mask++ {
		var set Set
		for i, f := range allFlags {
			if mask&(1<<i) != 0 {
				set |= f
			}
		}

		race, err := Classify(set)
		if set.Without(MiddleEastern).IsEmpty() {
			if !errors.Is(err, core.ErrUnsupportedOnly) {
				t.Errorf("Classify(%s) error = %v, want ErrUnsupportedOnly", set, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Classify(%s) returned error: %v", set, err)
			continue
		}
		if race.String() == "Unknown" {
			t.Errorf("Classify(%s) produced an unknown race", set)
		}
	}
}

func TestClassifyHispanicSubrace(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want Race
	}{
		{"purely hispanic maps to other", NewSet(HispanicLatino), RaceOther},
		{"hispanic black", NewSet(HispanicLatino, BlackAfricanDescent), RaceBlackAfrican},
		{"hispanic white", NewSet(HispanicLatino, WhiteCaucasian), RaceWhiteCaucasian},
		{"hispanic asian combo", NewSet(HispanicLatino, EastAsian, SouthAsian), RaceAsian},
		{"hispanic multiracial remainder", NewSet(HispanicLatino, WhiteCaucasian, BlackAfricanDescent), RaceMultiracial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyHispanicSubrace(tt.set)
			if err != nil {
				t.Fatalf("ClassifyHispanicSubrace(%s) returned error: %v", tt.set, err)
			}
			if got != tt.want {
				t.Errorf("ClassifyHispanicSubrace(%s) = %s, want %s", tt.set, got, tt.want)
			}
			if got == RaceHispanic {
				t.Errorf("subrace classification must never yield Hispanic")
			}
		})
	}
}

func TestClassifyHispanicSubrace_UnsupportedRemainder(t *testing.T) {
	_, err := ClassifyHispanicSubrace(NewSet(HispanicLatino, MiddleEastern))
	if !errors.Is(err, core.ErrUnsupportedOnly) {
		t.Errorf("error = %v, want ErrUnsupportedOnly", err)
	}
}

func TestCountByRace(t *testing.T) {
	counts := CountByRace([]Race{RaceAsian, RaceAsian, RaceHispanic})

	if len(counts) != len(AllRaces()) {
		t.Fatalf("expected every race in the count map, got %d entries", len(counts))
	}
	if counts[RaceAsian] != 2 {
		t.Errorf("asian count = %d, want 2", counts[RaceAsian])
	}
	if counts[RaceHispanic] != 1 {
		t.Errorf("hispanic count = %d, want 1", counts[RaceHispanic])
	}
	if counts[RaceWhiteCaucasian] != 0 {
		t.Errorf("unobserved race should be zero, got %d", counts[RaceWhiteCaucasian])
	}
}
