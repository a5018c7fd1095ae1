package profile

import (
	"errors"
	"testing"

	"matchlens/domain/core"
	"matchlens/domain/ethnicity"
)

func TestNew_ReplyConsistency(t *testing.T) {
	tests := []struct {
		name        string
		convo       bool
		lastReplied WhoLastReplied
		expectError bool
	}{
		{"met with conversation", true, RepliedMet, false},
		{"met without conversation", false, RepliedMet, true},
		{"none without conversation", false, RepliedNone, false},
		{"none with conversation", true, RepliedNone, true},
		{"you without conversation", false, RepliedYou, false},
		{"you with conversation", true, RepliedYou, false},
		{"them without conversation", false, RepliedThem, false},
		{"them with conversation", true, RepliedThem, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("alex", true, tt.convo, tt.lastReplied, true, ethnicity.NewSet(ethnicity.WhiteCaucasian))
			if tt.expectError {
				if !errors.Is(err, core.ErrInvalidProfile) {
					t.Errorf("error = %v, want ErrInvalidProfile", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNew_ClassificationFailureIsRetained(t *testing.T) {
	p, err := New("sam", true, false, RepliedNone, false, ethnicity.NewSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Race != nil {
		t.Errorf("expected absent race for empty ethnicity, got %s", *p.Race)
	}
	if p.HasBackgroundInfo() {
		t.Error("profile without race or hispanic flag should have no background info")
	}
}

func TestNew_DerivesRace(t *testing.T) {
	p, err := New("rio", true, true, RepliedMet, true, ethnicity.NewSet(ethnicity.HispanicLatino, ethnicity.WhiteCaucasian))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Race == nil || *p.Race != ethnicity.RaceHispanic {
		t.Fatalf("race = %v, want Hispanic", p.Race)
	}
	if !p.IsHispanic() || !p.HasBackgroundInfo() {
		t.Error("hispanic-tagged profile should report background info")
	}
}

func TestParseWhoLastReplied(t *testing.T) {
	for _, valid := range []string{"You", "Them", "Met", "None"} {
		if _, err := ParseWhoLastReplied(valid); err != nil {
			t.Errorf("ParseWhoLastReplied(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseWhoLastReplied("Nobody"); !errors.Is(err, core.ErrInvalidReply) {
		t.Errorf("error = %v, want ErrInvalidReply", err)
	}
}
