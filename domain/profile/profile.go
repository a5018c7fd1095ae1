package profile

import (
	"fmt"

	"matchlens/domain/core"
	"matchlens/domain/ethnicity"
)

// WhoLastReplied records who sent the final message of a match, or that the
// pair met, or that no conversation ever happened.
type WhoLastReplied string

const (
	RepliedYou  WhoLastReplied = "You"
	RepliedThem WhoLastReplied = "Them"
	RepliedMet  WhoLastReplied = "Met"
	RepliedNone WhoLastReplied = "None"
)

// ParseWhoLastReplied parses the match-log column value.
func ParseWhoLastReplied(s string) (WhoLastReplied, error) {
	switch WhoLastReplied(s) {
	case RepliedYou, RepliedThem, RepliedMet, RepliedNone:
		return WhoLastReplied(s), nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrInvalidReply, s)
	}
}

// Profile is one validated match-log entry. It is constructed once per valid
// input row and never mutated afterwards.
type Profile struct {
	Name               string
	Matched            bool
	Convo              bool
	WhoLastReplied     WhoLastReplied
	EthnicitySpecified bool
	Ethnicity          ethnicity.Set

	// Race is nil when classification fails; the profile still counts
	// towards funnel metrics.
	Race *ethnicity.Race
}

// New validates and builds a Profile. It enforces the consistency between the
// conversation flag and the reply state: Met requires a conversation, None
// requires the absence of one.
func New(name string, matched, convo bool, lastReplied WhoLastReplied, specified bool, set ethnicity.Set) (Profile, error) {
	switch {
	case lastReplied == RepliedMet && !convo:
		return Profile{}, core.NewProfileError(name, "who_last_replied is Met but no conversation occurred")
	case lastReplied == RepliedNone && convo:
		return Profile{}, core.NewProfileError(name, "who_last_replied is None but a conversation occurred")
	}

	p := Profile{
		Name:               name,
		Matched:            matched,
		Convo:              convo,
		WhoLastReplied:     lastReplied,
		EthnicitySpecified: specified,
		Ethnicity:          set,
	}
	if race, err := ethnicity.Classify(set); err == nil {
		p.Race = &race
	}
	return p, nil
}

// HasBackgroundInfo reports whether the profile contributes to race-based
// aggregation, either through a classified race or a Hispanic tag.
func (p Profile) HasBackgroundInfo() bool {
	return p.Race != nil || p.Ethnicity.Contains(ethnicity.HispanicLatino)
}

// IsHispanic reports whether the profile carries the HispanicLatino flag.
func (p Profile) IsHispanic() bool {
	return p.Ethnicity.Contains(ethnicity.HispanicLatino)
}
