package funnel

import (
	"fmt"

	"matchlens/domain/core"
	"matchlens/domain/profile"
)

// Counts holds the per-bucket tallies of conversation outcomes, plus the
// derived totals the ratios are computed from.
type Counts struct {
	Total uint

	NoConvoAttempted       uint
	NoConvoYouFailed       uint
	NoConvoTheyFailed      uint
	ConvoStartedYouFailed  uint
	ConvoStartedTheyFailed uint
	YouMet                 uint

	ConvoStarted      uint
	ConvoYouAttempted uint
}

// Metrics is the fixed set of derived funnel ratios, each a fraction of its
// stated denominator.
type Metrics struct {
	Counts Counts

	Interested        float64 // convo_you_attempted / total
	TheyFailed        float64 // no_convo_they_failed / total
	NoOneInterested   float64 // no_convo_attempted / total
	StarterSuccess    float64 // convo_started / convo_you_attempted
	StarterFailed     float64 // no_convo_you_failed / convo_you_attempted
	YouGhostThem      float64 // convo_started_you_failed / convo_started
	ThemGhostYou      float64 // convo_started_they_failed / convo_started
	DateRate          float64 // you_met / convo_started
	DateGivenInterest float64 // starter_success * date_rate
}

// Compute tallies conversation outcomes across profiles and derives the
// funnel ratios. It fails with core.ErrInsufficientData when any ratio
// denominator is zero; callers surface that as a reportable condition.
func Compute(profiles []profile.Profile) (Metrics, error) {
	counts, err := tally(profiles)
	if err != nil {
		return Metrics{}, err
	}

	if counts.Total == 0 {
		return Metrics{}, fmt.Errorf("%w: no profiles", core.ErrInsufficientData)
	}
	if counts.ConvoYouAttempted == 0 {
		return Metrics{}, fmt.Errorf("%w: no conversation attempts", core.ErrInsufficientData)
	}
	if counts.ConvoStarted == 0 {
		return Metrics{}, fmt.Errorf("%w: no conversations started", core.ErrInsufficientData)
	}

	m := Metrics{
		Counts:          counts,
		Interested:      float64(counts.ConvoYouAttempted) / float64(counts.Total),
		TheyFailed:      float64(counts.NoConvoTheyFailed) / float64(counts.Total),
		NoOneInterested: float64(counts.NoConvoAttempted) / float64(counts.Total),
		StarterSuccess:  float64(counts.ConvoStarted) / float64(counts.ConvoYouAttempted),
		StarterFailed:   float64(counts.NoConvoYouFailed) / float64(counts.ConvoYouAttempted),
		YouGhostThem:    float64(counts.ConvoStartedYouFailed) / float64(counts.ConvoStarted),
		ThemGhostYou:    float64(counts.ConvoStartedTheyFailed) / float64(counts.ConvoStarted),
		DateRate:        float64(counts.YouMet) / float64(counts.ConvoStarted),
	}
	m.DateGivenInterest = m.StarterSuccess * m.DateRate
	return m, nil
}

// tally folds profiles into bucket counts. The (convo=false, Met) and
// (convo=true, None) combinations cannot occur in validated profiles.
func tally(profiles []profile.Profile) (Counts, error) {
	var c Counts
	for _, p := range profiles {
		c.Total++
		switch {
		case !p.Convo && p.WhoLastReplied == profile.RepliedNone:
			c.NoConvoAttempted++
		case !p.Convo && p.WhoLastReplied == profile.RepliedYou:
			c.NoConvoYouFailed++
		case !p.Convo && p.WhoLastReplied == profile.RepliedThem:
			c.NoConvoTheyFailed++
		case p.Convo && p.WhoLastReplied == profile.RepliedYou:
			c.ConvoStartedYouFailed++
		case p.Convo && p.WhoLastReplied == profile.RepliedThem:
			c.ConvoStartedTheyFailed++
		case p.Convo && p.WhoLastReplied == profile.RepliedMet:
			c.YouMet++
		default:
			return Counts{}, core.NewProfileError(p.Name, fmt.Sprintf("unreachable outcome convo=%t who_last_replied=%s", p.Convo, p.WhoLastReplied))
		}
	}

	c.ConvoStarted = c.ConvoStartedYouFailed + c.ConvoStartedTheyFailed + c.YouMet
	c.ConvoYouAttempted = c.Total - c.NoConvoAttempted - c.NoConvoTheyFailed
	return c, nil
}
