package ethnicity

import "matchlens/domain/core"

// asianGroup are the ethnicities that map to the Asian race, alone or in any
// combination with each other.
const asianGroup = SoutheastAsian | SouthAsian | EastAsian

// unsupported are flags that carry no race mapping and are stripped before
// classification.
const unsupported = MiddleEastern

// singleFlagRaces maps each supported single-flag set directly to its race.
var singleFlagRaces = map[Set]Race{
	NativeAmerican:      RaceNativeAmerican,
	SoutheastAsian:      RaceAsian,
	BlackAfricanDescent: RaceBlackAfrican,
	EastAsian:           RaceAsian,
	PacificIslander:     RacePacificIslander,
	SouthAsian:          RaceAsian,
	WhiteCaucasian:      RaceWhiteCaucasian,
	HispanicLatino:      RaceHispanic,
	Other:               RaceOther,
}

// classifyRule is one step of the classification precedence policy. Rules are
// evaluated in order against the set with unsupported flags already stripped;
// the first rule that matches decides the race.
type classifyRule struct {
	name  string
	apply func(s Set) (Race, bool)
}

// classifyRules is the precedence policy, most specific first. Keeping it as
// an explicit ordered list makes each rule testable on its own.
var classifyRules = []classifyRule{
	{
		name: "single supported flag",
		apply: func(s Set) (Race, bool) {
			race, ok := singleFlagRaces[s]
			return race, ok
		},
	},
	{
		name: "combination within the asian group",
		apply: func(s Set) (Race, bool) {
			return RaceAsian, s.IsSubsetOf(asianGroup)
		},
	},
	{
		name: "hispanic with any co-occurring flags",
		apply: func(s Set) (Race, bool) {
			return RaceHispanic, s.Contains(HispanicLatino)
		},
	},
	{
		// Reached only when the set spans at least two disjoint groupings.
		name: "multiracial fallthrough",
		apply: func(s Set) (Race, bool) {
			return RaceMultiracial, true
		},
	},
}

// Classify resolves a set of ethnicity flags into a single race category.
// It fails with core.ErrEmptyEthnicity for the empty set and with
// core.ErrUnsupportedOnly when stripping unsupported flags leaves nothing
// to classify.
func Classify(s Set) (Race, error) {
	if s.IsEmpty() {
		return 0, core.ErrEmptyEthnicity
	}

	supported := s.Without(unsupported)
	if supported.IsEmpty() {
		return 0, core.ErrUnsupportedOnly
	}

	for _, rule := range classifyRules {
		if race, ok := rule.apply(supported); ok {
			return race, nil
		}
	}
	// Unreachable: the fallthrough rule always matches.
	return 0, core.ErrUnsupportedOnly
}

// ClassifyHispanicSubrace resolves the residual race signal of a
// Hispanic-tagged set. A purely Hispanic-identified set carries no further
// signal and maps to Other; any remainder is classified under the normal
// policy (which can no longer yield Hispanic).
func ClassifyHispanicSubrace(s Set) (Race, error) {
	remainder := s.Without(HispanicLatino)
	if remainder.IsEmpty() {
		return RaceOther, nil
	}
	return Classify(remainder)
}
