package ethnicity

import "strings"

// Set is a fixed-width bitmask over the self-reported ethnicity categories.
// Multiple flags may be set simultaneously; the empty set is valid input but
// cannot be classified into a race.
type Set uint16

const (
	NativeAmerican      Set = 0x0001
	SoutheastAsian      Set = 0x0002
	BlackAfricanDescent Set = 0x0004
	EastAsian           Set = 0x0008
	HispanicLatino      Set = 0x0010
	MiddleEastern       Set = 0x0020
	PacificIslander     Set = 0x0040
	SouthAsian          Set = 0x0080
	WhiteCaucasian      Set = 0x0100
	Other               Set = 0x8000
)

// flagNames is in declaration order so Set.String is deterministic.
var flagNames = []struct {
	flag Set
	name string
}{
	{NativeAmerican, "native_american"},
	{SoutheastAsian, "southeast_asian"},
	{BlackAfricanDescent, "black_african_descent"},
	{EastAsian, "east_asian"},
	{HispanicLatino, "hispanic_latino"},
	{MiddleEastern, "middle_eastern"},
	{PacificIslander, "pacific_islander"},
	{SouthAsian, "south_asian"},
	{WhiteCaucasian, "white_caucasian"},
	{Other, "other"},
}

// NewSet builds a set from individual flags.
func NewSet(flags ...Set) Set {
	var s Set
	for _, f := range flags {
		s |= f
	}
	return s
}

// Contains reports whether every flag in f is present in s.
func (s Set) Contains(f Set) bool {
	return s&f == f
}

// ContainsAny reports whether any flag in f is present in s.
func (s Set) ContainsAny(f Set) bool {
	return s&f != 0
}

// Without returns a copy of s with the flags in f cleared.
func (s Set) Without(f Set) Set {
	return s &^ f
}

// IsEmpty reports whether no flag is set.
func (s Set) IsEmpty() bool {
	return s == 0
}

// IsSubsetOf reports whether every flag in s is present in f.
func (s Set) IsSubsetOf(f Set) bool {
	return s&^f == 0
}

// String returns the set as a comma-joined list of flag names.
func (s Set) String() string {
	if s == 0 {
		return "(none)"
	}
	var names []string
	for _, fn := range flagNames {
		if s.Contains(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, ",")
}
