package locate

import (
	"fmt"
	"sort"

	"github.com/conn-castle/nifeed/internal/messages"
)

// FeedType selects which exclusion list filters candidate components.
type FeedType string

// Feed types.
const (
	FeedTypeRelease FeedType = "release"
	FeedTypeAll     FeedType = "all"
	FeedTypeTest    FeedType = "test"
)

// DefaultFeedType is used when no feed type is given.
const DefaultFeedType = FeedTypeRelease

// FeedTypes lists the accepted feed types in display order.
func FeedTypes() []FeedType {
	return []FeedType{FeedTypeRelease, FeedTypeAll, FeedTypeTest}
}

// ParseFeedType converts s into a FeedType, rejecting unknown values.
// Matching is exact; an empty s selects DefaultFeedType.
func ParseFeedType(s string) (FeedType, error) {
	if s == "" {
		return DefaultFeedType, nil
	}
	for _, ft := range FeedTypes() {
		if string(ft) == s {
			return ft, nil
		}
	}
	return "", fmt.Errorf(messages.LocateFeedTypeInvalidFmt, s)
}

// Set is a set of component directory names.
type Set map[string]struct{}

// NewSet builds a Set from names.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether name is in the set. Matching is exact.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Exclusions maps each feed type to the components it leaves out.
// The FeedTypeAll entry applies to every feed type.
type Exclusions map[FeedType]Set

// Active returns the exclusion set for ft: the FeedTypeAll entry plus the entry for ft.
func (e Exclusions) Active(ft FeedType) Set {
	active := make(Set)
	for n := range e[FeedTypeAll] {
		active[n] = struct{}{}
	}
	if ft != FeedTypeAll {
		for n := range e[ft] {
			active[n] = struct{}{}
		}
	}
	return active
}
