// Package segment normalizes free-text body-style labels into a small closed
// set of segment names used for peer filtering.
package segment

import (
	"strings"
	"unicode"

	"dealer-benchmark/internal/benchmark/record"
)

// Segment is a classified vehicle segment. The zero value is Unclassified.
// Unclassified segments never match each other: two vehicles that both failed
// classification do not share a segment.
type Segment struct {
	name         string
	unclassified bool
}

// Unclassified is the segment of a record with no usable body-style input.
var Unclassified = Segment{unclassified: true}

// Known segment names.
const (
	SUV          = "SUV"
	Pickup       = "Pickup"
	Hatchback    = "Hatchback"
	Van          = "Van"
	StationWagon = "Station Wagon"
	Cabriolet    = "Cabriolet"
	Sedan        = "Sedan"
)

// tokenRules is walked in order; the first substring hit wins. Cabriolet
// precedes Pickup because "cabrio" would otherwise hit the pickup "cab" token.
var tokenRules = []struct {
	name   string
	tokens []string
}{
	{SUV, []string{"suv", "crossover", "todo terreno"}},
	{Cabriolet, []string{"cabrio", "roadster", "convertible"}},
	{Pickup, []string{"pick", "cab", "chasis"}},
	{Hatchback, []string{"hatch", "hb"}},
	{Van, []string{"van", "minivan", "panel"}},
	{StationWagon, []string{"wagon", "vagoneta", "familiar"}},
	{Sedan, []string{"sedan", "sedán", "berlina"}},
}

// Classify derives the segment from the first non-empty of display segment,
// sales segment and body style.
func Classify(v record.Vehicle) Segment {
	raw := firstNonEmpty(
		v.String(record.KeyDisplaySegment),
		v.String(record.KeySalesSegment),
		v.String(record.KeyBodyStyle),
	)
	return FromLabel(raw)
}

// FromLabel normalizes one free-text label. Empty input is Unclassified;
// unrecognized input is returned with only its first letter capitalized.
func FromLabel(raw string) Segment {
	input := strings.ToLower(strings.TrimSpace(raw))
	if input == "" {
		return Unclassified
	}
	for _, rule := range tokenRules {
		for _, token := range rule.tokens {
			if strings.Contains(input, token) {
				return Segment{name: rule.name}
			}
		}
	}
	return Segment{name: capitalize(input)}
}

// Label renders the segment for display; Unclassified renders as "-".
func (s Segment) Label() string {
	if s.unclassified {
		return "-"
	}
	return s.name
}

// IsUnclassified reports whether the segment carries no usable name.
func (s Segment) IsUnclassified() bool {
	return s.unclassified
}

// Matches reports whether two segments are the same usable segment.
// An Unclassified segment matches nothing, including another Unclassified.
func (s Segment) Matches(other Segment) bool {
	if s.unclassified || other.unclassified {
		return false
	}
	return s.name == other.name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
