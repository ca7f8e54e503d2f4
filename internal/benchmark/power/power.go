// Package power resolves engine output. A structured horsepower field is
// preferred; when the catalog leaves it empty, the value is mined from the
// version and description text as a bounded last resort.
package power

import (
	"regexp"
	"strconv"
	"strings"

	"dealer-benchmark/internal/benchmark/record"
)

// PS and CV are metric horsepower; 1 PS = 0.98632 HP.
const psToHP = 0.98632

// Matches "250HP", "250 hp", "150 bhp", "110cv", "190 PS" inside trim text.
var powerRe = regexp.MustCompile(`(?i)\b(\d{2,4})\s*(hp|bhp|ps|cv)\b`)

// Infer returns the vehicle's horsepower. Resolution order: the structured
// field, then the first power pattern found in version, version display and
// header description text. Multiple matches are never aggregated.
func Infer(v record.Vehicle) (float64, bool) {
	if hp, ok := v.PositiveNumber(record.KeyHorsepower); ok {
		return hp, true
	}
	if hp, ok := v.PositiveNumber(record.KeyDerivedHorsepower); ok {
		return hp, true
	}

	text := strings.Join([]string{
		v.String(record.KeyVersion),
		v.String(record.KeyVersionDisplay),
		v.String(record.KeyHeaderDescription),
	}, " ")

	return FromText(text)
}

// FromText extracts the first horsepower mention from free text.
func FromText(text string) (float64, bool) {
	m := powerRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "ps", "cv":
		return float64(n) * psToHP, true
	default:
		return float64(n), true
	}
}
