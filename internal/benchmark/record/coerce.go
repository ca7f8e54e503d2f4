package record

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceNumber converts a loosely-typed attribute value to a finite float64.
// nil, empty strings, unparseable strings, NaN and infinities all report
// false. Callers must treat false as "absent", never as zero.
func CoerceNumber(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		// Catalog exports localize thousands with commas.
		s = strings.ReplaceAll(s, ",", "")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
