// Package pillar resolves composite equipment-pillar scores from vehicle
// records through an ordered fallback chain over current and legacy catalog
// fields.
package pillar

import (
	"dealer-benchmark/internal/benchmark/record"
)

// Pillar is one of the five equipment-coverage dimensions.
type Pillar string

const (
	Safety             Pillar = "safety"
	Comfort            Pillar = "comfort"
	AudioEntertainment Pillar = "audio_and_entertainment"
	Drivetrain         Pillar = "drivetrain"
	Energy             Pillar = "energy"
)

// All returns the pillars in their fixed display order.
func All() []Pillar {
	return []Pillar{Safety, Comfort, AudioEntertainment, Drivetrain, Energy}
}

// Label returns the human-readable pillar name.
func (p Pillar) Label() string {
	switch p {
	case Safety:
		return "Safety"
	case Comfort:
		return "Comfort"
	case AudioEntertainment:
		return "Audio & Entertainment"
	case Drivetrain:
		return "Drivetrain"
	case Energy:
		return "Energy"
	default:
		return string(p)
	}
}

// legacyKeys maps each pillar to the catalog generations that preceded the
// equip_pilar_* fields. Order matters: earlier keys win.
var legacyKeys = map[Pillar][]string{
	Safety:             {"equip_p_seguridad"},
	Comfort:            {"equip_p_confort"},
	AudioEntertainment: {"equip_p_audio", "equip_p_entretenimiento"},
	Drivetrain:         {"equip_p_traccion", "equip_p_transmision"},
	Energy:             {"equip_p_electrification", "equip_p_efficiency"},
}

const (
	directPrefix = "equip_pilar_"
	rawSuffix    = "_raw"
)

// Resolve walks the fallback chain for one pillar: direct score field, raw
// variant, same-named top-level field, then legacy fields. A candidate is
// accepted only when finite and strictly positive; zero and negative values
// are treated as absent so they never corrupt averages downstream. The false
// return means unresolved and must surface as "N/D", never as 0.
func Resolve(v record.Vehicle, p Pillar) (float64, bool) {
	keys := make([]string, 0, 3+len(legacyKeys[p]))
	keys = append(keys,
		directPrefix+string(p),
		directPrefix+string(p)+rawSuffix,
		string(p),
	)
	keys = append(keys, legacyKeys[p]...)

	for _, key := range keys {
		if n, ok := v.PositiveNumber(key); ok {
			return clamp(n), true
		}
	}
	return 0, false
}

// ScoreSet holds the resolved pillar scores only; unresolved pillars are
// simply missing from the map.
type ScoreSet map[Pillar]float64

// Scores resolves every pillar on the record.
func Scores(v record.Vehicle) ScoreSet {
	set := make(ScoreSet, len(All()))
	for _, p := range All() {
		if n, ok := Resolve(v, p); ok {
			set[p] = n
		}
	}
	return set
}

func clamp(n float64) float64 {
	if n > 100 {
		return 100
	}
	return n
}
