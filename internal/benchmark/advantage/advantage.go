// Package advantage buckets per-KPI deltas between the own vehicle and a
// competitor into upsides (own favorable) and gaps (competitor favorable).
// Every KPI here is an equipment or coverage score where higher is better.
package advantage

import (
	"math"

	"dealer-benchmark/internal/benchmark/delta"
	"dealer-benchmark/internal/benchmark/record"
)

// Classification labels one row.
type Classification string

const (
	Upside Classification = "upside"
	Gap    Classification = "gap"
)

// Mode selects one classification side when filtering rows.
type Mode string

const (
	ModeUpsides Mode = "upsides"
	ModeGaps    Mode = "gaps"
)

// Row is one classified KPI comparison. Display values render the raw field
// values through the KPI's formatter; absent values render as N/D, never 0.
type Row struct {
	MetricKey         string         `json:"metricKey"`
	Label             string         `json:"label"`
	Delta             float64        `json:"delta"`
	OwnDisplayValue   string         `json:"ownDisplayValue"`
	CompetitorDisplay string         `json:"competitorDisplayValue"`
	Classification    Classification `json:"classification"`
}

// KPI describes one classified equipment score.
type KPI struct {
	Key    string
	Field  string
	Label  string
	Format func(float64) string
}

// kpis is the fixed ordered KPI list. All of them are higher-is-better
// scores, which is what makes the sign rule below uniform.
var kpis = []KPI{
	{Key: "equipment", Field: "equip_score", Label: "Equipamiento general", Format: delta.Points},
	{Key: "infotainment", Field: "equip_infotainment", Label: "Infoentretenimiento", Format: delta.Points},
	{Key: "comfort", Field: "equip_confort", Label: "Confort", Format: delta.Points},
	{Key: "climate", Field: "equip_clima", Label: "Climatización", Format: delta.Points},
	{Key: "adas", Field: "equip_adas", Label: "Asistencias a la conducción", Format: delta.Points},
	{Key: "safety", Field: "equip_seguridad", Label: "Seguridad", Format: delta.Points},
	{Key: "warranty_coverage", Field: "garantia_cobertura", Label: "Cobertura de garantía", Format: delta.Points},
	{Key: "offroad", Field: "equip_offroad", Label: "Capacidad off-road", Format: delta.Points},
	{Key: "lighting", Field: "equip_iluminacion", Label: "Iluminación", Format: delta.Points},
}

// KPIs returns the fixed KPI list in classification order.
func KPIs() []KPI {
	out := make([]KPI, len(kpis))
	copy(out, kpis)
	return out
}

// Deltas computes competitor-minus-own for every KPI where both sides
// resolve, mirroring the metric delta rule.
func Deltas(own, competitor record.Vehicle) map[string]float64 {
	out := make(map[string]float64, len(kpis))
	for _, k := range kpis {
		ownValue, ok := own.Number(k.Field)
		if !ok {
			continue
		}
		compValue, ok := competitor.Number(k.Field)
		if !ok {
			continue
		}
		out[k.Key] = compValue - ownValue
	}
	return out
}

// Classify turns the KPI deltas into rows. Zero and non-finite deltas are
// skipped outright: they carry no sales argument either way. Since every KPI
// is higher-is-better, competitor-minus-own below zero means the own vehicle
// leads (upside) and above zero means the competitor does (gap).
func Classify(own, competitor record.Vehicle, deltas map[string]float64) []Row {
	rows := make([]Row, 0, len(kpis))
	for _, k := range kpis {
		d, ok := deltas[k.Key]
		if !ok || d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}

		class := Gap
		if d < 0 {
			class = Upside
		}

		rows = append(rows, Row{
			MetricKey:         k.Key,
			Label:             k.Label,
			Delta:             d,
			OwnDisplayValue:   display(own, k),
			CompetitorDisplay: display(competitor, k),
			Classification:    class,
		})
	}
	return rows
}

// FilterByMode keeps only the rows matching the requested side.
func FilterByMode(rows []Row, mode Mode) []Row {
	want := Gap
	if mode == ModeUpsides {
		want = Upside
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Classification == want {
			out = append(out, r)
		}
	}
	return out
}

func display(v record.Vehicle, k KPI) string {
	n, ok := v.Number(k.Field)
	if !ok {
		return delta.NotAvailable
	}
	return k.Format(n)
}
