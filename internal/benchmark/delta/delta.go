// Package delta computes the signed per-metric differences between the own
// vehicle and a competitor over a fixed metric set.
//
// The stored delta is always competitor minus own. Direction semantics
// (whether a higher value favors the vehicle) live in the metric table and
// are applied by presentation and classification layers, never baked into
// the stored number.
package delta

import (
	"dealer-benchmark/internal/benchmark/power"
	"dealer-benchmark/internal/benchmark/record"
)

// Metric identifies one compared quantity.
type Metric string

const (
	MSRP             Metric = "msrp"
	TransactionPrice Metric = "transaction_price"
	EnergyCost60K    Metric = "fuel_or_energy_cost_60k"
	ServiceCost60K   Metric = "service_cost_60k"
	TotalCost60K     Metric = "total_cost_of_ownership_60k"
	Horsepower       Metric = "horsepower"
)

// Info describes one metric: its label, its better-direction convention, how
// it resolves from a record, and how its magnitudes are displayed.
type Info struct {
	Key            Metric
	Label          string
	HigherIsBetter bool
	Format         func(float64) string

	resolve func(record.Vehicle) (float64, bool)
}

// Resolve extracts the metric's value from a record.
func (i Info) Resolve(v record.Vehicle) (float64, bool) {
	return i.resolve(v)
}

// table is the single source of truth for metric order and direction. Every
// cost metric reads "lower is better"; horsepower is the documented inversion.
var table = []Info{
	{
		Key: MSRP, Label: "Precio de lista", Format: Currency,
		resolve: func(v record.Vehicle) (float64, bool) { return v.Number(record.KeyMSRP) },
	},
	{
		Key: TransactionPrice, Label: "Precio de transacción", Format: Currency,
		resolve: func(v record.Vehicle) (float64, bool) { return v.Number(record.KeyTransactionPrice) },
	},
	{
		Key: EnergyCost60K, Label: "Combustible / energía a 60,000 km", Format: Currency,
		resolve: func(v record.Vehicle) (float64, bool) {
			return v.FirstNumber(record.KeyFuelCost60K, record.KeyDerivedEnergyCost60K)
		},
	},
	{
		Key: ServiceCost60K, Label: "Servicio a 60,000 km", Format: Currency,
		resolve: func(v record.Vehicle) (float64, bool) { return v.Number(record.KeyServiceCost60K) },
	},
	{
		Key: TotalCost60K, Label: "Costo total a 60,000 km", Format: Currency,
		resolve: func(v record.Vehicle) (float64, bool) {
			return v.FirstNumber(record.KeyTotalCost60K, record.KeyDerivedTotalCost60K)
		},
	},
	{
		Key: Horsepower, Label: "Potencia (HP)", HigherIsBetter: true, Format: Points,
		resolve: func(v record.Vehicle) (float64, bool) { return power.Infer(v) },
	},
}

// Metrics returns the fixed metric set in comparison order.
func Metrics() []Info {
	out := make([]Info, len(table))
	copy(out, table)
	return out
}

// Lookup returns the metric's metadata.
func Lookup(key Metric) (Info, bool) {
	for _, info := range table {
		if info.Key == key {
			return info, true
		}
	}
	return Info{}, false
}

// Set maps metric key to the stored competitor-minus-own delta.
type Set map[Metric]float64

// Compute builds the delta set for one competitor against the own vehicle.
// A metric is present only when both sides resolve a finite value; anything
// else is omitted, never zeroed.
func Compute(own, competitor record.Vehicle) Set {
	deltas := make(Set, len(table))
	for _, info := range table {
		ownValue, ok := info.Resolve(own)
		if !ok {
			continue
		}
		compValue, ok := info.Resolve(competitor)
		if !ok {
			continue
		}
		deltas[info.Key] = compValue - ownValue
	}
	return deltas
}

// OwnFavorable reports whether a stored delta favors the own vehicle under
// the metric's direction convention.
func OwnFavorable(key Metric, d float64) bool {
	info, ok := Lookup(key)
	if !ok || d == 0 {
		return false
	}
	if info.HigherIsBetter {
		return d < 0
	}
	return d > 0
}
