// Package benchmark is the comparison engine facade: a pure, synchronous
// transformation from vehicle records to comparison structures. It performs
// no I/O, keeps no state between calls, and every call is reentrant.
package benchmark

import (
	"dealer-benchmark/internal/benchmark/advantage"
	"dealer-benchmark/internal/benchmark/cost"
	"dealer-benchmark/internal/benchmark/delta"
	"dealer-benchmark/internal/benchmark/narrative"
	"dealer-benchmark/internal/benchmark/radar"
	"dealer-benchmark/internal/benchmark/record"
)

// Engine binds the comparison pipeline to an energy price table. The table
// is resolved by the config collaborator; the engine never fetches prices.
type Engine struct {
	prices cost.PriceTable
}

// New creates an engine over the supplied price table.
func New(prices cost.PriceTable) *Engine {
	return &Engine{prices: prices}
}

// Comparison is the outcome for one competitor.
type Comparison struct {
	Item          record.Vehicle  `json:"item"`
	Deltas        delta.Set       `json:"deltas"`
	AdvantageRows []advantage.Row `json:"advantageRows"`
}

// Result is the full comparison: the enriched own vehicle plus one
// Comparison per competitor, in input order.
type Result struct {
	Own         record.Vehicle `json:"own"`
	Competitors []Comparison   `json:"competitors"`
}

// Compare runs the pipeline: enrich every record, compute the per-competitor
// delta set, then classify the equipment KPIs. Input records are never
// mutated; the result carries derived views.
func (e *Engine) Compare(own record.Vehicle, competitors []record.Vehicle) Result {
	enrichedOwn := cost.Enrich(own, e.prices)

	result := Result{
		Own:         enrichedOwn,
		Competitors: make([]Comparison, 0, len(competitors)),
	}

	for _, competitor := range competitors {
		enriched := cost.Enrich(competitor, e.prices)
		deltas := delta.Compute(enrichedOwn, enriched)
		rows := advantage.Classify(enrichedOwn, enriched, advantage.Deltas(enrichedOwn, enriched))

		result.Competitors = append(result.Competitors, Comparison{
			Item:          enriched,
			Deltas:        deltas,
			AdvantageRows: rows,
		})
	}

	return result
}

// BuildRadar returns the segment-relative pillar benchmark.
func (e *Engine) BuildRadar(own record.Vehicle, competitors []record.Vehicle) []radar.Sample {
	return radar.Build(own, competitors)
}

// BuildFallback returns the deterministic narrative script. Callers use it
// when the external narrative model fails or is bypassed.
func (e *Engine) BuildFallback(own record.Vehicle, competitors []record.Vehicle) []narrative.Section {
	return narrative.Build(own, competitors)
}
