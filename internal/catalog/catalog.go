// internal/catalog/catalog.go
package catalog

import (
	"context"

	"dealer-benchmark/internal/benchmark/record"
)

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Brand     string
	Model     string
	Segment   string
	ModelYear int
	Query     string
	Limit     int
}

// Source provides vehicle rows to the comparison endpoints. Implementations
// return rows in catalog order and never mutate them after returning.
type Source interface {
	// Get fetches a single vehicle by its catalog identifier.
	Get(ctx context.Context, id string) (record.Vehicle, error)

	// List returns vehicles matching the filter.
	List(ctx context.Context, filter Filter) ([]record.Vehicle, error)
}

// Composite routes id lookups and listings to different sources, so the
// relational store stays the system of record while the search index serves
// free-text queries.
type Composite struct {
	Getter Source
	Lister Source
}

func (c Composite) Get(ctx context.Context, id string) (record.Vehicle, error) {
	return c.Getter.Get(ctx, id)
}

func (c Composite) List(ctx context.Context, filter Filter) ([]record.Vehicle, error) {
	return c.Lister.List(ctx, filter)
}
