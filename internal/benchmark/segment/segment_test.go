package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dealer-benchmark/internal/benchmark/record"
)

func TestFromLabel_TokenMatching(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"SUV", SUV},
		{"Crossover compacto", SUV},
		{"Todo Terreno", SUV},
		{"Pickup doble cabina", Pickup},
		{"Chasis cabina", Pickup},
		{"Doble Cab", Pickup},
		{"hatchback", Hatchback},
		{"HB 5 puertas", Hatchback},
		{"Minivan", Van},
		{"Panel de carga", Van},
		{"Station Wagon", StationWagon},
		{"Vagoneta", StationWagon},
		{"Cabriolet", Cabriolet},
		{"Roadster", Cabriolet},
		{"Convertible 2p", Cabriolet},
		{"Sedán", Sedan},
		{"sedan mediano", Sedan},
		{"Berlina", Sedan},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, FromLabel(tt.input).Label())
		})
	}
}

// "cabrio" contains the pickup token "cab"; the cabriolet rule must win.
func TestFromLabel_CabrioBeforePickupToken(t *testing.T) {
	assert.Equal(t, Cabriolet, FromLabel("cabrio sport").Label())
}

func TestFromLabel_UnknownCapitalized(t *testing.T) {
	assert.Equal(t, "Coupe", FromLabel("COUPE").Label())
	assert.Equal(t, "Deportivo", FromLabel("deportivo").Label())
}

func TestFromLabel_EmptyIsUnclassified(t *testing.T) {
	s := FromLabel("   ")
	assert.True(t, s.IsUnclassified())
	assert.Equal(t, "-", s.Label())
}

func TestClassify_FieldPriority(t *testing.T) {
	v := record.Vehicle{
		record.KeyDisplaySegment: "SUV",
		record.KeySalesSegment:   "sedan",
		record.KeyBodyStyle:      "hatchback",
	}
	assert.Equal(t, SUV, Classify(v).Label())

	v = record.Vehicle{
		record.KeySalesSegment: "sedan",
		record.KeyBodyStyle:    "hatchback",
	}
	assert.Equal(t, Sedan, Classify(v).Label())

	v = record.Vehicle{record.KeyBodyStyle: "hatchback"}
	assert.Equal(t, Hatchback, Classify(v).Label())

	assert.True(t, Classify(record.Vehicle{}).IsUnclassified())
}

func TestMatches(t *testing.T) {
	assert.True(t, FromLabel("suv").Matches(FromLabel("crossover")))
	assert.False(t, FromLabel("suv").Matches(FromLabel("sedan")))

	// Two failed classifications never count as a shared segment.
	assert.False(t, Unclassified.Matches(Unclassified))
	assert.False(t, FromLabel("").Matches(FromLabel("")))
	assert.False(t, FromLabel("suv").Matches(Unclassified))
}
