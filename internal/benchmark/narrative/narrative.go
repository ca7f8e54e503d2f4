// Package narrative assembles the deterministic sales script used when the
// external narrative model is unavailable or intentionally bypassed. It is a
// pure function over the comparison data: no I/O, no failure path.
package narrative

import (
	"fmt"
	"strings"

	"dealer-benchmark/internal/benchmark/advantage"
	"dealer-benchmark/internal/benchmark/delta"
	"dealer-benchmark/internal/benchmark/record"
	"dealer-benchmark/internal/benchmark/segment"
)

// Section is one block of the script.
type Section struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Item is one scripted talking point.
type Item struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Section keys, in script order.
const (
	SectionOpening    = "opening"
	SectionHeadToHead = "head_to_head"
	SectionClosing    = "closing"
)

// Build produces the three-section fallback script. A nil or empty own
// record yields no sections; the caller shows its own "select a base
// vehicle" notice in that case.
func Build(own record.Vehicle, competitors []record.Vehicle) []Section {
	if len(own) == 0 {
		return []Section{}
	}

	return []Section{
		opening(own),
		headToHead(own, competitors),
		closing(own),
	}
}

func opening(own record.Vehicle) Section {
	label := own.Label()
	seg := segment.Classify(own)

	lines := []string{
		fmt.Sprintf("Gracias por su visita. Hoy le presento el %s.", label),
	}
	if !seg.IsUnclassified() {
		lines = append(lines, fmt.Sprintf("Es una de las opciones más completas del segmento %s.", seg.Label()))
	}
	if total, months := own.MonthlySales(); months >= 3 && total > 0 {
		lines = append(lines, fmt.Sprintf("En los últimos %d meses se han entregado %s unidades: los clientes lo respaldan.",
			months, delta.Grouped(total)))
	}

	return Section{
		Key:   SectionOpening,
		Title: "Apertura",
		Items: []Item{{Title: label, Body: strings.Join(lines, " ")}},
	}
}

func headToHead(own record.Vehicle, competitors []record.Vehicle) Section {
	section := Section{
		Key:   SectionHeadToHead,
		Title: "Comparativo frente a frente",
	}

	if len(competitors) == 0 {
		section.Items = []Item{{
			Title: "Sin competidores",
			Body:  "Agregue al menos un competidor para construir el comparativo frente a frente.",
		}}
		return section
	}

	for _, competitor := range competitors {
		section.Items = append(section.Items, competitorItem(own, competitor))
	}
	return section
}

func competitorItem(own, competitor record.Vehicle) Item {
	deltas := delta.Compute(own, competitor)
	compLabel := competitor.Label()
	if compLabel == "" {
		compLabel = "el competidor"
	}

	var sentences []string

	if d, ok := deltas[delta.TransactionPrice]; ok && d != 0 {
		if delta.OwnFavorable(delta.TransactionPrice, d) {
			sentences = append(sentences, fmt.Sprintf(
				"Frente al %s, su cliente ahorra %s desde el primer día.", compLabel, delta.Currency(d)))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"El %s tiene un precio %s menor; la conversación se gana por valor total, no por etiqueta.",
				compLabel, delta.Currency(-d)))
		}
	}

	if d, ok := equipmentDelta(own, competitor); ok && d != 0 {
		if d < 0 {
			sentences = append(sentences, fmt.Sprintf(
				"En equipamiento general lleva una ventaja de %.1f puntos.", -d))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"En equipamiento el %s aventaja por %.1f puntos; compense con los pilares fuertes.", compLabel, d))
		}
	}

	if d, ok := deltas[delta.EnergyCost60K]; ok && d != 0 {
		if delta.OwnFavorable(delta.EnergyCost60K, d) {
			sentences = append(sentences, fmt.Sprintf(
				"A 60,000 km el combustible cuesta %s menos que en el %s.", delta.Currency(d), compLabel))
		} else {
			sentences = append(sentences, fmt.Sprintf(
				"El %s gasta %s menos en combustible a 60,000 km; apóyese en el costo total.", compLabel, delta.Currency(-d)))
		}
	}

	if len(sentences) == 0 {
		sentences = append(sentences, fmt.Sprintf(
			"No hay datos suficientes para un comparativo numérico contra el %s; destaque la experiencia de manejo.", compLabel))
	}

	return Item{Title: compLabel, Body: strings.Join(sentences, " ")}
}

// equipmentDelta mirrors the advantage layer's equipment KPI delta.
func equipmentDelta(own, competitor record.Vehicle) (float64, bool) {
	d, ok := advantage.Deltas(own, competitor)["equipment"]
	return d, ok
}

func closing(own record.Vehicle) Section {
	return Section{
		Key:   SectionClosing,
		Title: "Cierre",
		Items: []Item{{
			Title: "Llamado a la acción",
			Body: fmt.Sprintf(
				"El %s está disponible para prueba de manejo hoy mismo. ¿Agendamos la suya?", own.Label()),
		}},
	}
}
