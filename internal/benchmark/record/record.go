// Package record defines the loosely-typed vehicle record shape shared by
// every benchmarking component. A record is a catalog row: no field is
// required, and every consumer must tolerate absence.
package record

import (
	"strings"
)

// Catalog attribute keys used across the engine.
const (
	KeyBrand             = "marca"
	KeyModel             = "modelo"
	KeyVersion           = "version"
	KeyVersionDisplay    = "version_display"
	KeyHeaderDescription = "header_description"
	KeyModelYear         = "ano_modelo"

	KeyMSRP             = "precio_lista"
	KeyTransactionPrice = "precio_transaccion"

	KeyFuelType       = "combustible"
	KeyEnergyType     = "tipo_energia"
	KeyCombinedKmPerL = "rendimiento_combinado"
	KeyKWhPer100Km    = "consumo_kwh_100km"

	KeyFuelCost60K    = "costo_combustible_60k"
	KeyServiceCost60K = "costo_servicio_60k"
	KeyTotalCost60K   = "costo_total_60k"

	KeyHorsepower = "potencia_hp"

	KeyDisplaySegment = "segmento_display"
	KeySalesSegment   = "segmento_ventas"
	KeyBodyStyle      = "carroceria"
)

// DerivedPrefix marks scratch attributes written by enrichment. They never
// come from the catalog and are stripped before template serialization.
const DerivedPrefix = "calc_"

// Derived attribute keys produced by enrichment.
const (
	KeyDerivedHorsepower    = DerivedPrefix + "potencia_hp"
	KeyDerivedEnergyCost60K = DerivedPrefix + "costo_energia_60k"
	KeyDerivedTotalCost60K  = DerivedPrefix + "costo_total_60k"
	KeyDerivedCostPerHP     = DerivedPrefix + "costo_por_hp"
	KeyDerivedFuelCategory  = DerivedPrefix + "categoria_energia"
)

// SalesKeyPrefix prefixes monthly sales counts, keyed ventas_<yyyy><mm>.
const SalesKeyPrefix = "ventas_"

// Vehicle is one catalog entry: attribute name to value (string, number, or
// nested mapping). The engine never mutates a Vehicle in place; derived views
// are always produced on a copy.
type Vehicle map[string]interface{}

// Get returns the raw attribute value.
func (v Vehicle) Get(key string) (interface{}, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v[key]
	return val, ok
}

// String returns the attribute as a trimmed string, or "" when absent or not
// string-like.
func (v Vehicle) String(key string) string {
	val, ok := v.Get(key)
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Number resolves the attribute through CoerceNumber.
func (v Vehicle) Number(key string) (float64, bool) {
	val, ok := v.Get(key)
	if !ok {
		return 0, false
	}
	return CoerceNumber(val)
}

// FirstNumber returns the first key that coerces to a finite number.
func (v Vehicle) FirstNumber(keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := v.Number(key); ok {
			return n, true
		}
	}
	return 0, false
}

// PositiveNumber is Number restricted to values strictly greater than zero.
func (v Vehicle) PositiveNumber(key string) (float64, bool) {
	n, ok := v.Number(key)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// Label builds the display label: brand + model, plus version when present.
func (v Vehicle) Label() string {
	parts := make([]string, 0, 3)
	for _, key := range []string{KeyBrand, KeyModel, KeyVersion} {
		if s := v.String(key); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Clone returns a shallow copy. Nested values are shared; enrichment only
// writes top-level derived keys, so sharing is safe.
func (v Vehicle) Clone() Vehicle {
	if v == nil {
		return nil
	}
	out := make(Vehicle, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// MonthlySales sums every ventas_<yyyymm> count on the record. The second
// return is the number of months that carried a usable count.
func (v Vehicle) MonthlySales() (float64, int) {
	var total float64
	var months int
	for key, val := range v {
		if !strings.HasPrefix(key, SalesKeyPrefix) {
			continue
		}
		if n, ok := CoerceNumber(val); ok && n >= 0 {
			total += n
			months++
		}
	}
	return total, months
}

// CleanRow strips derived scratch attributes so the record round-trips
// through template serialization exactly as the catalog delivered it.
func CleanRow(v Vehicle) Vehicle {
	if v == nil {
		return nil
	}
	out := make(Vehicle, len(v))
	for k, val := range v {
		if strings.HasPrefix(k, DerivedPrefix) {
			continue
		}
		out[k] = val
	}
	return out
}
