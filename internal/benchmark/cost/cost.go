// Package cost derives energy and ownership cost metrics from vehicle
// records and an externally supplied price table.
package cost

import (
	"strings"
	"time"

	"dealer-benchmark/internal/benchmark/power"
	"dealer-benchmark/internal/benchmark/record"
)

// Category classifies a vehicle's energy type.
type Category string

const (
	GasolineRegular Category = "gasoline_regular"
	GasolinePremium Category = "gasoline_premium"
	Diesel          Category = "diesel"
	Hybrid          Category = "hybrid"
	PluginHybrid    Category = "plugin_hybrid"
	BatteryElectric Category = "battery_electric"
	Unknown         Category = "unknown"
)

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case GasolineRegular:
		return "Gasolina regular"
	case GasolinePremium:
		return "Gasolina premium"
	case Diesel:
		return "Diésel"
	case Hybrid:
		return "Híbrido"
	case PluginHybrid:
		return "Híbrido enchufable"
	case BatteryElectric:
		return "Eléctrico"
	default:
		return "Sin clasificar"
	}
}

// categoryRules is walked in order; more specific tokens come first so that
// "híbrido enchufable" never lands on plain hybrid and "eléctrico" never
// matches through a hybrid label.
var categoryRules = []struct {
	category Category
	tokens   []string
}{
	{PluginHybrid, []string{"enchufable", "phev", "plug"}},
	{Hybrid, []string{"híbrido", "hibrido", "hybrid", "hev", "mhev"}},
	{BatteryElectric, []string{"eléctrico", "electrico", "bev", "100% electr"}},
	{Diesel, []string{"diésel", "diesel", "tdi"}},
	{GasolinePremium, []string{"premium"}},
	{GasolineRegular, []string{"gasolina", "magna", "nafta", "regular"}},
}

// Categorize classifies the record's energy type from its structured fuel
// fields. Records with no usable fuel text are Unknown.
func Categorize(v record.Vehicle) Category {
	for _, key := range []string{record.KeyFuelType, record.KeyEnergyType} {
		text := strings.ToLower(v.String(key))
		if text == "" {
			continue
		}
		for _, rule := range categoryRules {
			for _, token := range rule.tokens {
				if strings.Contains(text, token) {
					return rule.category
				}
			}
		}
	}
	return Unknown
}

// PriceTable carries the current per-liter / per-kWh energy prices and the
// moment they were sourced. It comes from the config collaborator; the engine
// never fetches it.
type PriceTable struct {
	AsOf   time.Time            `json:"asOf"`
	Prices map[Category]float64 `json:"prices"`
}

// UnitPrice looks up the per-unit price for a category. Hybrid variants fall
// back to regular gasoline pricing when they have no entry of their own.
func (t PriceTable) UnitPrice(c Category) (float64, bool) {
	if p, ok := t.Prices[c]; ok && p > 0 {
		return p, true
	}
	switch c {
	case Hybrid, PluginHybrid:
		if p, ok := t.Prices[GasolineRegular]; ok && p > 0 {
			return p, true
		}
	}
	return 0, false
}

// costHorizonKm is the fixed ownership horizon every *_60k metric shares.
const costHorizonKm = 60000

// EnergyCost60K returns the fuel or electricity cost over the ownership
// horizon. A structured catalog figure wins; otherwise the cost is derived
// from combined consumption and the price table.
func EnergyCost60K(v record.Vehicle, table PriceTable) (float64, bool) {
	if c, ok := v.PositiveNumber(record.KeyFuelCost60K); ok {
		return c, true
	}

	category := Categorize(v)
	price, ok := table.UnitPrice(category)
	if !ok {
		return 0, false
	}

	if category == BatteryElectric {
		kwhPer100, ok := v.PositiveNumber(record.KeyKWhPer100Km)
		if !ok {
			return 0, false
		}
		return kwhPer100 * (costHorizonKm / 100.0) * price, true
	}

	kmPerLiter, ok := v.PositiveNumber(record.KeyCombinedKmPerL)
	if !ok {
		return 0, false
	}
	return costHorizonKm / kmPerLiter * price, true
}

// CostPerHorsepower divides the vehicle's price by its horsepower. Price
// prefers the transaction price over MSRP (first positive value); horsepower
// comes from the power resolver. Absent operands yield no result.
func CostPerHorsepower(v record.Vehicle) (float64, bool) {
	price, ok := firstPositive(v, record.KeyTransactionPrice, record.KeyMSRP)
	if !ok {
		return 0, false
	}
	hp, ok := power.Infer(v)
	if !ok || hp == 0 {
		return 0, false
	}
	return price / hp, true
}

func firstPositive(v record.Vehicle, keys ...string) (float64, bool) {
	for _, key := range keys {
		if n, ok := v.PositiveNumber(key); ok {
			return n, true
		}
	}
	return 0, false
}
