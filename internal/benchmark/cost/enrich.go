package cost

import (
	"dealer-benchmark/internal/benchmark/power"
	"dealer-benchmark/internal/benchmark/record"
)

// Enrich returns a derived view of the record with the computed cost and
// power attributes written under the calc_ prefix. The input record is never
// touched; record.CleanRow reverses this step before persistence.
func Enrich(v record.Vehicle, table PriceTable) record.Vehicle {
	if v == nil {
		return nil
	}
	out := v.Clone()

	if hp, ok := power.Infer(v); ok {
		out[record.KeyDerivedHorsepower] = hp
	}

	out[record.KeyDerivedFuelCategory] = string(Categorize(v))

	energy, hasEnergy := EnergyCost60K(v, table)
	if hasEnergy {
		out[record.KeyDerivedEnergyCost60K] = energy
	}

	// TCO is only derivable when every component resolves; a partial sum
	// would undercut vehicles with complete data.
	if _, ok := v.Number(record.KeyTotalCost60K); !ok {
		price, hasPrice := out.FirstNumber(record.KeyTransactionPrice, record.KeyMSRP)
		service, hasService := v.Number(record.KeyServiceCost60K)
		if hasPrice && hasEnergy && hasService {
			out[record.KeyDerivedTotalCost60K] = price + energy + service
		}
	}

	if cph, ok := CostPerHorsepower(v); ok {
		out[record.KeyDerivedCostPerHP] = cph
	}

	return out
}
