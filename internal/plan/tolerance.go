package plan

import "math"

// Tolerance is the allowed relative deviation between actual and target
// nutrition before a value is flagged as non-compliant. The same policy is
// applied by the QA validator and by the swap matcher.
type Tolerance struct {
	KcalPct  float64
	MacroPct float64
}

// DefaultTolerance is the policy used across the planner: calories within
// ±3%, each macro within ±5% of its target.
var DefaultTolerance = Tolerance{KcalPct: 3.0, MacroPct: 5.0}

// VariancePct returns |actual-target|/target as a percentage. A zero target
// returns 0 so that absent macros are never divided against.
func VariancePct(actual, target float64) float64 {
	if target == 0 {
		return 0
	}
	return math.Abs(actual-target) / target * 100
}

// Check reports whether actual nutrition is within tolerance of target.
// Macros with a zero target are skipped rather than divided.
func (t Tolerance) Check(actual, target Nutrition) bool {
	if target.Kcal > 0 && VariancePct(actual.Kcal, target.Kcal) > t.KcalPct {
		return false
	}
	macros := [][2]float64{
		{actual.ProteinG, target.ProteinG},
		{actual.CarbsG, target.CarbsG},
		{actual.FatG, target.FatG},
	}
	for _, m := range macros {
		if m[1] == 0 {
			continue
		}
		if VariancePct(m[0], m[1]) > t.MacroPct {
			return false
		}
	}
	return true
}
