package metabolic

import (
	"fmt"
	"math"

	"macroplan/internal/intake"
)

// snackPct is the share of daily calories given to each snack slot; the
// remaining share is divided evenly across the meal slots.
const snackPct = 10.0

var mealLabels = []string{"breakfast", "lunch", "dinner"}

// distributeSlots splits the daily calorie and macro targets across
// (mealsPerDay + snacksPerDay) slots. The slot percentages must sum to
// approximately 100 (90-110 to absorb rounding), and every slot must carry
// positive calories and protein.
func distributeSlots(in *intake.ClientIntake, goalKcal, proteinG, carbsG, fatG int) ([]SlotTarget, error) {
	totalSlots := in.MealsPerDay + in.SnacksPerDay
	if totalSlots == 0 {
		return nil, fmt.Errorf("no meal slots to distribute: %d meals, %d snacks", in.MealsPerDay, in.SnacksPerDay)
	}

	snackShare := snackPct * float64(in.SnacksPerDay)
	mealShare := (100 - snackShare) / float64(in.MealsPerDay)

	slots := make([]SlotTarget, 0, totalSlots)
	for i := 0; i < in.MealsPerDay; i++ {
		slots = append(slots, makeSlot(mealLabel(i), mealShare, goalKcal, proteinG, carbsG, fatG))
	}
	for i := 0; i < in.SnacksPerDay; i++ {
		label := "snack"
		if in.SnacksPerDay > 1 {
			label = fmt.Sprintf("snack %d", i+1)
		}
		slots = append(slots, makeSlot(label, snackPct, goalKcal, proteinG, carbsG, fatG))
	}

	var totalPct float64
	for _, s := range slots {
		if s.Kcal <= 0 || s.ProteinG <= 0 || s.Label == "" {
			return nil, fmt.Errorf("slot %q has non-positive targets (%d kcal, %d g protein)", s.Label, s.Kcal, s.ProteinG)
		}
		totalPct += s.PercentOfDaily
	}
	if totalPct < 90 || totalPct > 110 {
		return nil, fmt.Errorf("slot percentages sum to %.1f, outside 90-110", totalPct)
	}

	return slots, nil
}

func makeSlot(label string, pct float64, goalKcal, proteinG, carbsG, fatG int) SlotTarget {
	frac := pct / 100
	return SlotTarget{
		Label:          label,
		PercentOfDaily: pct,
		Kcal:           int(math.Round(float64(goalKcal) * frac)),
		ProteinG:       int(math.Round(float64(proteinG) * frac)),
		CarbsG:         int(math.Round(float64(carbsG) * frac)),
		FatG:           int(math.Round(float64(fatG) * frac)),
	}
}

func mealLabel(i int) string {
	if i < len(mealLabels) {
		return mealLabels[i]
	}
	return fmt.Sprintf("meal %d", i+1)
}
