// Package qa verifies a compiled plan against its metabolic targets,
// iteratively repairs days that miss tolerance, and compiles the grocery
// list. Tolerance misses are never errors: a usable-but-imperfect plan beats
// no plan, so the validator always returns a complete annotated plan.
package qa

import (
	"fmt"
	"math"

	"macroplan/internal/compiler"
	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
)

const (
	// MaxIterations caps the adjustment loop per day.
	MaxIterations = 3

	// WarnBoundaryPct separates WARN from FAIL when the iteration budget is
	// exhausted: residual variance at or under this is WARN, above is FAIL.
	WarnBoundaryPct = 10.0

	// Adjustments rescale a day's meals by at most this much per pass, so a
	// badly missed target takes several iterations and can exhaust the cap.
	maxScaleStep = 1.25
	minScaleStep = 0.75
)

// Validator checks compiled days against tolerance and repairs them.
type Validator struct {
	tolerance     plan.Tolerance
	maxIterations int
	warnBoundary  float64
}

// NewValidator creates a Validator with the default tolerance policy.
func NewValidator() *Validator {
	return &Validator{
		tolerance:     plan.DefaultTolerance,
		maxIterations: MaxIterations,
		warnBoundary:  WarnBoundaryPct,
	}
}

// Validate runs the per-day tolerance loop over the compiled days, mutating
// them in place, and assembles the validated plan with its QA report,
// grocery list, and weekly totals.
func (v *Validator) Validate(days []plan.PlanDay, profile *metabolic.Profile) *plan.ValidatedPlan {
	report := plan.QAReport{Status: plan.StatusPass}

	for i := range days {
		result, adjustments := v.validateDay(&days[i], profile)
		report.DayResults = append(report.DayResults, result)
		report.AdjustmentsMade = append(report.AdjustmentsMade, adjustments...)
		report.Iterations += result.Iterations
		if result.Status.Worse(report.Status) {
			report.Status = result.Status
		}
	}

	report.Score = score(report.DayResults)

	return &plan.ValidatedPlan{
		Days:         days,
		GroceryList:  CompileGroceryList(days),
		QA:           report,
		WeeklyTotals: compiler.WeeklyTotals(days),
	}
}

// validateDay iterates PENDING -> adjust -> re-check until the day passes
// tolerance or the iteration cap is hit. On cap exhaustion the residual
// variance decides WARN versus FAIL.
func (v *Validator) validateDay(day *plan.PlanDay, profile *metabolic.Profile) (plan.DayResult, []plan.Adjustment) {
	target := dayTarget(day, profile)
	adjustments := []plan.Adjustment{}
	iterations := 0

	for {
		day.RecomputeTotals()
		if v.tolerance.Check(day.DailyTotals, target) {
			return plan.DayResult{
				DayNumber:       day.DayNumber,
				Status:          plan.StatusPass,
				Iterations:      iterations,
				VariancePercent: residualVariance(day.DailyTotals, target),
			}, adjustments
		}
		if iterations >= v.maxIterations {
			break
		}
		iterations++
		adjustments = append(adjustments, v.adjustDay(day, target)...)
	}

	day.RecomputeTotals()
	residual := residualVariance(day.DailyTotals, target)
	status := plan.StatusWarn
	if residual > v.warnBoundary {
		status = plan.StatusFail
	}
	return plan.DayResult{
		DayNumber:       day.DayNumber,
		Status:          status,
		Iterations:      iterations,
		VariancePercent: residual,
	}, adjustments
}

// adjustDay rescales every meal on the day toward the calorie target,
// clamped per pass, rewriting meal nutrition and ingredient amounts.
func (v *Validator) adjustDay(day *plan.PlanDay, target plan.Nutrition) []plan.Adjustment {
	if day.DailyTotals.Kcal <= 0 || target.Kcal <= 0 {
		return nil
	}

	factor := target.Kcal / day.DailyTotals.Kcal
	if factor > maxScaleStep {
		factor = maxScaleStep
	} else if factor < minScaleStep {
		factor = minScaleStep
	}

	adjustments := make([]plan.Adjustment, 0, len(day.Meals))
	for i := range day.Meals {
		meal := &day.Meals[i]
		meal.Nutrition = meal.Nutrition.Scale(factor)
		for j := range meal.Ingredients {
			meal.Ingredients[j].Amount *= factor
		}
		adjustments = append(adjustments, plan.Adjustment{
			DayNumber:   day.DayNumber,
			Slot:        meal.Slot,
			MealName:    meal.Name,
			ScaleFactor: factor,
			Reason:      fmt.Sprintf("day at %.0f kcal vs %.0f kcal target", day.DailyTotals.Kcal, target.Kcal),
		})
	}
	return adjustments
}

// dayTarget derives the day's full nutrition target by scaling the daily
// macro targets to the day's calorie target. Training days carry the bonus
// calories and proportionally more of each macro.
func dayTarget(day *plan.PlanDay, profile *metabolic.Profile) plan.Nutrition {
	scale := 1.0
	if profile.GoalKcal > 0 {
		scale = day.TargetKcal / float64(profile.GoalKcal)
	}
	return plan.Nutrition{
		Kcal:     day.TargetKcal,
		ProteinG: float64(profile.ProteinG) * scale,
		CarbsG:   float64(profile.CarbsG) * scale,
		FatG:     float64(profile.FatG) * scale,
		FiberG:   float64(profile.FiberG) * scale,
	}
}

// residualVariance is the worst relative deviation across calories and the
// macros that have a target.
func residualVariance(actual, target plan.Nutrition) float64 {
	worst := plan.VariancePct(actual.Kcal, target.Kcal)
	for _, pair := range [][2]float64{
		{actual.ProteinG, target.ProteinG},
		{actual.CarbsG, target.CarbsG},
		{actual.FatG, target.FatG},
	} {
		if pair[1] == 0 {
			continue
		}
		if v := plan.VariancePct(pair[0], pair[1]); v > worst {
			worst = v
		}
	}
	return worst
}

// score summarizes the plan's adherence as 0-100. Each non-passing day costs
// a fixed status penalty plus a capped residual-variance penalty, so the
// score never increases as failing days grow in count or severity.
func score(results []plan.DayResult) int {
	s := 100.0
	for _, r := range results {
		switch r.Status {
		case plan.StatusWarn:
			s -= 12 + math.Min(10, r.VariancePercent)
		case plan.StatusFail:
			s -= 30 + math.Min(10, r.VariancePercent)
		}
	}
	if s < 0 {
		s = 0
	}
	return int(math.Round(s))
}
