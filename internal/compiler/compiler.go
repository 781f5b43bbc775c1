// Package compiler aggregates per-meal nutrition from the curator's draft
// days into compiled plan days with totals and variance against each day's
// calorie target.
package compiler

import (
	"fmt"

	"macroplan/internal/metabolic"
	"macroplan/internal/plan"
)

// Compile turns draft days into plan days. Each day's target is the profile's
// rest-day calories, plus the training bonus when the day is flagged as a
// training day. Pure: no I/O, input slices are not retained.
func Compile(drafts []plan.DraftDay, profile *metabolic.Profile) ([]plan.PlanDay, error) {
	if len(drafts) == 0 {
		return nil, fmt.Errorf("no draft days to compile")
	}

	days := make([]plan.PlanDay, 0, len(drafts))
	for _, draft := range drafts {
		if len(draft.Meals) == 0 {
			return nil, fmt.Errorf("draft day %d (%s) has no meals", draft.DayNumber, draft.DayName)
		}

		target := profile.RestDayKcal
		if draft.IsTrainingDay {
			target = profile.TrainingDayKcal
		}

		day := plan.PlanDay{
			DayNumber:     draft.DayNumber,
			DayName:       draft.DayName,
			IsTrainingDay: draft.IsTrainingDay,
			TargetKcal:    float64(target),
			Meals:         append([]plan.Meal(nil), draft.Meals...),
		}
		day.RecomputeTotals()
		days = append(days, day)
	}

	return days, nil
}

// WeeklyTotals sums daily totals across all compiled days.
func WeeklyTotals(days []plan.PlanDay) plan.Nutrition {
	var totals plan.Nutrition
	for _, d := range days {
		totals = totals.Add(d.DailyTotals)
	}
	return totals
}
