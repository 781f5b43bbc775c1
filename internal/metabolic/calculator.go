package metabolic

import (
	"fmt"
	"math"

	"macroplan/internal/intake"
)

// CalculationMethod tags which BMR equation produced a profile.
const CalculationMethod = "mifflin_st_jeor"

// SlotTarget is the calorie and macro target for one meal or snack slot.
type SlotTarget struct {
	Label          string  `json:"label"`
	PercentOfDaily float64 `json:"percent_of_daily"`
	Kcal           int     `json:"kcal"`
	ProteinG       int     `json:"protein_g"`
	CarbsG         int     `json:"carbs_g"`
	FatG           int     `json:"fat_g"`
}

// Profile holds the derived calorie and macro targets for a client. It is
// computed once from a ClientIntake and never mutated.
type Profile struct {
	BMRKcal  int `json:"bmr_kcal"`
	TDEEKcal int `json:"tdee_kcal"`
	GoalKcal int `json:"goal_kcal"`

	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
	FiberG   int `json:"fiber_g"`

	TrainingDayBonusKcal int `json:"training_day_bonus_kcal"`
	RestDayKcal          int `json:"rest_day_kcal"`
	TrainingDayKcal      int `json:"training_day_kcal"`

	MealSlots []SlotTarget `json:"meal_slots"`
	Method    string       `json:"method"`
}

// activityMultipliers is the fixed TDEE multiplier table.
var activityMultipliers = map[intake.ActivityLevel]float64{
	intake.ActivitySedentary:        1.2,
	intake.ActivityLightlyActive:    1.375,
	intake.ActivityModeratelyActive: 1.55,
	intake.ActivityVeryActive:       1.725,
	intake.ActivityExtremelyActive:  1.9,
}

// trainingBonuses is the extra-calorie allowance for training days, keyed by
// activity level. Unmapped levels fall back to defaultTrainingBonus; this is
// an explicit policy, not a missing-field default.
var trainingBonuses = map[intake.ActivityLevel]int{
	intake.ActivitySedentary:        150,
	intake.ActivityLightlyActive:    175,
	intake.ActivityModeratelyActive: 200,
	intake.ActivityVeryActive:       250,
	intake.ActivityExtremelyActive:  300,
}

const defaultTrainingBonus = 200

// macroSplit is a protein/carbs/fat calorie percentage split. The three
// percentages of every entry sum to exactly 100.
type macroSplit struct {
	ProteinPct int
	CarbsPct   int
	FatPct     int
}

var macroSplits = map[intake.MacroStyle]macroSplit{
	intake.MacroBalanced:    {ProteinPct: 30, CarbsPct: 40, FatPct: 30},
	intake.MacroHighProtein: {ProteinPct: 40, CarbsPct: 35, FatPct: 25},
	intake.MacroLowCarb:     {ProteinPct: 35, CarbsPct: 25, FatPct: 40},
	intake.MacroKeto:        {ProteinPct: 30, CarbsPct: 5, FatPct: 65},
}

// MacroSplitFor exposes the fixed split table for a macro style.
func MacroSplitFor(style intake.MacroStyle) (protein, carbs, fat int, ok bool) {
	s, found := macroSplits[style]
	return s.ProteinPct, s.CarbsPct, s.FatPct, found
}

const (
	cutKcalPerLbWeek  = 500
	bulkKcalPerLbWeek = 350
)

// Calculate derives the full metabolic profile from a normalized intake.
// Deterministic and pure: identical intakes yield bit-identical profiles.
func Calculate(in *intake.ClientIntake) (*Profile, error) {
	bmr := bmrMifflinStJeor(in)

	mult, ok := activityMultipliers[in.ActivityLevel]
	if !ok {
		return nil, fmt.Errorf("no activity multiplier for level %q", in.ActivityLevel)
	}
	tdee := int(math.Round(float64(bmr) * mult))

	var goalKcal int
	switch in.GoalType {
	case intake.GoalCut:
		goalKcal = tdee - int(math.Round(in.GoalRate*cutKcalPerLbWeek))
	case intake.GoalBulk:
		goalKcal = tdee + int(math.Round(in.GoalRate*bulkKcalPerLbWeek))
	case intake.GoalMaintain:
		goalKcal = tdee
	default:
		return nil, fmt.Errorf("no calorie adjustment for goal %q", in.GoalType)
	}

	split, ok := macroSplits[in.MacroStyle]
	if !ok {
		return nil, fmt.Errorf("no macro split for style %q", in.MacroStyle)
	}
	proteinG := int(math.Round(float64(goalKcal) * float64(split.ProteinPct) / 100 / 4))
	carbsG := int(math.Round(float64(goalKcal) * float64(split.CarbsPct) / 100 / 4))
	fatG := int(math.Round(float64(goalKcal) * float64(split.FatPct) / 100 / 9))

	fiberG := int(math.Round(float64(goalKcal) / 1000 * 14))
	if fiberG < 25 {
		fiberG = 25
	}

	bonus, ok := trainingBonuses[in.ActivityLevel]
	if !ok {
		bonus = defaultTrainingBonus
	}

	slots, err := distributeSlots(in, goalKcal, proteinG, carbsG, fatG)
	if err != nil {
		return nil, err
	}

	return &Profile{
		BMRKcal:              bmr,
		TDEEKcal:             tdee,
		GoalKcal:             goalKcal,
		ProteinG:             proteinG,
		CarbsG:               carbsG,
		FatG:                 fatG,
		FiberG:               fiberG,
		TrainingDayBonusKcal: bonus,
		RestDayKcal:          goalKcal,
		TrainingDayKcal:      goalKcal + bonus,
		MealSlots:            slots,
		Method:               CalculationMethod,
	}, nil
}

// bmrMifflinStJeor computes basal metabolic rate, rounded to the nearest
// integer. Male: 10w + 6.25h - 5a + 5; female: 10w + 6.25h - 5a - 161.
func bmrMifflinStJeor(in *intake.ClientIntake) int {
	base := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.Age)
	if in.Sex == intake.SexMale {
		base += 5
	} else {
		base -= 161
	}
	return int(math.Round(base))
}
