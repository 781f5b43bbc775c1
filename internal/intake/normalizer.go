package intake

import "strings"

const (
	minAge = 13
	maxAge = 100

	minMealsPerDay  = 2
	maxMealsPerDay  = 6
	maxSnacksPerDay = 4

	defaultPlanDays = 7
	maxPlanDays     = 14

	cmPerInch   = 2.54
	kgPerPound  = 0.45359237
	inchPerFoot = 12
)

var validSexes = map[Sex]struct{}{
	SexMale:   {},
	SexFemale: {},
}

var validGoals = map[GoalType]struct{}{
	GoalCut:      {},
	GoalBulk:     {},
	GoalMaintain: {},
}

var validActivityLevels = map[ActivityLevel]struct{}{
	ActivitySedentary:        {},
	ActivityLightlyActive:    {},
	ActivityModeratelyActive: {},
	ActivityVeryActive:       {},
	ActivityExtremelyActive:  {},
}

var validDietaryStyles = map[DietaryStyle]struct{}{
	DietOmnivore:    {},
	DietVegetarian:  {},
	DietVegan:       {},
	DietPescatarian: {},
}

var validMacroStyles = map[MacroStyle]struct{}{
	MacroBalanced:    {},
	MacroHighProtein: {},
	MacroLowCarb:     {},
	MacroKeto:        {},
}

// Normalize cleans and validates a raw intake survey into its canonical form.
// It is a pure function of its input: no defaulting of required fields, no
// side effects. Enum values are matched case-insensitively; out-of-range
// numbers and unknown enums fail with a ValidationError.
func Normalize(raw RawIntakeForm) (*ClientIntake, error) {
	if raw.Age < minAge || raw.Age > maxAge {
		return nil, validationErrorf("age", "must be between %d and %d, got %d", minAge, maxAge, raw.Age)
	}

	sex := Sex(strings.ToLower(strings.TrimSpace(raw.Sex)))
	if _, ok := validSexes[sex]; !ok {
		return nil, validationErrorf("sex", "unrecognized value %q", raw.Sex)
	}

	goal := GoalType(strings.ToLower(strings.TrimSpace(raw.GoalType)))
	if _, ok := validGoals[goal]; !ok {
		return nil, validationErrorf("goal_type", "unrecognized value %q", raw.GoalType)
	}

	activity := ActivityLevel(strings.ToLower(strings.TrimSpace(raw.ActivityLevel)))
	if _, ok := validActivityLevels[activity]; !ok {
		return nil, validationErrorf("activity_level", "unrecognized value %q", raw.ActivityLevel)
	}

	diet := DietaryStyle(strings.ToLower(strings.TrimSpace(raw.DietaryStyle)))
	if _, ok := validDietaryStyles[diet]; !ok {
		return nil, validationErrorf("dietary_style", "unrecognized value %q", raw.DietaryStyle)
	}

	macro := MacroStyle(strings.ToLower(strings.TrimSpace(raw.MacroStyle)))
	if _, ok := validMacroStyles[macro]; !ok {
		return nil, validationErrorf("macro_style", "unrecognized value %q", raw.MacroStyle)
	}

	heightCm, err := normalizeHeight(raw)
	if err != nil {
		return nil, err
	}
	weightKg, err := normalizeWeight(raw)
	if err != nil {
		return nil, err
	}

	if raw.MealsPerDay < minMealsPerDay || raw.MealsPerDay > maxMealsPerDay {
		return nil, validationErrorf("meals_per_day", "must be between %d and %d, got %d", minMealsPerDay, maxMealsPerDay, raw.MealsPerDay)
	}
	if raw.SnacksPerDay < 0 || raw.SnacksPerDay > maxSnacksPerDay {
		return nil, validationErrorf("snacks_per_day", "must be between 0 and %d, got %d", maxSnacksPerDay, raw.SnacksPerDay)
	}

	planDays := raw.PlanDays
	if planDays == 0 {
		planDays = defaultPlanDays
	}
	if planDays < 1 || planDays > maxPlanDays {
		return nil, validationErrorf("plan_days", "must be between 1 and %d, got %d", maxPlanDays, raw.PlanDays)
	}

	goalRate := raw.GoalRate
	if goal == GoalMaintain {
		goalRate = 0
	} else if goalRate <= 0 || goalRate > 2 {
		return nil, validationErrorf("goal_rate", "must be between 0 and 2 lb/week, got %g", raw.GoalRate)
	}

	return &ClientIntake{
		ClientName:         strings.TrimSpace(raw.ClientName),
		Age:                raw.Age,
		Sex:                sex,
		HeightCm:           heightCm,
		WeightKg:           weightKg,
		GoalType:           goal,
		GoalRate:           goalRate,
		ActivityLevel:      activity,
		DietaryStyle:       diet,
		MacroStyle:         macro,
		MealsPerDay:        raw.MealsPerDay,
		SnacksPerDay:       raw.SnacksPerDay,
		PlanDays:           planDays,
		Allergies:          CanonicalizeSet(raw.Allergies),
		Exclusions:         CanonicalizeSet(raw.Exclusions),
		CuisinePreferences: CanonicalizeSet(raw.CuisinePreferences),
		TrainingDays:       CanonicalizeSet(raw.TrainingDays),
	}, nil
}

// normalizeHeight resolves height to centimeters. Metric takes precedence
// when both unit systems are present.
func normalizeHeight(raw RawIntakeForm) (float64, error) {
	if raw.HeightCm > 0 {
		if raw.HeightCm < 100 || raw.HeightCm > 250 {
			return 0, validationErrorf("height_cm", "must be between 100 and 250, got %g", raw.HeightCm)
		}
		return raw.HeightCm, nil
	}
	if raw.HeightFeet > 0 {
		totalInches := raw.HeightFeet*inchPerFoot + raw.HeightIn
		cm := float64(totalInches) * cmPerInch
		if cm < 100 || cm > 250 {
			return 0, validationErrorf("height_feet", "converts to %.0f cm, outside 100-250", cm)
		}
		return cm, nil
	}
	return 0, validationErrorf("height_cm", "height is required (metric or imperial)")
}

// normalizeWeight resolves weight to kilograms, metric first.
func normalizeWeight(raw RawIntakeForm) (float64, error) {
	if raw.WeightKg > 0 {
		if raw.WeightKg < 30 || raw.WeightKg > 300 {
			return 0, validationErrorf("weight_kg", "must be between 30 and 300, got %g", raw.WeightKg)
		}
		return raw.WeightKg, nil
	}
	if raw.WeightLbs > 0 {
		kg := raw.WeightLbs * kgPerPound
		if kg < 30 || kg > 300 {
			return 0, validationErrorf("weight_lbs", "converts to %.1f kg, outside 30-300", kg)
		}
		return kg, nil
	}
	return 0, validationErrorf("weight_kg", "weight is required (metric or imperial)")
}
