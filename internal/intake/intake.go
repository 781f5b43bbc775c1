package intake

import "fmt"

// Sex is the biological sex used by the metabolic equations.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// GoalType is the client's weight goal.
type GoalType string

const (
	GoalCut      GoalType = "cut"
	GoalBulk     GoalType = "bulk"
	GoalMaintain GoalType = "maintain"
)

// ActivityLevel maps to a TDEE multiplier in the metabolic calculator.
type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

// DietaryStyle constrains which foods the curator and swap matcher may offer.
type DietaryStyle string

const (
	DietOmnivore    DietaryStyle = "omnivore"
	DietVegetarian  DietaryStyle = "vegetarian"
	DietVegan       DietaryStyle = "vegan"
	DietPescatarian DietaryStyle = "pescatarian"
)

// MacroStyle names a fixed protein/carbs/fat calorie split.
type MacroStyle string

const (
	MacroBalanced    MacroStyle = "balanced"
	MacroHighProtein MacroStyle = "high_protein"
	MacroLowCarb     MacroStyle = "low_carb"
	MacroKeto        MacroStyle = "keto"
)

// RawIntakeForm is the client-submitted survey, loosely typed. Height and
// weight may arrive in imperial or metric units; metric wins if both are set.
type RawIntakeForm struct {
	ClientName string `json:"client_name"`
	Age        int    `json:"age"`
	Sex        string `json:"sex"`

	HeightCm   float64 `json:"height_cm,omitempty"`
	HeightFeet int     `json:"height_feet,omitempty"`
	HeightIn   int     `json:"height_in,omitempty"`
	WeightKg   float64 `json:"weight_kg,omitempty"`
	WeightLbs  float64 `json:"weight_lbs,omitempty"`

	GoalType      string  `json:"goal_type"`
	GoalRate      float64 `json:"goal_rate,omitempty"`
	ActivityLevel string  `json:"activity_level"`
	DietaryStyle  string  `json:"dietary_style"`
	MacroStyle    string  `json:"macro_style"`

	MealsPerDay  int `json:"meals_per_day"`
	SnacksPerDay int `json:"snacks_per_day"`
	PlanDays     int `json:"plan_days,omitempty"`

	Allergies          []string `json:"allergies,omitempty"`
	Exclusions         []string `json:"exclusions,omitempty"`
	CuisinePreferences []string `json:"cuisine_preferences,omitempty"`
	TrainingDays       []string `json:"training_days,omitempty"`
}

// ClientIntake is the canonical, validated form of a RawIntakeForm. Metric
// units only, deduplicated lowercase string sets, validated enums. Never
// mutated after creation.
type ClientIntake struct {
	ClientName string  `json:"client_name"`
	Age        int     `json:"age"`
	Sex        Sex     `json:"sex"`
	HeightCm   float64 `json:"height_cm"`
	WeightKg   float64 `json:"weight_kg"`

	GoalType      GoalType      `json:"goal_type"`
	GoalRate      float64       `json:"goal_rate"`
	ActivityLevel ActivityLevel `json:"activity_level"`
	DietaryStyle  DietaryStyle  `json:"dietary_style"`
	MacroStyle    MacroStyle    `json:"macro_style"`

	MealsPerDay  int `json:"meals_per_day"`
	SnacksPerDay int `json:"snacks_per_day"`
	PlanDays     int `json:"plan_days"`

	Allergies          []string `json:"allergies"`
	Exclusions         []string `json:"exclusions"`
	CuisinePreferences []string `json:"cuisine_preferences"`
	TrainingDays       []string `json:"training_days"`
}

// ValidationError reports a malformed or out-of-range intake field. It is the
// caller's fault and is surfaced verbatim to the UI layer.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid intake field %q: %s", e.Field, e.Reason)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
