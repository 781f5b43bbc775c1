package plan

import "time"

// Nutrition holds the nutritional totals for a meal or a day.
type Nutrition struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g,omitempty"`
}

// Add returns the component-wise sum of two nutrition values.
func (n Nutrition) Add(other Nutrition) Nutrition {
	return Nutrition{
		Kcal:     n.Kcal + other.Kcal,
		ProteinG: n.ProteinG + other.ProteinG,
		CarbsG:   n.CarbsG + other.CarbsG,
		FatG:     n.FatG + other.FatG,
		FiberG:   n.FiberG + other.FiberG,
	}
}

// Scale returns the nutrition value multiplied by factor.
func (n Nutrition) Scale(factor float64) Nutrition {
	return Nutrition{
		Kcal:     n.Kcal * factor,
		ProteinG: n.ProteinG * factor,
		CarbsG:   n.CarbsG * factor,
		FatG:     n.FatG * factor,
		FiberG:   n.FiberG * factor,
	}
}

// Ingredient is a single shopping-relevant ingredient of a meal.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Meal is one meal slot of a plan day.
type Meal struct {
	Slot            string       `json:"slot"`
	Name            string       `json:"name"`
	Cuisine         string       `json:"cuisine,omitempty"`
	PrepTimeMin     int          `json:"prep_time_min"`
	CookTimeMin     int          `json:"cook_time_min"`
	Nutrition       Nutrition    `json:"nutrition"`
	ConfidenceLevel string       `json:"confidence_level,omitempty"`
	Ingredients     []Ingredient `json:"ingredients"`
	Instructions    []string     `json:"instructions,omitempty"`
}

// DraftDay is the curator's proposal for one day, before nutrition compilation.
type DraftDay struct {
	DayNumber     int    `json:"day_number"`
	DayName       string `json:"day_name"`
	IsTrainingDay bool   `json:"is_training_day"`
	Meals         []Meal `json:"meals"`
}

// PlanDay is a compiled day with totals and variance against its target.
type PlanDay struct {
	DayNumber       int       `json:"day_number"`
	DayName         string    `json:"day_name"`
	IsTrainingDay   bool      `json:"is_training_day"`
	TargetKcal      float64   `json:"target_kcal"`
	Meals           []Meal    `json:"meals"`
	DailyTotals     Nutrition `json:"daily_totals"`
	VarianceKcal    float64   `json:"variance_kcal"`
	VariancePercent float64   `json:"variance_percent"`
}

// RecomputeTotals resums the day's meals and refreshes the variance fields.
func (d *PlanDay) RecomputeTotals() {
	var totals Nutrition
	for _, m := range d.Meals {
		totals = totals.Add(m.Nutrition)
	}
	d.DailyTotals = totals
	d.VarianceKcal = totals.Kcal - d.TargetKcal
	if d.TargetKcal > 0 {
		d.VariancePercent = d.VarianceKcal / d.TargetKcal * 100
	} else {
		d.VariancePercent = 0
	}
}

// QAStatus classifies how well a day (or the whole plan) met its targets.
type QAStatus string

const (
	StatusPass QAStatus = "PASS"
	StatusWarn QAStatus = "WARN"
	StatusFail QAStatus = "FAIL"
)

// Worse reports whether s is a worse outcome than other.
func (s QAStatus) Worse(other QAStatus) bool {
	return statusRank(s) > statusRank(other)
}

func statusRank(s QAStatus) int {
	switch s {
	case StatusPass:
		return 0
	case StatusWarn:
		return 1
	default:
		return 2
	}
}

// DayResult records the QA outcome for a single day.
type DayResult struct {
	DayNumber       int      `json:"day_number"`
	Status          QAStatus `json:"status"`
	Iterations      int      `json:"iterations"`
	VariancePercent float64  `json:"variance_percent"`
}

// Adjustment describes a corrective change the validator made to a meal.
type Adjustment struct {
	DayNumber   int     `json:"day_number"`
	Slot        string  `json:"slot"`
	MealName    string  `json:"meal_name"`
	ScaleFactor float64 `json:"scale_factor"`
	Reason      string  `json:"reason"`
}

// QAReport summarizes the validator's work across the whole plan.
type QAReport struct {
	Status          QAStatus     `json:"status"`
	Score           int          `json:"score"`
	Iterations      int          `json:"iterations"`
	DayResults      []DayResult  `json:"day_results"`
	AdjustmentsMade []Adjustment `json:"adjustments_made"`
}

// GroceryItem is one aggregated, practically-rounded shopping entry.
type GroceryItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// GroceryCategory groups items under one shopping aisle.
type GroceryCategory struct {
	Category string        `json:"category"`
	Items    []GroceryItem `json:"items"`
}

// GroceryList is the full shopping list in canonical category order.
type GroceryList []GroceryCategory

// ValidatedPlan is the terminal artifact of the pipeline. It is immutable once
// the QA report carries a final status.
type ValidatedPlan struct {
	ID           string      `json:"id"`
	ClientName   string      `json:"client_name,omitempty"`
	Days         []PlanDay   `json:"days"`
	GroceryList  GroceryList `json:"grocery_list"`
	QA           QAReport    `json:"qa"`
	WeeklyTotals Nutrition   `json:"weekly_totals"`
	CreatedAt    time.Time   `json:"created_at"`
}
