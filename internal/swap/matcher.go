// Package swap finds interchangeable meals inside an already-validated plan:
// same slot on another day, within macro tolerance of the meal being
// replaced, and compatible with the client's dietary profile.
package swap

import (
	"errors"
	"fmt"
	"strings"

	"macroplan/internal/intake"
	"macroplan/internal/plan"
)

// ErrMealNotFound is returned when the requested day/slot has no meal.
var ErrMealNotFound = errors.New("meal not found")

// Request identifies the meal to replace and the dietary profile candidates
// must satisfy.
type Request struct {
	DayNumber    int
	Slot         string
	DietaryStyle intake.DietaryStyle
	Allergies    []string
	Exclusions   []string
}

// Candidate is a swappable meal drawn from another day of the same plan.
// Computed on demand, never persisted.
type Candidate struct {
	DayNumber int       `json:"day_number"`
	Meal      plan.Meal `json:"meal"`
}

// Matcher scans a validated plan for swap candidates.
type Matcher struct {
	tolerance plan.Tolerance
}

// NewMatcher creates a Matcher using the default tolerance policy, the same
// one the QA validator applies.
func NewMatcher() *Matcher {
	return &Matcher{tolerance: plan.DefaultTolerance}
}

// FindAlternatives returns meals from other days in the same slot that are
// within tolerance of the target meal's nutrition and pass dietary
// filtering. An empty result is a valid outcome, not an error.
func (m *Matcher) FindAlternatives(p *plan.ValidatedPlan, req Request) ([]Candidate, error) {
	target, err := findMeal(p, req.DayNumber, req.Slot)
	if err != nil {
		return nil, err
	}

	// Names already on the target day are excluded so a swap never repeats
	// a meal within the same day.
	excluded := make(map[string]struct{})
	for _, day := range p.Days {
		if day.DayNumber != req.DayNumber {
			continue
		}
		for _, meal := range day.Meals {
			excluded[strings.ToLower(meal.Name)] = struct{}{}
		}
	}
	excluded[strings.ToLower(target.Name)] = struct{}{}

	allergies := intake.CanonicalizeSet(req.Allergies)
	exclusions := intake.CanonicalizeSet(req.Exclusions)

	candidates := []Candidate{}
	seen := make(map[string]struct{})
	for _, day := range p.Days {
		if day.DayNumber == req.DayNumber {
			continue
		}
		for _, meal := range day.Meals {
			if !strings.EqualFold(meal.Slot, req.Slot) {
				continue
			}
			nameKey := strings.ToLower(meal.Name)
			if _, skip := excluded[nameKey]; skip {
				continue
			}
			if _, dup := seen[nameKey]; dup {
				continue
			}
			if !m.tolerance.Check(meal.Nutrition, target.Nutrition) {
				continue
			}
			if !compliesWithDiet(meal.Name, req.DietaryStyle) {
				continue
			}
			if containsAny(nameKey, allergies) || containsAny(nameKey, exclusions) {
				continue
			}
			seen[nameKey] = struct{}{}
			candidates = append(candidates, Candidate{DayNumber: day.DayNumber, Meal: meal})
		}
	}

	return candidates, nil
}

func findMeal(p *plan.ValidatedPlan, dayNumber int, slot string) (*plan.Meal, error) {
	for i := range p.Days {
		if p.Days[i].DayNumber != dayNumber {
			continue
		}
		for j := range p.Days[i].Meals {
			if strings.EqualFold(p.Days[i].Meals[j].Slot, slot) {
				return &p.Days[i].Meals[j], nil
			}
		}
		return nil, fmt.Errorf("day %d has no %q slot: %w", dayNumber, slot, ErrMealNotFound)
	}
	return nil, fmt.Errorf("day %d not in plan: %w", dayNumber, ErrMealNotFound)
}
