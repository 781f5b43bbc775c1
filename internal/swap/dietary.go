package swap

import (
	"strings"

	"macroplan/internal/intake"
)

// meatKeywords flag animal products rejected for vegetarians and vegans.
var meatKeywords = []string{
	"beef", "chicken", "pork", "lamb", "turkey", "bacon", "ham", "sausage",
	"steak", "fish", "salmon", "tuna", "cod", "shrimp", "prawn", "anchovy",
}

// dairyKeywords flag dairy and eggs, additionally rejected for vegans.
var dairyKeywords = []string{
	"milk", "cheese", "yogurt", "butter", "cream", "egg", "whey", "honey",
	"mozzarella", "parmesan", "feta",
}

// compliesWithDiet checks a candidate meal's name against the dietary style.
// Keyword matching on the name mirrors the exclusion matching the rest of
// the planner does; it is intentionally conservative.
func compliesWithDiet(mealName string, style intake.DietaryStyle) bool {
	name := strings.ToLower(mealName)
	switch style {
	case intake.DietVegetarian:
		return !containsAny(name, meatKeywords)
	case intake.DietVegan:
		return !containsAny(name, meatKeywords) && !containsAny(name, dairyKeywords)
	default:
		return true
	}
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
