package qa

import (
	"strings"

	"macroplan/internal/plan"
)

// categoryOrder is the canonical shopping-aisle ordering of the grocery list.
var categoryOrder = []string{
	"Produce",
	"Meat & Seafood",
	"Dairy & Eggs",
	"Bakery",
	"Pantry",
	"Frozen",
	"Other",
}

// categoryKeywords assigns an ingredient to an aisle by name substring.
// Anything unmatched lands in Other.
var categoryKeywords = map[string][]string{
	"Produce": {
		"apple", "avocado", "banana", "berr", "broccoli", "cabbage", "carrot",
		"celery", "cucumber", "garlic", "ginger", "kale", "lemon", "lettuce",
		"lime", "mushroom", "onion", "orange", "pepper", "potato", "spinach",
		"sweet potato", "tomato", "zucchini", "herb", "cilantro", "parsley",
		"basil", "fruit", "vegetable",
	},
	"Meat & Seafood": {
		"beef", "chicken", "cod", "fish", "lamb", "pork", "salmon", "sausage",
		"shrimp", "steak", "tuna", "turkey", "bacon", "ham",
	},
	"Dairy & Eggs": {
		"butter", "cheese", "cream", "egg", "milk", "yogurt", "kefir",
		"cottage", "mozzarella", "parmesan", "feta",
	},
	"Bakery": {
		"bagel", "bread", "bun", "pita", "roll", "tortilla", "wrap",
	},
	"Pantry": {
		"bean", "broth", "chickpea", "flour", "honey", "lentil", "oat", "oil",
		"pasta", "peanut", "quinoa", "rice", "salt", "sauce", "seed", "spice",
		"sugar", "vinegar", "almond", "walnut", "cashew", "protein powder",
		"stock", "can", "couscous",
	},
	"Frozen": {
		"frozen",
	},
}

// CompileGroceryList aggregates every ingredient across all days and meals
// into one shopping list: amounts summed per (name, unit) pair, each total
// rounded up to a practical quantity, items grouped into canonical category
// order. Item order within a category is insertion order after aggregation.
func CompileGroceryList(days []plan.PlanDay) plan.GroceryList {
	type aggKey struct {
		name string
		unit string
	}
	totals := make(map[aggKey]float64)
	order := []aggKey{}

	for _, day := range days {
		for _, meal := range day.Meals {
			for _, ing := range meal.Ingredients {
				name := strings.ToLower(strings.TrimSpace(ing.Name))
				if name == "" {
					continue
				}
				key := aggKey{name: name, unit: strings.ToLower(strings.TrimSpace(ing.Unit))}
				if _, seen := totals[key]; !seen {
					order = append(order, key)
				}
				totals[key] += ing.Amount
			}
		}
	}

	byCategory := make(map[string][]plan.GroceryItem)
	for _, key := range order {
		item := plan.GroceryItem{
			Name:   key.name,
			Amount: RoundUpForShopping(totals[key], key.unit),
			Unit:   key.unit,
		}
		cat := categorize(key.name)
		byCategory[cat] = append(byCategory[cat], item)
	}

	list := plan.GroceryList{}
	for _, cat := range categoryOrder {
		items := byCategory[cat]
		if len(items) == 0 {
			continue
		}
		list = append(list, plan.GroceryCategory{Category: cat, Items: items})
	}
	return list
}

func categorize(name string) string {
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return "Other"
}
