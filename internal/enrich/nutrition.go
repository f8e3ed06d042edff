package enrich

import "strings"

// DefaultCalories is used when no ingredient keyword matches
const DefaultCalories = 280

// calorieRules is scanned in order; the first rule with a matching keyword wins
var calorieRules = []struct {
	keywords []string
	calories int
}{
	{[]string{"paneer", "cheese"}, 350},
	{[]string{"chicken", "meat"}, 400},
	{[]string{"rice"}, 300},
	{[]string{"dal", "lentil"}, 250},
	{[]string{"vegetable"}, 200},
}

// EstimateCalories guesses a calorie value from free ingredient text. It is a
// keyword heuristic, not a nutritional computation.
func EstimateCalories(ingredients string) int {
	text := strings.ToLower(ingredients)
	for _, rule := range calorieRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.calories
			}
		}
	}
	return DefaultCalories
}
