package nutrition

import "strings"

// Topic is a keyword category used to pick fallback advice.
type Topic string

const (
	TopicProtein Topic = "protein"
	TopicFiber   Topic = "fiber"
	TopicWeight  Topic = "weight"
	TopicMeal    Topic = "meal"
)

// Rule maps a topic to the keywords that trigger it and the tip it adds.
type Rule struct {
	Topic    Topic
	Keywords []string
	Tip      string
}

// Matches reports whether the lower-cased message mentions any keyword.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rules is evaluated in order; the order is the priority of the tips.
var Rules = []Rule{
	{
		Topic:    TopicProtein,
		Keywords: []string{"protein"},
		Tip:      "Prioritize lean proteins like chicken breast, tofu, eggs, beans, or Greek yogurt across meals.",
	},
	{
		Topic:    TopicFiber,
		Keywords: []string{"fiber", "vegetable"},
		Tip:      "Aim for 2–3 cups of vegetables daily and include high-fiber carbs like oats, quinoa, lentils, and berries.",
	},
	{
		Topic:    TopicWeight,
		Keywords: []string{"weight", "fat"},
		Tip:      "Create a small calorie deficit, focus on whole foods, and include resistance training 2–3x/week.",
	},
	{
		Topic:    TopicMeal,
		Keywords: []string{"meal", "plan"},
		Tip:      "Build plates using the 3-2-1 method: 3 parts veggies, 2 parts protein, 1 part whole-grain carbs + healthy fats.",
	},
}

// baselineTips replace the list when no rule matched.
var baselineTips = []string{
	"Base meals around vegetables + lean protein + whole-grain carbs + healthy fats.",
	"Hydrate well (2–3L/day) and limit ultra-processed foods and added sugars.",
	"Batch-prep simple meals (grain + protein + veg) to make healthy choices easy.",
}

// DetectTopics returns the matching topics in rule order.
func DetectTopics(message string) []Topic {
	lower := strings.ToLower(message)
	var out []Topic
	for _, r := range Rules {
		if r.Matches(lower) {
			out = append(out, r.Topic)
		}
	}
	return out
}

// Tips returns one tip per matching rule, or the baseline when none match.
func Tips(message string) []string {
	lower := strings.ToLower(message)
	var tips []string
	for _, r := range Rules {
		if r.Matches(lower) {
			tips = append(tips, r.Tip)
		}
	}
	if len(tips) == 0 {
		return append([]string(nil), baselineTips...)
	}
	return tips
}
