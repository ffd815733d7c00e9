package nutrition

import (
	"strconv"
	"strings"
)

const fallbackBanner = "Nutri-AI temporary tip (service unavailable):"

const (
	planHint = "Based on your grocery plan, add color variety (dark greens, orange/red veg), " +
		"a lean protein per meal, and swap refined grains for whole grains where possible."
	goalHint = "Tell me your goal (e.g., weight loss, muscle gain, heart health) " +
		"or paste a grocery list for tailored advice."
	genericHint = "Share your grocery list or goals for more tailored guidance."
)

const inputInvitation = "Hi, I'm Nutri-AI! Ask me a nutrition question, tell me your goal " +
	"(e.g., weight loss, muscle gain, heart health), or paste a grocery list for tailored advice."

// genericTips back the outer safety net, used when something unexpected
// happened and the message may not be trustworthy.
var genericTips = []string{
	"Build meals with veggies + lean protein + whole-grain carbs + healthy fats.",
	"Aim for 25–35g fiber/day from beans, whole grains, fruits, and veggies.",
	"Plan 3–4 balanced meals/snacks to keep energy steady and prevent overeating.",
}

// Fallback renders keyword-driven advice for message. The closing line
// depends on whether a grocery plan accompanied the request.
func Fallback(message string, hasContext bool) string {
	closing := goalHint
	if hasContext {
		closing = planHint
	}
	return renderTips(Tips(message), closing)
}

// GenericFallback renders the fixed advice of the outer safety net.
func GenericFallback() string {
	return renderTips(genericTips, genericHint)
}

func renderTips(tips []string, closing string) string {
	var b strings.Builder
	b.WriteString(fallbackBanner)
	b.WriteString("\n\n")
	for i, t := range tips {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(t)
	}
	b.WriteString("\n\n")
	b.WriteString(closing)
	return b.String()
}
