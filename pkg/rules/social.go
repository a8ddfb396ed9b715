package rules

import "regexp"

// Social trigger sets, matched as whole words so "this" never reads as "hi".
var (
	greetingTriggers = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}
	thanksTriggers   = []string{"thank you", "thanks", "thx", "thankyou"}
	byeTriggers      = []string{"bye", "goodbye", "see ya", "talk later", "see you"}
)

var (
	greetingPatterns = compileWordPatterns(greetingTriggers)
	thanksPatterns   = compileWordPatterns(thanksTriggers)
	byePatterns      = compileWordPatterns(byeTriggers)
)

var (
	greetingReplies = []string{
		"Hello! 👋 I'm your AI-powered CRM assistant. I can help you with customer insights, churn analysis, and business recommendations. How can I assist you today?",
		"Hi there! 🤖 I have access to your customer data and can provide detailed insights. What would you like to know about your customers?",
	}
	thanksReplies = []string{
		"You're welcome! 😊 I'm here whenever you need CRM insights.",
		"Happy to help! Feel free to ask me anything about your customer data.",
	}
	byeReplies = []string{
		"Goodbye! 👋 Thanks for using the CRM assistant!",
		"See you later! 🎯 Keep those customer insights flowing!",
	}
)

func compileWordPatterns(phrases []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, regexp.MustCompile(`\b`+regexp.QuoteMeta(p)+`\b`))
	}
	return out
}

func matchesAny(q string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(q) {
			return true
		}
	}
	return false
}
