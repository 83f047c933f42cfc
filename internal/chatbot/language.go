package chatbot

import "regexp"

var arabicPattern = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// ContainsArabic reports whether s has at least one character from the
// Arabic Unicode block (U+0600..U+06FF).
func ContainsArabic(s string) bool {
	return arabicPattern.MatchString(s)
}

// Language is the widget's display language preference.
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// Direction returns the text direction used to render the language.
func (l Language) Direction() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

const (
	GreetingEnglish = "Hi! I'm your FutureIntern assistant. How can I help you today?"
	GreetingArabic  = "مرحباً! أنا مساعد FutureIntern. كيف يمكنني مساعدتك اليوم؟"
)

var (
	quickRepliesEnglish = []string{
		"How to apply for internships?",
		"How to upload my CV?",
		"How does matching work?",
		"Contact support",
	}
	quickRepliesArabic = []string{
		"كيف أتقدم للتدريب؟",
		"كيف أرفع سيرتي الذاتية؟",
		"كيف يعمل نظام المطابقة؟",
		"اتصل بالدعم",
	}
)

// QuickReplies returns the suggestion chips for a language.
func QuickReplies(arabic bool) []string {
	src := quickRepliesEnglish
	if arabic {
		src = quickRepliesArabic
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
