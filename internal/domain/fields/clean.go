package fields

import (
	"regexp"
	"strings"

	"autoapply/internal/domain/entity"
)

// numericKeywords marks questions whose answers need numeric cleaning even
// when the field itself classified as text.
var numericKeywords = []string{"cgpa", "gpa", "scale", "score", "percentage", "%", "years", "salary"}

var (
	slashRe      = regexp.MustCompile(`^([\d.]+)\s*/\s*[\d.]+`)
	outOfRe      = regexp.MustCompile(`(?i)^([\d.]+)\s*out\s*of\s*[\d.]+`)
	leadingNumRe = regexp.MustCompile(`^[\d.]+`)
	nonNumericRe = regexp.MustCompile(`[^\d.]`)
	numberRunRe  = regexp.MustCompile(`\d+(?:\.\d+)?`)
	digitRe      = regexp.MustCompile(`\d`)
)

// Normalize flattens a raw model answer to a single line of text.
func Normalize(answer string) string {
	answer = strings.ReplaceAll(answer, "\n", " ")
	answer = strings.ReplaceAll(answer, "\r", " ")
	return strings.Join(strings.Fields(answer), " ")
}

// Clean normalizes a raw answer into a literal field value. The ordered
// patterns apply only when the classification is numeric or the question
// carries a numeric keyword; the first matching pattern wins. Unmatched
// answers pass through unchanged.
func Clean(answer, question string, class entity.Classification) string {
	if answer == "" {
		return answer
	}

	q := strings.ToLower(question)
	if class == entity.ClassNumeric || containsAny(q, numericKeywords) {
		answer = cleanNumeric(answer, q)
	}

	// Phone answers become exactly the last 10 digits of the source text.
	if strings.Contains(q, "phone") || strings.Contains(q, "mobile") {
		if digits := LastDigits(answer, 10); digits != "" {
			return digits
		}
		return answer
	}

	// A strictly numeric field keeps only the first number run, shedding any
	// residual units or labels.
	if class == entity.ClassNumeric {
		if run := numberRunRe.FindString(answer); run != "" {
			return run
		}
	}

	return answer
}

func cleanNumeric(answer, questionLower string) string {
	if m := slashRe.FindStringSubmatch(answer); m != nil {
		return m[1]
	}
	if m := outOfRe.FindStringSubmatch(answer); m != nil {
		return m[1]
	}
	if strings.Contains(answer, "%") {
		return strings.TrimSpace(strings.ReplaceAll(answer, "%", ""))
	}
	if strings.Contains(questionLower, "salary") || strings.Contains(questionLower, "compensation") {
		if cleaned := nonNumericRe.ReplaceAllString(answer, ""); cleaned != "" {
			return cleaned
		}
		return answer
	}
	if strings.Contains(questionLower, "year") {
		if m := leadingNumRe.FindString(answer); m != "" {
			return m
		}
	}
	return answer
}

// LastDigits extracts every digit from text and returns at most the last n.
func LastDigits(text string, n int) string {
	digits := strings.Join(digitRe.FindAllString(text, -1), "")
	if len(digits) > n {
		digits = digits[len(digits)-n:]
	}
	return digits
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
