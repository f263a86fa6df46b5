// Package fields holds the DOM-free form-field heuristics: classification,
// answer cleaning and the deterministic fallback answers.
package fields

import (
	"strings"

	"autoapply/internal/domain/entity"
)

// classifierRule maps label/input-type hints to a classification. Rules are
// ordered; the first match wins. A rule matches when the label contains any
// of Keywords, or all of AllKeywords, or the declared input type is one of
// InputTypes.
type classifierRule struct {
	Class       entity.Classification
	Keywords    []string
	AllKeywords []string
	InputTypes  []string
}

var classifierRules = []classifierRule{
	{Class: entity.ClassNumeric, Keywords: []string{"phone", "mobile", "salary", "compensation"}},
	{Class: entity.ClassNumeric, AllKeywords: []string{"year", "experience"}},
	{Class: entity.ClassNumeric, Keywords: []string{"how many"}},
	{Class: entity.ClassNumeric, InputTypes: []string{"number", "tel"}},
	{Class: entity.ClassBoolean, Keywords: []string{"authorized to work", "require sponsorship", "willing to"}},
}

// Classify derives the semantic answer type for a field from its resolved
// label and, for text-like controls, its declared input type. Unmatched
// input always falls through to text; classification never fails.
func Classify(label, inputType string) entity.Classification {
	l := strings.ToLower(label)
	for _, rule := range classifierRules {
		if rule.matches(l, inputType) {
			return rule.Class
		}
	}
	return entity.ClassText
}

func (r classifierRule) matches(label, inputType string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	if len(r.AllKeywords) > 0 {
		all := true
		for _, kw := range r.AllKeywords {
			if !strings.Contains(label, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	for _, it := range r.InputTypes {
		if inputType == it {
			return true
		}
	}
	return false
}
