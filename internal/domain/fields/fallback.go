package fields

import (
	"strings"

	"autoapply/internal/domain/entity"
)

// fallbackRule is one entry of the deterministic answer table used when the
// answer collaborator stays unavailable after its retry budget.
type fallbackRule struct {
	Keywords []string
	Answer   string
}

var fallbackRules = []fallbackRule{
	{Keywords: []string{"phone", "mobile"}, Answer: "5551234567"},
	{Keywords: []string{"email"}, Answer: "alex.danny@email.com"},
	{Keywords: []string{"city"}, Answer: "New York"},
	{Keywords: []string{"state"}, Answer: "NY"},
	{Keywords: []string{"country"}, Answer: "United States"},
	{Keywords: []string{"zip", "postal"}, Answer: "10001"},
	{Keywords: []string{"salary", "compensation"}, Answer: "120000"},
}

// FallbackAnswer returns a deterministic answer for a question the model
// could not serve. It never returns an empty string.
func FallbackAnswer(question string, class entity.Classification) string {
	q := strings.ToLower(question)

	for _, rule := range fallbackRules {
		if containsAny(q, rule.Keywords) {
			return rule.Answer
		}
	}

	if strings.Contains(q, "year") && strings.Contains(q, "experience") {
		return "5"
	}

	if class == entity.ClassBoolean {
		if strings.Contains(q, "sponsorship") {
			return "No"
		}
		return "Yes"
	}

	return "Not applicable"
}
