package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"autoapply/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		inputType string
		want      entity.Classification
	}{
		{"phone label", "Mobile Phone", "text", entity.ClassNumeric},
		{"salary label", "Expected salary", "text", entity.ClassNumeric},
		{"compensation label", "Desired Compensation (USD)", "text", entity.ClassNumeric},
		{"years of experience", "How many years of work experience do you have?", "text", entity.ClassNumeric},
		{"how many", "How many direct reports have you managed?", "text", entity.ClassNumeric},
		{"tel input", "Contact", "tel", entity.ClassNumeric},
		{"number input", "Notice period", "number", entity.ClassNumeric},
		{"work authorization", "Are you authorized to work in the United States?", "text", entity.ClassBoolean},
		{"sponsorship", "Will you now or in the future require sponsorship?", "text", entity.ClassBoolean},
		{"willing to", "Are you willing to relocate?", "text", entity.ClassBoolean},
		{"plain text", "First name", "text", entity.ClassText},
		{"year without experience", "Graduation year category", "text", entity.ClassText},
		{"empty label", "", "text", entity.ClassText},
		{"unknown label", "Unknown", "", entity.ClassText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.label, tt.inputType))
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	// "phone" hits the numeric rule before the boolean "willing to" rule.
	got := Classify("Are you willing to share your phone number?", "text")
	assert.Equal(t, entity.ClassNumeric, got)
}
