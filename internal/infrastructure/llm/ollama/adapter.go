// Package ollama generates field answers with a locally served model.
package ollama

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcollama "github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/prompts"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

var _ output.AnswerModelPort = (*Adapter)(nil)

const answerTemplate = `You are filling out a job application form on behalf of a candidate.
Answer the question below with ONLY the literal answer value. No explanation,
no punctuation around the answer, no quotes.

{{.rules}}

Job description (may be empty):
{{.job}}

Question: {{.question}}
Answer:`

var classRules = map[entity.Classification]string{
	entity.ClassNumeric: "The answer must be a single plain number. No units, no ranges, no words.",
	entity.ClassBoolean: "The answer must be exactly Yes or No.",
	entity.ClassText:    "The answer must be a short literal value, at most a few words.",
}

type Adapter struct {
	llm      *lcollama.LLM
	template prompts.PromptTemplate
}

type Config struct {
	Model     string
	ServerURL string
}

func NewAdapter(cfg Config) (*Adapter, error) {
	opts := []lcollama.Option{lcollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, lcollama.WithServerURL(cfg.ServerURL))
	}

	llm, err := lcollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &Adapter{
		llm:      llm,
		template: prompts.NewPromptTemplate(answerTemplate, []string{"rules", "job", "question"}),
	}, nil
}

func (a *Adapter) GenerateAnswer(ctx context.Context, question string, class entity.Classification, jobContext string) (string, error) {
	prompt, err := a.template.Format(map[string]any{
		"rules":    classRules[class],
		"job":      jobContext,
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("prompt format: %w", err)
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, a.llm, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("ollama generation: %w", err)
	}
	return strings.TrimSpace(completion), nil
}
