// Package openaicompat generates field answers through any endpoint that
// speaks the OpenAI chat-completions protocol.
package openaicompat

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
)

var _ output.AnswerModelPort = (*Adapter)(nil)

const systemPrompt = `You are filling out a job application form on behalf of a candidate.
Reply with ONLY the literal answer value. No explanation, no quotes.`

var classRules = map[entity.Classification]string{
	entity.ClassNumeric: "The answer must be a single plain number. No units, no ranges, no words.",
	entity.ClassBoolean: "The answer must be exactly Yes or No.",
	entity.ClassText:    "The answer must be a short literal value, at most a few words.",
}

type Adapter struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

func NewAdapter(cfg Config) *Adapter {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Adapter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (a *Adapter) GenerateAnswer(ctx context.Context, question string, class entity.Classification, jobContext string) (string, error) {
	var user strings.Builder
	user.WriteString(classRules[class])
	user.WriteString("\n\n")
	if jobContext != "" {
		user.WriteString("Job description:\n")
		user.WriteString(jobContext)
		user.WriteString("\n\n")
	}
	user.WriteString("Question: ")
	user.WriteString(question)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
