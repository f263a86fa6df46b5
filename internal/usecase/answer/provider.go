// Package answer turns field questions into cleaned literal answers, keeping
// the model's failure modes away from the fill pass: resume shortcuts first,
// then a bounded retry against the model, then a deterministic fallback.
package answer

import (
	"context"
	"regexp"
	"strings"
	"time"

	"autoapply/internal/application/port/output"
	"autoapply/internal/domain/entity"
	"autoapply/internal/domain/fields"
)

var _ output.AnswerPort = (*Provider)(nil)

const (
	defaultRetries    = 3
	defaultRetryDelay = 2 * time.Second
)

var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`),
	regexp.MustCompile(`\d{10}`),
	regexp.MustCompile(`Phone:\s*[+\d\s()-]+`),
	regexp.MustCompile(`Mobile:\s*[+\d\s()-]+`),
}

var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`City:\s*([A-Za-z ]+)`),
	regexp.MustCompile(`Location:\s*([A-Za-z ]+),`),
	regexp.MustCompile(`([A-Za-z ]+),\s*[A-Z]{2}`),
}

// Provider implements AnswerPort on top of a raw answer model.
type Provider struct {
	model      output.AnswerModelPort
	logger     output.LoggerPort
	stats      *entity.RunStatistics
	resumeText string
	jobContext string
	retries    int
	retryDelay time.Duration
}

func NewProvider(model output.AnswerModelPort, logger output.LoggerPort, stats *entity.RunStatistics, resumeText string) *Provider {
	return &Provider{
		model:      model,
		logger:     logger,
		stats:      stats,
		resumeText: resumeText,
		retries:    defaultRetries,
		retryDelay: defaultRetryDelay,
	}
}

// SetJobContext attaches the current job's cleaned description; it is handed
// to the model alongside every question until replaced.
func (p *Provider) SetJobContext(description string) {
	p.jobContext = description
}

// Answer resolves one field question. It never blocks indefinitely and, by
// way of the fallback table, never returns an unanswered result for a
// non-empty question.
func (p *Provider) Answer(ctx context.Context, req entity.AnswerRequest) entity.AnswerResult {
	if strings.TrimSpace(req.Question) == "" {
		return entity.NoAnswer()
	}

	if value, ok := p.resumeShortcut(req.Question); ok {
		p.logger.Debug("Answered from resume", "question", req.Question, "answer", value)
		return entity.Answered(value)
	}

	for attempt := 1; attempt <= p.retries; attempt++ {
		raw, err := p.model.GenerateAnswer(ctx, req.Question, req.Classification, p.jobContext)
		if err == nil {
			value := fields.Clean(fields.Normalize(raw), req.Question, req.Classification)
			if value != "" {
				p.logger.Info("Answer generated",
					"class", req.Classification, "question", truncate(req.Question, 60), "answer", value)
				return entity.Answered(value)
			}
		} else {
			p.logger.Warn("Answer model failed", "attempt", attempt, "error", err)
		}

		if ctx.Err() != nil {
			break
		}
		if attempt < p.retries {
			select {
			case <-ctx.Done():
			case <-time.After(p.retryDelay):
			}
		}
	}

	p.stats.AddError()
	value := fields.FallbackAnswer(req.Question, req.Classification)
	p.logger.Warn("Answer model exhausted, using fallback", "question", truncate(req.Question, 60), "answer", value)
	return entity.Answered(value)
}

// resumeShortcut answers phone and city questions straight from the resume
// text, skipping the model entirely.
func (p *Provider) resumeShortcut(question string) (string, bool) {
	if p.resumeText == "" {
		return "", false
	}
	q := strings.ToLower(question)

	if strings.Contains(q, "phone") || strings.Contains(q, "mobile") {
		for _, re := range phonePatterns {
			if m := re.FindString(p.resumeText); m != "" {
				if digits := fields.LastDigits(m, 10); len(digits) == 10 {
					return digits, true
				}
			}
		}
	}

	if strings.Contains(q, "city") {
		for _, re := range cityPatterns {
			if m := re.FindStringSubmatch(p.resumeText); m != nil {
				if city := strings.TrimSpace(m[1]); city != "" {
					return city, true
				}
			}
		}
	}

	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
