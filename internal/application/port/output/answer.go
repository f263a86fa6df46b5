package output

import (
	"context"

	"autoapply/internal/domain/entity"
)

// AnswerModelPort is the raw answer-generation collaborator. It may fail;
// retries and fallbacks are the caller's concern.
type AnswerModelPort interface {
	GenerateAnswer(ctx context.Context, question string, class entity.Classification, jobContext string) (string, error)
}

// AnswerPort is what the application engine consumes: a question in, a
// cleaned answer (or no answer) out. Implementations bound the model's retry
// budget and substitute deterministic fallbacks so a call never blocks the
// fill pass indefinitely.
type AnswerPort interface {
	Answer(ctx context.Context, req entity.AnswerRequest) entity.AnswerResult
}
