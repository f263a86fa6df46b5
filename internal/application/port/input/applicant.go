package input

import (
	"context"

	"autoapply/internal/domain/entity"
)

// ApplyResult summarizes one finished application.
type ApplyResult struct {
	Outcome entity.Outcome
	Pages   int
	Steps   int
}

// JobApplicant drives one job application to a terminal outcome.
type JobApplicant interface {
	Apply(ctx context.Context, job entity.Job) (*ApplyResult, error)
}

// BatchRunner processes the whole batch of candidate jobs sequentially.
type BatchRunner interface {
	Run(ctx context.Context) (*entity.RunStatistics, error)
}
