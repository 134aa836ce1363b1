package contract

import (
	"context"

	"election-assistant-be/internal/entity"
)

type CandidateRepository interface {
	FindAll(ctx context.Context) ([]*entity.Candidate, error)
	Count(ctx context.Context) (int64, error)
	// ReplaceAll swaps the whole list in one transaction.
	ReplaceAll(ctx context.Context, candidates []*entity.Candidate) error
}
