package ports

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
)

// LearningRepository stores all learnings in a single append-oriented
// record. SaveAll rewrites the full list; volumes are small enough that
// read-modify-write is the whole consistency story.
type LearningRepository interface {
	List(ctx context.Context) ([]domain.Learning, error)
	SaveAll(ctx context.Context, learnings []domain.Learning) error
}
