package toml

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const learningsRecord = "memory/learnings"

type learningsFileSchema struct {
	Version   int              `toml:"version"`
	Learnings []learningSchema `toml:"learnings,omitempty"`
}

type learningSchema struct {
	ID         string            `toml:"id"`
	BrandID    string            `toml:"brand_id"`
	Date       string            `toml:"date"`
	Type       string            `toml:"type"`
	Category   string            `toml:"category,omitempty"`
	Content    string            `toml:"content"`
	Context    string            `toml:"context,omitempty"`
	Confidence string            `toml:"confidence"`
	Metrics    map[string]string `toml:"metrics,omitempty"`
}

// LearningRepository keeps every learning in the single
// memory/learnings record, preserving append order on disk.
type LearningRepository struct {
	store *Store
}

var _ ports.LearningRepository = (*LearningRepository)(nil)

func NewLearningRepository(store *Store) *LearningRepository {
	return &LearningRepository{store: store}
}

func (r *LearningRepository) List(ctx context.Context) ([]domain.Learning, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var file learningsFileSchema
	if !r.store.readRecord(learningsRecord, &file) {
		return nil, nil
	}

	learnings := make([]domain.Learning, 0, len(file.Learnings))
	for _, entry := range file.Learnings {
		learnings = append(learnings, domain.Learning{
			ID:         entry.ID,
			BrandID:    domain.BrandID(entry.BrandID),
			Date:       parseTime(entry.Date),
			Type:       domain.LearningType(entry.Type),
			Category:   entry.Category,
			Content:    entry.Content,
			Context:    entry.Context,
			Confidence: domain.Confidence(entry.Confidence),
			Metrics:    entry.Metrics,
		})
	}

	return learnings, nil
}

func (r *LearningRepository) SaveAll(ctx context.Context, learnings []domain.Learning) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries := make([]learningSchema, 0, len(learnings))
	for _, learning := range learnings {
		entries = append(entries, learningSchema{
			ID:         learning.ID,
			BrandID:    string(learning.BrandID),
			Date:       formatTime(learning.Date),
			Type:       string(learning.Type),
			Category:   learning.Category,
			Content:    learning.Content,
			Context:    learning.Context,
			Confidence: string(learning.Confidence),
			Metrics:    learning.Metrics,
		})
	}
	if len(entries) == 0 {
		entries = nil
	}

	return r.store.writeRecord(learningsRecord, learningsFileSchema{Version: 1, Learnings: entries})
}
