package toml

import (
	"context"
	"path"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const handoffsDir = "handoffs"

type handoffSchema struct {
	Version      int               `toml:"version"`
	BrandID      string            `toml:"brand_id"`
	CreatedAt    string            `toml:"created_at"`
	LastSession  lastSessionSchema `toml:"last_session"`
	NextSteps    []nextStepSchema  `toml:"next_steps,omitempty"`
	ResumePrompt string            `toml:"resume_prompt,omitempty"`
}

type lastSessionSchema struct {
	Date            string            `toml:"date"`
	DurationSeconds int64             `toml:"duration_seconds"`
	Completed       []taskEntrySchema `toml:"completed,omitempty"`
	InProgress      []taskEntrySchema `toml:"in_progress,omitempty"`
	Deferred        []taskEntrySchema `toml:"deferred,omitempty"`
}

type nextStepSchema struct {
	Priority int    `toml:"priority"`
	Task     string `toml:"task"`
	Context  string `toml:"context,omitempty"`
}

type HandoffRepository struct {
	store *Store
}

var _ ports.HandoffRepository = (*HandoffRepository)(nil)

func NewHandoffRepository(store *Store) *HandoffRepository {
	return &HandoffRepository{store: store}
}

func (r *HandoffRepository) GetByBrand(ctx context.Context, id domain.BrandID) (domain.Handoff, error) {
	if err := ctx.Err(); err != nil {
		return domain.Handoff{}, err
	}

	var schema handoffSchema
	if !r.store.readRecord(handoffPath(id), &schema) {
		return domain.Handoff{}, domain.ErrHandoffNotFound
	}

	return handoffFromSchema(schema), nil
}

func (r *HandoffRepository) Save(ctx context.Context, handoff domain.Handoff) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.writeRecord(handoffPath(handoff.BrandID), handoffToSchema(handoff))
}

func (r *HandoffRepository) Delete(ctx context.Context, id domain.BrandID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.deleteRecord(handoffPath(id))
}

func handoffPath(id domain.BrandID) string {
	return path.Join(handoffsDir, string(id))
}

func handoffToSchema(handoff domain.Handoff) handoffSchema {
	steps := make([]nextStepSchema, 0, len(handoff.NextSteps))
	for _, step := range handoff.NextSteps {
		steps = append(steps, nextStepSchema{
			Priority: step.Priority,
			Task:     step.Task,
			Context:  step.Context,
		})
	}
	if len(steps) == 0 {
		steps = nil
	}

	return handoffSchema{
		Version:   1,
		BrandID:   string(handoff.BrandID),
		CreatedAt: formatTime(handoff.CreatedAt),
		LastSession: lastSessionSchema{
			Date:            formatTime(handoff.LastSession.Date),
			DurationSeconds: int64(handoff.LastSession.Duration.Seconds()),
			Completed:       taskEntriesToSchema(handoff.LastSession.Completed),
			InProgress:      taskEntriesToSchema(handoff.LastSession.InProgress),
			Deferred:        taskEntriesToSchema(handoff.LastSession.Deferred),
		},
		NextSteps:    steps,
		ResumePrompt: handoff.ResumePrompt,
	}
}

func handoffFromSchema(schema handoffSchema) domain.Handoff {
	steps := make([]domain.NextStep, 0, len(schema.NextSteps))
	for _, step := range schema.NextSteps {
		steps = append(steps, domain.NextStep{
			Priority: step.Priority,
			Task:     step.Task,
			Context:  step.Context,
		})
	}
	if len(steps) == 0 {
		steps = nil
	}

	return domain.Handoff{
		BrandID:   domain.BrandID(schema.BrandID),
		CreatedAt: parseTime(schema.CreatedAt),
		LastSession: domain.LastSession{
			Date:       parseTime(schema.LastSession.Date),
			Duration:   secondsToDuration(schema.LastSession.DurationSeconds),
			Completed:  taskEntriesFromSchema(schema.LastSession.Completed),
			InProgress: taskEntriesFromSchema(schema.LastSession.InProgress),
			Deferred:   taskEntriesFromSchema(schema.LastSession.Deferred),
		},
		NextSteps:    steps,
		ResumePrompt: schema.ResumePrompt,
	}
}
