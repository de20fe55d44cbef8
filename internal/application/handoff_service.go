package application

import (
	"context"
	"fmt"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

type HandoffService struct {
	handoffs ports.HandoffRepository
	clock    ports.Clock
}

func NewHandoffService(handoffs ports.HandoffRepository, clock ports.Clock) *HandoffService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &HandoffService{handoffs: handoffs, clock: clock}
}

// CreateFromLedger snapshots the ledger into the brand's handoff,
// replacing whatever handoff existed. Steps and resume prompt are
// derived from the ledger when not supplied.
func (s *HandoffService) CreateFromLedger(ctx context.Context, ledger domain.Ledger, steps []domain.NextStep, resumePromptOverride string) (domain.Handoff, error) {
	handoff := domain.BuildHandoff(ledger, s.clock.Now(), steps, resumePromptOverride)

	if err := s.handoffs.Save(ctx, handoff); err != nil {
		return domain.Handoff{}, fmt.Errorf("save handoff: %w", err)
	}

	return handoff, nil
}

func (s *HandoffService) Get(ctx context.Context, id domain.BrandID) (domain.Handoff, error) {
	return s.handoffs.GetByBrand(ctx, id)
}

// Clear deletes the brand's handoff. Called after the handoff has been
// displayed at session begin; once cleared the last-session snapshot is
// gone.
func (s *HandoffService) Clear(ctx context.Context, id domain.BrandID) error {
	return s.handoffs.Delete(ctx, id)
}

func (s *HandoffService) AddNextStep(ctx context.Context, id domain.BrandID, task, stepContext string) (domain.Handoff, error) {
	handoff, err := s.handoffs.GetByBrand(ctx, id)
	if err != nil {
		return domain.Handoff{}, err
	}

	handoff.NextSteps = append(handoff.NextSteps, domain.NextStep{Task: task, Context: stepContext})
	handoff.RenumberSteps()

	if err := s.handoffs.Save(ctx, handoff); err != nil {
		return domain.Handoff{}, fmt.Errorf("save handoff: %w", err)
	}

	return handoff, nil
}

// RemoveNextStep drops the step with the given priority and renumbers
// the rest sequentially.
func (s *HandoffService) RemoveNextStep(ctx context.Context, id domain.BrandID, priority int) (domain.Handoff, error) {
	handoff, err := s.handoffs.GetByBrand(ctx, id)
	if err != nil {
		return domain.Handoff{}, err
	}

	steps := handoff.NextSteps[:0]
	removed := false
	for _, step := range handoff.NextSteps {
		if step.Priority == priority && !removed {
			removed = true
			continue
		}
		steps = append(steps, step)
	}
	if !removed {
		return domain.Handoff{}, fmt.Errorf("next step with priority %d: %w", priority, domain.ErrHandoffNotFound)
	}

	handoff.NextSteps = steps
	handoff.RenumberSteps()

	if err := s.handoffs.Save(ctx, handoff); err != nil {
		return domain.Handoff{}, fmt.Errorf("save handoff: %w", err)
	}

	return handoff, nil
}
