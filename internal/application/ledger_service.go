package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

// LedgerService wraps the continuity ledger with write-through
// persistence: every mutation saves the full record immediately.
type LedgerService struct {
	ledgers ports.LedgerRepository
	clock   ports.Clock
}

func NewLedgerService(ledgers ports.LedgerRepository, clock ports.Clock) *LedgerService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &LedgerService{ledgers: ledgers, clock: clock}
}

// Init opens a fresh ledger for the brand, unconditionally replacing
// any stale ledger left behind by an abandoned session. Reports
// whether a stale ledger was replaced.
func (s *LedgerService) Init(ctx context.Context, brand domain.Brand, goal string) (bool, error) {
	replaced := false
	if _, err := s.ledgers.Get(ctx); err == nil {
		replaced = true
	} else if !errors.Is(err, domain.ErrNoActiveSession) {
		return false, fmt.Errorf("check stale ledger: %w", err)
	}

	ledger := domain.Ledger{
		BrandID:   brand.ID,
		BrandName: brand.Name,
		StartedAt: s.clock.Now(),
		Goal:      goal,
	}

	if err := s.ledgers.Save(ctx, ledger); err != nil {
		return false, fmt.Errorf("save ledger: %w", err)
	}

	return replaced, nil
}

func (s *LedgerService) Get(ctx context.Context) (domain.Ledger, error) {
	return s.ledgers.Get(ctx)
}

func (s *LedgerService) StartTask(ctx context.Context, task string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.AddInProgress(task, s.clock.Now())
	})
}

func (s *LedgerService) CompleteTask(ctx context.Context, task, result string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.Complete(task, result, s.clock.Now())
	})
}

func (s *LedgerService) UpdateProgress(ctx context.Context, task, result string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.UpdateProgress(task, result)
	})
}

func (s *LedgerService) AddBlocker(ctx context.Context, text string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.AddBlocker(text)
	})
}

func (s *LedgerService) RemoveBlocker(ctx context.Context, text string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.RemoveBlocker(text)
	})
}

func (s *LedgerService) AddNote(ctx context.Context, text string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.AddNote(text)
	})
}

func (s *LedgerService) SetGoal(ctx context.Context, text string) error {
	return s.mutate(ctx, func(ledger *domain.Ledger) {
		ledger.SetGoal(text)
	})
}

func (s *LedgerService) Summary(ctx context.Context) (domain.LedgerSummary, error) {
	ledger, err := s.ledgers.Get(ctx)
	if err != nil {
		return domain.LedgerSummary{}, err
	}

	return ledger.Summary(s.clock.Now()), nil
}

// Clear ends the ledger's life: the backing record is deleted and the
// session transitions back to absent.
func (s *LedgerService) Clear(ctx context.Context) error {
	return s.ledgers.Delete(ctx)
}

func (s *LedgerService) mutate(ctx context.Context, apply func(*domain.Ledger)) error {
	ledger, err := s.ledgers.Get(ctx)
	if err != nil {
		return err
	}

	apply(&ledger)

	if err := s.ledgers.Save(ctx, ledger); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	return nil
}
