package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoffCreateFromLedgerReplacesPrevious(t *testing.T) {
	t.Parallel()

	repo := newInMemoryHandoffRepo()
	clock := &fakeClock{now: time.Date(2026, 4, 12, 17, 0, 0, 0, time.UTC)}
	svc := NewHandoffService(repo, clock)

	ledger := domain.Ledger{
		BrandID:    "acme",
		BrandName:  "Acme",
		StartedAt:  clock.now.Add(-time.Hour),
		InProgress: []domain.TaskEntry{{Task: "draft posts"}},
	}

	first, err := svc.CreateFromLedger(context.Background(), ledger, nil, "")
	require.NoError(t, err)
	require.Len(t, first.NextSteps, 1)
	assert.Equal(t, "Continue: draft posts", first.NextSteps[0].Task)

	// A later handoff fully replaces the stored one.
	ledger.InProgress = nil
	ledger.Goal = "new goal"
	second, err := svc.CreateFromLedger(context.Background(), ledger, nil, "")
	require.NoError(t, err)

	stored, err := svc.Get(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, second, stored)
	assert.Equal(t, "Continue working on: new goal", stored.NextSteps[0].Task)
}

func TestHandoffAddNextStepRenumbers(t *testing.T) {
	t.Parallel()

	repo := newInMemoryHandoffRepo()
	svc := NewHandoffService(repo, &fakeClock{now: time.Now()})

	repo.handoffs["acme"] = domain.Handoff{
		BrandID:   "acme",
		NextSteps: []domain.NextStep{{Priority: 1, Task: "existing"}},
	}

	handoff, err := svc.AddNextStep(context.Background(), "acme", "review analytics", "monthly check")
	require.NoError(t, err)

	require.Len(t, handoff.NextSteps, 2)
	assert.Equal(t, 2, handoff.NextSteps[1].Priority)
	assert.Equal(t, "review analytics", handoff.NextSteps[1].Task)
	assert.Equal(t, "monthly check", handoff.NextSteps[1].Context)
}

func TestHandoffRemoveNextStepRenumbers(t *testing.T) {
	t.Parallel()

	repo := newInMemoryHandoffRepo()
	svc := NewHandoffService(repo, &fakeClock{now: time.Now()})

	repo.handoffs["acme"] = domain.Handoff{
		BrandID: "acme",
		NextSteps: []domain.NextStep{
			{Priority: 1, Task: "a"},
			{Priority: 2, Task: "b"},
			{Priority: 3, Task: "c"},
		},
	}

	handoff, err := svc.RemoveNextStep(context.Background(), "acme", 2)
	require.NoError(t, err)

	require.Len(t, handoff.NextSteps, 2)
	assert.Equal(t, "a", handoff.NextSteps[0].Task)
	assert.Equal(t, "c", handoff.NextSteps[1].Task)
	assert.Equal(t, 1, handoff.NextSteps[0].Priority)
	assert.Equal(t, 2, handoff.NextSteps[1].Priority)

	_, err = svc.RemoveNextStep(context.Background(), "acme", 9)
	assert.ErrorIs(t, err, domain.ErrHandoffNotFound)
}

func TestHandoffGetAndClear(t *testing.T) {
	t.Parallel()

	repo := newInMemoryHandoffRepo()
	svc := NewHandoffService(repo, &fakeClock{now: time.Now()})

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrHandoffNotFound)

	repo.handoffs["acme"] = domain.Handoff{BrandID: "acme"}
	require.NoError(t, svc.Clear(context.Background(), "acme"))

	_, err = svc.Get(context.Background(), "acme")
	assert.ErrorIs(t, err, domain.ErrHandoffNotFound)

	// Clearing twice is not an error.
	assert.NoError(t, svc.Clear(context.Background(), "acme"))
}
