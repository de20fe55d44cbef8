package application

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	clock     *fakeClock
	brands    *inMemoryBrandRepo
	config    *inMemoryConfigRepo
	ledgers   *inMemoryLedgerRepo
	handoffs  *inMemoryHandoffRepo
	open      *inMemoryOpenSessionRepo
	history   *inMemoryHistoryRepo
	snapshots *snapshotRecorder

	brandSvc *BrandService
	svc      *SessionService
}

func newSessionFixture(t *testing.T, now time.Time) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		clock:     &fakeClock{now: now},
		brands:    newInMemoryBrandRepo(),
		config:    &inMemoryConfigRepo{},
		ledgers:   &inMemoryLedgerRepo{},
		handoffs:  newInMemoryHandoffRepo(),
		open:      &inMemoryOpenSessionRepo{},
		history:   newInMemoryHistoryRepo(),
		snapshots: &snapshotRecorder{},
	}

	f.brandSvc = NewBrandService(f.brands, f.config, f.clock)
	f.svc = NewSessionService(
		f.brandSvc,
		NewLedgerService(f.ledgers, f.clock),
		NewHandoffService(f.handoffs, f.clock),
		f.open,
		f.history,
		f.snapshots,
		f.clock,
	)

	_, err := f.brandSvc.Create(context.Background(), CreateBrandCommand{Name: "Acme"})
	require.NoError(t, err)

	return f
}

func TestSessionBeginOpensEverything(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)

	result, err := f.svc.Begin(context.Background(), "acme", "launch prep")
	require.NoError(t, err)

	assert.Equal(t, domain.BrandID("acme"), result.Brand.ID)
	assert.False(t, result.ReplacedStaleLedger)
	assert.Nil(t, result.Handoff)

	ledger, err := f.ledgers.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "launch prep", ledger.Goal)

	session, err := f.open.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BrandID("acme"), session.BrandID)
	assert.Equal(t, now, session.Date)

	snapshot := f.snapshots.last()
	assert.Equal(t, domain.BrandID("acme"), snapshot.ActiveBrand)
	assert.True(t, snapshot.SessionOpen)
	assert.Equal(t, "launch prep", snapshot.Goal)
}

func TestSessionBeginSurfacesPendingHandoffWithoutConsumingIt(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))
	f.handoffs.handoffs["acme"] = domain.Handoff{BrandID: "acme", ResumePrompt: "Resuming work on Acme."}

	result, err := f.svc.Begin(context.Background(), "acme", "")
	require.NoError(t, err)

	require.NotNil(t, result.Handoff)
	assert.Equal(t, "Resuming work on Acme.", result.Handoff.ResumePrompt)

	// Displayed at begin, cleared only at end.
	_, ok := f.handoffs.handoffs["acme"]
	assert.True(t, ok)
}

func TestSessionBeginReplacesStaleLedger(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.Begin(context.Background(), "acme", "old goal")
	require.NoError(t, err)

	result, err := f.svc.Begin(context.Background(), "acme", "new goal")
	require.NoError(t, err)
	assert.True(t, result.ReplacedStaleLedger)

	ledger, err := f.ledgers.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new goal", ledger.Goal)
}

func TestSessionBeginUnknownBrand(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.Begin(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrBrandNotFound)
}

func TestSessionEndWritesHandoffAndHistory(t *testing.T) {
	t.Parallel()

	begin := time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, begin)

	_, err := f.svc.Begin(context.Background(), "acme", "launch prep")
	require.NoError(t, err)

	ledgerSvc := NewLedgerService(f.ledgers, f.clock)
	require.NoError(t, ledgerSvc.StartTask(context.Background(), "draft posts"))
	require.NoError(t, ledgerSvc.CompleteTask(context.Background(), "keyword audit", "32 phrases"))
	require.NoError(t, ledgerSvc.AddNote(context.Background(), "tone stays informal"))

	require.NoError(t, f.svc.LogActivity(context.Background(), domain.Activity{
		Type:   domain.ActivityKeywordResearch,
		Target: "landing pages",
	}))

	f.clock.Advance(90 * time.Minute)

	result, err := f.svc.End(context.Background(), DefaultEndOptions())
	require.NoError(t, err)

	assert.Equal(t, domain.BrandID("acme"), result.BrandID)
	assert.Equal(t, 90*time.Minute, result.Duration)
	require.NotNil(t, result.Handoff)
	require.Len(t, result.Handoff.NextSteps, 1)
	assert.Equal(t, "Continue: draft posts", result.Handoff.NextSteps[0].Task)

	// Handoff persisted for the next begin.
	stored, ok := f.handoffs.handoffs["acme"]
	require.True(t, ok)
	assert.Equal(t, *result.Handoff, stored)

	// History session flushed into the begin date's month bucket.
	log, err := f.history.GetMonth(context.Background(), "acme", "2026-04")
	require.NoError(t, err)
	require.Len(t, log.Sessions, 1)
	assert.Equal(t, begin, log.Sessions[0].Date)
	assert.Equal(t, 90*time.Minute, log.Sessions[0].Duration)
	require.Len(t, log.Sessions[0].Activities, 1)
	assert.Equal(t, domain.ActivityKeywordResearch, log.Sessions[0].Activities[0].Type)
	assert.Equal(t, []string{"tone stays informal"}, log.Sessions[0].Notes)

	// Ledger and open session are gone; snapshot shows the session closed.
	_, err = f.ledgers.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	_, err = f.open.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.False(t, f.snapshots.last().SessionOpen)
	assert.Equal(t, domain.BrandID("acme"), f.snapshots.last().ActiveBrand)
}

func TestSessionEndWithoutHandoffClearsPrevious(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))
	f.handoffs.handoffs["acme"] = domain.Handoff{BrandID: "acme"}

	_, err := f.svc.Begin(context.Background(), "acme", "")
	require.NoError(t, err)

	opts := DefaultEndOptions()
	opts.CreateHandoff = false

	result, err := f.svc.End(context.Background(), opts)
	require.NoError(t, err)
	assert.Nil(t, result.Handoff)

	_, ok := f.handoffs.handoffs["acme"]
	assert.False(t, ok)
}

func TestSessionEndCanKeepPriorHandoff(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))
	prior := domain.Handoff{BrandID: "acme", ResumePrompt: "old prompt"}
	f.handoffs.handoffs["acme"] = prior

	_, err := f.svc.Begin(context.Background(), "acme", "")
	require.NoError(t, err)

	opts := DefaultEndOptions()
	opts.CreateHandoff = false
	opts.KeepPriorHandoff = true

	_, err = f.svc.End(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, prior, f.handoffs.handoffs["acme"])
}

func TestSessionEndExplicitSteps(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.Begin(context.Background(), "acme", "")
	require.NoError(t, err)

	opts := DefaultEndOptions()
	opts.NextSteps = []domain.NextStep{{Task: "ship newsletter"}}
	opts.ResumePromptOverride = "custom prompt"

	result, err := f.svc.End(context.Background(), opts)
	require.NoError(t, err)

	require.NotNil(t, result.Handoff)
	require.Len(t, result.Handoff.NextSteps, 1)
	assert.Equal(t, "ship newsletter", result.Handoff.NextSteps[0].Task)
	assert.Equal(t, 1, result.Handoff.NextSteps[0].Priority)
	assert.Equal(t, "custom prompt", result.Handoff.ResumePrompt)
}

func TestSessionEndWithoutOpenSession(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.End(context.Background(), DefaultEndOptions())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSessionAbandonLeavesNoTrace(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.Begin(context.Background(), "acme", "goal")
	require.NoError(t, err)

	brandID, err := f.svc.Abandon(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.BrandID("acme"), brandID)

	_, err = f.ledgers.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	// No handoff, no history entry.
	assert.Empty(t, f.handoffs.handoffs)
	months, err := f.history.ListMonths(context.Background(), "acme")
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestSessionLogActivityValidation(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	err := f.svc.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityOther})
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	_, err = f.svc.Begin(context.Background(), "acme", "")
	require.NoError(t, err)

	err = f.svc.LogActivity(context.Background(), domain.Activity{Type: "daydreaming"})
	assert.Error(t, err)

	require.NoError(t, f.svc.LogActivity(context.Background(), domain.Activity{Type: domain.ActivityOther}))

	session, err := f.open.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, session.Activities, 1)
	assert.Equal(t, f.clock.now, session.Activities[0].At)
}

func TestSessionContext(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))

	blob, err := f.svc.Context(context.Background())
	require.NoError(t, err)
	assert.Contains(t, blob, "Active brand: Acme (acme)")
	assert.Contains(t, blob, "No session open.")

	_, err = f.svc.Begin(context.Background(), "acme", "launch prep")
	require.NoError(t, err)

	blob, err = f.svc.Context(context.Background())
	require.NoError(t, err)
	assert.Contains(t, blob, "Session open for Acme")
	assert.Contains(t, blob, "Goal: launch prep")
}

func TestSessionContextWithoutActiveBrand(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t, time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC))
	require.NoError(t, f.brandSvc.ClearActive(context.Background()))

	blob, err := f.svc.Context(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No active brand. Create or switch to a brand to begin.", blob)
}
