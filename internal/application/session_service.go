package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const elapsedRounding = time.Minute

// SessionService coordinates the session lifecycle across the brand
// registry, continuity ledger, handoff store and history log. It is
// the only component with workflow logic; everything else is storage.
type SessionService struct {
	brands       *BrandService
	ledger       *LedgerService
	handoffs     *HandoffService
	openSessions ports.OpenSessionRepository
	history      ports.HistoryRepository
	snapshots    ports.SnapshotWriter
	clock        ports.Clock
}

func NewSessionService(
	brands *BrandService,
	ledger *LedgerService,
	handoffs *HandoffService,
	openSessions ports.OpenSessionRepository,
	history ports.HistoryRepository,
	snapshots ports.SnapshotWriter,
	clock ports.Clock,
) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		brands:       brands,
		ledger:       ledger,
		handoffs:     handoffs,
		openSessions: openSessions,
		history:      history,
		snapshots:    snapshots,
		clock:        clock,
	}
}

// Begin opens a session for the brand: sets it active, initializes a
// fresh ledger, opens the history session and surfaces any pending
// handoff. The handoff is left in the store here; it is cleared at End
// once superseded.
func (s *SessionService) Begin(ctx context.Context, id domain.BrandID, goal string) (BeginResult, error) {
	brand, err := s.brands.Get(ctx, id)
	if err != nil {
		return BeginResult{}, err
	}

	if err := s.brands.SetActive(ctx, id); err != nil {
		return BeginResult{}, err
	}

	replaced, err := s.ledger.Init(ctx, brand, goal)
	if err != nil {
		return BeginResult{}, err
	}

	now := s.clock.Now()
	if err := s.openSessions.Save(ctx, domain.SessionRecord{BrandID: id, Date: now}); err != nil {
		return BeginResult{}, fmt.Errorf("open history session: %w", err)
	}

	result := BeginResult{Brand: brand, ReplacedStaleLedger: replaced}
	handoff, err := s.handoffs.Get(ctx, id)
	if err == nil {
		result.Handoff = &handoff
	} else if !errors.Is(err, domain.ErrHandoffNotFound) {
		return BeginResult{}, fmt.Errorf("check pending handoff: %w", err)
	}

	if err := s.writeSnapshot(ctx); err != nil {
		return BeginResult{}, err
	}

	return result, nil
}

// End closes the open session: by default a new handoff snapshot
// replaces the brand's previous one (latest wins), the history session
// is flushed to its month bucket with the duration stamped, and the
// ledger is discarded.
func (s *SessionService) End(ctx context.Context, opts EndOptions) (EndResult, error) {
	ledger, err := s.ledger.Get(ctx)
	if err != nil {
		return EndResult{}, err
	}

	now := s.clock.Now()
	result := EndResult{BrandID: ledger.BrandID, Duration: now.Sub(ledger.StartedAt)}

	if opts.CreateHandoff {
		handoff, err := s.handoffs.CreateFromLedger(ctx, ledger, opts.NextSteps, opts.ResumePromptOverride)
		if err != nil {
			return EndResult{}, err
		}
		result.Handoff = &handoff
	} else if !opts.KeepPriorHandoff {
		if err := s.handoffs.Clear(ctx, ledger.BrandID); err != nil {
			return EndResult{}, err
		}
	}

	if err := s.flushHistory(ctx, ledger, result.Duration); err != nil {
		return EndResult{}, err
	}

	if err := s.ledger.Clear(ctx); err != nil {
		return EndResult{}, fmt.Errorf("clear ledger: %w", err)
	}

	if err := s.writeSnapshot(ctx); err != nil {
		return EndResult{}, err
	}

	return result, nil
}

// Abandon discards the open session without writing a handoff or a
// history entry.
func (s *SessionService) Abandon(ctx context.Context) (domain.BrandID, error) {
	ledger, err := s.ledger.Get(ctx)
	if err != nil {
		return "", err
	}

	if err := s.openSessions.Delete(ctx); err != nil {
		return "", fmt.Errorf("discard history session: %w", err)
	}
	if err := s.ledger.Clear(ctx); err != nil {
		return "", fmt.Errorf("clear ledger: %w", err)
	}
	if err := s.writeSnapshot(ctx); err != nil {
		return "", err
	}

	return ledger.BrandID, nil
}

// LogActivity appends an activity to the open history session.
func (s *SessionService) LogActivity(ctx context.Context, activity domain.Activity) error {
	session, err := s.openSessions.Get(ctx)
	if err != nil {
		return err
	}

	if !activity.Type.Valid() {
		return fmt.Errorf("unsupported activity type %q", activity.Type)
	}
	if activity.At.IsZero() {
		activity.At = s.clock.Now()
	}

	session.Activities = append(session.Activities, activity)

	if err := s.openSessions.Save(ctx, session); err != nil {
		return fmt.Errorf("save history session: %w", err)
	}

	return nil
}

// Context assembles the re-injectable context blob: active brand,
// ledger state and pending handoff. Pure read, regenerated on demand.
func (s *SessionService) Context(ctx context.Context) (string, error) {
	var sb strings.Builder

	brand, err := s.brands.Active(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrBrandNotFound) {
			return "No active brand. Create or switch to a brand to begin.", nil
		}
		return "", err
	}

	fmt.Fprintf(&sb, "Active brand: %s (%s)\n", brand.Name, brand.ID)
	if brand.Business.Industry != "" {
		fmt.Fprintf(&sb, "Industry: %s\n", brand.Business.Industry)
	}

	ledger, err := s.ledger.Get(ctx)
	switch {
	case err == nil:
		summary := ledger.Summary(s.clock.Now())
		fmt.Fprintf(&sb, "Session open for %s (elapsed %s)\n", summary.BrandName, summary.Elapsed.Round(elapsedRounding))
		if summary.Goal != "" {
			fmt.Fprintf(&sb, "Goal: %s\n", summary.Goal)
		}
		fmt.Fprintf(&sb, "Tasks: %d completed, %d in progress, %d blockers\n",
			summary.Completed, summary.InProgress, summary.Blockers)
	case errors.Is(err, domain.ErrNoActiveSession):
		sb.WriteString("No session open.\n")
	default:
		return "", err
	}

	if handoff, err := s.handoffs.Get(ctx, brand.ID); err == nil {
		fmt.Fprintf(&sb, "Pending handoff from %s: %s\n",
			handoff.LastSession.Date.Format("2006-01-02"), handoff.ResumePrompt)
	}

	months, err := s.history.ListMonths(ctx, brand.ID)
	if err == nil && len(months) > 0 {
		fmt.Fprintf(&sb, "History: %d month(s) on record.\n", len(months))
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func (s *SessionService) flushHistory(ctx context.Context, ledger domain.Ledger, duration time.Duration) error {
	session, err := s.openSessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoActiveSession) {
			return fmt.Errorf("load history session: %w", err)
		}
		session = domain.SessionRecord{BrandID: ledger.BrandID, Date: ledger.StartedAt}
	}

	session.Duration = duration
	session.Notes = append(session.Notes, ledger.Notes...)

	month := domain.MonthKey(session.Date)
	log, err := s.history.GetMonth(ctx, ledger.BrandID, month)
	if err != nil {
		return fmt.Errorf("load month log: %w", err)
	}

	log.Sessions = append(log.Sessions, session)
	if err := s.history.SaveMonth(ctx, log); err != nil {
		return fmt.Errorf("save month log: %w", err)
	}

	if err := s.openSessions.Delete(ctx); err != nil {
		return fmt.Errorf("close history session: %w", err)
	}

	return nil
}

func (s *SessionService) writeSnapshot(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	snapshot := ports.HookSnapshot{UpdatedAt: s.clock.Now()}

	if brand, err := s.brands.Active(ctx); err == nil {
		snapshot.ActiveBrand = brand.ID
	}
	if ledger, err := s.ledger.Get(ctx); err == nil {
		snapshot.SessionOpen = true
		snapshot.StartedAt = ledger.StartedAt
		snapshot.Goal = ledger.Goal
	}

	if err := s.snapshots.Write(ctx, snapshot); err != nil {
		return fmt.Errorf("write hook snapshot: %w", err)
	}

	return nil
}
