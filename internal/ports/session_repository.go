package ports

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
)

// LedgerRepository persists the single open continuity ledger. Get
// returns domain.ErrNoActiveSession when no ledger is open.
type LedgerRepository interface {
	Get(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
	Delete(ctx context.Context) error
}

type HandoffRepository interface {
	GetByBrand(ctx context.Context, id domain.BrandID) (domain.Handoff, error)
	Save(ctx context.Context, handoff domain.Handoff) error
	Delete(ctx context.Context, id domain.BrandID) error
}

// OpenSessionRepository persists the in-flight history session between
// CLI invocations, until it is flushed to its month bucket at session
// end.
type OpenSessionRepository interface {
	Get(ctx context.Context) (domain.SessionRecord, error)
	Save(ctx context.Context, session domain.SessionRecord) error
	Delete(ctx context.Context) error
}

type HistoryRepository interface {
	GetMonth(ctx context.Context, id domain.BrandID, month string) (domain.MonthLog, error)
	SaveMonth(ctx context.Context, log domain.MonthLog) error
	ListMonths(ctx context.Context, id domain.BrandID) ([]string, error)
}
