package toml

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const ledgerRecord = "session/continuity"

type ledgerSchema struct {
	Version    int               `toml:"version"`
	BrandID    string            `toml:"brand_id"`
	BrandName  string            `toml:"brand_name"`
	StartedAt  string            `toml:"started_at"`
	Goal       string            `toml:"goal,omitempty"`
	InProgress []taskEntrySchema `toml:"in_progress,omitempty"`
	Completed  []taskEntrySchema `toml:"completed,omitempty"`
	Blockers   []string          `toml:"blockers,omitempty"`
	Notes      []string          `toml:"notes,omitempty"`
}

type taskEntrySchema struct {
	Task   string `toml:"task"`
	Result string `toml:"result,omitempty"`
	At     string `toml:"at"`
}

// LedgerRepository persists the single open continuity ledger at
// session/continuity. The record existing is what "a session is open"
// means across invocations.
type LedgerRepository struct {
	store *Store
}

var _ ports.LedgerRepository = (*LedgerRepository)(nil)

func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

func (r *LedgerRepository) Get(ctx context.Context) (domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ledger{}, err
	}

	var schema ledgerSchema
	if !r.store.readRecord(ledgerRecord, &schema) {
		return domain.Ledger{}, domain.ErrNoActiveSession
	}

	return domain.Ledger{
		BrandID:    domain.BrandID(schema.BrandID),
		BrandName:  schema.BrandName,
		StartedAt:  parseTime(schema.StartedAt),
		Goal:       schema.Goal,
		InProgress: taskEntriesFromSchema(schema.InProgress),
		Completed:  taskEntriesFromSchema(schema.Completed),
		Blockers:   schema.Blockers,
		Notes:      schema.Notes,
	}, nil
}

func (r *LedgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.writeRecord(ledgerRecord, ledgerSchema{
		Version:    1,
		BrandID:    string(ledger.BrandID),
		BrandName:  ledger.BrandName,
		StartedAt:  formatTime(ledger.StartedAt),
		Goal:       ledger.Goal,
		InProgress: taskEntriesToSchema(ledger.InProgress),
		Completed:  taskEntriesToSchema(ledger.Completed),
		Blockers:   ledger.Blockers,
		Notes:      ledger.Notes,
	})
}

func (r *LedgerRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.deleteRecord(ledgerRecord)
}

func taskEntriesToSchema(entries []domain.TaskEntry) []taskEntrySchema {
	if len(entries) == 0 {
		return nil
	}

	out := make([]taskEntrySchema, 0, len(entries))
	for _, entry := range entries {
		out = append(out, taskEntrySchema{
			Task:   entry.Task,
			Result: entry.Result,
			At:     formatTime(entry.At),
		})
	}

	return out
}

func taskEntriesFromSchema(entries []taskEntrySchema) []domain.TaskEntry {
	if len(entries) == 0 {
		return nil
	}

	out := make([]domain.TaskEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, domain.TaskEntry{
			Task:   entry.Task,
			Result: entry.Result,
			At:     parseTime(entry.At),
		})
	}

	return out
}
