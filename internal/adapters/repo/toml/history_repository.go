package toml

import (
	"context"
	"path"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const (
	historyDir        = "history"
	openSessionRecord = "session/activity"
)

type monthLogSchema struct {
	Version  int                   `toml:"version"`
	BrandID  string                `toml:"brand_id"`
	Month    string                `toml:"month"`
	Sessions []sessionRecordSchema `toml:"sessions,omitempty"`
}

type sessionRecordSchema struct {
	BrandID         string           `toml:"brand_id,omitempty"`
	Date            string           `toml:"date"`
	DurationSeconds int64            `toml:"duration_seconds,omitempty"`
	Activities      []activitySchema `toml:"activities,omitempty"`
	Notes           []string         `toml:"notes,omitempty"`
}

type activitySchema struct {
	Type        string             `toml:"type"`
	At          string             `toml:"at"`
	InputMethod string             `toml:"input_method,omitempty"`
	Target      string             `toml:"target,omitempty"`
	Output      string             `toml:"output,omitempty"`
	Insights    []string           `toml:"insights,omitempty"`
	ActionItems []actionItemSchema `toml:"action_items,omitempty"`
}

type actionItemSchema struct {
	ID          string `toml:"id"`
	Task        string `toml:"task"`
	Status      string `toml:"status,omitempty"`
	CreatedAt   string `toml:"created_at,omitempty"`
	CompletedAt string `toml:"completed_at,omitempty"`
	Outcome     string `toml:"outcome,omitempty"`
	Reason      string `toml:"reason,omitempty"`
}

// HistoryRepository stores closed sessions in per-brand month buckets
// under history/<brand>/<YYYY-MM>.
type HistoryRepository struct {
	store *Store
}

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

func (r *HistoryRepository) GetMonth(ctx context.Context, id domain.BrandID, month string) (domain.MonthLog, error) {
	if err := ctx.Err(); err != nil {
		return domain.MonthLog{}, err
	}

	var schema monthLogSchema
	if !r.store.readRecord(monthPath(id, month), &schema) {
		return domain.MonthLog{BrandID: id, Month: month}, nil
	}

	sessions := make([]domain.SessionRecord, 0, len(schema.Sessions))
	for _, session := range schema.Sessions {
		sessions = append(sessions, sessionFromSchema(session, id))
	}
	if len(sessions) == 0 {
		sessions = nil
	}

	return domain.MonthLog{BrandID: id, Month: month, Sessions: sessions}, nil
}

func (r *HistoryRepository) SaveMonth(ctx context.Context, log domain.MonthLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sessions := make([]sessionRecordSchema, 0, len(log.Sessions))
	for _, session := range log.Sessions {
		schema := sessionToSchema(session)
		schema.BrandID = ""
		sessions = append(sessions, schema)
	}
	if len(sessions) == 0 {
		sessions = nil
	}

	return r.store.writeRecord(monthPath(log.BrandID, log.Month), monthLogSchema{
		Version:  1,
		BrandID:  string(log.BrandID),
		Month:    log.Month,
		Sessions: sessions,
	})
}

func (r *HistoryRepository) ListMonths(ctx context.Context, id domain.BrandID) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.store.listRecords(path.Join(historyDir, string(id))), nil
}

func monthPath(id domain.BrandID, month string) string {
	return path.Join(historyDir, string(id), month)
}

// OpenSessionRepository persists the in-flight history session at
// session/activity until it is flushed into a month bucket.
type OpenSessionRepository struct {
	store *Store
}

var _ ports.OpenSessionRepository = (*OpenSessionRepository)(nil)

func NewOpenSessionRepository(store *Store) *OpenSessionRepository {
	return &OpenSessionRepository{store: store}
}

func (r *OpenSessionRepository) Get(ctx context.Context) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	var schema sessionRecordSchema
	if !r.store.readRecord(openSessionRecord, &schema) {
		return domain.SessionRecord{}, domain.ErrNoActiveSession
	}

	return sessionFromSchema(schema, domain.BrandID(schema.BrandID)), nil
}

func (r *OpenSessionRepository) Save(ctx context.Context, session domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.writeRecord(openSessionRecord, sessionToSchema(session))
}

func (r *OpenSessionRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.deleteRecord(openSessionRecord)
}

func sessionToSchema(session domain.SessionRecord) sessionRecordSchema {
	activities := make([]activitySchema, 0, len(session.Activities))
	for _, activity := range session.Activities {
		items := make([]actionItemSchema, 0, len(activity.ActionItems))
		for _, item := range activity.ActionItems {
			items = append(items, actionItemSchema{
				ID:          item.ID,
				Task:        item.Task,
				Status:      item.Status,
				CreatedAt:   formatTime(item.CreatedAt),
				CompletedAt: formatTime(item.CompletedAt),
				Outcome:     item.Outcome,
				Reason:      item.Reason,
			})
		}
		if len(items) == 0 {
			items = nil
		}

		activities = append(activities, activitySchema{
			Type:        string(activity.Type),
			At:          formatTime(activity.At),
			InputMethod: activity.InputMethod,
			Target:      activity.Target,
			Output:      activity.Output,
			Insights:    activity.Insights,
			ActionItems: items,
		})
	}
	if len(activities) == 0 {
		activities = nil
	}

	return sessionRecordSchema{
		BrandID:         string(session.BrandID),
		Date:            formatTime(session.Date),
		DurationSeconds: int64(session.Duration.Seconds()),
		Activities:      activities,
		Notes:           session.Notes,
	}
}

func sessionFromSchema(schema sessionRecordSchema, brandID domain.BrandID) domain.SessionRecord {
	activities := make([]domain.Activity, 0, len(schema.Activities))
	for _, activity := range schema.Activities {
		items := make([]domain.ActionItem, 0, len(activity.ActionItems))
		for _, item := range activity.ActionItems {
			items = append(items, domain.ActionItem{
				ID:          item.ID,
				Task:        item.Task,
				Status:      item.Status,
				CreatedAt:   parseTime(item.CreatedAt),
				CompletedAt: parseTime(item.CompletedAt),
				Outcome:     item.Outcome,
				Reason:      item.Reason,
			})
		}
		if len(items) == 0 {
			items = nil
		}

		activities = append(activities, domain.Activity{
			Type:        domain.ActivityType(activity.Type),
			At:          parseTime(activity.At),
			InputMethod: activity.InputMethod,
			Target:      activity.Target,
			Output:      activity.Output,
			Insights:    activity.Insights,
			ActionItems: items,
		})
	}
	if len(activities) == 0 {
		activities = nil
	}

	return domain.SessionRecord{
		BrandID:    brandID,
		Date:       parseTime(schema.Date),
		Duration:   secondsToDuration(schema.DurationSeconds),
		Activities: activities,
		Notes:      schema.Notes,
	}
}
