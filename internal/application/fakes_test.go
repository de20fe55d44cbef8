package application

import (
	"context"
	"sort"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type inMemoryBrandRepo struct {
	brands map[domain.BrandID]domain.Brand
}

func newInMemoryBrandRepo() *inMemoryBrandRepo {
	return &inMemoryBrandRepo{brands: map[domain.BrandID]domain.Brand{}}
}

func (r *inMemoryBrandRepo) GetByID(_ context.Context, id domain.BrandID) (domain.Brand, error) {
	brand, ok := r.brands[id]
	if !ok {
		return domain.Brand{}, domain.ErrBrandNotFound
	}
	return brand, nil
}

func (r *inMemoryBrandRepo) List(_ context.Context) ([]domain.Brand, error) {
	brands := make([]domain.Brand, 0, len(r.brands))
	for _, brand := range r.brands {
		brands = append(brands, brand)
	}
	return brands, nil
}

func (r *inMemoryBrandRepo) Save(_ context.Context, brand domain.Brand) error {
	r.brands[brand.ID] = brand
	return nil
}

func (r *inMemoryBrandRepo) Delete(_ context.Context, id domain.BrandID) error {
	delete(r.brands, id)
	return nil
}

type inMemoryConfigRepo struct {
	config domain.Config
}

func (r *inMemoryConfigRepo) Get(_ context.Context) (domain.Config, error) {
	return r.config, nil
}

func (r *inMemoryConfigRepo) Save(_ context.Context, config domain.Config) error {
	r.config = config
	return nil
}

type inMemoryLedgerRepo struct {
	ledger *domain.Ledger
}

func (r *inMemoryLedgerRepo) Get(_ context.Context) (domain.Ledger, error) {
	if r.ledger == nil {
		return domain.Ledger{}, domain.ErrNoActiveSession
	}
	return *r.ledger, nil
}

func (r *inMemoryLedgerRepo) Save(_ context.Context, ledger domain.Ledger) error {
	r.ledger = &ledger
	return nil
}

func (r *inMemoryLedgerRepo) Delete(_ context.Context) error {
	r.ledger = nil
	return nil
}

type inMemoryHandoffRepo struct {
	handoffs map[domain.BrandID]domain.Handoff
}

func newInMemoryHandoffRepo() *inMemoryHandoffRepo {
	return &inMemoryHandoffRepo{handoffs: map[domain.BrandID]domain.Handoff{}}
}

func (r *inMemoryHandoffRepo) GetByBrand(_ context.Context, id domain.BrandID) (domain.Handoff, error) {
	handoff, ok := r.handoffs[id]
	if !ok {
		return domain.Handoff{}, domain.ErrHandoffNotFound
	}
	return handoff, nil
}

func (r *inMemoryHandoffRepo) Save(_ context.Context, handoff domain.Handoff) error {
	r.handoffs[handoff.BrandID] = handoff
	return nil
}

func (r *inMemoryHandoffRepo) Delete(_ context.Context, id domain.BrandID) error {
	delete(r.handoffs, id)
	return nil
}

type inMemoryOpenSessionRepo struct {
	session *domain.SessionRecord
}

func (r *inMemoryOpenSessionRepo) Get(_ context.Context) (domain.SessionRecord, error) {
	if r.session == nil {
		return domain.SessionRecord{}, domain.ErrNoActiveSession
	}
	return *r.session, nil
}

func (r *inMemoryOpenSessionRepo) Save(_ context.Context, session domain.SessionRecord) error {
	r.session = &session
	return nil
}

func (r *inMemoryOpenSessionRepo) Delete(_ context.Context) error {
	r.session = nil
	return nil
}

type inMemoryHistoryRepo struct {
	logs map[domain.BrandID]map[string]domain.MonthLog
}

func newInMemoryHistoryRepo() *inMemoryHistoryRepo {
	return &inMemoryHistoryRepo{logs: map[domain.BrandID]map[string]domain.MonthLog{}}
}

func (r *inMemoryHistoryRepo) GetMonth(_ context.Context, id domain.BrandID, month string) (domain.MonthLog, error) {
	if log, ok := r.logs[id][month]; ok {
		return log, nil
	}
	return domain.MonthLog{BrandID: id, Month: month}, nil
}

func (r *inMemoryHistoryRepo) SaveMonth(_ context.Context, log domain.MonthLog) error {
	if r.logs[log.BrandID] == nil {
		r.logs[log.BrandID] = map[string]domain.MonthLog{}
	}
	r.logs[log.BrandID][log.Month] = log
	return nil
}

func (r *inMemoryHistoryRepo) ListMonths(_ context.Context, id domain.BrandID) ([]string, error) {
	months := make([]string, 0, len(r.logs[id]))
	for month := range r.logs[id] {
		months = append(months, month)
	}
	sort.Strings(months)
	return months, nil
}

type inMemoryLearningRepo struct {
	learnings []domain.Learning
}

func (r *inMemoryLearningRepo) List(_ context.Context) ([]domain.Learning, error) {
	return append([]domain.Learning(nil), r.learnings...), nil
}

func (r *inMemoryLearningRepo) SaveAll(_ context.Context, learnings []domain.Learning) error {
	r.learnings = append([]domain.Learning(nil), learnings...)
	return nil
}

type snapshotRecorder struct {
	writes []ports.HookSnapshot
}

func (w *snapshotRecorder) Write(_ context.Context, snapshot ports.HookSnapshot) error {
	w.writes = append(w.writes, snapshot)
	return nil
}

func (w *snapshotRecorder) last() ports.HookSnapshot {
	if len(w.writes) == 0 {
		return ports.HookSnapshot{}
	}
	return w.writes[len(w.writes)-1]
}
