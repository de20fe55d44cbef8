package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

// activityKeywords maps an activity type to the literal terms that make
// a learning relevant to it.
var activityKeywords = map[domain.ActivityType][]string{
	domain.ActivityKeywordResearch:    {"keywords", "seo", "search"},
	domain.ActivityContentPlanning:    {"content", "calendar", "planning"},
	domain.ActivityContentCreation:    {"content", "copy", "writing"},
	domain.ActivityCompetitorAnalysis: {"competitor", "market", "positioning"},
	domain.ActivityPerformanceReview:  {"metrics", "performance", "results"},
}

const recentLearningsFallback = 5

// MemoryService is the archival memory: an append-only learning log
// queryable by brand, category or keyword.
type MemoryService struct {
	learnings ports.LearningRepository
	clock     ports.Clock
}

func NewMemoryService(learnings ports.LearningRepository, clock ports.Clock) *MemoryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &MemoryService{learnings: learnings, clock: clock}
}

// Store appends a learning. Confidence defaults to medium; an empty
// brand scopes the learning globally.
func (s *MemoryService) Store(ctx context.Context, cmd StoreLearningCommand) (domain.Learning, error) {
	if cmd.BrandID == "" {
		cmd.BrandID = domain.GlobalBrand
	}
	if cmd.Confidence == "" {
		cmd.Confidence = domain.ConfidenceMedium
	}

	now := s.clock.Now()
	learning := domain.Learning{
		ID:         domain.NewLearningID(now),
		BrandID:    cmd.BrandID,
		Date:       now,
		Type:       cmd.Type,
		Category:   cmd.Category,
		Content:    cmd.Content,
		Context:    cmd.Context,
		Confidence: cmd.Confidence,
		Metrics:    cmd.Metrics,
	}

	if err := learning.Validate(); err != nil {
		return domain.Learning{}, fmt.Errorf("validate learning: %w", err)
	}

	all, err := s.learnings.List(ctx)
	if err != nil {
		return domain.Learning{}, fmt.Errorf("list learnings: %w", err)
	}

	if err := s.learnings.SaveAll(ctx, append(all, learning)); err != nil {
		return domain.Learning{}, fmt.Errorf("save learnings: %w", err)
	}

	return learning, nil
}

func (s *MemoryService) StoreSuccessPattern(ctx context.Context, brand domain.BrandID, category, content string) (domain.Learning, error) {
	return s.Store(ctx, StoreLearningCommand{BrandID: brand, Type: domain.LearningSuccessPattern, Category: category, Content: content})
}

func (s *MemoryService) StoreMistakeToAvoid(ctx context.Context, brand domain.BrandID, category, content string) (domain.Learning, error) {
	return s.Store(ctx, StoreLearningCommand{BrandID: brand, Type: domain.LearningMistakeToAvoid, Category: category, Content: content})
}

func (s *MemoryService) StoreUserPreference(ctx context.Context, brand domain.BrandID, category, content string) (domain.Learning, error) {
	return s.Store(ctx, StoreLearningCommand{BrandID: brand, Type: domain.LearningUserPreference, Category: category, Content: content})
}

// GetByBrand returns learnings scoped to the brand plus all global
// learnings.
func (s *MemoryService) GetByBrand(ctx context.Context, brand domain.BrandID) ([]domain.Learning, error) {
	all, err := s.learnings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list learnings: %w", err)
	}

	var matches []domain.Learning
	for _, learning := range all {
		if learning.AppliesTo(brand) {
			matches = append(matches, learning)
		}
	}

	return matches, nil
}

// GetRelevant returns the union of learnings matched by category
// substring, by keyword in content or category, and by the fixed
// activity keyword mapping, deduplicated by id and ordered confidence
// first (high before low), then date descending. With no criteria the
// query falls back to the brand's five most recent entries by date.
func (s *MemoryService) GetRelevant(ctx context.Context, brand domain.BrandID, query RelevanceQuery) ([]domain.Learning, error) {
	scoped, err := s.GetByBrand(ctx, brand)
	if err != nil {
		return nil, err
	}

	if query.Empty() {
		sort.SliceStable(scoped, func(i, j int) bool {
			return scoped[i].Date.After(scoped[j].Date)
		})
		if len(scoped) > recentLearningsFallback {
			scoped = scoped[:recentLearningsFallback]
		}
		return scoped, nil
	}

	keywords := make([]string, 0, len(query.Keywords)+3)
	for _, keyword := range query.Keywords {
		keywords = append(keywords, strings.ToLower(keyword))
	}
	keywords = append(keywords, activityKeywords[query.Activity]...)

	category := strings.ToLower(query.Category)

	seen := make(map[string]struct{})
	var matches []domain.Learning
	for _, learning := range scoped {
		if !relevantTo(learning, category, keywords) {
			continue
		}
		if _, ok := seen[learning.ID]; ok {
			continue
		}
		seen[learning.ID] = struct{}{}
		matches = append(matches, learning)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Confidence.Rank() != matches[j].Confidence.Rank() {
			return matches[i].Confidence.Rank() < matches[j].Confidence.Rank()
		}
		return matches[i].Date.After(matches[j].Date)
	})

	return matches, nil
}

func relevantTo(learning domain.Learning, category string, keywords []string) bool {
	learningCategory := strings.ToLower(learning.Category)
	if category != "" && strings.Contains(learningCategory, category) {
		return true
	}

	content := strings.ToLower(learning.Content)
	for _, keyword := range keywords {
		if strings.Contains(content, keyword) || strings.Contains(learningCategory, keyword) {
			return true
		}
	}

	return false
}

// PromoteToGlobal rescopes a brand learning to the global sentinel,
// irreversibly broadening its visibility.
func (s *MemoryService) PromoteToGlobal(ctx context.Context, id string) (domain.Learning, error) {
	var promoted domain.Learning
	err := s.update(ctx, id, func(learning *domain.Learning) {
		learning.BrandID = domain.GlobalBrand
		promoted = *learning
	})

	return promoted, err
}

func (s *MemoryService) UpdateConfidence(ctx context.Context, id string, confidence domain.Confidence) error {
	if !confidence.Valid() {
		return fmt.Errorf("unsupported confidence %q", confidence)
	}

	return s.update(ctx, id, func(learning *domain.Learning) {
		learning.Confidence = confidence
	})
}

func (s *MemoryService) Delete(ctx context.Context, id string) error {
	all, err := s.learnings.List(ctx)
	if err != nil {
		return fmt.Errorf("list learnings: %w", err)
	}

	remaining := all[:0]
	found := false
	for _, learning := range all {
		if learning.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, learning)
	}
	if !found {
		return fmt.Errorf("learning %q: %w", id, domain.ErrLearningNotFound)
	}

	if err := s.learnings.SaveAll(ctx, remaining); err != nil {
		return fmt.Errorf("save learnings: %w", err)
	}

	return nil
}

func (s *MemoryService) update(ctx context.Context, id string, apply func(*domain.Learning)) error {
	all, err := s.learnings.List(ctx)
	if err != nil {
		return fmt.Errorf("list learnings: %w", err)
	}

	found := false
	for i := range all {
		if all[i].ID == id {
			apply(&all[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("learning %q: %w", id, domain.ErrLearningNotFound)
	}

	if err := s.learnings.SaveAll(ctx, all); err != nil {
		return fmt.Errorf("save learnings: %w", err)
	}

	return nil
}
