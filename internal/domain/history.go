package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityKeywordResearch    ActivityType = "keyword-research"
	ActivityContentPlanning    ActivityType = "content-planning"
	ActivityContentCreation    ActivityType = "content-creation"
	ActivityCompetitorAnalysis ActivityType = "competitor-analysis"
	ActivityStrategyReview     ActivityType = "strategy-review"
	ActivityPerformanceReview  ActivityType = "performance-review"
	ActivityBrandUpdate        ActivityType = "brand-update"
	ActivityOther              ActivityType = "other"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityKeywordResearch, ActivityContentPlanning, ActivityContentCreation,
		ActivityCompetitorAnalysis, ActivityStrategyReview, ActivityPerformanceReview,
		ActivityBrandUpdate, ActivityOther:
		return true
	default:
		return false
	}
}

// SessionRecord is one bounded period of work against a brand, appended
// to the brand's month bucket when the session ends. Closed sessions
// are never reopened.
type SessionRecord struct {
	BrandID    BrandID
	Date       time.Time
	Duration   time.Duration
	Activities []Activity
	Notes      []string
}

type Activity struct {
	Type        ActivityType
	At          time.Time
	InputMethod string
	Target      string
	Output      string
	Insights    []string
	ActionItems []ActionItem
}

type ActionItem struct {
	ID          string
	Task        string
	Status      string
	CreatedAt   time.Time
	CompletedAt time.Time
	Outcome     string
	Reason      string
}

// MonthLog is the month-bucketed container of closed sessions for one
// brand.
type MonthLog struct {
	BrandID  BrandID
	Month    string
	Sessions []SessionRecord
}

// MonthKey buckets a time into the YYYY-MM history file name.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// NewActionItemID generates a timestamp-derived action item id with a
// random suffix.
func NewActionItemID(now time.Time) string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("crypto/rand failed: %w", err))
	}
	return fmt.Sprintf("action_%d_%02x%02x", now.UnixMilli(), b[0], b[1])
}
