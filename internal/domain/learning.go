package domain

import (
	"crypto/rand"
	"fmt"
	"time"
)

// GlobalBrand is the sentinel brand id for learnings that apply across
// every brand.
const GlobalBrand BrandID = "global"

type LearningType string

const (
	LearningSuccessPattern   LearningType = "success-pattern"
	LearningOutcome          LearningType = "outcome"
	LearningUserPreference   LearningType = "user-preference"
	LearningRejectedIdea     LearningType = "rejected-idea"
	LearningRecurringPattern LearningType = "recurring-pattern"
	LearningMistakeToAvoid   LearningType = "mistake-to-avoid"
)

func (t LearningType) Valid() bool {
	switch t {
	case LearningSuccessPattern, LearningOutcome, LearningUserPreference,
		LearningRejectedIdea, LearningRecurringPattern, LearningMistakeToAvoid:
		return true
	default:
		return false
	}
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	default:
		return false
	}
}

// Rank orders confidences for sorting, high first.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 0
	case ConfidenceMedium:
		return 1
	case ConfidenceLow:
		return 2
	default:
		return 3
	}
}

// Learning is an atomic cross-session fact. Once stored, id, brand,
// type and content are immutable; confidence may be updated and brand
// may be promoted to GlobalBrand.
type Learning struct {
	ID         string
	BrandID    BrandID
	Date       time.Time
	Type       LearningType
	Category   string
	Content    string
	Context    string
	Confidence Confidence
	Metrics    map[string]string
}

func (l Learning) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("id is required")
	}
	if l.BrandID == "" {
		return fmt.Errorf("brand is required")
	}
	if !l.Type.Valid() {
		return fmt.Errorf("unsupported learning type %q", l.Type)
	}
	if l.Content == "" {
		return fmt.Errorf("content is required")
	}
	if !l.Confidence.Valid() {
		return fmt.Errorf("unsupported confidence %q", l.Confidence)
	}

	return nil
}

// AppliesTo reports whether the learning is visible for the given
// brand, either because it is scoped to it or because it is global.
func (l Learning) AppliesTo(brand BrandID) bool {
	return l.BrandID == brand || l.BrandID == GlobalBrand
}

// NewLearningID generates a timestamp-derived id with a random suffix.
func NewLearningID(now time.Time) string {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Errorf("crypto/rand failed: %w", err))
	}
	return fmt.Sprintf("learn_%d_%02x%02x", now.UnixMilli(), b[0], b[1])
}
