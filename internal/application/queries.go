package application

import (
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
)

type BeginResult struct {
	Brand               domain.Brand
	Handoff             *domain.Handoff
	ReplacedStaleLedger bool
}

type EndResult struct {
	BrandID  domain.BrandID
	Duration time.Duration
	Handoff  *domain.Handoff
}

// RelevanceQuery selects learnings for an upcoming piece of work. All
// criteria are optional; with none set the query falls back to the
// brand's five most recent entries.
type RelevanceQuery struct {
	Activity domain.ActivityType
	Category string
	Keywords []string
}

func (q RelevanceQuery) Empty() bool {
	return q.Activity == "" && q.Category == "" && len(q.Keywords) == 0
}
