package application

import (
	"github.com/bnema/brand-manager-cli/internal/domain"
)

type CreateBrandCommand struct {
	Name     string
	Website  string
	Industry string
	Product  string
	Audience string
}

type StoreLearningCommand struct {
	BrandID    domain.BrandID
	Type       domain.LearningType
	Category   string
	Content    string
	Context    string
	Confidence domain.Confidence
	Metrics    map[string]string
}

type EndOptions struct {
	CreateHandoff        bool
	NextSteps            []domain.NextStep
	ResumePromptOverride string
	KeepPriorHandoff     bool
}

func DefaultEndOptions() EndOptions {
	return EndOptions{CreateHandoff: true}
}
