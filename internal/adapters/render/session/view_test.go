package session

import (
	"testing"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBrandWithoutSession(t *testing.T) {
	output, err := Render(View{
		Brand: domain.Brand{
			ID:      "acme",
			Name:    "Acme",
			Website: "https://acme.com",
			Business: domain.BusinessInfo{
				Industry: "coffee",
			},
		},
	}, RenderOptions{Now: time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)})

	require.NoError(t, err)
	assert.Contains(t, output, "Brand Session Status")
	assert.Contains(t, output, "Acme (acme) - https://acme.com")
	assert.Contains(t, output, "industry: coffee")
	assert.Contains(t, output, "No session open.")
}

func TestRenderOpenSessionWithHandoff(t *testing.T) {
	now := time.Date(2026, 4, 14, 11, 0, 0, 0, time.UTC)
	started := now.Add(-95 * time.Minute)

	output, err := Render(View{
		Brand: domain.Brand{ID: "acme", Name: "Acme"},
		Ledger: &domain.Ledger{
			BrandID:   "acme",
			BrandName: "Acme",
			StartedAt: started,
			Goal:      "launch prep",
			Completed: []domain.TaskEntry{
				{Task: "keyword audit", Result: "32 phrases", At: now},
			},
			InProgress: []domain.TaskEntry{
				{Task: "draft posts", At: started},
			},
			Blockers: []string{"waiting on assets"},
		},
		Handoff: &domain.Handoff{
			BrandID:     "acme",
			LastSession: domain.LastSession{Date: now.Add(-24 * time.Hour)},
			NextSteps: []domain.NextStep{
				{Priority: 1, Task: "Continue: draft posts", Context: "april batch"},
			},
			ResumePrompt: "Resuming work on Acme.",
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "session open for 1h35m")
	assert.Contains(t, output, "goal: launch prep")
	assert.Contains(t, output, "done: keyword audit - 32 phrases")
	assert.Contains(t, output, "in progress: draft posts")
	assert.Contains(t, output, "blocked: waiting on assets")
	assert.Contains(t, output, "handoff from 2026-04-13")
	assert.Contains(t, output, "1. Continue: draft posts")
	assert.Contains(t, output, "(april batch)")
	assert.Contains(t, output, "Resuming work on Acme.")
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "less than a minute", formatElapsed(20*time.Second))
	assert.Equal(t, "45m", formatElapsed(45*time.Minute))
	assert.Equal(t, "2h05m", formatElapsed(125*time.Minute))
}
