package domain

import (
	"fmt"
	"strings"
	"time"
)

// Handoff is the per-brand end-of-session snapshot, written at session
// end and consumed at the next session begin. One handoff per brand;
// a new one fully replaces the old.
type Handoff struct {
	BrandID      BrandID
	CreatedAt    time.Time
	LastSession  LastSession
	NextSteps    []NextStep
	ResumePrompt string
}

type LastSession struct {
	Date       time.Time
	Duration   time.Duration
	Completed  []TaskEntry
	InProgress []TaskEntry
	Deferred   []TaskEntry
}

type NextStep struct {
	Priority int
	Task     string
	Context  string
}

// RenumberSteps makes priorities sequential starting at 1, keeping the
// current order.
func (h *Handoff) RenumberSteps() {
	for i := range h.NextSteps {
		h.NextSteps[i].Priority = i + 1
	}
}

// BuildHandoff snapshots a ledger into a handoff. When steps is empty,
// default next steps are derived: one "Continue" step per in-progress
// task, then one "Resolve blocker" step per blocker, and only if both
// were empty and a goal is set, a single "Continue working on" step.
func BuildHandoff(ledger Ledger, now time.Time, steps []NextStep, resumePrompt string) Handoff {
	h := Handoff{
		BrandID:   ledger.BrandID,
		CreatedAt: now,
		LastSession: LastSession{
			Date:       now,
			Duration:   now.Sub(ledger.StartedAt),
			Completed:  ledger.Completed,
			InProgress: ledger.InProgress,
		},
		NextSteps: steps,
	}

	if len(h.NextSteps) == 0 {
		h.NextSteps = deriveNextSteps(ledger)
	}
	h.RenumberSteps()

	h.ResumePrompt = resumePrompt
	if h.ResumePrompt == "" {
		h.ResumePrompt = buildResumePrompt(ledger, h.NextSteps)
	}

	return h
}

func deriveNextSteps(ledger Ledger) []NextStep {
	var steps []NextStep
	for _, entry := range ledger.InProgress {
		steps = append(steps, NextStep{Task: "Continue: " + entry.Task})
	}
	for _, blocker := range ledger.Blockers {
		steps = append(steps, NextStep{Task: "Resolve blocker: " + blocker})
	}
	if len(steps) == 0 && ledger.Goal != "" {
		steps = append(steps, NextStep{Task: "Continue working on: " + ledger.Goal})
	}

	return steps
}

// buildResumePrompt concatenates the clauses of the resume text,
// omitting any clause whose source list is empty.
func buildResumePrompt(ledger Ledger, steps []NextStep) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Resuming work on %s.", ledger.BrandName))

	if ledger.Goal != "" {
		parts = append(parts, "Session goal was: "+ledger.Goal+".")
	}
	if len(ledger.Completed) > 0 {
		parts = append(parts, "Recently completed: "+joinTasks(lastTasks(ledger.Completed, 3))+".")
	}
	if len(ledger.InProgress) > 0 {
		parts = append(parts, "Still in progress: "+joinTasks(ledger.InProgress)+".")
	}
	if len(ledger.Blockers) > 0 {
		parts = append(parts, "Open blockers: "+strings.Join(ledger.Blockers, ", ")+".")
	}
	if len(steps) > 0 {
		names := make([]string, 0, 3)
		for _, step := range steps {
			names = append(names, step.Task)
			if len(names) == 3 {
				break
			}
		}
		parts = append(parts, "Suggested next steps: "+strings.Join(names, "; ")+".")
	}

	return strings.Join(parts, " ")
}

func lastTasks(entries []TaskEntry, n int) []TaskEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[len(entries)-n:]
}

func joinTasks(entries []TaskEntry) string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Task)
	}
	return strings.Join(names, ", ")
}
