package domain

import (
	"strings"
	"time"
)

// Ledger is the single open session's working memory. At most one
// ledger exists at a time; it lives from session begin to session end.
type Ledger struct {
	BrandID    BrandID
	BrandName  string
	StartedAt  time.Time
	Goal       string
	InProgress []TaskEntry
	Completed  []TaskEntry
	Blockers   []string
	Notes      []string
}

type TaskEntry struct {
	Task   string
	Result string
	At     time.Time
}

type LedgerSummary struct {
	BrandID    BrandID
	BrandName  string
	Goal       string
	Elapsed    time.Duration
	InProgress int
	Completed  int
	Blockers   int
	Notes      int
}

// taskKey is the dedup key for tasks, blockers and notes: lowercased
// and trimmed, so differently-cased variants of the same text collide.
func taskKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// AddInProgress appends a task unless one with the same key is already
// tracked. Reports whether the task was added.
func (l *Ledger) AddInProgress(task string, now time.Time) bool {
	key := taskKey(task)
	for _, entry := range l.InProgress {
		if taskKey(entry.Task) == key {
			return false
		}
	}

	l.InProgress = append(l.InProgress, TaskEntry{Task: task, At: now})
	return true
}

// Complete moves a matching in-progress task to the completed list,
// stamping the completion time and result. A task that was never
// tracked is appended to completed directly: completing unknown work is
// "log something already done", not an error.
func (l *Ledger) Complete(task, result string, now time.Time) {
	key := taskKey(task)
	for i, entry := range l.InProgress {
		if taskKey(entry.Task) != key {
			continue
		}

		entry.At = now
		entry.Result = result
		l.InProgress = append(l.InProgress[:i], l.InProgress[i+1:]...)
		l.Completed = append(l.Completed, entry)
		return
	}

	l.Completed = append(l.Completed, TaskEntry{Task: task, Result: result, At: now})
}

// UpdateProgress replaces the result of a tracked in-progress task.
// Silent no-op when the task is not tracked.
func (l *Ledger) UpdateProgress(task, result string) {
	key := taskKey(task)
	for i := range l.InProgress {
		if taskKey(l.InProgress[i].Task) == key {
			l.InProgress[i].Result = result
			return
		}
	}
}

func (l *Ledger) AddBlocker(text string) bool {
	key := taskKey(text)
	for _, blocker := range l.Blockers {
		if taskKey(blocker) == key {
			return false
		}
	}

	l.Blockers = append(l.Blockers, text)
	return true
}

func (l *Ledger) RemoveBlocker(text string) bool {
	key := taskKey(text)
	for i, blocker := range l.Blockers {
		if taskKey(blocker) == key {
			l.Blockers = append(l.Blockers[:i], l.Blockers[i+1:]...)
			return true
		}
	}

	return false
}

// AddNote appends a note, deduplicating on exact match.
func (l *Ledger) AddNote(text string) bool {
	for _, note := range l.Notes {
		if note == text {
			return false
		}
	}

	l.Notes = append(l.Notes, text)
	return true
}

func (l *Ledger) SetGoal(text string) {
	l.Goal = text
}

func (l Ledger) Summary(now time.Time) LedgerSummary {
	return LedgerSummary{
		BrandID:    l.BrandID,
		BrandName:  l.BrandName,
		Goal:       l.Goal,
		Elapsed:    now.Sub(l.StartedAt),
		InProgress: len(l.InProgress),
		Completed:  len(l.Completed),
		Blockers:   len(l.Blockers),
		Notes:      len(l.Notes),
	}
}
