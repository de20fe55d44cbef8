package session

import (
	"fmt"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// View is everything the status screen can show. Ledger and Handoff
// are nil when absent.
type View struct {
	Brand   domain.Brand
	Ledger  *domain.Ledger
	Handoff *domain.Handoff
}

type RenderOptions struct {
	Now time.Time
}

func renderView(view View, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Brand Session Status"),
		s.brand.Render(brandTitle(view.Brand)),
	}

	if view.Brand.Business.Industry != "" {
		lines = append(lines, s.detail.Render("industry: "+view.Brand.Business.Industry))
	}

	lines = append(lines, s.section.Render(renderLedger(view.Ledger, opts, s)))

	if view.Handoff != nil {
		lines = append(lines, s.section.Render(renderHandoff(view.Handoff, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func brandTitle(brand domain.Brand) string {
	if brand.Website != "" {
		return fmt.Sprintf("%s (%s) - %s", brand.Name, brand.ID, brand.Website)
	}
	return fmt.Sprintf("%s (%s)", brand.Name, brand.ID)
}

func renderLedger(ledger *domain.Ledger, opts RenderOptions, s styles) string {
	if ledger == nil {
		return s.empty.Render("No session open.")
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	summary := ledger.Summary(now)

	parts := []string{
		s.header.Render(fmt.Sprintf("session open for %s", formatElapsed(summary.Elapsed))),
	}
	if ledger.Goal != "" {
		parts = append(parts, s.label.Render("goal: ")+s.detail.Render(ledger.Goal))
	}

	parts = append(parts, taskLines("done", ledger.Completed, s.done, s)...)
	parts = append(parts, taskLines("in progress", ledger.InProgress, s.detail, s)...)

	for _, blocker := range ledger.Blockers {
		parts = append(parts, s.warning.Render("blocked: ")+s.detail.Render(blocker))
	}

	if len(ledger.Completed) == 0 && len(ledger.InProgress) == 0 && len(ledger.Blockers) == 0 {
		parts = append(parts, s.empty.Render("no tasks tracked yet"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func taskLines(label string, entries []domain.TaskEntry, valueStyle lipgloss.Style, s styles) []string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		text := entry.Task
		if entry.Result != "" {
			text += " - " + entry.Result
		}
		lines = append(lines, s.label.Render(label+": ")+valueStyle.Render(text))
	}

	return lines
}

func renderHandoff(handoff *domain.Handoff, s styles) string {
	parts := []string{
		s.header.Render(fmt.Sprintf("handoff from %s", handoff.LastSession.Date.Format("2006-01-02"))),
	}

	for _, step := range handoff.NextSteps {
		line := s.step.Render(fmt.Sprintf("%d. %s", step.Priority, step.Task))
		if step.Context != "" {
			line += " " + s.stepMeta.Render("("+step.Context+")")
		}
		parts = append(parts, line)
	}
	if len(handoff.NextSteps) == 0 {
		parts = append(parts, s.empty.Render("no next steps recorded"))
	}

	if handoff.ResumePrompt != "" {
		parts = append(parts, s.detail.Render(handoff.ResumePrompt))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func formatElapsed(elapsed time.Duration) string {
	elapsed = elapsed.Round(time.Minute)
	if elapsed < time.Minute {
		return "less than a minute"
	}

	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
