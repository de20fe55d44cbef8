package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newHandoffCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handoff",
		Short: "Inspect and edit per-brand session handoffs",
	}

	cmd.AddCommand(
		newHandoffShowCmd(app),
		newHandoffClearCmd(app),
		newHandoffStepCmd(app),
	)

	return cmd
}

func newHandoffShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <brand-id>",
		Short: "Show a brand's pending handoff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handoff, err := app.handoffs.Get(cmd.Context(), domain.BrandID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, handoff)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "handoff for %s, written %s\n", handoff.BrandID, handoff.CreatedAt.Format("2006-01-02 15:04"))
			_, _ = fmt.Fprintf(out, "last session: %s (%s)\n",
				handoff.LastSession.Date.Format("2006-01-02"), handoff.LastSession.Duration.Round(durationDisplayUnit))
			for _, entry := range handoff.LastSession.Completed {
				line := "done: " + entry.Task
				if entry.Result != "" {
					line += " - " + entry.Result
				}
				_, _ = fmt.Fprintln(out, line)
			}
			for _, entry := range handoff.LastSession.InProgress {
				_, _ = fmt.Fprintln(out, "in progress: "+entry.Task)
			}
			for _, step := range handoff.NextSteps {
				_, _ = fmt.Fprintf(out, "%d. %s\n", step.Priority, step.Task)
			}
			if handoff.ResumePrompt != "" {
				_, _ = fmt.Fprintln(out, handoff.ResumePrompt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newHandoffClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <brand-id>",
		Short: "Delete a brand's pending handoff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.BrandID(args[0])
			if err := app.handoffs.Clear(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared handoff for %s\n", id)
			return nil
		},
	}
}

func newHandoffStepCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "step",
		Short: "Edit a handoff's next steps",
	}

	var brandID string
	var stepContext string

	addCmd := &cobra.Command{
		Use:   "add <task...>",
		Short: "Append a next step",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handoff, err := app.handoffs.AddNextStep(cmd.Context(), domain.BrandID(brandID), strings.Join(args, " "), stepContext)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Handoff for %s now has %d step(s)\n", handoff.BrandID, len(handoff.NextSteps))
			return nil
		},
	}
	addCmd.Flags().StringVar(&stepContext, "context", "", "Why this step matters")

	removeCmd := &cobra.Command{
		Use:   "remove <priority>",
		Short: "Remove the step with the given priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priority, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse priority %q: %w", args[0], err)
			}

			handoff, err := app.handoffs.RemoveNextStep(cmd.Context(), domain.BrandID(brandID), priority)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Handoff for %s now has %d step(s)\n", handoff.BrandID, len(handoff.NextSteps))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&brandID, "brand", "", "Brand ID")
	_ = cmd.MarkPersistentFlagRequired("brand")

	cmd.AddCommand(addCmd, removeCmd)

	return cmd
}
