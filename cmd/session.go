package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/brand-manager-cli/internal/application"
	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

const durationDisplayUnit = time.Second

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Begin and end work sessions",
	}

	cmd.AddCommand(
		newSessionBeginCmd(app),
		newSessionEndCmd(app),
		newSessionStatusCmd(app),
		newSessionAbandonCmd(app),
	)

	return cmd
}

func newSessionBeginCmd(app *app) *cobra.Command {
	var goal string

	cmd := &cobra.Command{
		Use:   "begin <brand-id>",
		Short: "Open a session for a brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.sessions.Begin(cmd.Context(), domain.BrandID(args[0]), goal)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Session open for %s\n", result.Brand.Name)
			if result.ReplacedStaleLedger {
				_, _ = fmt.Fprintln(out, "Replaced a stale ledger from an unfinished session.")
			}
			if result.Handoff != nil {
				_, _ = fmt.Fprintln(out, result.Handoff.ResumePrompt)
				for _, step := range result.Handoff.NextSteps {
					_, _ = fmt.Fprintf(out, "  %d. %s\n", step.Priority, step.Task)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "Session goal")

	return cmd
}

func newSessionEndCmd(app *app) *cobra.Command {
	var (
		noHandoff   bool
		keepHandoff bool
		steps       []string
	)

	cmd := &cobra.Command{
		Use:   "end",
		Short: "Close the open session and write a handoff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := application.DefaultEndOptions()
			opts.CreateHandoff = !noHandoff
			opts.KeepPriorHandoff = keepHandoff
			for _, step := range steps {
				opts.NextSteps = append(opts.NextSteps, domain.NextStep{Task: step})
			}

			result, err := app.sessions.End(cmd.Context(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Session for %s closed after %s\n", result.BrandID, result.Duration.Round(durationDisplayUnit))
			if result.Handoff != nil {
				_, _ = fmt.Fprintf(out, "Handoff saved with %d next step(s)\n", len(result.Handoff.NextSteps))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHandoff, "no-handoff", false, "Skip writing a handoff")
	cmd.Flags().BoolVar(&keepHandoff, "keep-handoff", false, "Keep the prior handoff when skipping a new one")
	cmd.Flags().StringArrayVar(&steps, "next-step", nil, "Explicit next step (repeatable, overrides derived steps)")

	return cmd
}

func newSessionStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the open session's ledger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := app.ledger.Get(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(ledger)
			}

			summary, err := app.ledger.Summary(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "brand: %s\n", summary.BrandName)
			if summary.Goal != "" {
				_, _ = fmt.Fprintf(out, "goal: %s\n", summary.Goal)
			}
			_, _ = fmt.Fprintf(out, "elapsed: %s\n", summary.Elapsed.Round(durationDisplayUnit))
			_, _ = fmt.Fprintf(out, "completed: %d, in progress: %d, blockers: %d, notes: %d\n",
				summary.Completed, summary.InProgress, summary.Blockers, summary.Notes)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newSessionAbandonCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "abandon",
		Short: "Discard the open session without a handoff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brandID, err := app.sessions.Abandon(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Abandoned session for %s\n", brandID)
			return nil
		},
	}
}
