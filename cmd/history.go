package cmd

import (
	"fmt"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *app) *cobra.Command {
	var (
		inputMethod string
		target      string
		output      string
		insights    []string
		actions     []string
	)

	cmd := &cobra.Command{
		Use:   "log <activity-type>",
		Short: "Log an activity in the open session",
		Long:  "Log an activity (keyword-research, content-planning, content-creation, competitor-analysis, strategy-review, performance-review, brand-update, other) into the open session's history entry.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activity := domain.Activity{
				Type:        domain.ActivityType(args[0]),
				InputMethod: inputMethod,
				Target:      target,
				Output:      output,
				Insights:    insights,
			}
			now := time.Now()
			for _, action := range actions {
				activity.ActionItems = append(activity.ActionItems, domain.ActionItem{
					ID:        domain.NewActionItemID(now),
					Task:      action,
					Status:    "open",
					CreatedAt: now,
				})
			}

			if err := app.sessions.LogActivity(cmd.Context(), activity); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %s\n", activity.Type)
			return nil
		},
	}

	cmd.Flags().StringVar(&inputMethod, "input", "", "How the activity was requested (natural-language, command, hook)")
	cmd.Flags().StringVar(&target, "target", "", "What the activity targeted")
	cmd.Flags().StringVar(&output, "output", "", "Output summary")
	cmd.Flags().StringArrayVar(&insights, "insight", nil, "Insight (repeatable)")
	cmd.Flags().StringArrayVar(&actions, "action", nil, "Follow-up action item (repeatable)")

	return cmd
}

func newHistoryCmd(app *app) *cobra.Command {
	var (
		month  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history <brand-id>",
		Short: "Show a brand's session history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.BrandID(args[0])

			months := []string{month}
			if month == "" {
				var err error
				months, err = app.history.ListMonths(cmd.Context(), id)
				if err != nil {
					return err
				}
			}

			var logs []domain.MonthLog
			for _, m := range months {
				log, err := app.history.GetMonth(cmd.Context(), id, m)
				if err != nil {
					return err
				}
				logs = append(logs, log)
			}

			if asJSON {
				return writeJSON(cmd, logs)
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, log := range logs {
				for _, session := range log.Sessions {
					total++
					_, _ = fmt.Fprintf(out, "%s  %s  %d activities\n",
						session.Date.Format("2006-01-02"), session.Duration.Round(durationDisplayUnit), len(session.Activities))
					for _, activity := range session.Activities {
						line := "  " + string(activity.Type)
						if activity.Target != "" {
							line += ": " + activity.Target
						}
						_, _ = fmt.Fprintln(out, line)
					}
				}
			}
			if total == 0 {
				_, _ = fmt.Fprintln(out, "No sessions on record.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month bucket (YYYY-MM)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
