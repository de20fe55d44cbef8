package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newTaskCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Track tasks in the open session",
	}

	cmd.AddCommand(
		newTaskStartCmd(app),
		newTaskDoneCmd(app),
		newTaskProgressCmd(app),
	)

	return cmd
}

func newTaskStartCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start <task...>",
		Short: "Mark a task as in progress",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			if err := app.ledger.StartTask(cmd.Context(), task); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "In progress: %s\n", task)
			return nil
		},
	}
}

func newTaskDoneCmd(app *app) *cobra.Command {
	var result string

	cmd := &cobra.Command{
		Use:   "done <task...>",
		Short: "Mark a task as completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			if err := app.ledger.CompleteTask(cmd.Context(), task, result); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed: %s\n", task)
			return nil
		},
	}

	cmd.Flags().StringVar(&result, "result", "", "What came out of the task")

	return cmd
}

func newTaskProgressCmd(app *app) *cobra.Command {
	var result string

	cmd := &cobra.Command{
		Use:   "progress <task...>",
		Short: "Update an in-progress task's result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task := strings.Join(args, " ")
			if err := app.ledger.UpdateProgress(cmd.Context(), task, result); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", task)
			return nil
		},
	}

	cmd.Flags().StringVar(&result, "result", "", "Current result or state")
	_ = cmd.MarkFlagRequired("result")

	return cmd
}

func newBlockerCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "blocker",
		Short: "Track blockers in the open session",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <text...>",
			Short: "Record a blocker",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text := strings.Join(args, " ")
				if err := app.ledger.AddBlocker(cmd.Context(), text); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Blocked: %s\n", text)
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <text...>",
			Short: "Clear a blocker",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				text := strings.Join(args, " ")
				if err := app.ledger.RemoveBlocker(cmd.Context(), text); err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unblocked: %s\n", text)
				return nil
			},
		},
	)

	return cmd
}

func newNoteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "note <text...>",
		Short: "Add a note to the open session",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if err := app.ledger.AddNote(cmd.Context(), text); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Noted.")
			return nil
		},
	}
}

func newGoalCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "goal <text...>",
		Short: "Set the open session's goal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if err := app.ledger.SetGoal(cmd.Context(), text); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Goal set: %s\n", text)
			return nil
		},
	}
}
