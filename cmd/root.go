package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bm",
		Short:         "Brand Manager CLI (bm): brand profiles and work-session continuity",
		Long:          "bm (Brand Manager CLI) stores brand marketing profiles and tracks work-session continuity for an AI assistant: begin and end sessions, track tasks and blockers, hand work off between sessions, and archive cross-session learnings.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newBrandCmd(app),
		newSessionCmd(app),
		newTaskCmd(app),
		newBlockerCmd(app),
		newNoteCmd(app),
		newGoalCmd(app),
		newHandoffCmd(app),
		newMemoryCmd(app),
		newLogCmd(app),
		newHistoryCmd(app),
		newContextCmd(app),
		newStatusCmd(app),
	)

	return rootCmd
}
