package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/brand-manager-cli/internal/application"
	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newMemoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Archive and query cross-session learnings",
	}

	cmd.AddCommand(
		newMemoryStoreCmd(app),
		newMemoryListCmd(app),
		newMemoryPromoteCmd(app),
		newMemoryConfidenceCmd(app),
		newMemoryDeleteCmd(app),
	)

	return cmd
}

func newMemoryStoreCmd(app *app) *cobra.Command {
	var (
		brandID      string
		learningType string
		category     string
		content      string
		contextNote  string
		confidence   string
		metrics      []string
	)

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Record a learning",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := application.StoreLearningCommand{
				BrandID:    domain.BrandID(brandID),
				Type:       domain.LearningType(learningType),
				Category:   category,
				Content:    content,
				Context:    contextNote,
				Confidence: domain.Confidence(confidence),
			}
			for _, metric := range metrics {
				key, value, ok := strings.Cut(metric, "=")
				if !ok {
					return fmt.Errorf("metric %q is not key=value", metric)
				}
				if store.Metrics == nil {
					store.Metrics = map[string]string{}
				}
				store.Metrics[key] = value
			}

			learning, err := app.memory.Store(cmd.Context(), store)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stored learning %s\n", learning.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&brandID, "brand", "", "Brand ID, or empty for a global learning")
	cmd.Flags().StringVar(&learningType, "type", "", "Learning type (success-pattern, outcome, user-preference, rejected-idea, recurring-pattern, mistake-to-avoid)")
	cmd.Flags().StringVar(&category, "category", "", "Free-text category")
	cmd.Flags().StringVar(&content, "content", "", "The learning itself")
	cmd.Flags().StringVar(&contextNote, "context", "", "Context string")
	cmd.Flags().StringVar(&confidence, "confidence", "", "Confidence (high, medium, low; default medium)")
	cmd.Flags().StringArrayVar(&metrics, "metric", nil, "Metric as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func newMemoryListCmd(app *app) *cobra.Command {
	var (
		brandID  string
		activity string
		category string
		keywords []string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List learnings relevant to a brand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			query := application.RelevanceQuery{
				Activity: domain.ActivityType(activity),
				Category: category,
				Keywords: keywords,
			}

			learnings, err := app.memory.GetRelevant(cmd.Context(), domain.BrandID(brandID), query)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, learnings)
			}

			if len(learnings) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No learnings matched.")
				return nil
			}
			for _, learning := range learnings {
				scope := string(learning.BrandID)
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t[%s/%s/%s]\t%s\n",
					learning.ID, scope, learning.Type, learning.Confidence, learning.Content)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&brandID, "brand", "", "Brand ID")
	cmd.Flags().StringVar(&activity, "activity", "", "Activity type the learnings should inform")
	cmd.Flags().StringVar(&category, "category", "", "Category substring")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "Keyword (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	_ = cmd.MarkFlagRequired("brand")

	return cmd
}

func newMemoryPromoteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <learning-id>",
		Short: "Promote a brand learning to global scope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			learning, err := app.memory.PromoteToGlobal(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Learning %s is now global\n", learning.ID)
			return nil
		},
	}
}

func newMemoryConfidenceCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "confidence <learning-id> <high|medium|low>",
		Short: "Update a learning's confidence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.memory.UpdateConfidence(cmd.Context(), args[0], domain.Confidence(args[1])); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Learning %s confidence set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newMemoryDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <learning-id>",
		Short: "Delete a learning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.memory.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted learning %s\n", args[0])
			return nil
		},
	}
}
