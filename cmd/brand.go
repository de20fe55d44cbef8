package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/brand-manager-cli/internal/application"
	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newBrandCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "brand",
		Short: "Manage brand profiles",
	}

	cmd.AddCommand(
		newBrandCreateCmd(app),
		newBrandListCmd(app),
		newBrandShowCmd(app),
		newBrandUpdateCmd(app),
		newBrandDeleteCmd(app),
		newBrandSearchCmd(app),
		newBrandSwitchCmd(app),
	)

	return cmd
}

func newBrandCreateCmd(app *app) *cobra.Command {
	var create application.CreateBrandCommand

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a brand and make it active",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brand, err := app.brands.Create(cmd.Context(), create)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created brand %s (%s), now active\n", brand.Name, brand.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&create.Name, "name", "", "Brand display name")
	cmd.Flags().StringVar(&create.Website, "website", "", "Brand website")
	cmd.Flags().StringVar(&create.Industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&create.Product, "product", "", "Product or service")
	cmd.Flags().StringVar(&create.Audience, "audience", "", "Audience description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newBrandListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List brands, most recently active first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brands, err := app.brands.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, brands)
			}

			active, _ := app.brands.Active(cmd.Context())
			for _, brand := range brands {
				marker := " "
				if brand.ID == active.ID && active.ID != "" {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, brand.ID, brand.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newBrandShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <brand-id>",
		Short: "Show one brand profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			brand, err := app.brands.Get(cmd.Context(), domain.BrandID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, brand)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n", brand.Name, brand.ID)
			if brand.Website != "" {
				_, _ = fmt.Fprintf(out, "website: %s\n", brand.Website)
			}
			if brand.Business.Industry != "" {
				_, _ = fmt.Fprintf(out, "industry: %s\n", brand.Business.Industry)
			}
			if brand.Business.Product != "" {
				_, _ = fmt.Fprintf(out, "product: %s\n", brand.Business.Product)
			}
			if brand.Audience != "" {
				_, _ = fmt.Fprintf(out, "audience: %s\n", brand.Audience)
			}
			for _, competitor := range brand.Competitors {
				_, _ = fmt.Fprintf(out, "competitor: %s\n", competitor)
			}
			for _, note := range brand.Notes {
				_, _ = fmt.Fprintf(out, "note: %s\n", note)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func newBrandUpdateCmd(app *app) *cobra.Command {
	var (
		name     string
		website  string
		audience string
		industry string
		product  string
	)

	cmd := &cobra.Command{
		Use:   "update <brand-id>",
		Short: "Update brand fields (supplied fields replace stored values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.BrandID(args[0])

			var update domain.BrandUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("website") {
				update.Website = &website
			}
			if cmd.Flags().Changed("audience") {
				update.Audience = &audience
			}
			if cmd.Flags().Changed("industry") || cmd.Flags().Changed("product") {
				brand, err := app.brands.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				business := brand.Business
				if cmd.Flags().Changed("industry") {
					business.Industry = industry
				}
				if cmd.Flags().Changed("product") {
					business.Product = product
				}
				update.Business = &business
			}

			brand, err := app.brands.Update(cmd.Context(), id, update)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated brand %s\n", brand.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&website, "website", "", "Website")
	cmd.Flags().StringVar(&audience, "audience", "", "Audience description")
	cmd.Flags().StringVar(&industry, "industry", "", "Industry")
	cmd.Flags().StringVar(&product, "product", "", "Product or service")

	return cmd
}

func newBrandDeleteCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <brand-id>",
		Short: "Delete a brand profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := domain.BrandID(args[0])
			if err := app.brands.Delete(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted brand %s\n", id)
			return nil
		},
	}
}

func newBrandSearchCmd(app *app) *cobra.Command {
	var byDomain bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find brands by name, website or industry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				matches []domain.Brand
				err     error
			)
			if byDomain {
				matches, err = app.brands.FindByDomain(cmd.Context(), args[0])
			} else {
				matches, err = app.brands.Search(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if len(matches) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No brands matched.")
				return nil
			}
			for _, brand := range matches {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", brand.ID, brand.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&byDomain, "domain", false, "Match against website domains only")

	return cmd
}

func newBrandSwitchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <brand-id|none>",
		Short: "Set or clear the active brand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "none" {
				if err := app.brands.ClearActive(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared active brand")
				return nil
			}

			id := domain.BrandID(args[0])
			if err := app.brands.SetActive(cmd.Context(), id); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to brand %s\n", id)
			return nil
		},
	}
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
