package cmd

import (
	"errors"
	"fmt"
	"time"

	sessionrender "github.com/bnema/brand-manager-cli/internal/adapters/render/session"
	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active brand, open session and pending handoff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			brand, err := app.brands.Active(cmd.Context())
			if err != nil {
				if errors.Is(err, domain.ErrBrandNotFound) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No active brand.")
					return nil
				}
				return err
			}

			view := sessionrender.View{Brand: brand}

			if ledger, err := app.ledger.Get(cmd.Context()); err == nil {
				view.Ledger = &ledger
			} else if !errors.Is(err, domain.ErrNoActiveSession) {
				return err
			}

			if handoff, err := app.handoffs.Get(cmd.Context(), brand.ID); err == nil {
				view.Handoff = &handoff
			} else if !errors.Is(err, domain.ErrHandoffNotFound) {
				return err
			}

			rendered, err := sessionrender.Render(view, sessionrender.RenderOptions{Now: time.Now()})
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}
