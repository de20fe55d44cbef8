package ports

import (
	"context"
	"time"

	"github.com/bnema/brand-manager-cli/internal/domain"
)

// HookSnapshot is the lightweight state mirror consumed by shell hooks,
// kept as a JSON sibling of the TOML store.
type HookSnapshot struct {
	ActiveBrand domain.BrandID `json:"active_brand"`
	SessionOpen bool           `json:"session_open"`
	StartedAt   time.Time      `json:"started_at,omitzero"`
	Goal        string         `json:"goal,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SnapshotWriter interface {
	Write(ctx context.Context, snapshot HookSnapshot) error
}
