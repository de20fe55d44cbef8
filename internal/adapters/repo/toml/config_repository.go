package toml

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const configRecord = "config"

type configSchema struct {
	Version      int               `toml:"version"`
	ActiveBrand  string            `toml:"active_brand,omitempty"`
	KeepHandoffs bool              `toml:"keep_handoffs,omitempty"`
	Preferences  map[string]string `toml:"preferences,omitempty"`
	Store        storeSection      `toml:"store,omitempty"`
}

// storeSection mirrors the viper-managed [store] table so saves keep a
// user-supplied path override intact.
type storeSection struct {
	Path string `toml:"path,omitempty"`
}

// ConfigRepository persists the process-wide config record at the store
// root. The store.path key written by the user is carried through
// saves untouched so that updating the active brand never clobbers a
// custom store location.
type ConfigRepository struct {
	store *Store
}

var _ ports.ConfigRepository = (*ConfigRepository)(nil)

func NewConfigRepository(store *Store) *ConfigRepository {
	return &ConfigRepository{store: store}
}

func (r *ConfigRepository) Get(ctx context.Context) (domain.Config, error) {
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	var schema configSchema
	if !r.store.readRecord(configRecord, &schema) {
		return domain.Config{}, nil
	}

	return domain.Config{
		ActiveBrand:  domain.BrandID(schema.ActiveBrand),
		KeepHandoffs: schema.KeepHandoffs,
		Preferences:  schema.Preferences,
	}, nil
}

func (r *ConfigRepository) Save(ctx context.Context, config domain.Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var prior configSchema
	r.store.readRecord(configRecord, &prior)

	return r.store.writeRecord(configRecord, configSchema{
		Version:      1,
		ActiveBrand:  string(config.ActiveBrand),
		KeepHandoffs: config.KeepHandoffs,
		Preferences:  config.Preferences,
		Store:        prior.Store,
	})
}
