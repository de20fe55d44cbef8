package ports

import (
	"context"

	"github.com/bnema/brand-manager-cli/internal/domain"
)

type BrandRepository interface {
	GetByID(ctx context.Context, id domain.BrandID) (domain.Brand, error)
	List(ctx context.Context) ([]domain.Brand, error)
	Save(ctx context.Context, brand domain.Brand) error
	Delete(ctx context.Context, id domain.BrandID) error
}

type ConfigRepository interface {
	Get(ctx context.Context) (domain.Config, error)
	Save(ctx context.Context, config domain.Config) error
}
