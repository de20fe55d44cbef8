package toml

import (
	"context"
	"path"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

const brandsDir = "brands"

// BrandRepository stores one TOML record per brand under brands/.
type BrandRepository struct {
	store *Store
}

var _ ports.BrandRepository = (*BrandRepository)(nil)

func NewBrandRepository(store *Store) *BrandRepository {
	return &BrandRepository{store: store}
}

func (r *BrandRepository) GetByID(ctx context.Context, id domain.BrandID) (domain.Brand, error) {
	if err := ctx.Err(); err != nil {
		return domain.Brand{}, err
	}

	var schema brandSchema
	if !r.store.readRecord(brandPath(id), &schema) {
		return domain.Brand{}, domain.ErrBrandNotFound
	}

	return brandFromSchema(schema), nil
}

func (r *BrandRepository) List(ctx context.Context) ([]domain.Brand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names := r.store.listRecords(brandsDir)
	brands := make([]domain.Brand, 0, len(names))
	for _, name := range names {
		var schema brandSchema
		if !r.store.readRecord(path.Join(brandsDir, name), &schema) {
			continue
		}
		brands = append(brands, brandFromSchema(schema))
	}

	return brands, nil
}

func (r *BrandRepository) Save(ctx context.Context, brand domain.Brand) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.writeRecord(brandPath(brand.ID), brandToSchema(brand))
}

func (r *BrandRepository) Delete(ctx context.Context, id domain.BrandID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.deleteRecord(brandPath(id))
}

func brandPath(id domain.BrandID) string {
	return path.Join(brandsDir, string(id))
}
