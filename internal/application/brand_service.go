package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/bnema/brand-manager-cli/internal/domain"
	"github.com/bnema/brand-manager-cli/internal/ports"
)

var ErrEmptyBrandName = errors.New("brand name must not be empty")

// BrandService is the registry: CRUD over brand records plus the
// process-wide active-brand pointer.
type BrandService struct {
	brands ports.BrandRepository
	config ports.ConfigRepository
	clock  ports.Clock
}

func NewBrandService(brands ports.BrandRepository, config ports.ConfigRepository, clock ports.Clock) *BrandService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &BrandService{brands: brands, config: config, clock: clock}
}

// Create registers a new brand under its derived slug id and makes it
// the active brand.
func (s *BrandService) Create(ctx context.Context, cmd CreateBrandCommand) (domain.Brand, error) {
	id := domain.DeriveBrandID(cmd.Name)
	if id == "" {
		return domain.Brand{}, ErrEmptyBrandName
	}

	if _, err := s.brands.GetByID(ctx, id); err == nil {
		return domain.Brand{}, fmt.Errorf("brand %q: %w", id, domain.ErrBrandExists)
	} else if !errors.Is(err, domain.ErrBrandNotFound) {
		return domain.Brand{}, fmt.Errorf("check brand id: %w", err)
	}

	now := s.clock.Now()
	brand := domain.Brand{
		ID:        id,
		Name:      cmd.Name,
		Website:   cmd.Website,
		CreatedAt: now,
		UpdatedAt: now,
		Business: domain.BusinessInfo{
			Industry: cmd.Industry,
			Product:  cmd.Product,
		},
		Audience: cmd.Audience,
	}

	if err := s.brands.Save(ctx, brand); err != nil {
		return domain.Brand{}, fmt.Errorf("save brand: %w", err)
	}

	if err := s.SetActive(ctx, id); err != nil {
		return domain.Brand{}, fmt.Errorf("set active brand: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *BrandService) Get(ctx context.Context, id domain.BrandID) (domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("get brand %q: %w", id, err)
	}

	return brand, nil
}

// Update merges a partial update over the stored brand. The merge is
// shallow: supplied top-level fields replace the stored value
// wholesale, nested objects included. ID and CreatedAt always survive.
func (s *BrandService) Update(ctx context.Context, id domain.BrandID, update domain.BrandUpdate) (domain.Brand, error) {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("get brand %q: %w", id, err)
	}

	update.Apply(&brand)
	brand.ID = id
	brand.UpdatedAt = s.clock.Now()

	if err := s.brands.Save(ctx, brand); err != nil {
		return domain.Brand{}, fmt.Errorf("save brand: %w", err)
	}

	return brand, nil
}

// Delete removes the brand record. When the deleted brand was active,
// the active pointer is cleared; otherwise it is left alone.
func (s *BrandService) Delete(ctx context.Context, id domain.BrandID) error {
	if _, err := s.brands.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get brand %q: %w", id, err)
	}

	if err := s.brands.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}

	config, err := s.config.Get(ctx)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}
	if config.ActiveBrand == id {
		config.ActiveBrand = ""
		if err := s.config.Save(ctx, config); err != nil {
			return fmt.Errorf("clear active brand: %w", err)
		}
	}

	return nil
}

// List returns all brands, most recently active first.
func (s *BrandService) List(ctx context.Context) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	sort.SliceStable(brands, func(i, j int) bool {
		return brands[i].LastActivityAt().After(brands[j].LastActivityAt())
	})

	return brands, nil
}

// FindByDomain matches brands whose website contains the given domain,
// case-insensitively and ignoring scheme and www prefixes.
func (s *BrandService) FindByDomain(ctx context.Context, domainName string) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	needle := normalizeDomain(domainName)
	if needle == "" {
		return nil, nil
	}

	var matches []domain.Brand
	for _, brand := range brands {
		if strings.Contains(normalizeDomain(brand.Website), needle) {
			matches = append(matches, brand)
		}
	}

	return matches, nil
}

// Search does case-insensitive substring matching over name, website
// and industry. No ranking beyond match order.
func (s *BrandService) Search(ctx context.Context, query string) ([]domain.Brand, error) {
	brands, err := s.brands.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, nil
	}

	var matches []domain.Brand
	for _, brand := range brands {
		haystacks := []string{brand.Name, brand.Website, brand.Business.Industry}
		for _, haystack := range haystacks {
			if strings.Contains(strings.ToLower(haystack), needle) {
				matches = append(matches, brand)
				break
			}
		}
	}

	return matches, nil
}

// SetActive points the process-wide active-brand pointer at the given
// brand and stamps its last-session date.
func (s *BrandService) SetActive(ctx context.Context, id domain.BrandID) error {
	brand, err := s.brands.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get brand %q: %w", id, err)
	}

	brand.LastSessionAt = s.clock.Now()
	if err := s.brands.Save(ctx, brand); err != nil {
		return fmt.Errorf("stamp last session: %w", err)
	}

	config, err := s.config.Get(ctx)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}
	config.ActiveBrand = id
	if err := s.config.Save(ctx, config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	return nil
}

func (s *BrandService) ClearActive(ctx context.Context) error {
	config, err := s.config.Get(ctx)
	if err != nil {
		return fmt.Errorf("get config: %w", err)
	}

	config.ActiveBrand = ""
	if err := s.config.Save(ctx, config); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	return nil
}

// Active resolves the active-brand pointer to its brand record.
// Returns domain.ErrBrandNotFound when no brand is active or the
// pointer is stale.
func (s *BrandService) Active(ctx context.Context) (domain.Brand, error) {
	config, err := s.config.Get(ctx)
	if err != nil {
		return domain.Brand{}, fmt.Errorf("get config: %w", err)
	}
	if config.ActiveBrand == "" {
		return domain.Brand{}, domain.ErrBrandNotFound
	}

	return s.brands.GetByID(ctx, config.ActiveBrand)
}

func normalizeDomain(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, "://") {
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			trimmed = parsed.Host
		}
	}

	return strings.TrimPrefix(trimmed, "www.")
}
