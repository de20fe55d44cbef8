package toml

import (
	"github.com/bnema/brand-manager-cli/internal/domain"
)

const currentBrandSchemaVersion = 1

type brandSchema struct {
	Version       int               `toml:"version"`
	ID            string            `toml:"id"`
	Name          string            `toml:"name"`
	Website       string            `toml:"website,omitempty"`
	CreatedAt     string            `toml:"created_at"`
	UpdatedAt     string            `toml:"updated_at"`
	LastSessionAt string            `toml:"last_session_at,omitempty"`
	Business      businessSchema    `toml:"business,omitempty"`
	Audience      string            `toml:"audience,omitempty"`
	Competitors   []string          `toml:"competitors,omitempty"`
	Channels      map[string]string `toml:"channels,omitempty"`
	Strategy      *strategySchema   `toml:"strategy,omitempty"`
	Notes         []string          `toml:"notes,omitempty"`
	Preferences   map[string]string `toml:"preferences,omitempty"`
}

type businessSchema struct {
	Industry         string `toml:"industry,omitempty"`
	Product          string `toml:"product,omitempty"`
	PricingModel     string `toml:"pricing_model,omitempty"`
	ValueProposition string `toml:"value_proposition,omitempty"`
}

type strategySchema struct {
	Positioning string            `toml:"positioning,omitempty"`
	Personas    []personaSchema   `toml:"personas,omitempty"`
	ChannelPlan map[string]string `toml:"channel_plan,omitempty"`
	Playbook    []string          `toml:"playbook,omitempty"`
}

type personaSchema struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description,omitempty"`
	PainPoints  []string `toml:"pain_points,omitempty"`
}

func brandToSchema(brand domain.Brand) brandSchema {
	return brandSchema{
		Version:       currentBrandSchemaVersion,
		ID:            string(brand.ID),
		Name:          brand.Name,
		Website:       brand.Website,
		CreatedAt:     formatTime(brand.CreatedAt),
		UpdatedAt:     formatTime(brand.UpdatedAt),
		LastSessionAt: formatTime(brand.LastSessionAt),
		Business: businessSchema{
			Industry:         brand.Business.Industry,
			Product:          brand.Business.Product,
			PricingModel:     brand.Business.PricingModel,
			ValueProposition: brand.Business.ValueProposition,
		},
		Audience:    brand.Audience,
		Competitors: brand.Competitors,
		Channels:    brand.Channels,
		Strategy:    strategyToSchema(brand.Strategy),
		Notes:       brand.Notes,
		Preferences: brand.Preferences,
	}
}

func brandFromSchema(schema brandSchema) domain.Brand {
	return domain.Brand{
		ID:            domain.BrandID(schema.ID),
		Name:          schema.Name,
		Website:       schema.Website,
		CreatedAt:     parseTime(schema.CreatedAt),
		UpdatedAt:     parseTime(schema.UpdatedAt),
		LastSessionAt: parseTime(schema.LastSessionAt),
		Business: domain.BusinessInfo{
			Industry:         schema.Business.Industry,
			Product:          schema.Business.Product,
			PricingModel:     schema.Business.PricingModel,
			ValueProposition: schema.Business.ValueProposition,
		},
		Audience:    schema.Audience,
		Competitors: schema.Competitors,
		Channels:    schema.Channels,
		Strategy:    strategyFromSchema(schema.Strategy),
		Notes:       schema.Notes,
		Preferences: schema.Preferences,
	}
}

func strategyToSchema(strategy *domain.Strategy) *strategySchema {
	if strategy == nil {
		return nil
	}

	personas := make([]personaSchema, 0, len(strategy.Personas))
	for _, persona := range strategy.Personas {
		personas = append(personas, personaSchema{
			Name:        persona.Name,
			Description: persona.Description,
			PainPoints:  persona.PainPoints,
		})
	}
	if len(personas) == 0 {
		personas = nil
	}

	return &strategySchema{
		Positioning: strategy.Positioning,
		Personas:    personas,
		ChannelPlan: strategy.ChannelPlan,
		Playbook:    strategy.Playbook,
	}
}

func strategyFromSchema(schema *strategySchema) *domain.Strategy {
	if schema == nil {
		return nil
	}

	personas := make([]domain.Persona, 0, len(schema.Personas))
	for _, persona := range schema.Personas {
		personas = append(personas, domain.Persona{
			Name:        persona.Name,
			Description: persona.Description,
			PainPoints:  persona.PainPoints,
		})
	}
	if len(personas) == 0 {
		personas = nil
	}

	return &domain.Strategy{
		Positioning: schema.Positioning,
		Personas:    personas,
		ChannelPlan: schema.ChannelPlan,
		Playbook:    schema.Playbook,
	}
}
