package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

type BrandID string

const brandIDMaxLen = 50

type Brand struct {
	ID            BrandID
	Name          string
	Website       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastSessionAt time.Time
	Business      BusinessInfo
	Audience      string
	Competitors   []string
	Channels      map[string]string
	Strategy      *Strategy
	Notes         []string
	Preferences   map[string]string
}

type BusinessInfo struct {
	Industry         string
	Product          string
	PricingModel     string
	ValueProposition string
}

type Strategy struct {
	Positioning string
	Personas    []Persona
	ChannelPlan map[string]string
	Playbook    []string
}

type Persona struct {
	Name        string
	Description string
	PainPoints  []string
}

func (b Brand) Validate() error {
	if strings.TrimSpace(string(b.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(b.Name) == "" {
		return fmt.Errorf("name is required")
	}

	return nil
}

// LastActivityAt is the sort key for brand listings: the last session
// date when one exists, otherwise the last update.
func (b Brand) LastActivityAt() time.Time {
	if !b.LastSessionAt.IsZero() {
		return b.LastSessionAt
	}
	return b.UpdatedAt
}

// DeriveBrandID turns a display name into its slug identifier:
// lowercased, runs of non-alphanumeric characters collapsed to a single
// hyphen, leading/trailing hyphens trimmed, truncated to 50 characters.
func DeriveBrandID(name string) BrandID {
	var sb strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			hyphen = true
		}
	}

	slug := strings.Trim(sb.String(), "-")
	if len(slug) > brandIDMaxLen {
		slug = strings.Trim(slug[:brandIDMaxLen], "-")
	}

	return BrandID(slug)
}

// BrandUpdate is a partial update: nil fields are left untouched,
// non-nil fields replace the existing value wholesale. Nested structs
// are replaced as units, never deep-merged.
type BrandUpdate struct {
	Name        *string
	Website     *string
	Business    *BusinessInfo
	Audience    *string
	Competitors *[]string
	Channels    *map[string]string
	Strategy    **Strategy
	Notes       *[]string
	Preferences *map[string]string
}

// Apply merges the update over the brand. ID and CreatedAt are never
// modified regardless of the payload.
func (u BrandUpdate) Apply(b *Brand) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Website != nil {
		b.Website = *u.Website
	}
	if u.Business != nil {
		b.Business = *u.Business
	}
	if u.Audience != nil {
		b.Audience = *u.Audience
	}
	if u.Competitors != nil {
		b.Competitors = *u.Competitors
	}
	if u.Channels != nil {
		b.Channels = *u.Channels
	}
	if u.Strategy != nil {
		b.Strategy = *u.Strategy
	}
	if u.Notes != nil {
		b.Notes = *u.Notes
	}
	if u.Preferences != nil {
		b.Preferences = *u.Preferences
	}
}
