package domain

// Config is the process-wide store configuration record, holding the
// active-brand pointer and user preferences.
type Config struct {
	ActiveBrand  BrandID
	KeepHandoffs bool
	Preferences  map[string]string
}
