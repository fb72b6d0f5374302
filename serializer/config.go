package serializer

import (
	"github.com/KOMKZ/go-yogan-codec/metadata"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Enum representations
const (
	EnumModeName   = "name"
	EnumModeNumber = "number"
)

// Config the "codec" configuration section
type Config struct {
	// Format host format: json, msgpack
	Format string `mapstructure:"format"`

	// EnumMode preferred enum representation: name (display names) or number (integers)
	EnumMode string `mapstructure:"enum_mode"`

	// DuplicatePolicy display-name collisions: reject, last_wins
	DuplicatePolicy string `mapstructure:"duplicate_policy"`

	// MetricsEnabled records metadata cache metrics
	MetricsEnabled bool `mapstructure:"metrics_enabled"`

	// Warm builds every declared type's metadata on Start
	Warm bool `mapstructure:"warm"`

	// Bindings custom names applied on Start, overriding declared ones
	Bindings []Binding `mapstructure:"bindings"`
}

// Binding gives one member a custom name
type Binding struct {
	Type   string `mapstructure:"type"` // qualified type name, e.g. "orders.Status"
	Member string `mapstructure:"member"`
	Alias  string `mapstructure:"alias"`
}

// Validate implements validation.Validatable so Config.Validate checks every binding
func (b Binding) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Type, validation.Required),
		validation.Field(&b.Member, validation.Required),
		validation.Field(&b.Alias, validation.Required),
	)
}

// DefaultConfig json, names, reject
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields
func (c *Config) ApplyDefaults() {
	if c.Format == "" {
		c.Format = string(FormatJSON)
	}
	if c.EnumMode == "" {
		c.EnumMode = EnumModeName
	}
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = string(metadata.DuplicateReject)
	}
}

// Validate checks the section; run ApplyDefaults first
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Format, validation.Required,
			validation.In(string(FormatJSON), string(FormatMsgpack))),
		validation.Field(&c.EnumMode, validation.Required,
			validation.In(EnumModeName, EnumModeNumber)),
		validation.Field(&c.DuplicatePolicy, validation.Required,
			validation.In(string(metadata.DuplicateReject), string(metadata.DuplicateLastWins))),
		validation.Field(&c.Bindings),
	)
}
