package serializer

import (
	"context"

	"github.com/KOMKZ/go-yogan-codec/component"
	"github.com/KOMKZ/go-yogan-codec/config"
	"github.com/KOMKZ/go-yogan-codec/converter"
	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/metadata"
	"github.com/KOMKZ/go-yogan-codec/validator"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ConfigKey the configuration section read by the component
const ConfigKey = "codec"

// Component wires the codec from the "codec" section over an application's enum registry.
//
// Init reads and validates the section and builds the cache, converters and serializer.
// Start applies configured bindings, which needs the application's types to be declared by then.
type Component struct {
	types *enum.Registry
	log   *logger.CtxZapLogger

	config     Config
	cache      *metadata.Cache
	converters *converter.Registry
	serializer *Serializer
}

var (
	_ component.Component       = (*Component)(nil)
	_ component.MetricsProvider = (*Component)(nil)
)

// NewComponent creates the component over types. A nil logger falls back to the "codec" module logger.
func NewComponent(types *enum.Registry, log *logger.CtxZapLogger) *Component {
	if log == nil {
		log = logger.GetLogger("codec")
	}
	return &Component{types: types, log: log}
}

// Name implements component.Component
func (c *Component) Name() string {
	return component.ComponentCodec
}

// DependsOn implements component.Component
func (c *Component) DependsOn() []string {
	return []string{component.ComponentConfig, component.ComponentLogger}
}

// Init implements component.Component. A missing section means defaults.
func (c *Component) Init(ctx context.Context, loader component.ConfigLoader) error {
	var cfg Config
	if err := config.LoadSection(loader, ConfigKey, &cfg); err != nil {
		return validator.WrapAs(err, ErrConfigInvalid)
	}

	policy, err := metadata.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return ErrConfigInvalid.Wrap(err)
	}

	c.config = cfg
	c.cache = metadata.NewCache(c.types,
		metadata.WithLogger(c.log),
		metadata.WithDuplicatePolicy(policy),
		metadata.WithMetrics(cfg.MetricsEnabled),
	)
	c.converters = NewConverters(c.types, c.cache, cfg.EnumMode, c.log)

	c.serializer, err = New(Format(cfg.Format), c.converters, c.log)
	if err != nil {
		return err
	}

	c.log.DebugCtx(ctx, "codec component initialized",
		zap.String("format", cfg.Format),
		zap.String("enum_mode", cfg.EnumMode),
		zap.String("duplicate_policy", cfg.DuplicatePolicy))
	return nil
}

// Start implements component.Component
func (c *Component) Start(ctx context.Context) error {
	for _, b := range c.config.Bindings {
		if err := c.types.Bind(b.Type, b.Member, b.Alias); err != nil {
			return ErrConfigInvalid.
				WithData("type", b.Type).
				WithData("member", b.Member).
				Wrap(err)
		}
	}
	// tables built before the bindings would miss them
	c.cache.Reset()

	if c.config.Warm {
		if err := c.cache.Warm(ctx); err != nil {
			return err
		}
	}

	c.log.InfoCtx(ctx, "codec component started",
		zap.Int("bindings", len(c.config.Bindings)),
		zap.Int("types", len(c.types.Types())))
	return nil
}

// Stop implements component.Component
func (c *Component) Stop(ctx context.Context) error {
	c.log.InfoCtx(ctx, "codec component stopped")
	return nil
}

// MetricsName implements component.MetricsProvider
func (c *Component) MetricsName() string {
	return component.ComponentCodec
}

// IsMetricsEnabled implements component.MetricsProvider
func (c *Component) IsMetricsEnabled() bool {
	return c.config.MetricsEnabled
}

// RegisterMetrics implements component.MetricsProvider; call it after Init
func (c *Component) RegisterMetrics(meter metric.Meter) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.RegisterMetrics(meter)
}

// Config returns the effective configuration
func (c *Component) Config() Config {
	return c.config
}

// Cache returns the metadata cache
func (c *Component) Cache() *metadata.Cache {
	return c.cache
}

// Converters returns the converter registry
func (c *Component) Converters() *converter.Registry {
	return c.converters
}

// Serializer returns the configured serializer
func (c *Component) Serializer() *Serializer {
	return c.serializer
}

// NewConverters builds the converter set for an enum mode: display names by default, integers for "number"
func NewConverters(types *enum.Registry, cache *metadata.Cache, enumMode string, log *logger.CtxZapLogger) *converter.Registry {
	if enumMode == EnumModeNumber {
		return converter.NewRegistry(log, converter.NewNumericEnumConverter(types))
	}
	return converter.NewRegistry(log, converter.NewEnumConverter(types, cache))
}
