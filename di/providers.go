package di

import (
	"context"

	"github.com/KOMKZ/go-yogan-codec/component"
	"github.com/KOMKZ/go-yogan-codec/config"
	"github.com/KOMKZ/go-yogan-codec/converter"
	"github.com/KOMKZ/go-yogan-codec/enum"
	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/metadata"
	"github.com/KOMKZ/go-yogan-codec/serializer"
	"github.com/samber/do/v2"
)

// CodecModule logger module name used by the codec providers
const CodecModule = "codec"

// ConfigOptions where the config loader reads from
type ConfigOptions struct {
	ConfigPath string         // directory holding config.yaml and <env>.yaml
	EnvPrefix  string         // environment override prefix, empty disables
	Defaults   map[string]any // lowest layer
}

// ProvideConfigLoader builds and loads the config loader. It depends on nothing.
func ProvideConfigLoader(opts ConfigOptions) func(do.Injector) (*config.Loader, error) {
	return func(i do.Injector) (*config.Loader, error) {
		return config.NewBuilder().
			WithConfigPath(opts.ConfigPath).
			WithEnvPrefix(opts.EnvPrefix).
			WithDefaults(opts.Defaults).
			Build()
	}
}

// ProvideLoggerManager builds the logger manager from the "logger" section, falling back to defaults
func ProvideLoggerManager(i do.Injector) (*logger.Manager, error) {
	cfg := logger.DefaultManagerConfig()

	var src component.ConfigLoader
	if loader, err := do.Invoke[*config.Loader](i); err == nil {
		src = loader
	}
	if err := config.LoadSection(src, "logger", &cfg); err != nil {
		return nil, err
	}
	return logger.NewManager(cfg), nil
}

// ProvideCtxLogger provides the logger of one module
func ProvideCtxLogger(module string) func(do.Injector) (*logger.CtxZapLogger, error) {
	return func(i do.Injector) (*logger.CtxZapLogger, error) {
		mgr, err := do.Invoke[*logger.Manager](i)
		if err != nil {
			return logger.GetLogger(module), nil
		}
		return mgr.GetLogger(module), nil
	}
}

// ProvideEnumRegistry provides the process-wide enum registry
func ProvideEnumRegistry(i do.Injector) (*enum.Registry, error) {
	log, err := do.Invoke[*logger.CtxZapLogger](i)
	if err != nil {
		return nil, err
	}
	return enum.NewRegistry(log), nil
}

// ProvideCodecComponent creates and initializes the codec component. Start is left to StartCodec.
func ProvideCodecComponent(i do.Injector) (*serializer.Component, error) {
	types, err := do.Invoke[*enum.Registry](i)
	if err != nil {
		return nil, err
	}
	loader, err := do.Invoke[*config.Loader](i)
	if err != nil {
		return nil, err
	}
	log, err := do.Invoke[*logger.CtxZapLogger](i)
	if err != nil {
		return nil, err
	}

	comp := serializer.NewComponent(types, log)
	if err := comp.Init(context.Background(), loader); err != nil {
		return nil, err
	}
	return comp, nil
}

// ProvideMetadataCache provides the component's metadata cache
func ProvideMetadataCache(i do.Injector) (*metadata.Cache, error) {
	comp, err := do.Invoke[*serializer.Component](i)
	if err != nil {
		return nil, err
	}
	return comp.Cache(), nil
}

// ProvideConverterRegistry provides the component's converter registry
func ProvideConverterRegistry(i do.Injector) (*converter.Registry, error) {
	comp, err := do.Invoke[*serializer.Component](i)
	if err != nil {
		return nil, err
	}
	return comp.Converters(), nil
}

// ProvideSerializer provides the component's serializer
func ProvideSerializer(i do.Injector) (*serializer.Serializer, error) {
	comp, err := do.Invoke[*serializer.Component](i)
	if err != nil {
		return nil, err
	}
	return comp.Serializer(), nil
}
