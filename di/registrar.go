package di

import "github.com/samber/do/v2"

// RegisterCodecProviders registers every codec provider, lazily, by dependency layer
func RegisterCodecProviders(injector *do.RootScope, opts ConfigOptions) {
	// Layer 0: config
	do.Provide(injector, ProvideConfigLoader(opts))

	// Layer 1: logging
	do.Provide(injector, ProvideLoggerManager)
	do.Provide(injector, ProvideCtxLogger(CodecModule))

	// Layer 2: declarations
	do.Provide(injector, ProvideEnumRegistry)

	// Layer 3: codec
	do.Provide(injector, ProvideCodecComponent)
	do.Provide(injector, ProvideMetadataCache)
	do.Provide(injector, ProvideConverterRegistry)
	do.Provide(injector, ProvideSerializer)
}
