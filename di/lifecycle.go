package di

import (
	"context"

	"github.com/KOMKZ/go-yogan-codec/logger"
	"github.com/KOMKZ/go-yogan-codec/serializer"
	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel"
)

// StartCodec starts the codec component once the application has declared its enum types.
// Metrics go to the global otel meter provider when the section enables them.
func StartCodec(ctx context.Context, injector do.Injector) error {
	comp, err := do.Invoke[*serializer.Component](injector)
	if err != nil {
		return err
	}

	if comp.IsMetricsEnabled() {
		if err := comp.RegisterMetrics(otel.GetMeterProvider().Meter("github.com/KOMKZ/go-yogan-codec")); err != nil {
			return err
		}
	}
	return comp.Start(ctx)
}

// StopCodec stops the codec component and flushes the loggers
func StopCodec(ctx context.Context, injector do.Injector) error {
	comp, err := do.Invoke[*serializer.Component](injector)
	if err != nil {
		return err
	}
	err = comp.Stop(ctx)

	if mgr, mgrErr := do.Invoke[*logger.Manager](injector); mgrErr == nil {
		mgr.CloseAll()
	}
	return err
}
