// Package di registers the codec's providers with a samber/do injector.
//
//	injector := di.New()
//	di.RegisterCodecProviders(injector, di.ConfigOptions{ConfigPath: "./configs", EnvPrefix: "APP"})
//	types := do.MustInvoke[*enum.Registry](injector)
//	enum.MustDefine(types, enum.Value[Color]{Name: "Red", Value: Red})
//	if err := di.StartCodec(ctx, injector); err != nil {
//	    return err
//	}
//	s := do.MustInvoke[*serializer.Serializer](injector)
package di

import "github.com/samber/do/v2"

// Injector alias of do.Injector
type Injector = do.Injector

// RootScope alias of do.RootScope
type RootScope = do.RootScope

// New creates a root injector
var New = do.New
