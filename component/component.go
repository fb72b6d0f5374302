// Package component defines the lifecycle contracts components implement.
// It imports nothing from the rest of the module to avoid cycles.
package component

import "context"

// Component names
const (
	ComponentConfig = "config"
	ComponentLogger = "logger"
	ComponentCodec  = "codec"
)

// Component unified lifecycle: Init → Start → Stop
type Component interface {
	// Name unique component name, used in DependsOn declarations
	Name() string

	// DependsOn names the components that must be initialized first.
	// An "optional:" prefix marks a dependency that may be absent.
	DependsOn() []string

	// Init reads configuration and creates resources without serving anything
	Init(ctx context.Context, loader ConfigLoader) error

	// Start makes the component usable
	Start(ctx context.Context) error

	// Stop releases resources; calling it twice is allowed
	Stop(ctx context.Context) error
}
