package config

// ConfigSource supplies one layer of configuration.
// Suggested priorities: defaults 1, config.yaml 10, <env>.yaml 20, environment variables 50.
type ConfigSource interface {
	// Name identifies the source in errors and logs
	Name() string

	// Priority higher values override lower ones
	Priority() int

	// Load returns the nested settings of the source
	Load() (map[string]any, error)
}

// MapSource serves a fixed map, typically defaults or test fixtures
type MapSource struct {
	name     string
	data     map[string]any
	priority int
}

// NewMapSource creates a source over data
func NewMapSource(name string, data map[string]any, priority int) *MapSource {
	return &MapSource{name: name, data: data, priority: priority}
}

func (s *MapSource) Name() string {
	return "map:" + s.name
}

func (s *MapSource) Priority() int {
	return s.priority
}

func (s *MapSource) Load() (map[string]any, error) {
	return s.data, nil
}
