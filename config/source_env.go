package config

import (
	"os"
	"strings"
)

// EnvSource reads environment variables.
//
// With explicit bindings only the bound variables are read. Otherwise every
// variable starting with PREFIX_ is mapped to a key: a double underscore
// separates levels, so APP_CODEC__ENUM_MODE becomes codec.enum_mode.
type EnvSource struct {
	prefix   string
	priority int
	bindings map[string]string // config key -> variable name
}

// NewEnvSource creates an environment source
func NewEnvSource(prefix string, priority int) *EnvSource {
	return &EnvSource{
		prefix:   prefix,
		priority: priority,
		bindings: make(map[string]string),
	}
}

// AddBinding maps a config key to a variable; the prefix is added unless envKey already has it
func (s *EnvSource) AddBinding(key, envKey string) {
	s.bindings[key] = envKey
}

func (s *EnvSource) Name() string {
	return "env:" + s.prefix
}

func (s *EnvSource) Priority() int {
	return s.priority
}

func (s *EnvSource) Load() (map[string]any, error) {
	result := make(map[string]any)

	if len(s.bindings) > 0 {
		for key, envKey := range s.bindings {
			if s.prefix != "" && !strings.HasPrefix(envKey, s.prefix+"_") {
				envKey = s.prefix + "_" + envKey
			}
			if value, ok := os.LookupEnv(envKey); ok {
				setNested(result, strings.Split(key, "."), value)
			}
		}
		return result, nil
	}

	if s.prefix == "" {
		return result, nil
	}

	prefix := s.prefix + "_"
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		path := strings.Split(strings.ToLower(strings.TrimPrefix(name, prefix)), "__")
		setNested(result, path, value)
	}
	return result, nil
}

func setNested(m map[string]any, path []string, value any) {
	for _, k := range path[:len(path)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[k] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}
