// Package config merges prioritized configuration sources into one viper instance
package config

import (
	"fmt"
	"sort"

	"github.com/KOMKZ/go-yogan-codec/component"
	"github.com/spf13/viper"
)

var _ component.ConfigLoader = (*Loader)(nil)

// Loader merges its sources, lowest priority first, so later layers override earlier ones key by key
type Loader struct {
	sources []ConfigSource
	v       *viper.Viper
	loaded  []string
}

// NewLoader creates a loader over sources; call Load before reading
func NewLoader(sources ...ConfigSource) *Loader {
	return &Loader{
		sources: sources,
		v:       viper.New(),
	}
}

// AddSource adds a source
func (l *Loader) AddSource(source ConfigSource) {
	l.sources = append(l.sources, source)
}

// Load reads every source and replaces the merged settings
func (l *Loader) Load() error {
	sort.SliceStable(l.sources, func(i, j int) bool {
		return l.sources[i].Priority() < l.sources[j].Priority()
	})

	v := viper.New()
	loaded := make([]string, 0, len(l.sources))
	for _, source := range l.sources {
		data, err := source.Load()
		if err != nil {
			return fmt.Errorf("load config source %s: %w", source.Name(), err)
		}
		if err := v.MergeConfigMap(data); err != nil {
			return fmt.Errorf("merge config source %s: %w", source.Name(), err)
		}
		loaded = append(loaded, source.Name())
	}

	l.v = v
	l.loaded = loaded
	return nil
}

// Unmarshal decodes the section at key into out; an empty key decodes everything
func (l *Loader) Unmarshal(key string, out any) error {
	if key == "" {
		return l.v.Unmarshal(out)
	}
	return l.v.UnmarshalKey(key, out)
}

func (l *Loader) Get(key string) any {
	return l.v.Get(key)
}

func (l *Loader) GetString(key string) string {
	return l.v.GetString(key)
}

func (l *Loader) GetInt(key string) int {
	return l.v.GetInt(key)
}

func (l *Loader) GetBool(key string) bool {
	return l.v.GetBool(key)
}

func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}

// AllSettings returns the merged settings
func (l *Loader) AllSettings() map[string]any {
	return l.v.AllSettings()
}

// LoadedSources names the sources merged by the last Load, in merge order
func (l *Loader) LoadedSources() []string {
	return l.loaded
}
