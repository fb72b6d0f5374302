package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type codecSection struct {
	Format   string `mapstructure:"format"`
	EnumMode string `mapstructure:"enum_mode"`
	Bindings []struct {
		Type   string `mapstructure:"type"`
		Member string `mapstructure:"member"`
		Alias  string `mapstructure:"alias"`
	} `mapstructure:"bindings"`
}

func TestLoader_PriorityMerge(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "config.yaml", `
codec:
  format: json
  enum_mode: name
  bindings:
    - type: example.Color
      member: Red
      alias: crimson
`)
	override := writeFile(t, dir, "prod.yaml", `
codec:
  format: msgpack
`)

	loader := NewLoader(
		NewFileSource(override, 20),
		NewFileSource(base, 10),
		NewMapSource("defaults", map[string]any{"codec": map[string]any{"metrics_enabled": true}}, 1),
	)
	require.NoError(t, loader.Load())

	assert.Equal(t, "msgpack", loader.GetString("codec.format"))
	assert.Equal(t, "name", loader.GetString("codec.enum_mode"))
	assert.True(t, loader.GetBool("codec.metrics_enabled"))
	assert.True(t, loader.IsSet("codec.format"))
	assert.False(t, loader.IsSet("codec.missing"))
	assert.Equal(t, []string{"map:defaults", "file:" + base, "file:" + override}, loader.LoadedSources())

	var section codecSection
	require.NoError(t, loader.Unmarshal("codec", &section))
	assert.Equal(t, "msgpack", section.Format)
	require.Len(t, section.Bindings, 1)
	assert.Equal(t, "example.Color", section.Bindings[0].Type)
	assert.Equal(t, "Red", section.Bindings[0].Member)
	assert.Equal(t, "crimson", section.Bindings[0].Alias)
}

func TestLoader_UnmarshalAll(t *testing.T) {
	loader := NewLoader(NewMapSource("m", map[string]any{
		"codec": map[string]any{"format": "json"},
	}, 1))
	require.NoError(t, loader.Load())

	var all struct {
		Codec codecSection `mapstructure:"codec"`
	}
	require.NoError(t, loader.Unmarshal("", &all))
	assert.Equal(t, "json", all.Codec.Format)
	assert.Equal(t, "json", loader.Get("codec.format"))
}

func TestLoader_MissingFileIsEmpty(t *testing.T) {
	loader := NewLoader(NewFileSource(filepath.Join(t.TempDir(), "absent.yaml"), 10))
	require.NoError(t, loader.Load())
	assert.Empty(t, loader.AllSettings())
}

func TestLoader_BrokenFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", "codec: [unclosed")
	loader := NewLoader(NewFileSource(path, 10))

	err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file:"+path)
}

type failingSource struct{}

func (failingSource) Name() string                  { return "failing" }
func (failingSource) Priority() int                 { return 1 }
func (failingSource) Load() (map[string]any, error) { return nil, errors.New("boom") }

func TestLoader_SourceError(t *testing.T) {
	loader := NewLoader(failingSource{})
	err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
	assert.Contains(t, err.Error(), "boom")
}

func TestEnvSource_Scan(t *testing.T) {
	t.Setenv("CODECTEST_CODEC__ENUM_MODE", "number")
	t.Setenv("CODECTEST_CODEC__FORMAT", "msgpack")

	data, err := NewEnvSource("CODECTEST", 50).Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"codec": map[string]any{
			"enum_mode": "number",
			"format":    "msgpack",
		},
	}, data)
}

func TestEnvSource_Bindings(t *testing.T) {
	t.Setenv("CODECTEST_POLICY", "last_wins")
	t.Setenv("OTHER_FORMAT", "json")

	src := NewEnvSource("CODECTEST", 50)
	src.AddBinding("codec.duplicate_policy", "POLICY")
	src.AddBinding("codec.format", "FORMAT")

	data, err := src.Load()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"codec": map[string]any{"duplicate_policy": "last_wins"},
	}, data)
}

func TestEnvSource_NoPrefix(t *testing.T) {
	data, err := NewEnvSource("", 50).Load()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestBuilder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "codec:\n  format: json\n  enum_mode: name\n")
	writeFile(t, dir, "staging.yaml", "codec:\n  enum_mode: number\n")
	t.Setenv("APP_ENV", "staging")
	t.Setenv("CODECBUILD_CODEC__FORMAT", "msgpack")

	loader, err := NewBuilder().
		WithConfigPath(dir).
		WithEnvPrefix("CODECBUILD").
		WithDefaults(map[string]any{"codec": map[string]any{"duplicate_policy": "reject"}}).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "msgpack", loader.GetString("codec.format"))
	assert.Equal(t, "number", loader.GetString("codec.enum_mode"))
	assert.Equal(t, "reject", loader.GetString("codec.duplicate_policy"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	assert.Equal(t, "dev", GetEnv())

	t.Setenv("ENV", "test")
	assert.Equal(t, "test", GetEnv())

	t.Setenv("APP_ENV", "prod")
	assert.Equal(t, "prod", GetEnv())
}

type formatSection struct {
	Format string `mapstructure:"format"`
	Level  int    `mapstructure:"level"`
}

func (s *formatSection) ApplyDefaults() {
	if s.Format == "" {
		s.Format = "json"
	}
}

func (s *formatSection) Validate() error {
	if s.Format != "json" && s.Format != "msgpack" {
		return errors.New("unsupported format " + s.Format)
	}
	return nil
}

func TestValidateAll(t *testing.T) {
	assert.NoError(t, ValidateAll())

	a, b := &formatSection{}, &formatSection{Format: "xml"}
	err := ValidateAll(a, b)
	assert.EqualError(t, err, "unsupported format xml")
	assert.Equal(t, "json", a.Format, "defaults applied before validating")
}

func TestLoadSection(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		want    formatSection
		wantErr bool
	}{
		{"missing key keeps defaults", map[string]any{}, formatSection{Format: "json"}, false},
		{"section read", map[string]any{"codec": map[string]any{"format": "msgpack", "level": 3}}, formatSection{Format: "msgpack", Level: 3}, false},
		{"defaults fill gaps", map[string]any{"codec": map[string]any{"level": 2}}, formatSection{Format: "json", Level: 2}, false},
		{"invalid value", map[string]any{"codec": map[string]any{"format": "xml"}}, formatSection{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(NewMapSource("test", tt.data, 1))
			require.NoError(t, loader.Load())

			var got formatSection
			err := LoadSection(loader, "codec", &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	var got formatSection
	require.NoError(t, LoadSection(nil, "codec", &got))
	assert.Equal(t, "json", got.Format)
}
