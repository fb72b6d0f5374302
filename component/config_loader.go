package component

// ConfigLoader lets a component read its own configuration section
// without depending on an application-wide config struct
type ConfigLoader interface {
	// Get returns the raw value at key (e.g. "codec.format")
	Get(key string) any

	// Unmarshal decodes the section at key into v
	//
	// Example:
	//   var cfg serializer.Config
	//   if err := loader.Unmarshal("codec", &cfg); err != nil {
	//       return err
	//   }
	Unmarshal(key string, v any) error

	// GetString returns the value at key as a string
	GetString(key string) string

	// GetBool returns the value at key as a bool
	GetBool(key string) bool

	// IsSet reports whether key has a value
	IsSet(key string) bool
}
