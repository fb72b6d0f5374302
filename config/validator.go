package config

import "github.com/KOMKZ/go-yogan-codec/component"

// Section is a configuration section that fills its own defaults and checks itself
type Section interface {
	ApplyDefaults()
	Validate() error
}

// ValidateAll applies defaults to each section and returns the first validation failure
func ValidateAll(sections ...Section) error {
	for _, s := range sections {
		s.ApplyDefaults()
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadSection unmarshals key into out when the loader has it, then applies defaults and validates.
// A nil loader or a missing key leaves out as given.
func LoadSection(loader component.ConfigLoader, key string, out Section) error {
	if loader != nil && loader.IsSet(key) {
		if err := loader.Unmarshal(key, out); err != nil {
			return err
		}
	}
	return ValidateAll(out)
}
