package domain

// LoaderType describes a registered loader.
type LoaderType struct {
	// ID is the type identifier used in Source.Type (e.g., "github").
	ID string `json:"id"`

	// Name is the human-readable name.
	Name string `json:"name"`

	// Description explains what the loader reads.
	Description string `json:"description"`

	// AuthMethod is how the loader authenticates when credentials are given.
	AuthMethod AuthMethod `json:"auth_method"`

	// ConfigKeys lists the Source.Config keys the loader understands.
	ConfigKeys []ConfigKey `json:"config_keys"`
}

// ConfigKey describes one source configuration key.
type ConfigKey struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Required    bool   `json:"required,omitempty"`
	Default     string `json:"default,omitempty"`
}

// RequiredKeys returns the keys marked as required.
func (t LoaderType) RequiredKeys() []string {
	var keys []string
	for _, k := range t.ConfigKeys {
		if k.Required {
			keys = append(keys, k.Key)
		}
	}
	return keys
}
