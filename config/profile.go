// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a named bundle of option name→value pairs, the shape a CLI
// front-end persists as a reusable preset (e.g. "strict-mfd.yaml"
// pinning metric, parameter and dist_from_null_is_infinity together).
type Profile struct {
	Name    string                 `yaml:"name"`
	Options map[string]interface{} `yaml:"options"`
}

// LoadProfileYAML reads a Profile from path. It is purely a
// CLI-convenience reader: the returned Options map is applied by the
// caller one Registry.Set call at a time, so normal validation and
// availability rules still apply.
func LoadProfileYAML(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("config: parsing profile %s: %w", path, err)
	}
	return &p, nil
}

// Apply commits every option in the profile to reg, stopping at the
// first error.
func (p *Profile) Apply(reg *Registry) error {
	for name, value := range p.Options {
		if err := reg.Set(name, value); err != nil {
			return fmt.Errorf("config: profile %s: %w", p.Name, err)
		}
	}
	return nil
}
