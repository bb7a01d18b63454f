// SPDX-License-Identifier: MIT

// Package config implements a name-keyed Option System: every Primitive
// declares a vocabulary of named options up front, some available
// immediately, others only once the Primitive has been fit (lvlath's
// matrix.Options documents the same two-phase defaults-and-validation
// discipline for a compile-time functional-option struct; here the
// configuration arrives at runtime from a CLI or API caller, so the
// registry is keyed by name instead of by Go type).
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the Option System.
var (
	// ErrUnknownOption indicates a name the Primitive never registered.
	ErrUnknownOption = errors.New("config: unknown option")

	// ErrOptionUnavailable indicates a registered option that is not yet
	// settable in the current lifecycle phase (e.g. pre-Fit).
	ErrOptionUnavailable = errors.New("config: option not available yet")

	// ErrInvalidValue indicates a value failed its option's Validator.
	ErrInvalidValue = errors.New("config: invalid option value")

	// ErrMissingRequiredOption indicates Execute ran without a required
	// option ever being set.
	ErrMissingRequiredOption = errors.New("config: missing required option")
)

// Validator normalizes and checks a raw value (typically a string from a
// CLI, but API callers may pass an already-typed value). It returns the
// canonical value to store, or an error.
type Validator func(raw interface{}) (interface{}, error)

// Option describes one named, typed, validated configuration knob.
type Option struct {
	Name        string
	Description string
	Default     interface{}
	HasDefault  bool
	Required    bool
	Validate    Validator
	available   bool
}

// Registry holds the full set of options one Primitive recognizes, plus
// whichever values have been committed so far.
type Registry struct {
	options []*Option
	byName  map[string]*Option
	values  map[string]interface{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Option),
		values: make(map[string]interface{}),
	}
}

// Register adds opt to the registry. Options are unavailable (not
// settable) until MakeAvailable names them settable.
func (r *Registry) Register(opt Option) {
	stored := opt
	stored.available = false
	r.options = append(r.options, &stored)
	r.byName[stored.Name] = &stored
	if stored.HasDefault {
		r.values[stored.Name] = stored.Default
	}
}

// MakeAvailable toggles the named options to settable. Unknown names are
// silently ignored the way a constructor enabling a known-safe subset
// would never pass a typo in practice; callers that need strictness
// should check Option beforehand.
func (r *Registry) MakeAvailable(names ...string) {
	for _, name := range names {
		if opt, ok := r.byName[strings.ToLower(name)]; ok {
			opt.available = true
		}
	}
}

// Option returns the registered option descriptor, if any.
func (r *Registry) Option(name string) (*Option, bool) {
	opt, ok := r.byName[strings.ToLower(name)]
	return opt, ok
}

// Options returns all registered option descriptors in registration order.
func (r *Registry) Options() []*Option {
	return append([]*Option(nil), r.options...)
}

// Set validates and commits a value for name. It fails with
// ErrUnknownOption, ErrOptionUnavailable or ErrInvalidValue, and commits
// nothing on failure: a value is only visible to Get once it has passed
// validation.
func (r *Registry) Set(name string, value interface{}) error {
	key := strings.ToLower(name)
	opt, ok := r.byName[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	if !opt.available {
		return fmt.Errorf("%w: %s", ErrOptionUnavailable, name)
	}
	normalized := value
	if opt.Validate != nil {
		v, err := opt.Validate(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
		normalized = v
	}
	r.values[key] = normalized
	return nil
}

// Get returns the committed or default value for name.
func (r *Registry) Get(name string) (interface{}, bool) {
	v, ok := r.values[strings.ToLower(name)]
	return v, ok
}

// RequireSet fails with ErrMissingRequiredOption if name has never been
// given a value (including a default).
func (r *Registry) RequireSet(name string) error {
	if _, ok := r.Get(name); !ok {
		return fmt.Errorf("%w: %s", ErrMissingRequiredOption, name)
	}
	return nil
}

// GetString, GetInt, GetFloat, GetBool are typed convenience accessors
// used by Primitive implementations once a value has been validated into
// its canonical Go type.
func (r *Registry) GetString(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (r *Registry) GetInt(name string) (int, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

func (r *Registry) GetFloat(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func (r *Registry) GetBool(name string) (bool, bool) {
	v, ok := r.Get(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (r *Registry) GetIntSlice(name string) ([]int, bool) {
	v, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	s, ok := v.([]int)
	return s, ok
}
