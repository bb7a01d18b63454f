// Package registry implements the Algorithm Registry: a closed set of
// tagged Primitive constructors, queried either by exact Tag or by the
// interface the caller needs the constructed value to satisfy. This
// reexpresses create_primitive.h's tuple-of-primitive-types dispatch as
// a Go sum type, the way converterts' factory functions pick a concrete
// implementation from a closed tag rather than an open plugin registry.
package registry

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/profila/fd"
	"github.com/katalvlaran/profila/metric"
	"github.com/katalvlaran/profila/relation"
)

// ErrUnknownTag indicates a Tag no constructor was registered under.
var ErrUnknownTag = errors.New("registry: unknown tag")

// ErrWrongType indicates a Tag's constructed Primitive does not satisfy
// the type parameter CreatePrimitiveInstance was asked for.
var ErrWrongType = errors.New("registry: tag does not produce the requested type")

// Tag is the closed set of registrable Primitive identities.
type Tag string

// The complete set of Tags this module registers. Adding a Primitive
// means adding both a Tag here and an entry in registrations.
const (
	TagBruteFD        Tag = "brute_fd"
	TagMetricVerifier Tag = "metric_verifier"
)

type registration struct {
	tag       Tag
	construct func() interface{}
}

var registrations = []registration{
	{TagBruteFD, func() interface{} { return fd.NewBrute() }},
	{TagMetricVerifier, func() interface{} { return metric.NewVerifier() }},
}

// CreatePrimitiveInstance constructs the Primitive registered under tag
// and asserts it to T, mirroring create_primitive.h's
// CreatePrimitiveInstance<PrimitiveType> template but resolved at
// runtime through a type assertion against the requested type
// parameter, since Go generics carry no compile-time tag-to-type map.
func CreatePrimitiveInstance[T any](tag Tag) (T, error) {
	var zero T
	for _, r := range registrations {
		if r.tag != tag {
			continue
		}
		v := r.construct()
		t, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: %s", ErrWrongType, tag)
		}
		return t, nil
	}
	return zero, fmt.Errorf("%w: %s", ErrUnknownTag, tag)
}

// GetAllDerived returns every Tag whose constructed Primitive satisfies
// T, in registration order, mirroring create_primitive.h's
// GetAllDerived<FDAlgorithm>() used by a typo-miner to enumerate
// composable FD algorithms.
func GetAllDerived[T any]() []Tag {
	var out []Tag
	for _, r := range registrations {
		if _, ok := r.construct().(T); ok {
			out = append(out, r.tag)
		}
	}
	return out
}

// NewRunID returns a fresh correlation identifier for one profiling
// run, independent of any single Primitive's own primitive.RunMetadata.
func NewRunID() uuid.UUID {
	return uuid.New()
}

// Compose fits and executes the two FD algorithms tagged tagA and tagB
// against rel, applying optsA/optsB beforehand, and returns their
// combined, re-minimized FD Collection (see DESIGN.md: this is the
// typo-miner's composition infrastructure, kept even though typo mining
// itself is a separate feature). Each algorithm Fits against its own
// replay of rel so neither consumes the other's stream.
func Compose(rel *relation.Relation, tagA Tag, optsA map[string]interface{}, tagB Tag, optsB map[string]interface{}) (*fd.Collection, error) {
	a, err := runFDAlgorithm(rel.Stream(), tagA, optsA)
	if err != nil {
		return nil, err
	}
	b, err := runFDAlgorithm(rel.Stream(), tagB, optsB)
	if err != nil {
		return nil, err
	}
	return fd.Compose(a, b)
}

func runFDAlgorithm(stream relation.DatasetStream, tag Tag, opts map[string]interface{}) (fd.Algorithm, error) {
	alg, err := CreatePrimitiveInstance[fd.Algorithm](tag)
	if err != nil {
		return nil, err
	}
	for name, value := range opts {
		if err := alg.SetOption(name, value); err != nil {
			return nil, err
		}
	}
	if err := alg.Fit(stream); err != nil {
		return nil, err
	}
	if _, err := alg.Execute(); err != nil {
		return nil, err
	}
	return alg, nil
}
