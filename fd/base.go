package fd

import (
	"time"

	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/primitive"
	"github.com/katalvlaran/profila/relation"
)

// Algorithm is the public contract an FD-producing Primitive satisfies:
// the Primitive lifecycle plus FD-specific derivations.
type Algorithm interface {
	primitive.Primitive
	Collection() *Collection
	GetKeys() []int
}

// FitFunc runs algorithm-specific post-parse preparation; ExecuteFunc
// runs the actual discovery, adding FDs to base via base.Add.
type FitFunc func(base *Base) error
type ExecuteFunc func(base *Base) error

// Base implements the FD Algorithm Base: it owns the FD Collection,
// registers the equal_nulls option at construction time rather than
// deferring it to Fit, and drives FitFunc/ExecuteFunc hooks supplied by
// the concrete algorithm.
type Base struct {
	*primitive.Base
	collection *Collection
	fitFn      FitFunc
	executeFn  ExecuteFunc
}

// NewBase constructs an FD Algorithm Base with the given phase names and
// discovery hooks.
func NewBase(phases []string, fitFn FitFunc, executeFn ExecuteFunc) *Base {
	b := &Base{
		Base:       primitive.NewBase(phases),
		collection: NewCollection(),
		fitFn:      fitFn,
		executeFn:  executeFn,
	}
	b.Options.Register(config.Option{
		Name:        config.NameEqualNulls,
		Description: "treat two NULLs in the same column as equal when clustering",
		Default:     true,
		HasDefault:  true,
		Validate:    config.BoolValidator,
	})
	b.Options.MakeAvailable(config.NameEqualNulls)
	return b
}

// EqualNulls reports the committed equal_nulls option value.
func (b *Base) EqualNulls() bool {
	v, _ := b.Options.GetBool(config.NameEqualNulls)
	return v
}

// Fit parses stream and runs the algorithm's FitFunc.
func (b *Base) Fit(stream relation.DatasetStream) error {
	if err := b.Base.BeginFit(stream); err != nil {
		return err
	}
	return b.fitFn(b)
}

// Execute runs the algorithm's ExecuteFunc, overwriting any previous
// result, and returns the elapsed time.
func (b *Base) Execute() (time.Duration, error) {
	if err := b.Base.BeginExecute(); err != nil {
		return 0, err
	}
	b.collection = NewCollection()
	if err := b.executeFn(b); err != nil {
		return 0, err
	}
	return b.Base.EndExecute(), nil
}

// ResetState clears the discovered FD collection in addition to the
// phase cursor, preserving the fitted relation.
func (b *Base) ResetState() {
	b.Base.ResetState()
	b.collection = NewCollection()
}

// Add adds fd to the collection, maintaining minimality.
func (b *Base) Add(f FD) error {
	return b.collection.Add(f)
}

// Collection returns the current (possibly still-empty) FD collection.
func (b *Base) Collection() *Collection {
	return b.collection
}

// JSON returns the canonical JSON encoding of the current FD collection.
func (b *Base) JSON() (string, error) {
	return b.collection.JSON()
}

// Fletcher16 returns the checksum of JSON().
func (b *Base) Fletcher16() (uint16, error) {
	return b.collection.Fletcher16()
}

// GetKeys derives key columns from the current FD collection.
func (b *Base) GetKeys() []int {
	rel := b.Relation()
	if rel == nil {
		return nil
	}
	return b.collection.GetKeys(rel.NumColumns())
}
