package vertical_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/vertical"
)

func TestNew_ZeroArity(t *testing.T) {
	v, err := vertical.New(5, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, v.Arity())
	assert.Empty(t, v.ToSlice())
}

func TestNew_DuplicatesCollapse(t *testing.T) {
	v, err := vertical.New(5, []int{1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Arity())
}

func TestNew_OutOfRange(t *testing.T) {
	_, err := vertical.New(3, []int{5})
	assert.ErrorIs(t, err, vertical.ErrColumnIndex)
}

func TestSubsetSuperset(t *testing.T) {
	a, _ := vertical.New(5, []int{0, 1})
	b, _ := vertical.New(5, []int{0, 1, 2})
	assert.True(t, a.IsSubsetOf(b))
	assert.True(t, b.IsSupersetOf(a))
	assert.False(t, b.IsSubsetOf(a))
}

func TestUnionIntersect(t *testing.T) {
	a, _ := vertical.New(5, []int{0, 1})
	b, _ := vertical.New(5, []int{1, 2})
	union := a.Union(b)
	inter := a.Intersect(b)
	assert.Equal(t, []int{0, 1, 2}, union.ToSlice())
	assert.Equal(t, []int{1}, inter.ToSlice())
}

func TestEquals(t *testing.T) {
	a, _ := vertical.New(5, []int{0, 1})
	b, _ := vertical.New(5, []int{1, 0})
	assert.True(t, a.Equals(b))
}

func TestToSlice_WideAcrossWordBoundary(t *testing.T) {
	v, err := vertical.New(130, []int{0, 63, 64, 65, 129})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 63, 64, 65, 129}, v.ToSlice())
}
