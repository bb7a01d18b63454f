package fd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/fd"
	"github.com/katalvlaran/profila/vertical"
)

func mustV(t *testing.T, n int, cols []int) *vertical.Vertical {
	t.Helper()
	v, err := vertical.New(n, cols)
	require.NoError(t, err)
	return v
}

func TestCollection_Add_RejectsRhsInLhs(t *testing.T) {
	c := fd.NewCollection()
	err := c.Add(fd.FD{LHS: mustV(t, 3, []int{0, 1}), RHS: 1})
	assert.ErrorIs(t, err, fd.ErrRhsInLhs)
}

func TestCollection_Add_MoreGeneralDropsMoreSpecific(t *testing.T) {
	c := fd.NewCollection()
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0, 1}), RHS: 2}))
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 2}))
	assert.Equal(t, 1, c.Len())
	all := c.All()
	assert.Equal(t, []int{0}, all[0].LHS.ToSlice())
}

func TestCollection_Add_MoreSpecificIgnoredWhenGeneralKnown(t *testing.T) {
	c := fd.NewCollection()
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 2}))
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0, 1}), RHS: 2}))
	assert.Equal(t, 1, c.Len())
}

func TestCollection_JSON_CanonicalOrder(t *testing.T) {
	c := fd.NewCollection()
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{1}), RHS: 2}))
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 1}))
	j, err := c.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"lhs":[0],"rhs":1},{"lhs":[1],"rhs":2}]`, j)
}

func TestCollection_Fletcher16_StableAcrossEquivalentInsertOrder(t *testing.T) {
	c1 := fd.NewCollection()
	require.NoError(t, c1.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 1}))
	require.NoError(t, c1.Add(fd.FD{LHS: mustV(t, 3, []int{1}), RHS: 2}))

	c2 := fd.NewCollection()
	require.NoError(t, c2.Add(fd.FD{LHS: mustV(t, 3, []int{1}), RHS: 2}))
	require.NoError(t, c2.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 1}))

	sum1, err := c1.Fletcher16()
	require.NoError(t, err)
	sum2, err := c2.Fletcher16()
	require.NoError(t, err)
	assert.Equal(t, sum1, sum2)
}

func TestCollection_GetKeys(t *testing.T) {
	c := fd.NewCollection()
	// column 0 is a key of a 3-column relation: {0}->1 and {0}->2 both hold.
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 1}))
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 2}))
	assert.Equal(t, []int{0}, c.GetKeys(3))
}

func TestCollection_GetKeys_ConstantColumnCounts(t *testing.T) {
	c := fd.NewCollection()
	// column 2 is constant: emptyset->2. column 0 -> 1 holds.
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, nil), RHS: 2}))
	require.NoError(t, c.Add(fd.FD{LHS: mustV(t, 3, []int{0}), RHS: 1}))
	assert.Equal(t, []int{0}, c.GetKeys(3))
}
