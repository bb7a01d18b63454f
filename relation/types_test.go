package relation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/relation"
)

func TestParse_InfersNarrowestType(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"id", "price", "ratio", "name"},
		Rows: [][]string{
			{"1", "10", "1.5", "alice"},
			{"2", "20", "2.25", "bob"},
		},
	}
	rel, err := relation.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, relation.Integer, rel.Typed[0].Column.Type)
	assert.Equal(t, relation.Integer, rel.Typed[1].Column.Type)
	assert.Equal(t, relation.Double, rel.Typed[2].Column.Type)
	assert.Equal(t, relation.String, rel.Typed[3].Column.Type)
}

func TestParse_NullColumnIsUndefined(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"a"},
		Rows:  [][]string{{""}, {""}},
	}
	rel, err := relation.Parse(stream)
	require.NoError(t, err)
	assert.Equal(t, relation.Undefined, rel.Typed[0].Column.Type)
	assert.True(t, rel.Typed[0].IsNull(0))
	assert.True(t, rel.Typed[0].IsNull(1))
}

func TestParse_NoColumns(t *testing.T) {
	stream := &relation.SliceStream{Names: nil, Rows: nil}
	_, err := relation.Parse(stream)
	assert.ErrorIs(t, err, relation.ErrNoColumns)
}

func TestParse_RowWidthMismatch(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"a", "b"},
		Rows:  [][]string{{"1", "2", "3"}},
	}
	_, err := relation.Parse(stream)
	assert.ErrorIs(t, err, relation.ErrRowWidthMismatch)
}

func TestRelation_Stream_Replays(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"id", "price", "name"},
		Rows: [][]string{
			{"1", "10.5", "alice"},
			{"2", "", "bob"},
		},
	}
	rel, err := relation.Parse(stream)
	require.NoError(t, err)

	replay, err := relation.Parse(rel.Stream())
	require.NoError(t, err)

	assert.Equal(t, rel.RowCount, replay.RowCount)
	for i, col := range rel.Typed {
		assert.Equal(t, col.Column.Type, replay.Typed[i].Column.Type)
		for row := 0; row < rel.RowCount; row++ {
			assert.Equal(t, col.IsNull(row), replay.Typed[i].IsNull(row))
		}
	}
}
