package metric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/metric"
	"github.com/katalvlaran/profila/relation"
)

func fitVerifier(t *testing.T, stream *relation.SliceStream, opts map[string]interface{}) *metric.Verifier {
	t.Helper()
	v := metric.NewVerifier()
	require.NoError(t, v.Fit(stream))
	for name, val := range opts {
		require.NoError(t, v.SetOption(name, val))
	}
	return v
}

func TestVerifier_Numeric1D_Holds(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"zip", "price"},
		Rows: [][]string{
			{"1", "100"},
			{"1", "101"},
			{"2", "500"},
			{"2", "502"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:     "euclidean",
		config.NameParameter:  "5",
		config.NameLhsIndices: []int{0},
		config.NameRhsIndices: []int{1},
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestVerifier_Numeric1D_Fails(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"zip", "price"},
		Rows: [][]string{
			{"1", "100"},
			{"1", "900"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:     "euclidean",
		config.NameParameter:  "5",
		config.NameLhsIndices: []int{0},
		config.NameRhsIndices: []int{1},
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.False(t, holds)

	highlights, err := v.Highlights()
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.InDelta(t, 800, highlights[0].MaxDistance, 1e-9)
}

func TestVerifier_Levenshtein(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"group", "name"},
		Rows: [][]string{
			{"a", "color"},
			{"a", "colour"},
			{"b", "gray"},
			{"b", "grey"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:     "levenshtein",
		config.NameParameter:  "1",
		config.NameLhsIndices: []int{0},
		config.NameRhsIndices: []int{1},
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestVerifier_NullIsInfinity(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"group", "value"},
		Rows: [][]string{
			{"a", "10"},
			{"a", ""},
			{"a", "11"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:                 "euclidean",
		config.NameParameter:              "1000",
		config.NameLhsIndices:             []int{0},
		config.NameRhsIndices:             []int{1},
		config.NameDistFromNullIsInfinity: true,
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.False(t, holds)

	highlights, err := v.Highlights()
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.True(t, math.IsInf(highlights[0].MaxDistance, 1))
}

func TestVerifier_Calipers2D(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"zone", "x", "y"},
		Rows: [][]string{
			{"z", "0", "0"},
			{"z", "3", "0"},
			{"z", "0", "4"},
			{"z", "1", "1"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:          "euclidean",
		config.NameMetricAlgorithm: "calipers",
		config.NameParameter:       "10",
		config.NameLhsIndices:      []int{0},
		config.NameRhsIndices:      []int{1, 2},
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.True(t, holds)
}

func TestVerifier_Calipers2D_Fails(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"zone", "x", "y"},
		Rows: [][]string{
			{"z", "0", "0"},
			{"z", "3", "0"},
			{"z", "0", "4"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:          "euclidean",
		config.NameMetricAlgorithm: "calipers",
		config.NameParameter:       "3",
		config.NameLhsIndices:      []int{0},
		config.NameRhsIndices:      []int{1, 2},
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.False(t, holds)

	highlights, err := v.Highlights()
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.InDelta(t, 5, highlights[0].MaxDistance, 1e-9)
}

func TestBuildClusters_SingletonOnNullLHS(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"group", "value"},
		Rows: [][]string{
			{"a", "1"},
			{"", "2"},
			{"a", "3"},
		},
	}
	v := fitVerifier(t, stream, map[string]interface{}{
		config.NameMetric:     "euclidean",
		config.NameParameter:  "0",
		config.NameLhsIndices: []int{0},
		config.NameRhsIndices: []int{1},
		config.NameEqualNulls: false,
	})
	_, err := v.Execute()
	require.NoError(t, err)
	holds, err := v.Holds()
	require.NoError(t, err)
	assert.False(t, holds)
}
