package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/config"
	"github.com/katalvlaran/profila/fd"
	"github.com/katalvlaran/profila/metric"
	"github.com/katalvlaran/profila/primitive"
	"github.com/katalvlaran/profila/registry"
	"github.com/katalvlaran/profila/relation"
)

func TestCreatePrimitiveInstance_BruteFD(t *testing.T) {
	alg, err := registry.CreatePrimitiveInstance[fd.Algorithm](registry.TagBruteFD)
	require.NoError(t, err)
	assert.NotNil(t, alg)
}

func TestCreatePrimitiveInstance_WrongType(t *testing.T) {
	_, err := registry.CreatePrimitiveInstance[*metric.Verifier](registry.TagBruteFD)
	assert.ErrorIs(t, err, registry.ErrWrongType)
}

func TestCreatePrimitiveInstance_UnknownTag(t *testing.T) {
	_, err := registry.CreatePrimitiveInstance[fd.Algorithm](registry.Tag("nope"))
	assert.ErrorIs(t, err, registry.ErrUnknownTag)
}

func TestGetAllDerived_FDAlgorithm(t *testing.T) {
	tags := registry.GetAllDerived[fd.Algorithm]()
	assert.Contains(t, tags, registry.TagBruteFD)
	assert.NotContains(t, tags, registry.TagMetricVerifier)
}

func TestGetAllDerived_Primitive(t *testing.T) {
	tags := registry.GetAllDerived[primitive.Primitive]()
	assert.Contains(t, tags, registry.TagBruteFD)
	assert.Contains(t, tags, registry.TagMetricVerifier)
}

func TestCompose(t *testing.T) {
	stream := &relation.SliceStream{
		Names: []string{"id", "name"},
		Rows: [][]string{
			{"1", "alice"},
			{"2", "bob"},
		},
	}
	rel, err := relation.Parse(stream)
	require.NoError(t, err)

	collection, err := registry.Compose(
		rel, registry.TagBruteFD, map[string]interface{}{config.NameMaxLhs: 1},
		registry.TagBruteFD, map[string]interface{}{config.NameMaxLhs: 1},
	)
	require.NoError(t, err)
	assert.NotNil(t, collection)
}
