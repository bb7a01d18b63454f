package primitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/profila/primitive"
	"github.com/katalvlaran/profila/relation"
)

type recordingSink struct {
	phases []string
}

func (s *recordingSink) Advance(phaseIndex int, phaseName string) {
	s.phases = append(s.phases, phaseName)
}

func TestBase_ExecuteBeforeFitFails(t *testing.T) {
	b := primitive.NewBase([]string{"one"})
	require.Error(t, b.BeginExecute())
	assert.ErrorIs(t, b.BeginExecute(), primitive.ErrNotFitted)
}

func TestBase_BeginFitMarksFitted(t *testing.T) {
	b := primitive.NewBase([]string{"one"})
	assert.False(t, b.Fitted())
	stream := &relation.SliceStream{Names: []string{"a"}, Rows: [][]string{{"1"}}}
	require.NoError(t, b.BeginFit(stream))
	assert.True(t, b.Fitted())
	assert.NotNil(t, b.Relation())
}

func TestBase_AdvancePhaseNotifiesSink(t *testing.T) {
	b := primitive.NewBase([]string{"scan", "verify"})
	sink := &recordingSink{}
	b.AttachProgress(sink)
	b.AdvancePhase()
	b.AdvancePhase()
	assert.Equal(t, []string{"scan", "verify"}, sink.phases)
}

func TestBase_AdvancePhasePastEndIsNoop(t *testing.T) {
	b := primitive.NewBase([]string{"only"})
	sink := &recordingSink{}
	b.AttachProgress(sink)
	b.AdvancePhase()
	b.AdvancePhase()
	assert.Equal(t, []string{"only"}, sink.phases)
}

func TestBase_ResetStatePreservesRelation(t *testing.T) {
	b := primitive.NewBase([]string{"one"})
	stream := &relation.SliceStream{Names: []string{"a"}, Rows: [][]string{{"1"}}}
	require.NoError(t, b.BeginFit(stream))
	b.AdvancePhase()
	b.ResetState()
	assert.NotNil(t, b.Relation())
	require.NoError(t, b.BeginExecute())
}
