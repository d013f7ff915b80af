package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/musekit/musekit/pkg/events"
)

func TestPipelineRender(t *testing.T) {
	grace := note(t, "b3", 0.25)
	principal := note(t, "c4", 2.0)
	principal.Grace = []*events.Note{grace}
	staccato := note(t, "d4", 1.0)
	staccato.Playing.Articulation.Name = "staccato"

	sequence := &events.Sequence{Events: []events.Event{principal, staccato}}

	rendered, err := NewPipeline().Render(sequence)
	require.NoError(t, err)

	out, ok := rendered.(*events.Sequence)
	require.True(t, ok)
	// grace + principal, then staccato half + rest
	require.Len(t, out.Events, 4)
	assert.InDelta(t, 3.25, out.Duration(), 1e-9)
}

func TestPipelineRenderMIDI(t *testing.T) {
	n := note(t, "c4", 1.0)
	data, err := NewPipeline().RenderMIDI(n)
	require.NoError(t, err)
	assert.Equal(t, []byte("MThd"), data[:4])
}
