package render_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/render"
	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
)

func TestChartPNG(t *testing.T) {
	res, err := signal.NewNIRSSim(7).Run(signal.Request{Task: signal.VisualTask, Duration: 10, Noise: 0.1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, render.Chart(&buf, res))
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), buf.Bytes()[:8])
}

func TestChartTooFewSamples(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, render.Chart(&buf, nil), render.ErrTooFewSamples)
	assert.ErrorIs(t, render.Chart(&buf, &signal.Result{Time: []float64{0}}), render.ErrTooFewSamples)
	assert.Zero(t, buf.Len())
}
