package optim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSGD_Step tests the plain descent update.
func TestSGD_Step(t *testing.T) {
	s := NewSGD[float64](SGDConfig{LR: 0.1})
	params := []float64{1.0, -2.0}
	grads := []float64{10.0, -5.0}

	require.NoError(t, s.Step(params, grads))

	assert.InDelta(t, 0.0, params[0], 1e-9)
	assert.InDelta(t, -1.5, params[1], 1e-9)
}

// TestSGD_DefaultLR tests that a zero LR falls back to the default.
func TestSGD_DefaultLR(t *testing.T) {
	s := NewSGD[float64](SGDConfig{})
	params := []float64{1.0}

	require.NoError(t, s.Step(params, []float64{1.0}))

	assert.InDelta(t, 0.99, params[0], 1e-9)
}

// TestSGD_Momentum tests velocity accumulation across steps.
func TestSGD_Momentum(t *testing.T) {
	s := NewSGD[float64](SGDConfig{LR: 1.0, Momentum: 0.5})
	params := []float64{0.0}

	// Step 1: velocity = 1, param = -1.
	require.NoError(t, s.Step(params, []float64{1.0}))
	assert.InDelta(t, -1.0, params[0], 1e-9)

	// Step 2: velocity = 0.5*1 + 1 = 1.5, param = -2.5.
	require.NoError(t, s.Step(params, []float64{1.0}))
	assert.InDelta(t, -2.5, params[0], 1e-9)
}

// TestSGD_LengthMismatch tests slice validation.
func TestSGD_LengthMismatch(t *testing.T) {
	s := NewSGD[float64](SGDConfig{LR: 0.1, Momentum: 0.9})

	assert.Error(t, s.Step([]float64{1, 2}, []float64{1}))

	require.NoError(t, s.Step([]float64{1, 2}, []float64{1, 1}))
	assert.Error(t, s.Step([]float64{1, 2, 3}, []float64{1, 1, 1}))
}

// TestSGD_SetLR tests learning-rate decay scheduling.
func TestSGD_SetLR(t *testing.T) {
	s := NewSGD[float64](SGDConfig{LR: 1.0})
	params := []float64{0.0}

	s.SetLR(0.25)
	require.NoError(t, s.Step(params, []float64{1.0}))

	assert.InDelta(t, -0.25, params[0], 1e-9)
}
