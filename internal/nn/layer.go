package nn

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/engine"
)

// Layer applies nout independent neurons to the same inputs and collects
// their outputs. It introduces no graph machinery of its own: everything is
// expressed through the neurons' forward calls.
type Layer[T engine.Float] struct {
	neurons []*Neuron[T]
}

// NewLayer creates a layer of nout randomly initialized neurons, each
// taking nin inputs.
func NewLayer[T engine.Float](g *engine.Graph[T], nin, nout int, linear bool) *Layer[T] {
	ns := make([]*Neuron[T], nout)
	for i := range ns {
		ns[i] = NewNeuron(g, nin, linear)
	}
	return &Layer[T]{neurons: ns}
}

// LoadLayer creates a layer from a flat parameter snapshot holding nout
// blocks of nin weights plus a bias each.
func LoadLayer[T engine.Float](g *engine.Graph[T], nin, nout int, params []T, linear bool) (*Layer[T], error) {
	per := nin + 1
	if len(params) != nout*per {
		return nil, errors.Errorf("nn: layer %dx%d needs %d parameters, got %d",
			nin, nout, nout*per, len(params))
	}
	ns := make([]*Neuron[T], nout)
	for i := range ns {
		n, err := LoadNeuron(g, params[i*per:(i+1)*per], linear)
		if err != nil {
			return nil, err
		}
		ns[i] = n
	}
	return &Layer[T]{neurons: ns}, nil
}

// Forward computes the layer's output nodes for the given inputs.
// Fails fast with ErrInputSize before any allocation if the input count is
// wrong.
func (l *Layer[T]) Forward(xs []engine.Value[T]) ([]engine.Value[T], error) {
	if len(l.neurons) > 0 && len(xs) != l.neurons[0].NumInputs() {
		return nil, errors.Wrapf(ErrInputSize,
			"layer expects %d inputs, got %d", l.neurons[0].NumInputs(), len(xs))
	}
	out := make([]engine.Value[T], len(l.neurons))
	for i, n := range l.neurons {
		o, err := n.Forward(xs)
		if err != nil {
			return nil, err
		}
		out[i] = o
	}
	return out, nil
}

// Parameters returns the trainable nodes of every neuron in the layer.
func (l *Layer[T]) Parameters() []engine.Value[T] {
	var ps []engine.Value[T]
	for _, n := range l.neurons {
		ps = append(ps, n.Parameters()...)
	}
	return ps
}
