package nn

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/engine"
)

// MLP is a multi-layer perceptron: a chain of layers where each layer's
// outputs feed the next layer's inputs. Hidden layers are nonlinear (ReLU),
// the final layer is linear so outputs can take any sign.
type MLP[T engine.Float] struct {
	layers []*Layer[T]
	sizes  []int // nin followed by every layer's nout
}

// NewMLP creates a randomly initialized network taking nin inputs, with one
// layer per entry of nouts.
func NewMLP[T engine.Float](g *engine.Graph[T], nin int, nouts []int) *MLP[T] {
	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer[T], len(nouts))
	for i := range layers {
		linear := i == len(nouts)-1
		layers[i] = NewLayer(g, sizes[i], sizes[i+1], linear)
	}
	return &MLP[T]{layers: layers, sizes: sizes}
}

// LoadMLP creates a network from a flat parameter snapshot, in the order
// produced by ParameterValues. The driver pattern is: snapshot the
// parameters, Reset the graph, rebuild the model with LoadMLP, repeat.
func LoadMLP[T engine.Float](g *engine.Graph[T], nin int, nouts []int, params []T) (*MLP[T], error) {
	sizes := append([]int{nin}, nouts...)
	layers := make([]*Layer[T], len(nouts))
	off := 0
	for i := range layers {
		need := sizes[i+1] * (sizes[i] + 1)
		if off+need > len(params) {
			return nil, errors.Errorf("nn: mlp %v needs %d parameters, got %d",
				sizes, NumParameters(nin, nouts), len(params))
		}
		linear := i == len(nouts)-1
		l, err := LoadLayer(g, sizes[i], sizes[i+1], params[off:off+need], linear)
		if err != nil {
			return nil, err
		}
		layers[i] = l
		off += need
	}
	if off != len(params) {
		return nil, errors.Errorf("nn: mlp %v needs %d parameters, got %d",
			sizes, off, len(params))
	}
	return &MLP[T]{layers: layers, sizes: sizes}, nil
}

// NumParameters returns the parameter count of an MLP with the given shape.
func NumParameters(nin int, nouts []int) int {
	total := 0
	prev := nin
	for _, nout := range nouts {
		total += nout * (prev + 1)
		prev = nout
	}
	return total
}

// Forward computes the network's output nodes for the given inputs,
// chaining layer by layer. Fails fast with ErrInputSize on a wrong input
// count.
func (m *MLP[T]) Forward(xs []engine.Value[T]) ([]engine.Value[T], error) {
	if len(xs) != m.sizes[0] {
		return nil, errors.Wrapf(ErrInputSize,
			"network expects %d inputs, got %d", m.sizes[0], len(xs))
	}
	var err error
	for _, l := range m.layers {
		xs, err = l.Forward(xs)
		if err != nil {
			return nil, err
		}
	}
	return xs, nil
}

// Parameters returns every trainable node of the network, layer by layer.
func (m *MLP[T]) Parameters() []engine.Value[T] {
	var ps []engine.Value[T]
	for _, l := range m.layers {
		ps = append(ps, l.Parameters()...)
	}
	return ps
}

// ParameterValues returns a flat snapshot of the current parameter values,
// in the order LoadMLP expects.
func (m *MLP[T]) ParameterValues() []T {
	params := m.Parameters()
	vs := make([]T, len(params))
	for i, p := range params {
		vs[i] = p.Value()
	}
	return vs
}

// ParameterGrads returns the parameters' accumulated gradients, aligned
// with ParameterValues. Meaningful after a backward pass.
func (m *MLP[T]) ParameterGrads() []T {
	params := m.Parameters()
	gs := make([]T, len(params))
	for i, p := range params {
		gs[i] = p.Grad()
	}
	return gs
}
