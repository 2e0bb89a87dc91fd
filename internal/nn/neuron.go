package nn

import (
	"github.com/pkg/errors"

	"github.com/ember-ml/ember/internal/engine"
)

// ErrInputSize reports a forward call whose input count does not match the
// unit's weight count. It is returned before any node is allocated, so a
// failed forward never grows the graph.
var ErrInputSize = errors.New("nn: input size mismatch")

// Neuron is a single feed-forward unit: a fixed set of weight nodes plus
// one bias node, all allocated once at construction in the given graph.
//
// Forward computes relu(sum(w_i * x_i) + b), or the plain weighted sum when
// the neuron is linear. The weights live in the graph like any other nodes,
// so a backward pass from a downstream loss populates their gradients.
type Neuron[T engine.Float] struct {
	weights []engine.Value[T]
	bias    engine.Value[T]
	linear  bool
}

// NewNeuron creates a neuron with nin randomly initialized weights
// (uniform in [-1, 1]) and a zero bias. When linear is true the ReLU
// nonlinearity is skipped.
func NewNeuron[T engine.Float](g *engine.Graph[T], nin int, linear bool) *Neuron[T] {
	w := make([]engine.Value[T], nin)
	for i := range w {
		w[i] = uniform(g)
	}
	return &Neuron[T]{weights: w, bias: g.Leaf(0), linear: linear}
}

// LoadNeuron creates a neuron whose weights and bias come from a flat
// parameter snapshot: params holds nin weights followed by the bias.
func LoadNeuron[T engine.Float](g *engine.Graph[T], params []T, linear bool) (*Neuron[T], error) {
	if len(params) < 2 {
		return nil, errors.Errorf("nn: neuron needs at least 1 weight and a bias, got %d parameters", len(params))
	}
	nin := len(params) - 1
	w := make([]engine.Value[T], nin)
	for i := range w {
		w[i] = g.Leaf(params[i])
	}
	return &Neuron[T]{weights: w, bias: g.Leaf(params[nin]), linear: linear}, nil
}

// Forward computes the neuron's output node for the given inputs.
//
// Returns ErrInputSize (wrapped with both counts) when len(xs) differs from
// the number of weights; no node is allocated in that case.
func (n *Neuron[T]) Forward(xs []engine.Value[T]) (engine.Value[T], error) {
	if len(xs) != len(n.weights) {
		return engine.Value[T]{}, errors.Wrapf(ErrInputSize,
			"neuron has %d weights, got %d inputs", len(n.weights), len(xs))
	}
	act := n.bias
	for i, x := range xs {
		act = act.Add(n.weights[i].Mul(x))
	}
	if n.linear {
		return act, nil
	}
	return act.ReLU(), nil
}

// Parameters returns the neuron's trainable nodes: weights then bias.
func (n *Neuron[T]) Parameters() []engine.Value[T] {
	return append(append(make([]engine.Value[T], 0, len(n.weights)+1), n.weights...), n.bias)
}

// NumInputs returns the neuron's expected input count.
func (n *Neuron[T]) NumInputs() int {
	return len(n.weights)
}
