// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for Ember's feed-forward composition
// layer.
//
// Neurons, layers and networks are thin consumers of the engine: they hold
// weight and bias nodes created once at construction and build their
// forward computation entirely out of engine operations, so a backward
// pass from a downstream loss populates every parameter gradient.
//
// Because node values are immutable, training drivers rebuild the graph
// each optimization step: snapshot parameters with ParameterValues, reset
// the graph, reconstruct the model with LoadMLP, and step an optimizer
// over the flat snapshot. See examples/moons for the full loop.
//
// Example:
//
//	g := engine.NewGraph[float64]()
//	model := nn.NewMLP(g, 2, []int{16, 16, 1})
//
//	xs := []engine.Value[float64]{g.Leaf(0.5), g.Leaf(-1.2)}
//	out, err := model.Forward(xs)
//	if err != nil {
//	    // nn.ErrInputSize: wrong number of inputs
//	}
//	out[0].Backward()
package nn

import (
	"github.com/ember-ml/ember/engine"
	"github.com/ember-ml/ember/internal/nn"
)

// ErrInputSize reports a forward call whose input count does not match the
// unit's weight count. Check for it with errors.Is.
var ErrInputSize = nn.ErrInputSize

// Neuron is a single feed-forward unit: weight nodes plus a bias node,
// with an optional ReLU nonlinearity.
type Neuron[T engine.Float] = nn.Neuron[T]

// Layer applies independent neurons to the same inputs.
type Layer[T engine.Float] = nn.Layer[T]

// MLP chains layers into a feed-forward network. Hidden layers are
// nonlinear, the final layer is linear.
type MLP[T engine.Float] = nn.MLP[T]

// NewNeuron creates a neuron with nin uniformly initialized weights and a
// zero bias. Set linear to skip the ReLU.
func NewNeuron[T engine.Float](g *engine.Graph[T], nin int, linear bool) *Neuron[T] {
	return nn.NewNeuron(g, nin, linear)
}

// NewLayer creates a layer of nout randomly initialized neurons taking nin
// inputs each.
func NewLayer[T engine.Float](g *engine.Graph[T], nin, nout int, linear bool) *Layer[T] {
	return nn.NewLayer(g, nin, nout, linear)
}

// NewMLP creates a randomly initialized network taking nin inputs, with
// one layer per entry of nouts.
func NewMLP[T engine.Float](g *engine.Graph[T], nin int, nouts []int) *MLP[T] {
	return nn.NewMLP(g, nin, nouts)
}

// LoadMLP reconstructs a network from a flat parameter snapshot in the
// order produced by MLP.ParameterValues.
func LoadMLP[T engine.Float](g *engine.Graph[T], nin int, nouts []int, params []T) (*MLP[T], error) {
	return nn.LoadMLP(g, nin, nouts, params)
}

// NumParameters returns the parameter count of an MLP with the given shape.
func NumParameters(nin int, nouts []int) int {
	return nn.NumParameters(nin, nouts)
}
