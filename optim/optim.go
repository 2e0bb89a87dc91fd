// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers for training Ember models.
//
// Optimizers work on flat parameter snapshots, not on graph nodes: node
// values are immutable, so the training loop snapshots parameters, runs
// backward, steps the optimizer over the snapshot and the gradient slice,
// then rebuilds the graph from the updated snapshot.
//
// Example:
//
//	sgd := optim.NewSGD[float64](optim.SGDConfig{LR: 0.05, Momentum: 0.9})
//
//	params := model.ParameterValues()
//	for step := range steps {
//	    g.Reset()
//	    model, _ = nn.LoadMLP(g, nin, nouts, params)
//	    loss := forward(model)        // build the loss node
//	    loss.Backward()
//	    _ = sgd.Step(params, model.ParameterGrads())
//	}
package optim

import "github.com/ember-ml/ember/internal/optim"

// SGD implements stochastic gradient descent with optional momentum.
type SGD[T ~float32 | ~float64] = optim.SGD[T]

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer. A zero LR falls back to 0.01.
func NewSGD[T ~float32 | ~float64](config SGDConfig) *SGD[T] {
	return optim.NewSGD[T](config)
}
