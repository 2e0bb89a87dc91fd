// Package optim provides optimization algorithms over flat parameter
// snapshots.
//
// Node values in the engine are immutable, so optimizers do not touch the
// graph: a training driver snapshots its model's parameters, reads the
// gradients after a backward pass, steps the optimizer over the two flat
// slices, then rebuilds the graph from the updated snapshot.
package optim

import "github.com/pkg/errors"

// SGD implements stochastic gradient descent with optional momentum.
//
// Update rule without momentum:
//
//	param = param - lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	param = param - lr * velocity
type SGD[T ~float32 | ~float64] struct {
	lr       T
	momentum T
	velocity []T
}

// SGDConfig holds configuration for the SGD optimizer.
type SGDConfig struct {
	LR       float64 // Learning rate (default: 0.01)
	Momentum float64 // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer.
func NewSGD[T ~float32 | ~float64](config SGDConfig) *SGD[T] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[T]{lr: T(config.LR), momentum: T(config.Momentum)}
}

// SetLR updates the learning rate, e.g. for a decay schedule.
func (s *SGD[T]) SetLR(lr float64) {
	s.lr = T(lr)
}

// Step applies one descent update to params in place, using the matching
// gradient slice. The two slices must stay aligned across steps when
// momentum is enabled, since velocity state is kept per index.
func (s *SGD[T]) Step(params, grads []T) error {
	if len(params) != len(grads) {
		return errors.Errorf("optim: have %d parameters but %d gradients", len(params), len(grads))
	}
	if s.momentum == 0 {
		for i := range params {
			params[i] -= s.lr * grads[i]
		}
		return nil
	}
	if s.velocity == nil {
		s.velocity = make([]T, len(params))
	}
	if len(s.velocity) != len(params) {
		return errors.Errorf("optim: velocity state has %d entries but %d parameters given", len(s.velocity), len(params))
	}
	for i := range params {
		s.velocity[i] = s.momentum*s.velocity[i] + grads[i]
		params[i] -= s.lr * s.velocity[i]
	}
	return nil
}
