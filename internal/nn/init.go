package nn

import (
	"math/rand"

	"github.com/ember-ml/ember/internal/engine"
)

// uniform allocates a leaf node with a value drawn from U(-1, 1), the
// customary initialization for scalar-valued networks of this size.
func uniform[T engine.Float](g *engine.Graph[T]) engine.Value[T] {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return g.Leaf(T(rand.Float64()*2.0 - 1.0))
}
