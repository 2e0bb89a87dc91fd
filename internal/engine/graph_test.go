package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGraph_Leaf tests leaf allocation and arena growth.
func TestGraph_Leaf(t *testing.T) {
	g := NewGraph[float64]()
	require.Equal(t, 0, g.Len())

	a := g.Leaf(1.5)
	b := g.Leaf(-2.0)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 0, a.ID())
	assert.Equal(t, 1, b.ID())
	assert.Equal(t, 1.5, a.Value())
	assert.Equal(t, -2.0, b.Value())
	assert.Equal(t, OpLeaf, a.Op())
	assert.Nil(t, a.Parents())

	// Gradients are zero before any backward pass.
	assert.Equal(t, 0.0, a.Grad())
	assert.Equal(t, 0.0, b.Grad())
}

// TestGraph_Reset tests bulk teardown and stale-handle detection.
func TestGraph_Reset(t *testing.T) {
	g := NewGraph[float64]()
	a := g.Leaf(1.0)
	b := a.Add(g.Leaf(2.0))

	g.Reset()
	assert.Equal(t, 0, g.Len())

	// Handles from before Reset fail fast.
	assert.Panics(t, func() { a.Value() })
	assert.Panics(t, func() { b.Grad() })
	assert.Panics(t, func() { b.Backward() })

	// The graph is usable for a fresh session.
	c := g.Leaf(3.0)
	assert.Equal(t, 3.0, c.Value())
	assert.Equal(t, 0, c.ID())
}

// TestGraph_ZeroGrad tests gradient clearing between backward passes.
func TestGraph_ZeroGrad(t *testing.T) {
	g := NewGraph[float64]()
	x := g.Leaf(3.0)
	y := x.Mul(x)

	y.Backward()
	require.Equal(t, 6.0, x.Grad())

	// Without clearing, a second pass accumulates on top.
	y.Backward()
	require.Equal(t, 12.0, x.Grad())

	g.ZeroGrad()
	assert.Equal(t, 0.0, x.Grad())
	assert.Equal(t, 0.0, y.Grad())

	y.Backward()
	assert.Equal(t, 6.0, x.Grad())
}

// TestGraph_CrossGraphOperands tests that mixing graphs panics.
func TestGraph_CrossGraphOperands(t *testing.T) {
	g1 := NewGraph[float64]()
	g2 := NewGraph[float64]()
	a := g1.Leaf(1.0)
	b := g2.Leaf(2.0)

	assert.Panics(t, func() { a.Add(b) })
}

// TestTopo_ParentsPrecedeChildren tests the topological order on a DAG with
// fan-in and fan-out.
func TestTopo_ParentsPrecedeChildren(t *testing.T) {
	g := NewGraph[float64]()
	x := g.Leaf(2.0)
	y := g.Leaf(3.0)
	s := x.Add(y)     // consumed twice below
	p := s.Mul(x)     // fan-out of x and s
	q := s.Mul(y)
	out := p.Add(q).Exp()

	order := g.topo(int32(out.ID()))

	// Every reachable node appears exactly once.
	require.Len(t, order, g.Len())
	seen := make(map[int32]bool, len(order))
	for _, id := range order {
		require.False(t, seen[id], "node %d emitted twice", id)
		seen[id] = true
	}

	// Operands come strictly before the nodes that consume them.
	pos := make(map[int32]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range order {
		n := &g.nodes[id]
		if n.lhs >= 0 {
			assert.Less(t, pos[n.lhs], pos[id])
		}
		if n.rhs >= 0 {
			assert.Less(t, pos[n.rhs], pos[id])
		}
	}
}

// TestTopo_RestrictedToAncestors tests that nodes outside the output's
// ancestry are not visited.
func TestTopo_RestrictedToAncestors(t *testing.T) {
	g := NewGraph[float64]()
	x := g.Leaf(1.0)
	y := x.Exp()
	unrelated := g.Leaf(5.0).Mul(g.Leaf(7.0))

	order := g.topo(int32(y.ID()))

	require.Len(t, order, 2)
	assert.Equal(t, int32(x.ID()), order[0])
	assert.Equal(t, int32(y.ID()), order[1])
	assert.Zero(t, unrelated.Grad())
}

// TestTopo_DeepChain tests that traversal depth is not bounded by the call
// stack.
func TestTopo_DeepChain(t *testing.T) {
	g := NewGraph[float64]()
	one := g.Leaf(1.0)
	v := g.Leaf(0.0)
	const depth = 200_000
	for range depth {
		v = v.Add(one)
	}

	v.Backward()

	assert.Equal(t, float64(depth), v.Value())
	assert.Equal(t, float64(depth), one.Grad())
}
