// Package engine implements a scalar reverse-mode automatic differentiation
// engine.
//
// A Graph owns every node created during one differentiation session in a
// flat arena. Operations on Value handles compute their result eagerly and
// record how the node was produced (a tagged origin: leaf, unary or binary
// op plus operand ids), building up a DAG. Backward walks the ancestors of
// an output node in reverse topological order and accumulates exact
// gradients via the chain rule.
package engine

// Float is the constraint for node value types.
//
// Gradients of Exp and Div are not closed over the integers, so the engine
// restricts itself to floating-point scalars.
type Float interface {
	~float32 | ~float64
}

// node is a single scalar node in the arena.
//
// lhs and rhs are arena indices of the operands, or -1 when the slot is
// unused (leaves use neither, unary ops use only lhs). Operands always have
// smaller indices than the node itself: nodes can only reference nodes that
// already exist, which is what keeps the graph acyclic.
type node[T Float] struct {
	data T
	grad T
	op   Op
	lhs  int32
	rhs  int32
}

// Graph is an arena that owns every node of one differentiation session.
//
// All node memory lives in a single growable slice; Value handles are just
// indices into it. Nodes are never freed individually: Reset releases the
// whole session at once, reflecting that graphs are short-lived and rebuilt
// fresh per optimization step.
//
// A Graph is not safe for concurrent use. Independent goroutines must each
// own their own Graph.
type Graph[T Float] struct {
	nodes []node[T]
	gen   uint32 // bumped on Reset so stale handles fail fast
}

// NewGraph creates an empty graph, beginning a new differentiation session.
func NewGraph[T Float]() *Graph[T] {
	return &Graph[T]{
		nodes: make([]node[T], 0, 64), // pre-allocate for common case
	}
}

// Leaf allocates a new leaf node holding v, representing an input or
// constant. Leaves have no parents and no backward rule.
func (g *Graph[T]) Leaf(v T) Value[T] {
	return g.push(node[T]{data: v, op: OpLeaf, lhs: -1, rhs: -1})
}

// push appends a node to the arena and returns a handle to it.
func (g *Graph[T]) push(n node[T]) Value[T] {
	id := int32(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return Value[T]{g: g, id: id, gen: g.gen}
}

// at returns the arena slot for a handle, verifying the handle belongs to
// the current session. Using a handle after Reset is a programming error
// and panics.
func (g *Graph[T]) at(v Value[T]) *node[T] {
	if v.g != g || v.gen != g.gen {
		panic("engine: value used after graph reset")
	}
	return &g.nodes[v.id]
}

// Len returns the number of nodes allocated in the current session.
func (g *Graph[T]) Len() int {
	return len(g.nodes)
}

// Reset ends the current session, releasing all nodes at once. The arena's
// backing storage is kept for reuse.
//
// Every Value handle issued before Reset is invalidated; using one
// afterwards panics.
func (g *Graph[T]) Reset() {
	g.nodes = g.nodes[:0]
	g.gen++
}

// ZeroGrad clears the gradient accumulator of every node in the graph.
// Call it between backward passes that should not accumulate into each
// other.
func (g *Graph[T]) ZeroGrad() {
	for i := range g.nodes {
		g.nodes[i].grad = 0
	}
}
