package engine

// Backward computes the gradient of v with respect to every ancestor node.
//
// Algorithm:
//  1. Build a topological order of v's ancestor sub-DAG (parents before the
//     nodes that consume them) with an iterative depth-first search.
//  2. Seed v's gradient with one, the gradient of the output with respect
//     to itself.
//  3. Walk the order in reverse, applying each node's gradient rule. By the
//     time a node is processed, every consumer of it has already run, so
//     its gradient is fully accumulated before it propagates further back.
//
// Gradients are accumulated, never overwritten: a node referenced by
// several consumers receives the sum of all their contributions, as the
// multivariate chain rule requires. Call Graph.ZeroGrad between backward
// passes that should not add up.
//
// Complexity is O(V+E) in the ancestor sub-DAG. The traversal uses an
// explicit stack, so graph depth is not limited by the call stack.
func (v Value[T]) Backward() {
	g := v.g
	g.at(v) // staleness check

	order := g.topo(v.id)

	g.nodes[v.id].grad = 1

	for i := len(order) - 1; i >= 0; i-- {
		// Copy the node: its own fields are stable here (a node is never
		// its own ancestor), only parent slots are written below.
		n := g.nodes[order[i]]
		switch n.op {
		case OpLeaf:
			// no parents, nothing to propagate
		case OpAdd:
			g.nodes[n.lhs].grad += n.grad
			g.nodes[n.rhs].grad += n.grad
		case OpSub:
			g.nodes[n.lhs].grad += n.grad
			g.nodes[n.rhs].grad -= n.grad
		case OpMul:
			g.nodes[n.lhs].grad += n.grad * g.nodes[n.rhs].data
			g.nodes[n.rhs].grad += n.grad * g.nodes[n.lhs].data
		case OpDiv:
			b := g.nodes[n.rhs].data
			g.nodes[n.lhs].grad += n.grad / b
			g.nodes[n.rhs].grad -= n.grad * g.nodes[n.lhs].data / (b * b)
		case OpNeg:
			g.nodes[n.lhs].grad -= n.grad
		case OpReLU:
			// Gate on the input value, not the output.
			if g.nodes[n.lhs].data > 0 {
				g.nodes[n.lhs].grad += n.grad
			}
		case OpExp:
			// d(e^x)/dx = e^x, which is the node's own value.
			g.nodes[n.lhs].grad += n.grad * n.data
		}
	}
}

// topo returns the ids of root's ancestor sub-DAG in topological order:
// every node appears after both of its operands. Iterative post-order DFS
// with a visited set, so fan-in nodes reachable over several paths are
// emitted exactly once.
func (g *Graph[T]) topo(root int32) []int32 {
	visited := make([]bool, len(g.nodes))
	order := make([]int32, 0, len(g.nodes))

	type frame struct {
		id       int32
		expanded bool // operands already pushed
	}
	stack := make([]frame, 0, 64)
	stack = append(stack, frame{id: root})

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.expanded {
			order = append(order, f.id)
			continue
		}
		if visited[f.id] {
			continue
		}
		visited[f.id] = true

		stack = append(stack, frame{id: f.id, expanded: true})
		n := &g.nodes[f.id]
		if n.lhs >= 0 && !visited[n.lhs] {
			stack = append(stack, frame{id: n.lhs})
		}
		if n.rhs >= 0 && !visited[n.rhs] {
			stack = append(stack, frame{id: n.rhs})
		}
	}
	return order
}
