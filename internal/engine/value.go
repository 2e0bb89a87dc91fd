package engine

import "math"

// Op identifies how a node was produced. It is a closed set: the backward
// pass dispatches over it in a single switch, so every operator added here
// needs a gradient rule there.
type Op uint8

// Supported operations.
const (
	OpLeaf Op = iota // input or constant, no parents
	OpAdd            // lhs + rhs
	OpSub            // lhs - rhs
	OpMul            // lhs * rhs
	OpDiv            // lhs / rhs
	OpNeg            // -lhs
	OpReLU           // max(lhs, 0)
	OpExp            // e^lhs
)

// String returns the display name of the operator, as used by renderers.
func (op Op) String() string {
	switch op {
	case OpLeaf:
		return "leaf"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpNeg:
		return "neg"
	case OpReLU:
		return "relu"
	case OpExp:
		return "exp"
	}
	return "unknown"
}

// Arity returns the number of operands the operator takes: 0 for leaves,
// 1 for unary ops, 2 for binary ops.
func (op Op) Arity() int {
	switch op {
	case OpLeaf:
		return 0
	case OpNeg, OpReLU, OpExp:
		return 1
	default:
		return 2
	}
}

// Value is a handle to a scalar node inside a Graph.
//
// Handles are small and copied by value. They stay valid until the owning
// graph's Reset; after that any access panics. The node's value is
// immutable after creation, only its gradient accumulator mutates (during
// backward passes).
type Value[T Float] struct {
	g   *Graph[T]
	id  int32
	gen uint32
}

// node resolves the handle, panicking if it is stale.
func (v Value[T]) node() *node[T] {
	return v.g.at(v)
}

// Value returns the scalar computed when the node was created.
func (v Value[T]) Value() T {
	return v.node().data
}

// Grad returns the accumulated gradient of the most recent Backward output
// with respect to this node. Before any backward pass it is zero.
func (v Value[T]) Grad() T {
	return v.node().grad
}

// ID returns the node's index in its graph's arena. Indices are dense and
// increase in creation order; operands always have smaller IDs than the
// nodes that consume them.
func (v Value[T]) ID() int {
	v.node() // staleness check
	return int(v.id)
}

// Op returns the tag describing how the node was produced.
func (v Value[T]) Op() Op {
	return v.node().op
}

// Parents returns handles to the node's operands: none for leaves, one for
// unary ops, two for binary ops. The returned handles never own the nodes
// they reference; all nodes belong to the graph.
func (v Value[T]) Parents() []Value[T] {
	n := v.node()
	switch n.op.Arity() {
	case 0:
		return nil
	case 1:
		return []Value[T]{{g: v.g, id: n.lhs, gen: v.gen}}
	default:
		return []Value[T]{
			{g: v.g, id: n.lhs, gen: v.gen},
			{g: v.g, id: n.rhs, gen: v.gen},
		}
	}
}

// binary verifies both operands and their graphs, then allocates the result
// node. Mixing values from different graphs is a programming error.
func (v Value[T]) binary(o Value[T], op Op, data T) Value[T] {
	if v.g != o.g {
		panic("engine: operands belong to different graphs")
	}
	return v.g.push(node[T]{data: data, op: op, lhs: v.id, rhs: o.id})
}

// Add returns a new node computing v + o.
func (v Value[T]) Add(o Value[T]) Value[T] {
	return v.binary(o, OpAdd, v.Value()+o.Value())
}

// Sub returns a new node computing v - o.
func (v Value[T]) Sub(o Value[T]) Value[T] {
	return v.binary(o, OpSub, v.Value()-o.Value())
}

// Mul returns a new node computing v * o.
func (v Value[T]) Mul(o Value[T]) Value[T] {
	return v.binary(o, OpMul, v.Value()*o.Value())
}

// Div returns a new node computing v / o.
//
// Division by zero is not special-cased: the result and any gradients
// flowing through it follow IEEE 754 semantics (Inf or NaN). Detecting
// non-finite values is the caller's responsibility.
func (v Value[T]) Div(o Value[T]) Value[T] {
	return v.binary(o, OpDiv, v.Value()/o.Value())
}

// Neg returns a new node computing -v.
func (v Value[T]) Neg() Value[T] {
	return v.g.push(node[T]{data: -v.Value(), op: OpNeg, lhs: v.id, rhs: -1})
}

// ReLU returns a new node computing max(v, 0).
//
// The backward rule gates on the input value (gradient flows iff the input
// is strictly positive), the standard subgradient convention.
func (v Value[T]) ReLU() Value[T] {
	data := v.Value()
	if data < 0 {
		data = 0
	}
	return v.g.push(node[T]{data: data, op: OpReLU, lhs: v.id, rhs: -1})
}

// Exp returns a new node computing e^v.
func (v Value[T]) Exp() Value[T] {
	data := T(math.Exp(float64(v.Value())))
	return v.g.push(node[T]{data: data, op: OpExp, lhs: v.id, rhs: -1})
}
