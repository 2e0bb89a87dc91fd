// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public API for Ember's scalar reverse-mode
// automatic differentiation engine.
//
// A Graph owns every node of one differentiation session. Leaves are
// created explicitly; arithmetic and activation methods on Value handles
// build up a DAG, computing each result eagerly. Backward on an output
// node fills the gradient accumulator of every ancestor in one reverse
// topological traversal.
//
// Example:
//
//	import "github.com/ember-ml/ember/engine"
//
//	func main() {
//	    g := engine.NewGraph[float64]()
//	    x := g.Leaf(3.0)
//	    y := x.Mul(x).Add(x) // y = x^2 + x
//
//	    y.Backward()
//	    fmt.Println(x.Grad()) // dy/dx = 2x + 1 = 7
//
//	    g.Reset() // end the session, releasing all nodes at once
//	}
//
// Graphs are single-threaded: concurrent sessions must each own their own
// Graph.
package engine

import (
	"github.com/ember-ml/ember/internal/engine"
)

// Float is the constraint for node value types (float32 or float64).
type Float = engine.Float

// Graph is an arena owning every scalar node of one session.
type Graph[T Float] = engine.Graph[T]

// Value is a handle to a scalar node inside a Graph. It stays valid until
// the owning graph's Reset.
type Value[T Float] = engine.Value[T]

// Op tags how a node was produced. Renderers dispatch on it for display;
// the engine dispatches on it for gradient rules.
type Op = engine.Op

// Operation tags.
const (
	OpLeaf Op = engine.OpLeaf
	OpAdd  Op = engine.OpAdd
	OpSub  Op = engine.OpSub
	OpMul  Op = engine.OpMul
	OpDiv  Op = engine.OpDiv
	OpNeg  Op = engine.OpNeg
	OpReLU Op = engine.OpReLU
	OpExp  Op = engine.OpExp
)

// NewGraph creates an empty graph, beginning a new differentiation session.
func NewGraph[T Float]() *Graph[T] {
	return engine.NewGraph[T]()
}
