// Copyright 2026 Ember ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package render exports expression graphs for display.
//
// It consumes only the engine's read-only surface (Value, Grad, Op,
// Parents) and never mutates the graph. The DOT output can be fed to
// Graphviz:
//
//	var buf bytes.Buffer
//	render.DOT(&buf, loss, render.WithName(x, "x"))
//	// dot -Tsvg graph.dot -o graph.svg
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/ember-ml/ember/engine"
)

// Option configures DOT output.
type Option[T engine.Float] func(*config[T])

type config[T engine.Float] struct {
	names map[int]string
}

// WithName labels a node (typically an input leaf) in the rendered graph.
func WithName[T engine.Float](v engine.Value[T], name string) Option[T] {
	return func(c *config[T]) {
		c.names[v.ID()] = name
	}
}

// DOT writes the ancestor graph of out as a Graphviz digraph: one record
// node per value showing its data and gradient, one small node per
// operator, edges from operands through the operator to the result.
func DOT[T engine.Float](w io.Writer, out engine.Value[T], opts ...Option[T]) error {
	cfg := config[T]{names: make(map[int]string)}
	for _, opt := range opts {
		opt(&cfg)
	}

	values := ancestors(out)

	var b strings.Builder
	b.WriteString("digraph ember {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, v := range values {
		id := v.ID()
		label := cfg.names[id]
		if label != "" {
			label += " | "
		}
		fmt.Fprintf(&b, "  n%d [shape=record, label=\"{ %svalue %.4f | grad %.4f }\"];\n",
			id, label, float64(v.Value()), float64(v.Grad()))
		if v.Op() == engine.OpLeaf {
			continue
		}
		fmt.Fprintf(&b, "  n%dop [label=%q];\n", id, v.Op().String())
		fmt.Fprintf(&b, "  n%dop -> n%d;\n", id, id)
		for _, p := range v.Parents() {
			fmt.Fprintf(&b, "  n%d -> n%dop;\n", p.ID(), id)
		}
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "render: writing dot output")
	}
	return nil
}

// ancestors returns out and every node reachable through parent links,
// sorted by id for deterministic output. Iterative traversal with a
// visited set, like the engine's own topological sort.
func ancestors[T engine.Float](out engine.Value[T]) []engine.Value[T] {
	visited := map[int]bool{out.ID(): true}
	values := []engine.Value[T]{out}
	stack := []engine.Value[T]{out}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range v.Parents() {
			if visited[p.ID()] {
				continue
			}
			visited[p.ID()] = true
			values = append(values, p)
			stack = append(stack, p)
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i].ID() < values[j].ID() })
	return values
}
