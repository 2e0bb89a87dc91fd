package engine_test

import (
	"fmt"

	"github.com/ember-ml/ember/engine"
)

// ExampleValue_Backward builds a small expression graph and reads the
// gradients of every input after one backward pass.
func ExampleValue_Backward() {
	g := engine.NewGraph[float64]()
	a := g.Leaf(2.0)
	b := g.Leaf(-3.0)
	c := g.Leaf(10.0)
	f := g.Leaf(-2.0)

	out := a.Mul(b).Add(c).Mul(f) // (a*b + c) * f

	out.Backward()

	fmt.Printf("out = %v\n", out.Value())
	fmt.Printf("dout/da = %v\n", a.Grad())
	fmt.Printf("dout/db = %v\n", b.Grad())
	fmt.Printf("dout/dc = %v\n", c.Grad())
	fmt.Printf("dout/df = %v\n", f.Grad())
	// Output:
	// out = -8
	// dout/da = 6
	// dout/db = -4
	// dout/dc = -2
	// dout/df = 4
}
