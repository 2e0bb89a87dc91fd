// Package main provides the Ember CLI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"k8s.io/klog/v2"

	"github.com/ember-ml/ember/engine"
	"github.com/ember-ml/ember/render"
)

const version = "v0.1.0-dev"

var dotOut = flag.String("dot", "", "write the demo graph as Graphviz DOT to this file")

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	switch flag.Arg(0) {
	case "version":
		fmt.Printf("Ember %s\n", version)
	case "demo":
		if err := runDemo(*dotOut); err != nil {
			klog.Errorf("demo failed: %v", err)
			os.Exit(1)
		}
	default:
		fmt.Println("Ember - Scalar Autodiff for Go")
		fmt.Printf("Version: %s\n\n", version)
		fmt.Println("Commands:")
		fmt.Println("  version    Show version")
		fmt.Println("  demo       Differentiate a small expression graph [-dot file]")
	}
}

// runDemo builds g = f * (a*b + c), runs one backward pass and reports
// every gradient.
func runDemo(dotPath string) error {
	gr := engine.NewGraph[float64]()
	a := gr.Leaf(2.0)
	b := gr.Leaf(-3.0)
	c := gr.Leaf(10.0)
	f := gr.Leaf(-2.0)
	g := a.Mul(b).Add(c).Mul(f)

	g.Backward()

	fmt.Printf("g = f * (a*b + c) = %g\n", g.Value())
	for _, in := range []struct {
		name string
		v    engine.Value[float64]
	}{{"a", a}, {"b", b}, {"c", c}, {"f", f}} {
		fmt.Printf("  dg/d%s = %g\n", in.name, in.v.Grad())
	}
	klog.Infof("graph holds %s nodes", humanize.Comma(int64(gr.Len())))

	if dotPath == "" {
		return nil
	}
	out, err := os.Create(dotPath)
	if err != nil {
		return err
	}
	defer out.Close()
	return render.DOT(out, g,
		render.WithName(a, "a"), render.WithName(b, "b"),
		render.WithName(c, "c"), render.WithName(f, "f"))
}
