package main

import (
	"fmt"
	"math"
	"os"

	"github.com/tristendillon/pyns/core/bridge"

	pymath "my-app/src/python"
)

// goRuntime stands in for an embedded interpreter: it serves the "math"
// module from Go's math package.
type goRuntime struct{}

func (goRuntime) Import(module string) (bridge.Object, error) {
	if module != "math" {
		return nil, fmt.Errorf("no module named %q", module)
	}
	return mathModule{}, nil
}

type mathModule struct{}

func (mathModule) Attr(name string) (bridge.Object, error) {
	switch name {
	case "sqrt":
		return function(func(args []float64) float64 { return math.Sqrt(args[0]) }), nil
	case "pow":
		return function(func(args []float64) float64 { return math.Pow(args[0], args[1]) }), nil
	}
	return nil, fmt.Errorf("module 'math' has no attribute %q", name)
}

type function func(args []float64) float64

func (f function) Attr(name string) (bridge.Object, error) {
	return nil, fmt.Errorf("function has no attribute %q", name)
}

func (f function) Call(args []interface{}, kwargs map[string]interface{}) (bridge.Object, error) {
	floats := make([]float64, len(args))
	for i, a := range args {
		v, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("argument %d must be float, not %T", i, a)
		}
		floats[i] = v
	}
	return number(f(floats)), nil
}

type number float64

func (n number) Attr(name string) (bridge.Object, error) {
	return nil, fmt.Errorf("float has no attribute %q", name)
}

func main() {
	bridge.SetRuntime(goRuntime{})

	fmt.Println(pymath.Doc)
	fmt.Printf("pi = %v, e = %v\n", pymath.Pi, pymath.E)

	root, err := pymath.Sqrt.Call(2.0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("sqrt%v = %v  // %s\n", pymath.Sqrt.Arglist(), root, pymath.Sqrt.Doc())

	power, err := pymath.Pow.Call(2.0, 10.0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pow%v = %v  // %s\n", pymath.Pow.Arglist(), power, pymath.Pow.Doc())
}
