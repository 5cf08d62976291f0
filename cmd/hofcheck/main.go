// Command hofcheck drives one of the internal/scenarios literal trees
// through the full pipeline this module implements: bind.NewDriver resolves
// every higher-order function in the tree, then the bound tree is evaluated
// and the result printed. It intentionally does not parse a textual
// expression language; that is the general-purpose evaluator's job.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/relcore/hofexpr/bind"
	"github.com/relcore/hofexpr/internal/log"
	"github.com/relcore/hofexpr/internal/scenarios"
	"github.com/relcore/hofexpr/types"
	"github.com/relcore/hofexpr/values"
)

func main() {
	name := flag.String("scenario", "S1", "scenario to run (S1..S7), or \"all\"")
	flag.Parse()

	if strings.EqualFold(*name, "all") {
		for _, s := range scenarios.All() {
			if err := run(s); err != nil {
				log.Errorf("hofcheck: %s: %v", s.Name, err)
				os.Exit(1)
			}
		}
		return
	}

	s, err := scenarios.ByName(*name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(s); err != nil {
		log.Errorf("hofcheck: %s: %v", s.Name, err)
		os.Exit(1)
	}
}

func run(s *scenarios.Scenario) error {
	driver := bind.NewDriver(bind.NewSimpleBinder())
	bound, err := driver.Bind(s.Tree)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	result, err := bound.Eval(nil)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}

	fmt.Printf("%s: %s\n", s.Name, s.Description)
	fmt.Printf("  type   = %s\n", bound.DataType())
	fmt.Printf("  result = %s\n", render(result, bound.DataType()))
	return nil
}

// render formats a values.Value for display, recursing through
// ArrayData/MapData recursively into a readable form.
func render(v values.Value, t types.DataType) string {
	if values.IsNull(v) {
		return "null"
	}
	switch t.Kind() {
	case types.Array:
		arr := v.(values.ArrayData)
		elemType := t.Element()
		parts := make([]string, arr.NumElements())
		for i := range parts {
			parts[i] = render(arr.Get(i, elemType), elemType)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case types.Map:
		m := v.(values.MapData)
		keyType, valType := t.Key(), t.Value()
		keys, vals := m.KeyArray(), m.ValueArray()
		parts := make([]string, m.NumElements())
		for i := range parts {
			parts[i] = fmt.Sprintf("%s: %s",
				render(keys.Get(i, keyType), keyType),
				render(vals.Get(i, valType), valType))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case types.String:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
