package evaluator

import (
	"fmt"
	"strings"

	"github.com/slate-lang/slate/internal/diagnostics"
)

// Format stringifies a value the way print and str do: integers decimal,
// booleans true/false, strings without quotes, unit empty.
func Format(obj Object) string {
	return obj.Inspect()
}

var Builtins = map[string]*Builtin{
	"print": {
		Name:    "print",
		MaxArgs: -1,
		Fn: func(ev *Evaluator, args []Object) Object {
			parts := make([]string, len(args))
			for i, arg := range args {
				parts[i] = Format(arg)
			}
			fmt.Fprintln(ev.Out, strings.Join(parts, " "))
			return Unit
		},
	},
	"input": {
		Name:    "input",
		MaxArgs: 1,
		Fn: func(ev *Evaluator, args []Object) Object {
			prompt := ""
			if len(args) == 1 {
				prompt = args[0].(*String).Value
			}
			if ev.In == nil {
				return ev.errorAt(diagnostics.ErrR004, ev.currentTok, "input: no line reader available")
			}
			line, err := ev.In.ReadLine(prompt)
			if err != nil {
				return ev.errorAt(diagnostics.ErrR004, ev.currentTok, "input: %v", err)
			}
			return &String{Value: line}
		},
	},
	"str": {
		Name:    "str",
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(ev *Evaluator, args []Object) Object {
			return &String{Value: Format(args[0])}
		},
	},
	"min": {
		Name:    "min",
		MinArgs: 2,
		MaxArgs: -1,
		Fn: func(ev *Evaluator, args []Object) Object {
			best := args[0].(*Integer).Value
			for _, arg := range args[1:] {
				if v := arg.(*Integer).Value; v < best {
					best = v
				}
			}
			return &Integer{Value: best}
		},
	},
	"max": {
		Name:    "max",
		MinArgs: 2,
		MaxArgs: -1,
		Fn: func(ev *Evaluator, args []Object) Object {
			best := args[0].(*Integer).Value
			for _, arg := range args[1:] {
				if v := arg.(*Integer).Value; v > best {
					best = v
				}
			}
			return &Integer{Value: best}
		},
	},
}

// NewGlobalEnvironment returns a fresh environment whose outermost layer
// binds the builtins, together with the store holding them.
func NewGlobalEnvironment(store *Store) *Environment {
	builtinLayer := NewEnvironment()
	for name, builtin := range Builtins {
		addr := store.Alloc()
		store.Set(addr, builtin)
		builtinLayer.Define(name, addr)
	}
	return NewEnclosedEnvironment(builtinLayer)
}
