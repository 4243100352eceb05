// Package registry implements the host function registry: a
// name-to-implementation table whose entries the evaluator seeds into
// the outermost lexical environment frame, plus the three built-in host
// functions every interpreter carries.
package registry

import (
	"fmt"

	"github.com/chtz/miniscript/internal/runtime"
)

// DataStore is the keyed mapping passed to evaluate; io_get and io_put
// read and write it. The façade owns the concrete map the embedder
// supplies.
type DataStore map[string]runtime.Value

func (d DataStore) Get(key string) (runtime.Value, bool) {
	v, ok := d[key]
	return v, ok
}

func (d DataStore) Set(key string, val runtime.Value) {
	d[key] = val
}

// OutputSink is the append-only sequence console_put writes lines to.
type OutputSink struct {
	lines []string
}

func (s *OutputSink) Append(line string) {
	s.lines = append(s.lines, line)
}

// Lines returns every line appended so far, in order.
func (s *OutputSink) Lines() []string {
	return s.lines
}

// Registry holds embedder-registered host functions by name. Names
// registered here resolve as identifiers at every lexical scope unless
// shadowed by a user `let`/`def`.
type Registry struct {
	functions map[string]*runtime.HostFunction
}

// New creates an empty registry. Callers typically follow with
// RegisterBuiltins to add console_put/io_get/io_put.
func New() *Registry {
	return &Registry{functions: make(map[string]*runtime.HostFunction)}
}

// Register adds or replaces a host function.
func (r *Registry) Register(name string, impl runtime.HostFunctionImpl, maySuspend bool) {
	r.functions[name] = &runtime.HostFunction{Name: name, Impl: impl, MaySuspend: maySuspend}
}

// Get looks up a host function by name.
func (r *Registry) Get(name string) (*runtime.HostFunction, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

// Names returns every registered host function name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	return names
}

// RegisterBuiltins installs console_put, io_get, and io_put,
// bound to the data store and output sink for one evaluation.
func (r *Registry) RegisterBuiltins(data DataStore, output *OutputSink) {
	r.Register("console_put", func(args []runtime.Value) (runtime.Value, error) {
		var arg runtime.Value = runtime.Null{}
		if len(args) > 0 {
			arg = args[0]
		}
		output.Append(runtime.Stringify(arg))
		return arg, nil
	}, false)

	r.Register("io_get", func(args []runtime.Value) (runtime.Value, error) {
		key := argAsKey(args)
		val, ok := data.Get(key)
		if !ok {
			return runtime.Null{}, nil
		}
		if arr, ok := val.(*runtime.Array); ok {
			return arr.Copy(), nil
		}
		return val, nil
	}, false)

	r.Register("io_put", func(args []runtime.Value) (runtime.Value, error) {
		key := argAsKey(args)
		var val runtime.Value = runtime.Null{}
		if len(args) > 1 {
			val = args[1]
		}
		data.Set(key, val)
		return val, nil
	}, false)
}

func argAsKey(args []runtime.Value) string {
	if len(args) == 0 {
		return ""
	}
	if s, ok := args[0].(runtime.String); ok {
		return string(s)
	}
	return runtime.Stringify(args[0])
}

// CallHost invokes a host function, wrapping any non-nil error so
// callers can attribute it as a HostError at the call site's position.
func CallHost(fn *runtime.HostFunction, args []runtime.Value) (runtime.Value, error) {
	result, err := fn.Impl(args)
	if err != nil {
		return nil, fmt.Errorf("host function %q failed: %w", fn.Name, err)
	}
	if result == nil {
		return runtime.Null{}, nil
	}
	return result, nil
}
