package ddl

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapddl/pkg/core"
)

// Runtime is the execution environment of a user-defined function.
type Runtime int

// Runtimes.
const (
	RuntimeNative Runtime = iota
	RuntimeWASM
	RuntimePython
)

var runtimeNames = [...]string{
	RuntimeNative: "native",
	RuntimeWASM:   "wasm",
	RuntimePython: "python",
}

func (r Runtime) String() string {
	if r >= 0 && int(r) < len(runtimeNames) {
		return runtimeNames[r]
	}
	return fmt.Sprintf("runtime(%d)", int(r))
}

// ParseRuntime returns the runtime with the given name.
func ParseRuntime(name string) (Runtime, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r, n := range runtimeNames {
		if n == name {
			return Runtime(r), nil
		}
	}
	return 0, fmt.Errorf("unknown function runtime %q", name)
}

// LibraryKind says how a function's code is loaded.
type LibraryKind int

// Library kinds. The zero value is invalid.
const (
	LibraryInvalid LibraryKind = iota
	LibraryFile
	LibraryModule
)

func (k LibraryKind) String() string {
	switch k {
	case LibraryFile:
		return "file"
	case LibraryModule:
		return "module"
	default:
		return "invalid"
	}
}

// Library references a function's code: a server-side file path, or module
// content embedded in the statement.
type Library struct {
	Kind    LibraryKind
	Path    string
	Content []byte
	// Binary marks Content as raw bytes rather than source text; it changes how
	// the content is encoded (see EncodedPayload).
	Binary bool
}

// FileLibrary references code by path.
func FileLibrary(path string) Library {
	return Library{Kind: LibraryFile, Path: path}
}

// SourceLibrary embeds source text.
func SourceLibrary(src string) Library {
	return Library{Kind: LibraryModule, Content: []byte(src)}
}

// BinaryLibrary embeds raw bytes, such as a compiled WASM module.
func BinaryLibrary(content []byte) Library {
	return Library{Kind: LibraryModule, Content: content, Binary: true}
}

// clause renders INFILE '<path>' or the quoted base64 payload.
func (l Library) clause(function string) (string, error) {
	switch l.Kind {
	case LibraryFile:
		if l.Path == "" {
			return "", &MissingFieldError{Statement: KindCreateScalarFunction, Field: "library path"}
		}
		return "INFILE " + QuoteLiteral(l.Path), nil
	case LibraryModule:
		return "'" + EncodedPayload(l) + "'", nil
	default:
		return "", &UnsupportedLibraryKindError{Function: function, Kind: l.Kind}
	}
}

// Function describes a user-defined scalar function.
type Function struct {
	Name    string
	Inputs  []core.DataType
	Output  core.DataType
	Runtime Runtime
	Library Library
}

// NewFunction builds a function and rejects runtime and library combinations
// that CREATE FUNCTION cannot express.
func NewFunction(name string, inputs []core.DataType, output core.DataType, runtime Runtime, lib Library) (*Function, error) {
	fn := &Function{
		Name:    name,
		Inputs:  inputs,
		Output:  output,
		Runtime: runtime,
		Library: lib,
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

// Validate checks the function can be rendered.
func (f *Function) Validate() error {
	if err := required(KindCreateScalarFunction, "function name", f.Name); err != nil {
		return err
	}
	if f.Runtime != RuntimeWASM && f.Runtime != RuntimePython {
		return &UnsupportedRuntimeError{Runtime: f.Runtime}
	}
	if f.Library.Kind != LibraryFile && f.Library.Kind != LibraryModule {
		return &UnsupportedLibraryKindError{Function: f.Name, Kind: f.Library.Kind}
	}
	if len(f.Inputs) > MaxParameters {
		return &TooManyParametersError{Count: len(f.Inputs), Max: MaxParameters}
	}
	return nil
}

// AggregateHooks names the SQL functions implementing each aggregate stage.
// Empty hooks are omitted.
type AggregateHooks struct {
	Init      string
	Update    string
	Merge     string
	Serialize string
	Finalize  string
}

// tokens renders hook="fn" for each set hook, in lifecycle order.
func (h AggregateHooks) tokens() []string {
	hooks := []struct{ name, value string }{
		{"init_fn", h.Init},
		{"update_fn", h.Update},
		{"merge_fn", h.Merge},
		{"serialize_fn", h.Serialize},
		{"finalize_fn", h.Finalize},
	}
	var out []string
	for _, hook := range hooks {
		if hook.value != "" {
			out = append(out, hook.name+`="`+hook.value+`"`)
		}
	}
	return out
}

// Aggregate describes a user-defined aggregate function. Aggregates load only
// from a file library.
type Aggregate struct {
	Name    string
	Inputs  []core.DataType
	Output  core.DataType
	Library Library
	Hooks   AggregateHooks
}

// Validate checks the aggregate can be rendered.
func (a *Aggregate) Validate() error {
	if err := required(KindCreateAggregateFunction, "function name", a.Name); err != nil {
		return err
	}
	if a.Library.Kind != LibraryFile {
		return &UnsupportedLibraryKindError{Function: a.Name, Kind: a.Library.Kind}
	}
	if err := required(KindCreateAggregateFunction, "library path", a.Library.Path); err != nil {
		return err
	}
	if len(a.Inputs) > MaxParameters {
		return &TooManyParametersError{Count: len(a.Inputs), Max: MaxParameters}
	}
	return nil
}

// CreateScalarFunction renders CREATE OR REPLACE FUNCTION. Name, when set,
// overrides Func.Name.
type CreateScalarFunction struct {
	Func     Function
	Name     string
	Database string
}

// Kind implements Statement.
func (s CreateScalarFunction) Kind() Kind { return KindCreateScalarFunction }

func (s CreateScalarFunction) statementNode() {}

// Compile implements Statement.
func (s CreateScalarFunction) Compile() (string, error) {
	fn := s.Func
	if s.Name != "" {
		fn.Name = s.Name
	}
	if err := required(s.Kind(), "function name", fn.Name); err != nil {
		return "", err
	}

	var runtime string
	switch fn.Runtime {
	case RuntimeWASM:
		runtime = "AS WASM"
	case RuntimePython:
		runtime = "AS PYTHON"
	default:
		return "", &UnsupportedRuntimeError{Runtime: fn.Runtime}
	}

	lib, err := fn.Library.clause(fn.Name)
	if err != nil {
		return "", err
	}
	sig, err := FunctionSignature(fn.Name, s.Database, fn.Inputs, fn.Output)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{"CREATE OR REPLACE FUNCTION", sig, runtime, lib}, " "), nil
}

// CreateAggregateFunction renders CREATE OR REPLACE AGGREGATE FUNCTION with
// one hook per line after the INFILE clause.
type CreateAggregateFunction struct {
	Func     Aggregate
	Name     string
	Database string
}

// Kind implements Statement.
func (s CreateAggregateFunction) Kind() Kind { return KindCreateAggregateFunction }

func (s CreateAggregateFunction) statementNode() {}

// Compile implements Statement.
func (s CreateAggregateFunction) Compile() (string, error) {
	agg := s.Func
	if s.Name != "" {
		agg.Name = s.Name
	}
	if err := agg.Validate(); err != nil {
		return "", err
	}
	sig, err := FunctionSignature(agg.Name, s.Database, agg.Inputs, agg.Output)
	if err != nil {
		return "", err
	}
	tokens := append([]string{"AS INFILE " + QuoteLiteral(agg.Library.Path)}, agg.Hooks.tokens()...)
	return "CREATE OR REPLACE AGGREGATE FUNCTION " + sig + " " + strings.Join(tokens, "\n"), nil
}

// DropFunction drops one overload of a function, identified by its input types.
type DropFunction struct {
	Name      string
	Database  string
	Inputs    []core.DataType
	Aggregate bool
	IfExists  bool
}

// Kind implements Statement.
func (s DropFunction) Kind() Kind { return KindDropFunction }

func (s DropFunction) statementNode() {}

// Compile implements Statement.
func (s DropFunction) Compile() (string, error) {
	if err := required(s.Kind(), "function name", s.Name); err != nil {
		return "", err
	}
	params, err := InputSignature(s.Inputs)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("DROP ")
	if s.Aggregate {
		b.WriteString("AGGREGATE ")
	}
	b.WriteString("FUNCTION ")
	if s.IfExists {
		b.WriteString("IF EXISTS ")
	}
	fmt.Fprintf(&b, "%s(%s)", ScopedName(s.Name, s.Database), params)
	return b.String(), nil
}

// ListFunctions renders SHOW [AGGREGATE ]FUNCTIONS IN <database>.
type ListFunctions struct {
	Database  string
	Like      string
	Aggregate bool
}

// Kind implements Statement.
func (s ListFunctions) Kind() Kind { return KindListFunctions }

func (s ListFunctions) statementNode() {}

// Compile implements Statement.
func (s ListFunctions) Compile() (string, error) {
	if err := required(s.Kind(), "database", s.Database); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("SHOW ")
	if s.Aggregate {
		b.WriteString("AGGREGATE ")
	}
	b.WriteString("FUNCTIONS IN ")
	b.WriteString(s.Database)
	if s.Like != "" {
		b.WriteString(" LIKE ")
		b.WriteString(QuoteLiteral(s.Like))
	}
	return b.String(), nil
}
