package hindic

// SymbolCategory distinguishes a variable symbol from a function symbol.
type SymbolCategory int

const (
	SymbolVariable SymbolCategory = iota
	SymbolFunction
)

// Symbol is a single entry in the SymbolTable: a variable's type, or a
// function's return type and parameter-type sequence.
type Symbol struct {
	Name       string
	Category   SymbolCategory
	DataType   Type // variable's type, or function's return type
	ParamTypes []Type
	Variadic   bool // true for the लिखो/पढ़ो builtins: any argument count/type is accepted
	Depth      int
}

// SymbolTable is a single stack-ordered collection of symbols, threaded
// by scope depth: insertion pushes to the front, lookup scans
// front-to-back (so inner scopes shadow outer ones), and EndScope
// removes every symbol whose depth equals the current depth. Function
// symbols always live at depth 0.
type SymbolTable struct {
	symbols []*Symbol // front of slice == top of stack
	depth   int
}

// NewSymbolTable returns an empty table at scope depth 0.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{}
}

// Depth returns the current scope depth.
func (t *SymbolTable) Depth() int {
	return t.depth
}

// BeginScope increments the scope depth, on entry to a function body,
// for-statement, or block.
func (t *SymbolTable) BeginScope() {
	t.depth++
}

// EndScope removes every symbol defined at the current depth, then
// decrements it.
func (t *SymbolTable) EndScope() {
	kept := t.symbols[:0]
	for _, sym := range t.symbols {
		if sym.Depth != t.depth {
			kept = append(kept, sym)
		}
	}
	t.symbols = kept
	t.depth--
}

// DefinedInCurrentScope reports whether name is already bound at the
// current scope depth.
func (t *SymbolTable) DefinedInCurrentScope(name string) bool {
	for _, sym := range t.symbols {
		if sym.Depth == t.depth && sym.Name == name {
			return true
		}
	}
	return false
}

// DefineVariable inserts a variable symbol at the current depth. The
// caller is responsible for checking DefinedInCurrentScope first.
func (t *SymbolTable) DefineVariable(name string, dataType Type) *Symbol {
	sym := &Symbol{Name: name, Category: SymbolVariable, DataType: dataType, Depth: t.depth}
	t.symbols = append([]*Symbol{sym}, t.symbols...)
	return sym
}

// DefineFunction inserts a function symbol at depth 0, regardless of
// the table's current depth.
func (t *SymbolTable) DefineFunction(name string, returnType Type, paramTypes []Type) *Symbol {
	sym := &Symbol{Name: name, Category: SymbolFunction, DataType: returnType, ParamTypes: paramTypes, Depth: 0}
	t.symbols = append([]*Symbol{sym}, t.symbols...)
	return sym
}

// DefineVariadicFunction inserts a variadic function symbol at depth 0,
// for the लिखो/पढ़ो standard intrinsics: analyzeCall accepts any
// argument count or types against it.
func (t *SymbolTable) DefineVariadicFunction(name string, returnType Type) *Symbol {
	sym := &Symbol{Name: name, Category: SymbolFunction, DataType: returnType, Variadic: true, Depth: 0}
	t.symbols = append([]*Symbol{sym}, t.symbols...)
	return sym
}

// Lookup returns the first (innermost) symbol bound to name, or nil.
func (t *SymbolTable) Lookup(name string) *Symbol {
	for _, sym := range t.symbols {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// FunctionDefinedAtGlobalScope reports whether a function named name is
// already registered at depth 0.
func (t *SymbolTable) FunctionDefinedAtGlobalScope(name string) bool {
	for _, sym := range t.symbols {
		if sym.Depth == 0 && sym.Category == SymbolFunction && sym.Name == name {
			return true
		}
	}
	return false
}
