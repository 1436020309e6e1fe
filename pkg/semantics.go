package hindic

// Analyzer walks a Program twice: the first pass registers every
// top-level function's signature at depth 0 so forward calls resolve,
// and the second pass type-checks and scope-checks every declaration
// and statement against the resulting SymbolTable.
type Analyzer struct {
	table  *SymbolTable
	errors []CompileError

	currentReturnType Type
}

// NewAnalyzer returns an Analyzer over a fresh SymbolTable.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		table:             NewSymbolTable(),
		currentReturnType: TypeVoid,
	}
}

// Errors returns every diagnostic collected during analysis.
func (a *Analyzer) Errors() []CompileError {
	return a.errors
}

// SymbolTable exposes the table built during Analyze, for the emitter
// or other later passes that want symbol information.
func (a *Analyzer) SymbolTable() *SymbolTable {
	return a.table
}

func (a *Analyzer) error(pos Position, format string, args ...interface{}) {
	a.errors = append(a.errors, newSemanticError(pos, format, args...))
}

// Analyze runs both passes over prog and reports whether it is free of
// semantic errors.
func (a *Analyzer) Analyze(prog *Program) bool {
	a.registerBuiltins()

	for _, decl := range prog.Declarations {
		if fn, ok := decl.(*FunctionDecl); ok {
			a.registerFunction(fn)
		}
	}

	for _, decl := range prog.Declarations {
		a.analyzeDecl(decl)
	}

	return len(a.errors) == 0
}

// registerBuiltins pre-registers the standard intrinsics (लिखो/पढ़ो)
// as variadic functions, so a call to either resolves without the
// source also having to declare a same-named function. Their C
// counterparts, printf/scanf, both return int.
func (a *Analyzer) registerBuiltins() {
	a.table.DefineVariadicFunction(intrinsicPrint, TypeInt)
	a.table.DefineVariadicFunction(intrinsicRead, TypeInt)
}

func (a *Analyzer) registerFunction(fn *FunctionDecl) {
	name := tokenName(fn)
	if a.table.FunctionDefinedAtGlobalScope(name) {
		a.error(fn.Name.Pos, "Function '%s' already defined.", name)
		return
	}

	paramTypes := make([]Type, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = p.Type
	}

	a.table.DefineFunction(name, fn.ReturnType, paramTypes)
}

// identName extracts the identifier spelling carried inside a Token's
// StringValue. The scanner stores identifier text there so the
// analyzer never needs to re-slice the source buffer.
func identName(tok Token) string {
	return tok.StringValue
}

func tokenName(fn *FunctionDecl) string {
	return identName(fn.Name)
}

func (a *Analyzer) analyzeDecl(decl Stmt) {
	switch d := decl.(type) {
	case *VarDecl:
		a.analyzeVarDecl(d)
	case *FunctionDecl:
		a.analyzeFunctionDecl(d)
	}
}

func (a *Analyzer) analyzeVarDecl(d *VarDecl) {
	if d.Initializer != nil {
		initType := a.analyzeExpr(d.Initializer)
		if initType != TypeError && initType != d.Type {
			a.error(d.Name.Pos, "Type mismatch in variable initialization.")
		}
	}

	if a.table.DefinedInCurrentScope(identName(d.Name)) {
		a.error(d.Name.Pos, "Variable '%s' already defined in this scope.", identName(d.Name))
	} else {
		a.table.DefineVariable(identName(d.Name), d.Type)
	}
}

func (a *Analyzer) analyzeFunctionDecl(d *FunctionDecl) {
	previous := a.currentReturnType
	a.currentReturnType = d.ReturnType

	a.table.BeginScope()
	for _, param := range d.Params {
		a.table.DefineVariable(identName(param.Name), param.Type)
	}

	a.analyzeBlockBody(d.Body)

	a.table.EndScope()
	a.currentReturnType = previous
}

// analyzeBlockBody analyzes a block's statements without opening a
// second scope: the caller (function declaration, for-statement) has
// already begun the scope it belongs to.
func (a *Analyzer) analyzeBlockBody(b *Block) {
	for _, stmt := range b.Stmts {
		a.analyzeStmt(stmt)
	}
}

func (a *Analyzer) analyzeStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		a.analyzeVarDecl(s)
	case *FunctionDecl:
		a.analyzeFunctionDecl(s)
	case *Block:
		a.table.BeginScope()
		a.analyzeBlockBody(s)
		a.table.EndScope()
	case *If:
		a.analyzeCondition(s.Cond)
		a.analyzeStmt(s.Then)
		if s.Else != nil {
			a.analyzeStmt(s.Else)
		}
	case *While:
		a.analyzeCondition(s.Cond)
		a.analyzeStmt(s.Body)
	case *For:
		a.table.BeginScope()
		if s.Init != nil {
			a.analyzeStmt(s.Init)
		}
		if s.Cond != nil {
			a.analyzeCondition(s.Cond)
		}
		if s.Incr != nil {
			a.analyzeExpr(s.Incr)
		}
		a.analyzeStmt(s.Body)
		a.table.EndScope()
	case *Return:
		a.analyzeReturn(s)
	case *ExprStmt:
		a.analyzeExpr(s.Expression)
	case *BadStmt:
		// already reported by the parser
	}
}

func (a *Analyzer) analyzeCondition(cond Expr) {
	condType := a.analyzeExpr(cond)
	if condType != TypeError && condType != TypeInt {
		a.error(cond.Pos(), "Condition must be a boolean expression.")
	}
}

func (a *Analyzer) analyzeReturn(s *Return) {
	if a.currentReturnType == TypeVoid && s.Value != nil {
		a.error(s.Position, "Cannot return a value from a void function.")
		return
	}

	if a.currentReturnType != TypeVoid && s.Value == nil {
		a.error(s.Position, "Missing return value in non-void function.")
		return
	}

	if s.Value != nil {
		valueType := a.analyzeExpr(s.Value)
		if valueType != TypeError && valueType != a.currentReturnType {
			a.error(s.Value.Pos(), "Return type mismatch.")
		}
	}
}

// analyzeExpr type-checks expr and returns its static type, or
// TypeError if a violated rule made it unknowable. Once an operand is
// TypeError, no further diagnostic is raised about it: the error has
// already been reported at its source.
func (a *Analyzer) analyzeExpr(expr Expr) Type {
	switch e := expr.(type) {
	case *BinaryExpr:
		return a.analyzeBinary(e)
	case *UnaryExpr:
		return a.analyzeUnary(e)
	case *LiteralExpr:
		return a.analyzeLiteral(e)
	case *Identifier:
		return a.analyzeIdentifier(e)
	case *Assignment:
		return a.analyzeAssignment(e)
	case *Call:
		return a.analyzeCall(e)
	case *BadExpr:
		return TypeError
	default:
		return TypeError
	}
}

func (a *Analyzer) analyzeBinary(e *BinaryExpr) Type {
	leftType := a.analyzeExpr(e.Left)
	rightType := a.analyzeExpr(e.Right)

	if leftType == TypeError || rightType == TypeError {
		return TypeError
	}

	switch e.Operator {
	case TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent:
		if !isNumeric(leftType) || !isNumeric(rightType) {
			a.error(e.Pos(), "Arithmetic operators require numeric operands.")
			return TypeError
		}
		if leftType == TypeFloat || rightType == TypeFloat {
			return TypeFloat
		}
		return TypeInt

	case TokenEquals, TokenNotEquals, TokenLess, TokenGreater, TokenLessEq, TokenGreaterEq:
		if leftType != rightType {
			a.error(e.Pos(), "Comparison operators require compatible operands.")
			return TypeError
		}
		return TypeInt

	case TokenAnd, TokenOr:
		if leftType != TypeInt || rightType != TypeInt {
			a.error(e.Pos(), "Logical operators require boolean operands.")
			return TypeError
		}
		return TypeInt

	default:
		a.error(e.Pos(), "Unknown binary operator.")
		return TypeError
	}
}

func (a *Analyzer) analyzeUnary(e *UnaryExpr) Type {
	operandType := a.analyzeExpr(e.Operand)
	if operandType == TypeError {
		return TypeError
	}

	switch e.Operator {
	case TokenMinus:
		if !isNumeric(operandType) {
			a.error(e.Position, "Unary negation requires a numeric operand.")
			return TypeError
		}
		return operandType

	case TokenNot:
		if operandType != TypeInt {
			a.error(e.Position, "Logical NOT requires a boolean operand.")
			return TypeError
		}
		return TypeInt

	default:
		a.error(e.Position, "Unknown unary operator.")
		return TypeError
	}
}

func (a *Analyzer) analyzeLiteral(e *LiteralExpr) Type {
	switch e.Value.Type {
	case TokenNumber:
		if e.Value.IsFloat {
			return TypeFloat
		}
		return TypeInt
	case TokenString:
		return TypeChar
	default:
		a.error(e.Value.Pos, "Unknown literal type.")
		return TypeError
	}
}

func (a *Analyzer) analyzeIdentifier(e *Identifier) Type {
	sym := a.table.Lookup(identName(e.Name))
	if sym == nil {
		a.error(e.Name.Pos, "Undefined variable.")
		return TypeError
	}
	if sym.Category != SymbolVariable {
		a.error(e.Name.Pos, "Expected a variable name.")
		return TypeError
	}
	return sym.DataType
}

func (a *Analyzer) analyzeAssignment(e *Assignment) Type {
	valueType := a.analyzeExpr(e.Value)

	sym := a.table.Lookup(identName(e.Target))
	if sym == nil {
		a.error(e.Target.Pos, "Undefined variable in assignment.")
		return TypeError
	}
	if sym.Category != SymbolVariable {
		a.error(e.Target.Pos, "Cannot assign to a function.")
		return TypeError
	}
	if valueType != TypeError && valueType != sym.DataType {
		a.error(e.Target.Pos, "Type mismatch in assignment.")
		return TypeError
	}

	return valueType
}

func (a *Analyzer) analyzeCall(e *Call) Type {
	sym := a.table.Lookup(identName(e.Callee))
	if sym == nil {
		a.error(e.Callee.Pos, "Undefined function.")
		return TypeError
	}
	if sym.Category != SymbolFunction {
		a.error(e.Callee.Pos, "Cannot call a variable.")
		return TypeError
	}

	if sym.Variadic {
		for _, arg := range e.Args {
			a.analyzeExpr(arg)
		}
		return sym.DataType
	}

	if len(e.Args) != len(sym.ParamTypes) {
		a.error(e.Callee.Pos, "Wrong number of arguments.")
		return TypeError
	}

	for i, arg := range e.Args {
		argType := a.analyzeExpr(arg)
		if argType != TypeError && argType != sym.ParamTypes[i] {
			a.error(arg.Pos(), "Argument type mismatch.")
		}
	}

	return sym.DataType
}

func isNumeric(t Type) bool {
	return t == TypeInt || t == TypeFloat
}
