package hindic

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// ValueLookup maps source-level names to the LLVM values that
// currently hold them, threaded through nested scopes by Inherit.
type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{vals: make(map[string]value.Value)}
}

func (l *ValueLookup) Inherit(parent *ValueLookup) {
	for k, v := range parent.vals {
		l.Set(k, v)
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	v, ok := l.vals[id]
	return v, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

// LLVMIRBuilder lowers a type-checked Program into an LLVM IR module.
// This is a supplementary, diagnostic backend: it performs no
// optimization passes and the module it produces is never linked or
// executed, only rendered back to text.
type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
	fns    map[string]*ir.Func

	printf *ir.Func
	scanf  *ir.Func

	blockCounter int
}

// NewLLVMIRBuilder returns a builder with the printf/scanf externs and
// the source intrinsics (लिखो/पढ़ो) already wired to them.
func NewLLVMIRBuilder() *LLVMIRBuilder {
	b := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
		fns:    make(map[string]*ir.Func),
	}

	b.printf = b.mod.NewFunc("printf", types.I32, ir.NewParam("format", types.I8Ptr))
	b.printf.Sig.Variadic = true

	b.scanf = b.mod.NewFunc("scanf", types.I32, ir.NewParam("format", types.I8Ptr))
	b.scanf.Sig.Variadic = true

	return b
}

// Build lowers every declaration in prog and returns the resulting
// module, ready to be rendered with mod.String().
func (b *LLVMIRBuilder) Build(prog *Program) *ir.Module {
	for _, decl := range prog.Declarations {
		if fn, ok := decl.(*FunctionDecl); ok {
			b.declareFunc(fn)
		}
	}

	for _, decl := range prog.Declarations {
		switch d := decl.(type) {
		case *FunctionDecl:
			b.buildFunc(d)
		case *VarDecl:
			b.buildGlobalVar(d)
		}
	}

	return b.mod
}

func llvmType(t Type) types.Type {
	switch t {
	case TypeInt:
		return types.I32
	case TypeFloat:
		return types.Double
	case TypeChar:
		return types.I8
	default:
		return types.Void
	}
}

func (b *LLVMIRBuilder) declareFunc(fn *FunctionDecl) {
	name := identName(fn.Name)

	var params []*ir.Param
	for _, p := range fn.Params {
		params = append(params, ir.NewParam(identName(p.Name), llvmType(p.Type)))
	}

	f := b.mod.NewFunc(name, llvmType(fn.ReturnType), params...)
	b.fns[name] = f
	b.values.Set(name, f)
}

func (b *LLVMIRBuilder) buildGlobalVar(d *VarDecl) {
	name := identName(d.Name)
	zero := zeroValue(d.Type)
	glob := b.mod.NewGlobalDef("."+name, zero)
	b.values.Set(name, glob)
}

func zeroValue(t Type) constant.Constant {
	switch t {
	case TypeFloat:
		return constant.NewFloat(types.Double, 0)
	case TypeChar:
		return constant.NewInt(types.I8, 0)
	default:
		return constant.NewInt(types.I32, 0)
	}
}

func (b *LLVMIRBuilder) newBlockName() string {
	b.blockCounter++
	return fmt.Sprintf("bb%d", b.blockCounter)
}

func (b *LLVMIRBuilder) buildFunc(fn *FunctionDecl) {
	f := b.fns[identName(fn.Name)]

	prevBlock := b.block
	prevVals := b.values

	entry := f.NewBlock(b.newBlockName())
	b.block = entry

	b.values = NewValueLookup()
	b.values.Inherit(prevVals)

	for i, param := range fn.Params {
		slot := b.block.NewAlloca(llvmType(param.Type))
		b.block.NewStore(f.Params[i], slot)
		b.values.Set(identName(param.Name), slot)
	}

	b.buildBlockBody(fn.Body)

	if b.block.Term == nil {
		if fn.ReturnType == TypeVoid {
			b.block.NewRet(nil)
		} else {
			b.block.NewRet(zeroValue(fn.ReturnType))
		}
	}

	b.block = prevBlock
	b.values = prevVals
}

func (b *LLVMIRBuilder) buildBlockBody(block *Block) {
	for _, stmt := range block.Stmts {
		if b.block.Term != nil {
			return
		}
		b.buildStmt(stmt)
	}
}

func (b *LLVMIRBuilder) buildStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		b.buildLocalVar(s)
	case *Block:
		prevVals := b.values
		b.values = NewValueLookup()
		b.values.Inherit(prevVals)
		b.buildBlockBody(s)
		b.values = prevVals
	case *If:
		b.buildIf(s)
	case *While:
		b.buildWhile(s)
	case *For:
		b.buildFor(s)
	case *Return:
		b.buildReturn(s)
	case *ExprStmt:
		b.load(s.Expression)
	}
}

func (b *LLVMIRBuilder) buildLocalVar(d *VarDecl) {
	name := identName(d.Name)
	slot := b.block.NewAlloca(llvmType(d.Type))
	b.values.Set(name, slot)

	if d.Initializer != nil {
		v := b.load(d.Initializer)
		b.block.NewStore(v, slot)
	}
}

func (b *LLVMIRBuilder) buildIf(s *If) {
	f := b.block.Parent

	cond := b.load(s.Cond)
	cmp := b.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I32, 0))

	thenBlock := f.NewBlock(b.newBlockName())
	contBlock := f.NewBlock(b.newBlockName())

	var elseBlock *ir.Block
	if s.Else != nil {
		elseBlock = f.NewBlock(b.newBlockName())
		b.block.NewCondBr(cmp, thenBlock, elseBlock)
	} else {
		b.block.NewCondBr(cmp, thenBlock, contBlock)
	}

	b.block = thenBlock
	b.buildStmt(s.Then)
	if b.block.Term == nil {
		b.block.NewBr(contBlock)
	}

	if s.Else != nil {
		b.block = elseBlock
		b.buildStmt(s.Else)
		if b.block.Term == nil {
			b.block.NewBr(contBlock)
		}
	}

	b.block = contBlock
}

func (b *LLVMIRBuilder) buildWhile(s *While) {
	f := b.block.Parent

	condBlock := f.NewBlock(b.newBlockName())
	bodyBlock := f.NewBlock(b.newBlockName())
	contBlock := f.NewBlock(b.newBlockName())

	b.block.NewBr(condBlock)

	b.block = condBlock
	cond := b.load(s.Cond)
	cmp := b.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I32, 0))
	b.block.NewCondBr(cmp, bodyBlock, contBlock)

	b.block = bodyBlock
	b.buildStmt(s.Body)
	if b.block.Term == nil {
		b.block.NewBr(condBlock)
	}

	b.block = contBlock
}

func (b *LLVMIRBuilder) buildFor(s *For) {
	f := b.block.Parent

	prevVals := b.values
	b.values = NewValueLookup()
	b.values.Inherit(prevVals)

	if s.Init != nil {
		b.buildStmt(s.Init)
	}

	condBlock := f.NewBlock(b.newBlockName())
	bodyBlock := f.NewBlock(b.newBlockName())
	incrBlock := f.NewBlock(b.newBlockName())
	contBlock := f.NewBlock(b.newBlockName())

	b.block.NewBr(condBlock)

	b.block = condBlock
	if s.Cond != nil {
		cond := b.load(s.Cond)
		cmp := b.block.NewICmp(enum.IPredNE, cond, constant.NewInt(types.I32, 0))
		b.block.NewCondBr(cmp, bodyBlock, contBlock)
	} else {
		b.block.NewBr(bodyBlock)
	}

	b.block = bodyBlock
	b.buildStmt(s.Body)
	if b.block.Term == nil {
		b.block.NewBr(incrBlock)
	}

	b.block = incrBlock
	if s.Incr != nil {
		b.load(s.Incr)
	}
	b.block.NewBr(condBlock)

	b.block = contBlock
	b.values = prevVals
}

func (b *LLVMIRBuilder) buildReturn(s *Return) {
	if s.Value == nil {
		b.block.NewRet(nil)
		return
	}
	b.block.NewRet(b.load(s.Value))
}

// load lowers expr to a value, emitting whatever instructions are
// needed into the current block.
func (b *LLVMIRBuilder) load(expr Expr) value.Value {
	switch e := expr.(type) {
	case *LiteralExpr:
		return b.loadLiteral(e)
	case *Identifier:
		return b.loadIdentifier(e)
	case *BinaryExpr:
		return b.loadBinary(e)
	case *UnaryExpr:
		return b.loadUnary(e)
	case *Assignment:
		return b.loadAssignment(e)
	case *Call:
		return b.loadCall(e)
	default:
		return constant.NewInt(types.I32, 0)
	}
}

func (b *LLVMIRBuilder) loadLiteral(e *LiteralExpr) value.Value {
	switch e.Value.Type {
	case TokenNumber:
		if e.Value.IsFloat {
			return constant.NewFloat(types.Double, e.Value.FloatValue)
		}
		return constant.NewInt(types.I32, e.Value.IntValue)
	case TokenString:
		return b.stringConstant(e.Value.StringValue)
	default:
		return constant.NewInt(types.I32, 0)
	}
}

func (b *LLVMIRBuilder) stringConstant(s string) value.Value {
	withNul := s + "\x00"
	data := constant.NewCharArrayFromString(withNul)
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.mod.Globals)), data)

	arrayType := types.NewArray(uint64(len(withNul)), types.I8)
	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(arrayType, glob, zero, zero)
}

func (b *LLVMIRBuilder) loadIdentifier(e *Identifier) value.Value {
	slot, ok := b.values.Get(identName(e.Name))
	if !ok {
		return constant.NewInt(types.I32, 0)
	}
	return b.block.NewLoad(elementType(slot), slot)
}

func elementType(v value.Value) types.Type {
	if ptr, ok := v.Type().(*types.PointerType); ok {
		return ptr.ElemType
	}
	return types.I32
}

func (b *LLVMIRBuilder) loadBinary(e *BinaryExpr) value.Value {
	lhs := b.load(e.Left)
	rhs := b.load(e.Right)

	switch e.Operator {
	case TokenPlus:
		return b.block.NewAdd(lhs, rhs)
	case TokenMinus:
		return b.block.NewSub(lhs, rhs)
	case TokenStar:
		return b.block.NewMul(lhs, rhs)
	case TokenSlash:
		return b.block.NewSDiv(lhs, rhs)
	case TokenPercent:
		return b.block.NewSRem(lhs, rhs)
	case TokenEquals:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredEQ, lhs, rhs), types.I32)
	case TokenNotEquals:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredNE, lhs, rhs), types.I32)
	case TokenLess:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredSLT, lhs, rhs), types.I32)
	case TokenGreater:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredSGT, lhs, rhs), types.I32)
	case TokenLessEq:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredSLE, lhs, rhs), types.I32)
	case TokenGreaterEq:
		return b.block.NewZExt(b.block.NewICmp(enum.IPredSGE, lhs, rhs), types.I32)
	case TokenAnd:
		return b.block.NewAnd(lhs, rhs)
	case TokenOr:
		return b.block.NewOr(lhs, rhs)
	default:
		return constant.NewInt(types.I32, 0)
	}
}

func (b *LLVMIRBuilder) loadUnary(e *UnaryExpr) value.Value {
	v := b.load(e.Operand)

	switch e.Operator {
	case TokenMinus:
		return b.block.NewSub(constant.NewInt(types.I32, 0), v)
	case TokenNot:
		cmp := b.block.NewICmp(enum.IPredEQ, v, constant.NewInt(types.I32, 0))
		return b.block.NewZExt(cmp, types.I32)
	default:
		return v
	}
}

func (b *LLVMIRBuilder) loadAssignment(e *Assignment) value.Value {
	v := b.load(e.Value)
	if slot, ok := b.values.Get(identName(e.Target)); ok {
		b.block.NewStore(v, slot)
	}
	return v
}

func (b *LLVMIRBuilder) loadCall(e *Call) value.Value {
	name := identName(e.Callee)

	var args []value.Value
	for _, arg := range e.Args {
		args = append(args, b.load(arg))
	}

	switch name {
	case intrinsicPrint:
		return b.block.NewCall(b.printf, args...)
	case intrinsicRead:
		return b.block.NewCall(b.scanf, args...)
	}

	f, ok := b.fns[name]
	if !ok {
		return constant.NewInt(types.I32, 0)
	}
	return b.block.NewCall(f, args...)
}
