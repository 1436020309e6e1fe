package hindic

import (
	"io"
	"os"

	"github.com/llir/llvm/ir"
)

// Compiler orchestrates the full pipeline: scan, parse, analyze, emit.
// A single Compiler is not safe for concurrent reuse across Compile
// calls, but each call is independent of the last.
type Compiler struct {
	lastProgram *Program
	lastSymbols *SymbolTable
}

// NewCompiler returns a ready-to-use Compiler.
func NewCompiler() *Compiler {
	return &Compiler{}
}

// Result holds everything a single compilation produced: the rendered
// C source (empty if compilation failed before code generation) and
// every diagnostic collected along the way, in pipeline order.
type Result struct {
	C      string
	Errors []CompileError
}

// OK reports whether the compilation produced no diagnostics.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Compile reads path, runs it through the full pipeline, and returns
// the generated C source plus any diagnostics.
func (c *Compiler) Compile(path string) (Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	return c.CompileSource(source), nil
}

// CompileSource runs the pipeline over an in-memory source buffer.
func (c *Compiler) CompileSource(source []byte) Result {
	scanner := NewScanner(source)
	parser := NewParser(scanner)

	prog := parser.Parse()
	errs := append([]CompileError{}, parser.Errors()...)

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	analyzer := NewAnalyzer()
	analyzer.Analyze(prog)
	errs = append(errs, analyzer.Errors()...)

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	c.lastProgram = prog
	c.lastSymbols = analyzer.SymbolTable()

	emitter := NewEmitter()
	return Result{C: emitter.Emit(prog), Errors: nil}
}

// CompileFromReader compiles source read from reader and writes the
// generated C to writer. It returns any diagnostics produced.
func (c *Compiler) CompileFromReader(reader io.Reader, writer io.Writer) ([]CompileError, error) {
	source, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	result := c.CompileSource(source)
	if !result.OK() {
		return result.Errors, nil
	}

	_, err = io.WriteString(writer, result.C)
	return nil, err
}

// Tokenize scans source to completion and returns every token,
// including the terminal EOF. It never stops at the first lexical
// error: error tokens are included in the returned slice like any
// other token, for tools like "-t" that just want to see the stream.
func Tokenize(source []byte) []Token {
	scanner := NewScanner(source)
	var tokens []Token
	for {
		tok := scanner.Next()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// ParseOnly runs the scanner and parser but not semantic analysis or
// code generation, for tools like "-p" that just want a syntax check.
func ParseOnly(source []byte) (*Program, []CompileError) {
	scanner := NewScanner(source)
	parser := NewParser(scanner)
	prog := parser.Parse()
	return prog, parser.Errors()
}

// EmitLLVMIR scans, parses and analyzes source, then lowers the
// resulting Program to an LLVM IR module (no C is emitted), returning
// its textual form.
// This is a supplementary backend: no optimization passes run over the
// module, and it is never linked against a runtime.
func EmitLLVMIR(source []byte) (string, []CompileError) {
	scanner := NewScanner(source)
	parser := NewParser(scanner)

	prog := parser.Parse()
	if len(parser.Errors()) > 0 {
		return "", parser.Errors()
	}

	analyzer := NewAnalyzer()
	analyzer.Analyze(prog)
	if len(analyzer.Errors()) > 0 {
		return "", analyzer.Errors()
	}

	builder := NewLLVMIRBuilder()
	mod := builder.Build(prog)
	return moduleString(mod), nil
}

func moduleString(mod *ir.Module) string {
	return mod.String()
}
