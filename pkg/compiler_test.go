package hindic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hindic.dev/internal/fixtures"
)

func TestCompilerCompileSourceSuccess(t *testing.T) {
	result := NewCompiler().CompileSource([]byte(fixtures.SampleProgram))
	require.True(t, result.OK(), "unexpected errors: %v", result.Errors)
	assert.Contains(t, result.C, "#include <stdio.h>")
	assert.Contains(t, result.C, "जोड़")
	assert.Contains(t, result.C, "printf")
}

func TestCompilerCompileSourceStopsAtFirstFailingStage(t *testing.T) {
	// A syntax error should surface parser diagnostics, not a crash
	// from trying to analyze or emit a malformed tree.
	result := NewCompiler().CompileSource([]byte(`पूर्णांक अ = ;`))
	assert.False(t, result.OK())
	assert.NotEmpty(t, result.Errors)
}

func TestCompilerCompileSourceSemanticFailure(t *testing.T) {
	result := NewCompiler().CompileSource([]byte(`पूर्णांक अ = "text";`))
	assert.False(t, result.OK())
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error(), "Type mismatch")
}

func TestCompilerCompileFromReader(t *testing.T) {
	var out bytes.Buffer
	errs, err := NewCompiler().CompileFromReader(strings.NewReader(fixtures.SampleProgram), &out)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Contains(t, out.String(), "int जोड़")
}

func TestTokenizeIncludesEOF(t *testing.T) {
	toks := Tokenize([]byte("पूर्णांक"))
	require.Len(t, toks, 2)
	assert.Equal(t, TokenEOF, toks[len(toks)-1].Type)
}

func TestParseOnlyReportsNoSemanticWork(t *testing.T) {
	// Parsing undefined-variable code should succeed syntactically even
	// though it would later fail semantic analysis.
	prog, errs := ParseOnly([]byte(`पूर्णांक अ = ब;`))
	assert.Empty(t, errs)
	assert.Len(t, prog.Declarations, 1)
}

func TestEmitLLVMIRProducesAModule(t *testing.T) {
	ir, errs := EmitLLVMIR([]byte(fixtures.SampleProgram))
	require.Empty(t, errs)
	assert.Contains(t, ir, "define")
	assert.Contains(t, ir, "declare")
	assert.Contains(t, ir, "printf")
}

func TestEmitLLVMIRPropagatesSemanticErrors(t *testing.T) {
	_, errs := EmitLLVMIR([]byte(`पूर्णांक अ = "text";`))
	assert.NotEmpty(t, errs)
}
