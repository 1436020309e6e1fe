package hindic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(t *testing.T, source string) ([]CompileError, *Analyzer) {
	t.Helper()
	prog, p := parse(source)
	require.False(t, p.HadError(), "source must parse cleanly: %v", p.Errors())

	analyzer := NewAnalyzer()
	analyzer.Analyze(prog)
	return analyzer.Errors(), analyzer
}

func TestSemanticsValidProgram(t *testing.T) {
	errs, _ := analyze(t, `
		पूर्णांक जोड़(पूर्णांक a, पूर्णांक b) { वापस a + b; }
		शून्य मुख्य() { पूर्णांक अ = जोड़(1, 2); }
	`)
	assert.Empty(t, errs)
}

func TestSemanticsUndefinedVariable(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { अ = 1; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined variable in assignment.")
}

func TestSemanticsUndefinedVariableReference(t *testing.T) {
	errs, _ := analyze(t, `पूर्णांक अ = ब;`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined variable.")
}

func TestSemanticsSelfReferencingInitializerIsUndefined(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = अ; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined variable.")
}

func TestSemanticsVariableRedefinedInScope(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = 1; पूर्णांक अ = 2; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "already defined in this scope")
}

func TestSemanticsShadowingAcrossScopesIsAllowed(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = 1; { पूर्णांक अ = 2; } }`)
	assert.Empty(t, errs)
}

func TestSemanticsFunctionRedefined(t *testing.T) {
	errs, _ := analyze(t, `
		शून्य च() {}
		शून्य च() {}
	`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "already defined")
}

func TestSemanticsTypeMismatchInInitializer(t *testing.T) {
	errs, _ := analyze(t, `दशमलव अ = "text";`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Type mismatch in variable initialization.")
}

func TestSemanticsArithmeticPromotesToFloat(t *testing.T) {
	errs, _ := analyze(t, `दशमलव अ = 1 + 2.0;`)
	assert.Empty(t, errs)
}

func TestSemanticsArithmeticRequiresNumericOperands(t *testing.T) {
	errs, _ := analyze(t, `वर्ण अ = "x" + "y";`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Arithmetic operators require numeric operands.")
}

func TestSemanticsComparisonRequiresCompatibleOperands(t *testing.T) {
	errs, _ := analyze(t, `पूर्णांक अ = (1 == "x");`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Comparison operators require compatible operands.")
}

func TestSemanticsConditionMustBeBoolean(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { अगर ("x") {} }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Condition must be a boolean expression.")
}

func TestSemanticsReturnFromVoidFunctionWithValue(t *testing.T) {
	errs, _ := analyze(t, `शून्य च() { वापस 1; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Cannot return a value from a void function.")
}

func TestSemanticsMissingReturnValue(t *testing.T) {
	errs, _ := analyze(t, `पूर्णांक च() { वापस; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Missing return value in non-void function.")
}

func TestSemanticsReturnTypeMismatch(t *testing.T) {
	errs, _ := analyze(t, `पूर्णांक च() { वापस "x"; }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Return type mismatch.")
}

func TestSemanticsCallWrongArgumentCount(t *testing.T) {
	errs, _ := analyze(t, `
		पूर्णांक च(पूर्णांक a) { वापस a; }
		पूर्णांक अ = च(1, 2);
	`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Wrong number of arguments.")
}

func TestSemanticsCallWrongArgumentCountDoesNotCascade(t *testing.T) {
	// The call's result type must be the error sentinel, not the
	// function's declared return type, or a mismatched initializer type
	// triggers a spurious second diagnostic on the same expression.
	errs, _ := analyze(t, `
		पूर्णांक च(पूर्णांक a) { वापस a; }
		वर्ण अ = च(1, 2);
	`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Wrong number of arguments.")
}

func TestSemanticsUndefinedFunctionCallDoesNotCascadeIntoArgs(t *testing.T) {
	// The undefined callee must be the only diagnostic; an undefined
	// argument must not be analyzed and reported too.
	errs, _ := analyze(t, `शून्य मुख्य() { च(ब); }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined function.")
}

func TestSemanticsCannotCallAVariableDoesNotCascadeIntoArgs(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = 1; अ(ब); }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Cannot call a variable.")
}

func TestSemanticsCallArgumentTypeMismatch(t *testing.T) {
	errs, _ := analyze(t, `
		पूर्णांक च(पूर्णांक a) { वापस a; }
		पूर्णांक अ = च("x");
	`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Argument type mismatch.")
}

func TestSemanticsCannotCallAVariable(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = 1; अ(); }`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Cannot call a variable.")
}

func TestSemanticsCannotAssignToAFunction(t *testing.T) {
	errs, _ := analyze(t, `
		शून्य च() {}
		शून्य मुख्य() { च = 1; }
	`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Cannot assign to a function.")
}

func TestSemanticsForwardReference(t *testing.T) {
	// Registering functions in a first pass lets an earlier function
	// call one declared later in the same file.
	errs, _ := analyze(t, `
		शून्य अ() { ब(); }
		शून्य ब() {}
	`)
	assert.Empty(t, errs)
}

func TestSemanticsPrintIntrinsicCallableWithoutDeclaration(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { लिखो("%d", 1); }`)
	assert.Empty(t, errs)
}

func TestSemanticsReadIntrinsicCallableWithoutDeclaration(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { पूर्णांक अ = 0; पढ़ो("%d", अ); }`)
	assert.Empty(t, errs)
}

func TestSemanticsPrintIntrinsicAcceptsAnyArgumentCountAndTypes(t *testing.T) {
	errs, _ := analyze(t, `शून्य मुख्य() { लिखो("%s %d %f", "x", 1, 2.0); लिखो(); }`)
	assert.Empty(t, errs)
}

func TestSemanticsErrorDoesNotCascade(t *testing.T) {
	// A single undefined-variable reference should not also trigger a
	// spurious arithmetic-operand error on the same expression.
	errs, _ := analyze(t, `पूर्णांक अ = ब + 1;`)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined variable.")
}
