package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.hindic.dev/internal/fixtures"
)

func writeTempSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCompilesToDefaultOutputPath(t *testing.T) {
	src := writeTempSource(t, "program.hn", fixtures.SampleProgram)

	code := run([]string{src})
	require.Equal(t, 0, code)

	out, err := os.ReadFile(src[:len(src)-len(filepath.Ext(src))] + ".c")
	require.NoError(t, err)
	assert.Contains(t, string(out), "#include <stdio.h>")
	assert.Contains(t, string(out), "जोड़")
}

func TestRunWritesToExplicitOutputPath(t *testing.T) {
	src := writeTempSource(t, "program.hn", fixtures.SampleProgram)
	dst := filepath.Join(filepath.Dir(src), "out.c")

	code := run([]string{"-o", dst, src})
	require.Equal(t, 0, code)

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(out), "int जोड़")
}

func TestRunAlsoWritesLLVMIRWhenRequested(t *testing.T) {
	src := writeTempSource(t, "program.hn", fixtures.SampleProgram)
	dst := filepath.Join(filepath.Dir(src), "out.c")
	irPath := filepath.Join(filepath.Dir(src), "out.ll")

	code := run([]string{"-o", dst, "-l", irPath, src})
	require.Equal(t, 0, code)

	ir, err := os.ReadFile(irPath)
	require.NoError(t, err)
	assert.Contains(t, string(ir), "define")
	assert.Contains(t, string(ir), "@जोड़")
}

func TestRunReportsCompileErrors(t *testing.T) {
	src := writeTempSource(t, "bad.hn", `पूर्णांक अ = "text";`)

	code := run([]string{src})
	assert.Equal(t, 1, code)
}

func TestRunReportsMissingInputFile(t *testing.T) {
	code := run([]string{filepath.Join(t.TempDir(), "missing.hn")})
	assert.Equal(t, 1, code)
}

func TestRunRequiresExactlyOnePositionalArgument(t *testing.T) {
	assert.Equal(t, 1, run([]string{}))

	a := writeTempSource(t, "a.hn", fixtures.SampleProgram)
	b := writeTempSource(t, "b.hn", fixtures.SampleProgram)
	assert.Equal(t, 1, run([]string{a, b}))
}

func TestRunTokenizeOnly(t *testing.T) {
	src := writeTempSource(t, "program.hn", fixtures.SampleProgram)
	code := run([]string{"-t", src})
	assert.Equal(t, 0, code)
}

func TestRunParseOnly(t *testing.T) {
	src := writeTempSource(t, "program.hn", fixtures.SampleProgram)
	code := run([]string{"-p", src})
	assert.Equal(t, 0, code)
}

func TestRunHelpExitsZero(t *testing.T) {
	assert.Equal(t, 0, run([]string{"-h"}))
}
