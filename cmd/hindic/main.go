// Command hindic compiles a single Hindi-keyword source file to C.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.hindic.dev/pkg"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hindic", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		outputPath string
		irPath     string
		tokenize   bool
		parseOnly  bool
	)

	fs.StringVar(&outputPath, "o", "", "output file (default: input-file.c)")
	fs.StringVar(&irPath, "l", "", "also write LLVM IR to this path")
	fs.BoolVar(&tokenize, "t", false, "tokenize only, printing tokens to stdout")
	fs.BoolVar(&parseOnly, "p", false, "parse only, skip code generation")
	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if fs.NArg() == 0 {
		printUsage(fs)
		return 1
	}
	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected argument '%s'.\n", fs.Arg(1))
		return 1
	}

	inputPath := fs.Arg(0)
	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open file '%s'.\n", inputPath)
		return 1
	}

	if outputPath == "" {
		outputPath = defaultOutputPath(inputPath)
	}

	if tokenize {
		printTokens(source)
		return 0
	}

	if parseOnly {
		_, errs := hindic.ParseOnly(source)
		if len(errs) > 0 {
			printErrors(errs)
			fmt.Fprintln(os.Stderr, "Error: Parsing failed.")
			return 1
		}
		fmt.Println("Parsing successful!")
		return 0
	}

	compiler := hindic.NewCompiler()
	result, err := compiler.Compile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open file '%s'.\n", inputPath)
		return 1
	}

	if !result.OK() {
		printErrors(result.Errors)
		fmt.Fprintf(os.Stderr, "Error: Compilation failed with %d errors.\n", len(result.Errors))
		return 1
	}

	if err := os.WriteFile(outputPath, []byte(result.C), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open output file '%s'.\n", outputPath)
		return 1
	}

	if irPath != "" {
		ir, errs := hindic.EmitLLVMIR(source)
		if len(errs) > 0 {
			printErrors(errs)
			return 1
		}
		if err := os.WriteFile(irPath, []byte(ir), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Could not open IR output file '%s'.\n", irPath)
			return 1
		}
	}

	fmt.Printf("Code generation successful! Output written to '%s'.\n", outputPath)
	return 0
}

func defaultOutputPath(inputPath string) string {
	if dot := strings.LastIndex(inputPath, "."); dot != -1 {
		return inputPath[:dot] + ".c"
	}
	return inputPath + ".c"
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <input-file>\n", fs.Name())
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -o <output-file>   Specify output file (default: input-file.c)")
	fmt.Fprintln(os.Stderr, "  -l <ir-file>       Also write LLVM IR to this path")
	fmt.Fprintln(os.Stderr, "  -t                 Tokenize only (output tokens to stdout)")
	fmt.Fprintln(os.Stderr, "  -p                 Parse only (no code generation)")
	fmt.Fprintln(os.Stderr, "  -h                 Display this help message")
}

func printTokens(source []byte) {
	for _, tok := range hindic.Tokenize(source) {
		fmt.Printf("Token: %s, Line: %d, Column: %d, Text: '%s'\n",
			tok.Type, tok.Pos.Line, tok.Pos.Column, tok.Text(source))
		if tok.Type == hindic.TokenEOF {
			break
		}
	}
}

func printErrors(errs []hindic.CompileError) {
	for _, err := range errs {
		fmt.Fprintln(os.Stderr, err.Error())
	}
}
