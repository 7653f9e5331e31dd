package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fieldmeta-lang/fieldmeta/compiler/errors"
	"github.com/fieldmeta-lang/fieldmeta/compiler/expand"
	"github.com/fieldmeta-lang/fieldmeta/compiler/lexer"
	"github.com/fieldmeta-lang/fieldmeta/compiler/parser"
	"github.com/fieldmeta-lang/fieldmeta/internal/cli/ui"
	"github.com/fieldmeta-lang/fieldmeta/internal/utils"
)

// compileSchemaDir reads every .fm file under dir, lexes and parses them
// into one combined program, and expands it. Declarations are shared across
// files: kinds declared in one file can annotate records in another, in
// file name order.
func compileSchemaDir(dir string) (*expand.Schema, []errors.CompilerError, error) {
	files, err := utils.FindSchemaFiles(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find .fm files: %w", err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .fm files found in %s/", dir)
	}

	program := &parser.Program{}
	var allErrors []errors.CompilerError

	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", file, err)
		}

		tokens, lexErrors := lexer.New(string(source), file).ScanTokens()
		if len(lexErrors) > 0 {
			for _, lexErr := range lexErrors {
				allErrors = append(allErrors, errors.CompilerError{
					Phase:    "lexer",
					Code:     errors.CodeLex,
					Message:  lexErr.Message,
					Severity: errors.Error,
					Location: errors.SourceLocation{
						File:   file,
						Line:   lexErr.Line,
						Column: lexErr.Column,
					},
				})
			}
			continue
		}

		fileProgram, parseErrors := parser.New(tokens).Parse()
		if len(parseErrors) > 0 {
			for _, parseErr := range parseErrors {
				allErrors = append(allErrors, errors.CompilerError{
					Phase:    "parser",
					Code:     errors.CodeSyntax,
					Message:  parseErr.Message,
					Severity: errors.Error,
					Location: errors.SourceLocation{
						File:   parseErr.Location.File,
						Line:   parseErr.Location.Line,
						Column: parseErr.Location.Column,
					},
				})
			}
			continue
		}

		program.Decls = append(program.Decls, fileProgram.Decls...)
	}

	if len(allErrors) > 0 {
		return nil, allErrors, nil
	}

	// The partial schema is returned alongside expansion errors so callers
	// can offer suggestions from the declarations that did expand
	schema, expandErrors := expand.Expand(program)
	return schema, expandErrors, nil
}

// printHints writes "did you mean" suggestions for unknown-name errors,
// matched against the declarations that expanded successfully
func printHints(errs []errors.CompilerError, schema *expand.Schema) {
	if schema == nil {
		return
	}

	var kinds, records []string
	for _, k := range schema.Kinds {
		kinds = append(kinds, k.Name)
	}
	for _, r := range schema.Records {
		records = append(records, r.Name)
	}

	for _, e := range errs {
		switch e.Code {
		case errors.CodeUnknownExtension:
			if name, ok := trailingName(e.Message); ok {
				fmt.Fprint(os.Stderr, ui.UnknownExtensionError(strings.TrimPrefix(name, "@"), kinds, false))
			}
		case errors.CodeUnknownRecord:
			if name, ok := trailingName(e.Message); ok {
				fmt.Fprint(os.Stderr, ui.UnknownRecordError(name, records, false))
			}
		}
	}
}

// trailingName extracts the subject name from a "...: name" diagnostic
func trailingName(message string) (string, bool) {
	i := strings.LastIndex(message, ": ")
	if i < 0 {
		return "", false
	}
	return message[i+2:], true
}

func outputErrorsJSON(errs []errors.CompilerError) {
	output := struct {
		Success bool                   `json:"success"`
		Errors  []errors.CompilerError `json:"errors"`
	}{
		Success: false,
		Errors:  errs,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

func outputErrorsTerminal(errs []errors.CompilerError, errorColor *color.Color) {
	errorColor.Fprintf(os.Stderr, "\nExpansion failed with %d error(s):\n\n", len(errs))

	for i, err := range errs {
		fmt.Fprintf(os.Stderr, "%d. [%s] %s:%d:%d\n",
			i+1, err.Phase, err.Location.File, err.Location.Line, err.Location.Column)
		fmt.Fprintf(os.Stderr, "   %s\n", err.Message)

		if i < len(errs)-1 {
			fmt.Fprintln(os.Stderr, strings.Repeat("-", 60))
		}
	}
	fmt.Fprintln(os.Stderr)
}
