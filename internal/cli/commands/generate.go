package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fieldmeta-lang/fieldmeta/compiler/codegen"
	"github.com/fieldmeta-lang/fieldmeta/internal/cli/config"
)

var (
	generateJSON    bool
	generateVerbose bool
	generateOutput  string
	generatePackage string
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Expand .fm schemas and generate Go code",
		Long: `Expand all .fm files in the schema directory and generate Go source.

The generation process:
  1. Lexical analysis - tokenize .fm files
  2. Parsing - build the declaration AST
  3. Expansion - apply extension markers, peel annotation chains
  4. Code generation - emit structs, constructors, and registry loading`,
		Example: `  # Generate with settings from fieldmeta.yml
  fieldmeta generate

  # Generate with verbose output to see each step
  fieldmeta generate --verbose

  # Output errors in JSON format (useful for tooling)
  fieldmeta generate --json

  # Generate into a custom directory and package
  fieldmeta generate --output internal/gen --package gen`,
		RunE: runGenerate,
	}

	cmd.Flags().BoolVar(&generateJSON, "json", false, "Output errors in JSON format")
	cmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Show detailed generation output")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default: gen)")
	cmd.Flags().StringVarP(&generatePackage, "package", "p", "", "Generated package name (default: gen)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	startTime := time.Now()

	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)
	warningColor := color.New(color.FgYellow)

	cfg, err := config.Load()
	if err != nil {
		if generateVerbose {
			warningColor.Printf("Warning: %v\n", err)
		}
	}

	schemaDir := "schema"
	if cfg != nil && cfg.Schema.Dir != "" {
		schemaDir = cfg.Schema.Dir
	}

	outputDir := generateOutput
	if outputDir == "" {
		if cfg != nil && cfg.Generate.Dir != "" {
			outputDir = cfg.Generate.Dir
		} else {
			outputDir = "gen"
		}
	}

	pkg := generatePackage
	if pkg == "" {
		if cfg != nil && cfg.Generate.Package != "" {
			pkg = cfg.Generate.Package
		} else {
			pkg = "gen"
		}
	}

	if _, err := os.Stat(schemaDir); os.IsNotExist(err) {
		return fmt.Errorf("%s/ directory not found - are you in a fieldmeta project?", schemaDir)
	}

	if generateVerbose {
		infoColor.Printf("Expanding schemas in %s/...\n", schemaDir)
	}

	schema, compileErrors, err := compileSchemaDir(schemaDir)
	if err != nil {
		return err
	}
	if len(compileErrors) > 0 {
		if generateJSON {
			outputErrorsJSON(compileErrors)
		} else {
			outputErrorsTerminal(compileErrors, errorColor)
			printHints(compileErrors, schema)
		}
		return fmt.Errorf("expansion failed")
	}

	if generateVerbose {
		infoColor.Printf("Expanded %d kind(s), %d record(s), %d binding(s)\n",
			len(schema.Kinds), len(schema.Records), len(schema.Bindings))
		infoColor.Println("Generating Go code...")
	}

	gen := codegen.NewGenerator()
	files, err := gen.GenerateSchema(schema, pkg)
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for filename, content := range files {
		fullPath := filepath.Join(outputDir, filename)
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}

		if generateVerbose {
			infoColor.Printf("  Generated %s\n", fullPath)
		}
	}

	elapsed := time.Since(startTime)
	fmt.Println()
	successColor.Printf("✓ Generated %d file(s) in %.2fs\n", len(files), elapsed.Seconds())
	infoColor.Printf("  Output: %s (package %s)\n", outputDir, pkg)

	return nil
}
