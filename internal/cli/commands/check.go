package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fieldmeta-lang/fieldmeta/internal/cli/config"
)

var (
	checkJSON    bool
	checkVerbose bool
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate .fm schemas without generating code",
		Long: `Run the full expansion pipeline over the schema directory and report
errors, without writing any output files.`,
		Example: `  # Validate the project schemas
  fieldmeta check

  # Show the expanded declarations
  fieldmeta check --verbose

  # Output errors in JSON format
  fieldmeta check --json`,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkJSON, "json", false, "Output errors in JSON format")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "List expanded declarations")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	successColor := color.New(color.FgGreen, color.Bold)
	errorColor := color.New(color.FgRed, color.Bold)
	infoColor := color.New(color.FgCyan)

	cfg, _ := config.Load()

	schemaDir := "schema"
	if cfg != nil && cfg.Schema.Dir != "" {
		schemaDir = cfg.Schema.Dir
	}

	if _, err := os.Stat(schemaDir); os.IsNotExist(err) {
		return fmt.Errorf("%s/ directory not found - are you in a fieldmeta project?", schemaDir)
	}

	schema, compileErrors, err := compileSchemaDir(schemaDir)
	if err != nil {
		return err
	}
	if len(compileErrors) > 0 {
		if checkJSON {
			outputErrorsJSON(compileErrors)
		} else {
			outputErrorsTerminal(compileErrors, errorColor)
			printHints(compileErrors, schema)
		}
		return fmt.Errorf("check failed")
	}

	if checkVerbose {
		infoColor.Printf("Kinds (%d):\n", len(schema.Kinds))
		for _, kind := range schema.Kinds {
			fmt.Printf("  %s = %s\n", kind.Name, kind.Default.String())
		}

		infoColor.Printf("Records (%d):\n", len(schema.Records))
		for _, record := range schema.Records {
			fmt.Printf("  %s\n", record.Name)
			for _, field := range record.Fields {
				if field.Default != nil {
					fmt.Printf("    %s: %s = %s\n", field.Name, field.Type, field.Default.String())
				} else {
					fmt.Printf("    %s: %s\n", field.Name, field.Type)
				}
			}
		}

		infoColor.Printf("Bindings (%d):\n", len(schema.Bindings))
		for _, b := range schema.Bindings {
			fmt.Printf("  %s.%s %s = %s\n", b.Record, b.Field, b.Kind, b.Value.String())
		}
	}

	successColor.Printf("✓ %d kind(s), %d record(s), %d binding(s)\n",
		len(schema.Kinds), len(schema.Records), len(schema.Bindings))

	return nil
}
