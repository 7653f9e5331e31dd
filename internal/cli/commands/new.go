package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	newInteractive bool
	newPackage     string
)

// validateProjectName validates project name with security checks
func validateProjectName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) == 0 || len(name) > 100 {
		return fmt.Errorf("project name must be 1-100 characters")
	}

	if filepath.IsAbs(name) {
		return fmt.Errorf("project name cannot be an absolute path")
	}

	// Only allow alphanumeric, dash, and underscore
	matched, _ := regexp.MatchString(`^[a-zA-Z0-9_-]+$`, name)
	if !matched {
		return fmt.Errorf("project name can only contain letters, numbers, dashes, and underscores")
	}

	return nil
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new fieldmeta project",
		Long: `Create a new fieldmeta project with directory structure and a sample
schema.

If no project name is provided, you will be prompted to enter one.

Examples:
  fieldmeta new measurements
  fieldmeta new measurements --package models
  fieldmeta new --interactive`,
		RunE: runNew,
	}

	cmd.Flags().BoolVarP(&newInteractive, "interactive", "i", false, "Interactive project setup with prompts")
	cmd.Flags().StringVarP(&newPackage, "package", "p", "gen", "Generated package name")

	return cmd
}

func runNew(cmd *cobra.Command, args []string) error {
	var projectName string

	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgCyan)
	promptColor := color.New(color.FgYellow)

	if len(args) > 0 {
		projectName = args[0]
	}

	if projectName == "" {
		prompt := &survey.Input{
			Message: "Project name:",
		}
		if err := survey.AskOne(prompt, &projectName, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	pkg := newPackage
	if newInteractive {
		questions := []*survey.Question{
			{
				Name: "projectName",
				Prompt: &survey.Input{
					Message: "Project name:",
					Default: projectName,
				},
				Validate: survey.Required,
			},
			{
				Name: "pkg",
				Prompt: &survey.Input{
					Message: "Generated package name:",
					Default: pkg,
				},
			},
		}

		answers := struct {
			ProjectName string
			Pkg         string
		}{}

		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}

		projectName = answers.ProjectName
		pkg = answers.Pkg
	}

	if err := validateProjectName(projectName); err != nil {
		return err
	}

	projectPath := filepath.Join(".", projectName)
	if _, err := os.Stat(projectPath); err == nil {
		return fmt.Errorf("directory %s already exists", projectName)
	}

	infoColor.Printf("Creating project: %s\n\n", projectName)

	dirs := []string{
		projectPath,
		filepath.Join(projectPath, "schema"),
		filepath.Join(projectPath, "gen"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	files := map[string]string{
		"fieldmeta.yml":    projectConfig(projectName, pkg),
		"schema/models.fm": sampleSchema,
		".gitignore":       gitignore,
		"README.md":        projectReadme(projectName),
	}

	for destPath, content := range files {
		fullPath := filepath.Join(projectPath, destPath)
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", destPath, err)
		}
		infoColor.Printf("  ✓ Created %s\n", destPath)
	}

	fmt.Println()
	successColor.Printf("✓ Created project: %s\n\n", projectName)

	promptColor.Println("Get started:")
	fmt.Printf("  cd %s\n", projectName)
	fmt.Println("  fieldmeta check")
	fmt.Println("  fieldmeta generate")
	fmt.Println()

	return nil
}

func projectConfig(projectName, pkg string) string {
	return fmt.Sprintf(`project_name: %s
schema:
  dir: schema
generate:
  dir: gen
  package: %s
`, projectName, pkg)
}

const sampleSchema = `# Metadata kinds and their defaults.
kind default = 0
kind units = ""
kind label = ""

# Combined extension: last-listed kind takes the rightmost value.
chain describe = label | units

@default
@describe
record Measurement {
	distance: Float = 0.0 | 1.5 | "distance" | "m"
	elapsed: Float = 0.0 | 2.5 | "elapsed" | "s"
}
`

const gitignore = `# Generated code
gen/

# Editor files
*.swp
*~
.DS_Store
`

func projectReadme(projectName string) string {
	return fmt.Sprintf(`# %s

A fieldmeta schema project.

## Getting Started

1. Validate the schemas:
   `+"```"+`bash
   fieldmeta check
   `+"```"+`

2. Generate Go code:
   `+"```"+`bash
   fieldmeta generate
   `+"```"+`

## Project Structure

- `+"`schema/`"+` - Schema source files (`+"`.fm`"+`)
- `+"`gen/`"+` - Generated Go code
- `+"`fieldmeta.yml`"+` - Project configuration
`, projectName)
}
