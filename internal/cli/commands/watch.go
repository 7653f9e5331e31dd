package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fieldmeta-lang/fieldmeta/internal/cli/config"
	"github.com/fieldmeta-lang/fieldmeta/internal/watch"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate code whenever schemas change",
		Long: `Monitor the schema directory for .fm changes and re-run generation
automatically. Changes are debounced so a burst of editor saves produces
one rebuild.

Examples:
  # Watch with settings from fieldmeta.yml
  fieldmeta watch

  # Enable verbose logging
  fieldmeta watch --verbose
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.Load()

			schemaDir := "schema"
			if cfg != nil && cfg.Schema.Dir != "" {
				schemaDir = cfg.Schema.Dir
			}

			if _, err := os.Stat(schemaDir); os.IsNotExist(err) {
				return fmt.Errorf("%s/ directory not found - are you in a fieldmeta project?", schemaDir)
			}

			logger := zap.NewNop()
			if verbose {
				var err error
				logger, err = zap.NewDevelopment()
				if err != nil {
					return fmt.Errorf("failed to create logger: %w", err)
				}
				defer logger.Sync()
			}

			watcher, err := watch.NewSchemaWatcher(schemaDir, logger, func(files []string) error {
				logger.Info("schemas changed, regenerating", zap.Strings("files", files))
				return runGenerate(cmd, nil)
			})
			if err != nil {
				return fmt.Errorf("failed to create watcher: %w", err)
			}

			if err := watcher.Start(); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			banner := color.New(color.FgCyan, color.Bold)
			fmt.Println()
			banner.Println("fieldmeta watch")
			color.New(color.FgWhite).Printf("   Watching: %s/\n", schemaDir)
			fmt.Println()
			color.New(color.FgYellow).Println("Press Ctrl+C to stop")
			fmt.Println()

			<-sigChan

			fmt.Println("\nShutting down...")
			if err := watcher.Stop(); err != nil {
				return fmt.Errorf("error stopping watcher: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	return cmd
}
