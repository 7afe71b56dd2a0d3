package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/adapters/sqlite"
	"mapmyfirm/internal/application"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/logging"
	"mapmyfirm/internal/ports"
)

var (
	dbURL     string
	projectID string
	logLevel  string
	store     ports.ProjectStore
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mapmyfirm-cli",
	Short: "CLI for planning law firm location pages",
	Long: `mapmyfirm-cli scans a WordPress site, matches Google Business Profile
locations to location hub pages, and tracks which practice area pages
exist under each hub.

Most commands act on one project, chosen with --project.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "types" {
			return nil
		}
		logger = logging.New(os.Stderr, logging.ParseLevel(logLevel), false)

		s, err := sqlite.Open(context.Background(), dbURL, logger.Store())
		if err != nil {
			return err
		}
		store = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", config.DatabaseURL(), "project database path or libsql:// URL")
	rootCmd.PersistentFlags().StringVarP(&projectID, "project", "p", "", "project ID")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "log level (debug, info, warn, error)")
}

// GetStore returns the opened project store
func GetStore() ports.ProjectStore {
	return store
}

// GetLogger returns the CLI logger, discarding output before initialization
func GetLogger() *logging.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}

// requireProject returns the --project value or a validation error
func requireProject() (string, error) {
	if err := application.ValidateRequired("projectID", projectID); err != nil {
		return "", err
	}
	return projectID, nil
}

// loadProject loads the --project project
func loadProject(ctx context.Context) (string, *application.ProjectState, error) {
	id, err := requireProject()
	if err != nil {
		return "", nil, err
	}
	state, err := GetStore().Load(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return id, state, nil
}
