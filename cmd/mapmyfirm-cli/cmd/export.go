package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application"
	"mapmyfirm/internal/application/commands"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a project as JSON or its checklist as CSV",
}

// writeExport writes data to --out, to a generated filename with --out=auto,
// or to standard output
func writeExport(data []byte, auto string) error {
	switch exportOut {
	case "", "-":
		_, err := os.Stdout.Write(data)
		return err
	case "auto":
		exportOut = auto
	}
	if err := os.WriteFile(exportOut, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	return nil
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export the whole project",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		now := time.Now()
		data, err := application.ExportProject(*state, now)
		if err != nil {
			return err
		}
		return writeExport(append(data, '\n'), application.ExportFilename(state.Config, now))
	},
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export the checklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := application.WriteChecklistCSV(&buf, state.ChecklistItems); err != nil {
			return err
		}
		buf.WriteByte('\n')
		return writeExport(buf.Bytes(), application.CSVFilename(time.Now()))
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store an exported project as a new project",
	Long: `Import a JSON export. Reading "-" takes the document from standard input.

Example:
  mapmyfirm-cli import acme-law_2026-03-14_09-26-53.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read export: %w", err)
		}

		if summary := application.ProjectSummary(data); summary != nil {
			fmt.Fprintf(os.Stderr, "%s (%s): %d pages, %d locations, exported %s\n",
				summary.ProjectName, summary.SiteURL, summary.PageCount, summary.LocationCount, summary.ExportDate)
		}

		importCmd := commands.NewImportProjectCommand(GetStore(), data)
		importCmd.Log = GetLogger().Store()
		result, err := importCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if result.Warning != "" {
			fmt.Fprintln(os.Stderr, styleMissing.Render("warning: "+result.Warning))
		}
		fmt.Printf("Imported project %s (%s)\n", result.State.Config.ProjectName, result.ID)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOut, "out", "o", "", `output file; "auto" picks a dated filename`)

	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportCSVCmd)
	rootCmd.AddCommand(importCmd)
}
