package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/adapters/wordpress"
	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/logging"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the project's site and replace its pages",
	Long: `Fetch every page of the project's selected content types from the
WordPress REST API. Manual tags on pages that still exist are kept.

Example:
  mapmyfirm-cli scan -p 01J...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		id, state, err := loadProject(ctx)
		if err != nil {
			return err
		}

		log := GetLogger().Scan()
		source := wordpress.NewClient(state.Config.SiteURL, wordpress.WithLogger(log))

		scanCmd := commands.NewScanProjectCommand(GetStore(), source, id)
		scanCmd.Log = log
		scanCmd.Progress = func(fetched, total int, contentType string) {
			fmt.Fprintf(os.Stderr, "\r%s: %d of %d", contentType, fetched, total)
		}
		result, err := scanCmd.Execute(ctx)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types <site-url>",
	Short: "List the content types a site exposes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(os.Stderr, logging.ParseLevel(logLevel), false)
		client := wordpress.NewClient(args[0], wordpress.WithLogger(log.Scan()))

		types, err := client.ContentTypes(context.Background())
		if err != nil {
			return err
		}
		for _, t := range types {
			fmt.Printf("%s  %s  %s\n", styleTitle.Render(t.RestBase), t.Name, styleMuted.Render(t.Slug))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(typesCmd)
}
