package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/config"
	"mapmyfirm/internal/domain"
)

var (
	newContentTypes []string
	newHubType      string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create, list, show and delete projects",
}

var projectNewCmd = &cobra.Command{
	Use:   "new <name> <site-url>",
	Short: "Create a new project",
	Long: `Create a new project for a WordPress site.

Examples:
  mapmyfirm-cli project new "Acme Injury Law" acmelaw.com
  mapmyfirm-cli project new "Acme" https://acmelaw.com --types pages,locations --hub-type locations`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		createCmd := commands.NewCreateProjectCommand(GetStore(), args[0], args[1])
		createCmd.ContentTypes = newContentTypes
		createCmd.HubTypeName = newHubType
		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := GetStore().List(context.Background())
		if err != nil {
			return err
		}
		if len(projects) == 0 {
			fmt.Println("No projects found")
			return nil
		}

		for _, p := range projects {
			fmt.Printf("%s  %s  %s  %s\n",
				styleMuted.Render(p.ID),
				styleTitle.Render(p.Name),
				p.SiteURL,
				styleMuted.Render(fmt.Sprintf("%d pages, modified %s", p.PageCount, p.LastModified)),
			)
		}
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected project's settings and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		cfg := state.Config

		fmt.Println(styleTitle.Render(cfg.ProjectName))
		fmt.Printf("ID:            %s\n", id)
		fmt.Printf("Site:          %s\n", cfg.SiteURL)
		fmt.Printf("Content types: %s\n", strings.Join(cfg.SelectedContentTypes, ", "))
		if hub := cfg.HubTypeName(); hub != "" {
			fmt.Printf("Hub type:      %s\n", hub)
		}
		if cfg.ScanDate != "" {
			fmt.Printf("Scanned:       %s\n", cfg.ScanDate)
		}
		fmt.Printf("Pages:         %d\n", len(state.Pages))
		for _, g := range domain.GroupByType(state.Pages) {
			fmt.Println(styleMuted.Render(fmt.Sprintf("  %-12s %d", g.Type, len(g.Nodes))))
		}
		fmt.Printf("Locations:     %d\n", len(state.Locations))
		fmt.Printf("Checklist:     %d rows\n", len(state.ChecklistItems))
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := commands.NewDeleteProjectCommand(GetStore(), args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	projectNewCmd.Flags().StringSliceVar(&newContentTypes, "types", nil, "content types to scan (default pages,posts)")
	projectNewCmd.Flags().StringVar(&newHubType, "hub-type", config.HubType(), "custom post type holding location hubs")

	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectNewCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
}
