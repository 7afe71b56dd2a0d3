package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Add or remove manual page tags",
	Long: `Manual tags classify pages. Recognized tags:
  "` + domain.TagLocationHub + `"   marks a location hub
  "` + domain.TagPracticePage + `"  marks a practice area page
  "` + domain.TagIgnore + `"         excludes a page from matching`,
}

func tagRunE(remove bool) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}

		tagCmd := commands.NewTagCommand(GetStore(), id, args[0], args[1])
		tagCmd.Remove = remove
		page, err := tagCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(describeNode(*page))
		return nil
	}
}

var tagAddCmd = &cobra.Command{
	Use:   "add <page-id> <tag>",
	Short: "Tag a page",
	Args:  cobra.ExactArgs(2),
	RunE:  tagRunE(false),
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove <page-id> <tag>",
	Short: "Remove a tag from a page",
	Args:  cobra.ExactArgs(2),
	RunE:  tagRunE(true),
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
}
