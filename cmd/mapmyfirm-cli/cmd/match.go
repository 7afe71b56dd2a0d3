package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
)

var matchHubType string

var matchCmd = &cobra.Command{
	Use:   "match [file]",
	Short: "Match GBP locations to location hubs",
	Long: `Read one location per line from a file, or standard input when no file
or "-" is given, and match each to the most similar location hub.
The project's previous location list is replaced.

Examples:
  mapmyfirm-cli match locations.txt -p 01J...
  printf 'Los Angeles, CA\nBoise, ID\n' | mapmyfirm-cli match -p 01J...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}

		var data []byte
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read locations: %w", err)
		}

		matchCmd := commands.NewMatchLocationsCommand(GetStore(), id, domain.SplitLocationLines(string(data)))
		matchCmd.HubTypeName = matchHubType
		matchCmd.Log = GetLogger().Match()
		result, err := matchCmd.Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, l := range result.Locations {
			printLocation(l)
		}
		return nil
	},
}

func printLocation(l domain.Location) {
	if l.MatchedHubID == nil {
		fmt.Printf("%s  %s  %s\n", styleMuted.Render(l.ID), l.LocationString, styleMissing.Render("no hub"))
		return
	}
	fmt.Printf("%s  %s  %s %s\n", styleMuted.Render(l.ID), l.LocationString,
		styleOK.Render("-> "+*l.MatchedHubID), styleMuted.Render(fmt.Sprintf("(%d%%)", l.ConfidenceScore)))
}

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "List the project's matched locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		if len(state.Locations) == 0 {
			fmt.Println("No locations matched yet")
			return nil
		}
		for _, l := range state.Locations {
			printLocation(l)
		}
		return nil
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <location-id> [hub-page-id]",
	Short: "Assign a hub to a location by hand",
	Long: `Override the hub matched to a location. Omitting the hub clears it;
--best picks the most similar hub instead.

Examples:
  mapmyfirm-cli assign 5f0c... 412 -p 01J...
  mapmyfirm-cli assign 5f0c... --best -p 01J...
  mapmyfirm-cli assign 5f0c... -p 01J...`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		hubID := ""
		if len(args) == 2 {
			hubID = args[1]
		}

		assign := commands.NewAssignHubCommand(GetStore(), id, args[0], hubID)
		assign.Best, _ = cmd.Flags().GetBool("best")
		if assign.Best && hubID != "" {
			return fmt.Errorf("give either a hub page ID or --best, not both")
		}
		loc, err := assign.Execute(context.Background())
		if err != nil {
			return err
		}
		printLocation(*loc)
		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchHubType, "hub-type", "", "custom post type holding hubs; remembered for the project")
	assignCmd.Flags().Bool("best", false, "re-match the location to its most similar hub")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(assignCmd)
}
