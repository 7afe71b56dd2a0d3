package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mapmyfirm/internal/application/commands"
	"mapmyfirm/internal/domain"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Generate and edit the practice area checklist",
	Long: `The checklist has one row per matched location, recording whether its
hub exists and which practice area pages exist under it.

Practice areas: ` + areaNames(),
}

func areaNames() string {
	names := make([]string, len(domain.PracticeAreas))
	for i, a := range domain.PracticeAreas {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

var checklistGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Rebuild the checklist from matched locations",
	Long: `Rebuild the checklist from the project's matched locations.
Earlier rows and their manual edits are replaced, so an existing
checklist is only overwritten with --force.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if n := len(state.ChecklistItems); n > 0 && !force {
			return fmt.Errorf("checklist already has %d rows; rerun with --force to replace them and their manual edits", n)
		}
		items, err := commands.NewGenerateChecklistCommand(GetStore(), id).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("Generated %d checklist rows\n", len(items))
		return nil
	},
}

var checklistShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show every checklist row",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, state, err := loadProject(context.Background())
		if err != nil {
			return err
		}
		if len(state.ChecklistItems) == 0 {
			fmt.Println("No checklist yet")
			return nil
		}
		for _, item := range state.ChecklistItems {
			printItem(item)
		}
		return nil
	},
}

func printItem(item domain.ChecklistItem) {
	done := styleMuted.Render("[ ]")
	if item.Completed {
		done = styleOK.Render("[x]")
	}
	fmt.Printf("%s %s  %s\n", done, styleTitle.Render(item.Location), styleMuted.Render(item.ID))
	fmt.Printf("    %s hub", mark(item.HubExists))
	if item.HubID != nil {
		fmt.Printf(" %s", styleMuted.Render(*item.HubID))
	}
	fmt.Println()

	for _, a := range domain.PracticeAreas {
		rec := item.Area(a)
		line := fmt.Sprintf("    %s %s", mark(rec.Exists), a.DisplayName())
		switch {
		case rec.PageID != "":
			line += styleMuted.Render(" page " + rec.PageID)
		case rec.ManualURL != "":
			line += styleMuted.Render(" " + rec.ManualURL)
		}
		if rec.Optimized {
			line += styleOK.Render(" optimized")
		}
		if rec.Comment != "" {
			line += styleMuted.Render("  # " + rec.Comment)
		}
		fmt.Println(line)
	}
	if item.Notes != "" {
		fmt.Printf("    notes: %s\n", item.Notes)
	}
}

var checklistStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize checklist completeness",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		stats, err := commands.NewChecklistStatsCommand(GetStore(), id).Execute(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("Locations: %d\n", stats.Total)
		fmt.Printf("Completed: %d (%d%%)\n", stats.Completed, stats.CompletionPercentage)
		fmt.Printf("Hubs:      %d (%d%%)\n", stats.HubsExist, stats.HubsPercentage)
		fmt.Printf("Overall:   %d of %d pages (%d%%)\n", stats.TotalExists, stats.TotalRequired, stats.OverallPercentage)
		for _, a := range domain.PracticeAreas {
			fmt.Printf("  %-22s %d\n", a.DisplayName(), stats.PracticeAreaCounts[a])
		}
		return nil
	},
}

var (
	setPageID    string
	setURL       string
	setComment   string
	setOptimized bool
)

var checklistSetCmd = &cobra.Command{
	Use:   "set <item-id> <area>",
	Short: "Record the page for one practice area",
	Long: `Record a practice area page by page ID or URL. A page ID wins over a URL;
giving neither marks the page missing.

Examples:
  mapmyfirm-cli checklist set 9b1e... car_accident --page 512 -p 01J...
  mapmyfirm-cli checklist set 9b1e... "Slip and Fall" --url https://acmelaw.com/reno/slip/ -p 01J...`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}

		setCmd := commands.NewSetPracticeAreaCommand(GetStore(), id, args[0], args[1])
		setCmd.PageID = setPageID
		setCmd.ManualURL = setURL
		setCmd.Comment = setComment
		setCmd.Optimized = setOptimized
		item, err := setCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		printItem(*item)
		return nil
	},
}

var checklistOptimizedCmd = &cobra.Command{
	Use:   "toggle-optimized <item-id> <area>",
	Short: "Flip the optimized flag for one practice area",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		item, err := commands.NewToggleOptimizedCommand(GetStore(), id, args[0], args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		printItem(*item)
		return nil
	},
}

var checklistNoteCmd = &cobra.Command{
	Use:   "note <item-id> <text>",
	Short: "Replace a row's notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		updateCmd := commands.NewUpdateChecklistItemCommand(GetStore(), id, args[0])
		notes := args[1]
		updateCmd.Notes = &notes
		if _, err := updateCmd.Execute(context.Background()); err != nil {
			return err
		}
		fmt.Println("Notes saved")
		return nil
	},
}

var checklistDoneCmd = &cobra.Command{
	Use:   "done <item-id>",
	Short: "Mark a row completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		undo, _ := cmd.Flags().GetBool("undo")
		completed := !undo

		updateCmd := commands.NewUpdateChecklistItemCommand(GetStore(), id, args[0])
		updateCmd.Completed = &completed
		item, err := updateCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		printItem(*item)
		return nil
	},
}

var checklistAddCmd = &cobra.Command{
	Use:   "add <location>",
	Short: "Add a row for a location with no hub yet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := requireProject()
		if err != nil {
			return err
		}
		item, err := commands.NewAddChecklistItemCommand(GetStore(), id, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		printItem(*item)
		return nil
	},
}

func init() {
	checklistSetCmd.Flags().StringVar(&setPageID, "page", "", "page ID on the site")
	checklistSetCmd.Flags().StringVar(&setURL, "url", "", "page URL when it is not a scanned page")
	checklistSetCmd.Flags().StringVar(&setComment, "comment", "", "free-form comment")
	checklistSetCmd.Flags().BoolVar(&setOptimized, "optimized", false, "mark the page optimized")
	checklistDoneCmd.Flags().Bool("undo", false, "mark the row not completed")
	checklistGenerateCmd.Flags().Bool("force", false, "replace an existing checklist")

	rootCmd.AddCommand(checklistCmd)
	checklistCmd.AddCommand(checklistGenerateCmd)
	checklistCmd.AddCommand(checklistShowCmd)
	checklistCmd.AddCommand(checklistStatsCmd)
	checklistCmd.AddCommand(checklistSetCmd)
	checklistCmd.AddCommand(checklistOptimizedCmd)
	checklistCmd.AddCommand(checklistNoteCmd)
	checklistCmd.AddCommand(checklistDoneCmd)
	checklistCmd.AddCommand(checklistAddCmd)
}
