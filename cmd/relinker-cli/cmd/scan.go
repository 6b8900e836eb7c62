package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"relinker/internal/application"
	"relinker/internal/application/commands"
	"relinker/internal/domain"
)

var (
	scanScope string
	scanCopy  bool
	scanQuiet bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find instances whose backing component was deleted",
	Long: `Scan the document for unlinked instances and print one line per
instance with its replacement candidate, if any.

Examples:
  relinker-cli scan
  relinker-cli scan --scope document
  relinker-cli scan --copy`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		scope, err := application.ParseScope(scanScope)
		if err != nil {
			return err
		}

		scan := commands.NewScanCommand(GetDocument(), scope)
		if !scanQuiet {
			scan.Progress = func(p domain.Progress) {
				fmt.Fprintf(cmd.ErrOrStderr(), "scanning %s: %d/%d\r", p.PageName, p.Current, p.Total)
			}
		}
		records, err := scan.Execute(ctx)
		if !scanQuiet {
			fmt.Fprintln(cmd.ErrOrStderr())
		}
		if err != nil {
			return err
		}
		records, err = commands.NewMatchCommand(GetDocument(), records).Execute(ctx)
		if err != nil {
			return err
		}

		printReport(records)

		if scanCopy && len(records) > 0 {
			ids := make([]string, len(records))
			for i, r := range records {
				ids[i] = string(r.InstanceID)
			}
			if err := clipboard.WriteAll(strings.Join(ids, ",")); err != nil {
				return fmt.Errorf("failed to copy instance IDs: %w", err)
			}
			fmt.Println(subtleStyle.Render(fmt.Sprintf("Copied %d instance ID(s) to clipboard.", len(ids))))
		}
		return nil
	},
}

func printReport(records []domain.UnlinkedInstance) {
	if len(records) == 0 {
		fmt.Println(okStyle.Render("No unlinked instances found."))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d unlinked instance(s)", len(records))))
	for _, r := range records {
		where := fmt.Sprintf("%s / %s", r.PageName, r.ParentName)
		line := fmt.Sprintf("%-14s %-24q %s", r.InstanceID, r.InstanceName, subtleStyle.Render(where))
		if r.DeletedDefinitionName != "" {
			line += fmt.Sprintf("  was %q", r.DeletedDefinitionName)
		}
		if r.Matched() {
			line += "  " + okStyle.Render(fmt.Sprintf("-> %q", r.MatchedDefinitionName))
		} else {
			line += "  " + warnStyle.Render("-> no candidate")
		}
		fmt.Println(line)
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanScope, "scope", "s", "page", "scan scope: page or document")
	scanCmd.Flags().BoolVar(&scanCopy, "copy", false, "copy the unlinked instance IDs to the clipboard")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress progress output")
}
