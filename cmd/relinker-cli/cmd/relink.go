package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"relinker/internal/application/commands"
	"relinker/internal/domain"
)

var relinkAllMatched bool

var relinkCmd = &cobra.Command{
	Use:   "relink [instance-id]...",
	Short: "Repoint unlinked instances at same-named components",
	Long: `Repoint the given instances at live components with the same name
and write the document back. Link state is re-checked at execution time,
so stale scan output is safe to pass in; instances that no longer need
fixing or have no candidate are skipped.

Examples:
  relinker-cli relink instance-12 instance-47
  relinker-cli relink --all-matched`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		ids := make([]domain.NodeID, 0, len(args))
		for _, a := range args {
			ids = append(ids, domain.NodeID(a))
		}

		if relinkAllMatched {
			matched, err := matchedInstanceIDs(ctx)
			if err != nil {
				return err
			}
			ids = append(ids, matched...)
		}
		if len(ids) == 0 {
			return fmt.Errorf("nothing to relink: pass instance IDs or --all-matched")
		}

		result, err := commands.NewReplaceCommand(GetDocument(), ids).Execute(ctx)
		if err != nil {
			return err
		}
		if err := GetDocument().Save(documentPath); err != nil {
			return err
		}

		msg := fmt.Sprintf("%d of %d instances relinked.", result.SuccessCount, result.TotalCount)
		if result.SuccessCount == result.TotalCount {
			fmt.Println(okStyle.Render(msg))
		} else {
			fmt.Println(warnStyle.Render(msg + " Run scan to see what remains."))
		}
		return nil
	},
}

// matchedInstanceIDs scans the current page and returns the instances a
// candidate was found for.
func matchedInstanceIDs(ctx context.Context) ([]domain.NodeID, error) {
	records, err := commands.NewScanCommand(GetDocument(), domain.ScopeCurrentPage).Execute(ctx)
	if err != nil {
		return nil, err
	}
	records, err = commands.NewMatchCommand(GetDocument(), records).Execute(ctx)
	if err != nil {
		return nil, err
	}
	var ids []domain.NodeID
	for _, r := range records {
		if r.Matched() {
			ids = append(ids, r.InstanceID)
		}
	}
	return ids, nil
}

func init() {
	rootCmd.AddCommand(relinkCmd)
	relinkCmd.Flags().BoolVar(&relinkAllMatched, "all-matched", false, "relink every current-page instance that has a candidate")
}
