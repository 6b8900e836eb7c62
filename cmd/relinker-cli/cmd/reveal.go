package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"relinker/internal/application/commands"
	"relinker/internal/domain"
)

var revealCmd = &cobra.Command{
	Use:   "reveal <node-id>",
	Short: "Select and focus a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := commands.NewRevealCommand(GetDocument(), domain.NodeID(args[0])).Execute(ctx); err != nil {
			return err
		}
		fmt.Printf("Focused %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)
}
