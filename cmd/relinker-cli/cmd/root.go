package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"relinker/internal/adapters/docfile"
	"relinker/internal/config"
)

var (
	documentPath string
	document     *docfile.Document
)

var rootCmd = &cobra.Command{
	Use:   "relinker-cli",
	Short: "CLI for relinking orphaned component instances",
	Long: `relinker-cli scans an exported design document for component
instances whose backing component was deleted, proposes same-named live
components as replacements, and applies the relinks in place.

Run scan first, then relink with the instance IDs you want fixed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		document, err = docfile.Load(documentPath)
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&documentPath, "document", "d", config.DocumentPath(), "path to the exported document")
}

// GetDocument returns the loaded document
func GetDocument() *docfile.Document {
	return document
}
