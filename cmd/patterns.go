package cmd

import (
	"fmt"

	"github.com/setanarut/texgen/pattern"
	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "list available patterns",
	Long:  `list available patterns.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range pattern.Names() {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
