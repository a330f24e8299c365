package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show TABLE",
	Short: "Print the inline rows of a catalog table.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readCatalog()
		if err != nil {
			return err
		}
		table, ok := cfg.Table(args[0])
		if !ok {
			return errors.Errorf("table '%s' not found", args[0])
		}
		c, err := table.Chunk()
		if err != nil {
			return err
		}
		return printChunks(cmd.OutOrStdout(), c.Schema(), c)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
