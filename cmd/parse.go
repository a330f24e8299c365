package cmd

import (
	"github.com/spf13/cobra"

	"github.com/datafreelab/datalite/status"
	"github.com/datafreelab/datalite/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse TYPE...",
	Short: "Print the canonical form and array kind of data types.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, len(args))
		for i, text := range args {
			rows[i] = parseRow(text)
		}
		return printText(cmd.OutOrStdout(), []string{"input", "canonical", "kind", "status"}, rows)
	},
}

func parseRow(text string) []string {
	dt, err := types.Parse(text)
	if err == nil {
		err = dt.Validate()
	}
	if err != nil {
		return []string{text, err.Error(), "", status.Of(err).Name()}
	}

	kind := "-"
	if id, ok := dt.TypeID(); ok {
		kind = id.String()
	}
	return []string{text, dt.String(), kind, status.OK.Name()}
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
