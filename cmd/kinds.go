package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datafreelab/datalite/columnar"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered array kinds.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		variants := columnar.Variants()
		rows := make([][]string, len(variants))
		for i, v := range variants {
			rows[i] = []string{strconv.Itoa(int(v.ID)), v.String(), v.ScalarName, v.RefName, v.ArrayName, v.BuilderName}
		}
		return printText(cmd.OutOrStdout(), []string{"tag", "kind", "scalar", "ref", "array", "builder"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
