package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/types"
)

var describeCmd = &cobra.Command{
	Use:   "describe TABLE",
	Short: "Describe the columns of a catalog table.",
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
		s, err := table.Schema()
		if err != nil {
			return err
		}
		return printText(cmd.OutOrStdout(), []string{"name", "type", "kind", "nullable"}, describeRows(s))
	},
}

func describeRows(s schema.Schema) [][]string {
	rows := make([][]string, len(s.Fields))
	for i, field := range s.Fields {
		id, _ := field.Type.TypeID()
		rows[i] = []string{
			field.Name,
			field.Type.String(),
			id.String(),
			strconv.FormatBool(field.Type.Kind == types.KindNullable),
		}
	}
	return rows
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
