package cmd

import (
	"strconv"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the catalog: column types, map keys and inline rows.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readCatalog()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(cfg.Tables))
		for i := range cfg.Tables {
			table := &cfg.Tables[i]
			s, err := table.Schema()
			if err != nil {
				return err
			}
			c, err := table.Chunk()
			if err != nil {
				return err
			}
			level.Debug(logger).Log("msg", "checked table", "table", table.Name, "rows", c.Len())
			rows = append(rows, []string{table.Name, s.String(), strconv.Itoa(c.Len())})
		}
		return printText(cmd.OutOrStdout(), []string{"table", "schema", "rows"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
