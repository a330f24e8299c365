package cmd

import (
	"os"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/datafreelab/datalite/arrowconv"
)

var exportPath string

var exportCmd = &cobra.Command{
	Use:   "export TABLE",
	Short: "Write the inline rows of a catalog table as an Arrow IPC stream.",
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

		w := cmd.OutOrStdout()
		if exportPath != "" {
			f, err := os.Create(exportPath)
			if err != nil {
				return errors.Wrap(err, "couldn't create output file")
			}
			defer f.Close()
			w = f
		}
		if err := arrowconv.WriteIPC(w, memory.DefaultAllocator, c.Schema(), c); err != nil {
			return errors.Wrap(err, "couldn't export table")
		}
		level.Info(logger).Log("msg", "exported table", "table", table.Name, "rows", c.Len(), "path", exportPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportPath, "out", "", "Output file, stdout if empty.")
	rootCmd.AddCommand(exportCmd)
}
