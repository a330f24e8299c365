package cmd

import (
	"context"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/datafreelab/datalite/columnar"
	"github.com/datafreelab/datalite/config"
	"github.com/datafreelab/datalite/logs"
	"github.com/datafreelab/datalite/outputs/eager"
	"github.com/datafreelab/datalite/outputs/formats"
	"github.com/datafreelab/datalite/schema"
	"github.com/datafreelab/datalite/types"
)

var (
	catalogPath string
	logLevel    string
	output      string
	profileMode string
	logDir      string

	logger   log.Logger = log.NewNopLogger()
	profiler interface{ Stop() }
	logFile  io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "datalite",
	Short: "Inspect column types and catalog tables.",
	Example: `datalite parse "map<varchar, list<int>>"
datalite kinds
datalite check --catalog catalog.yaml
datalite show users --output json`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logOutput := cmd.ErrOrStderr()
		if logDir != "" {
			f, err := logs.OpenFile(logDir)
			if err != nil {
				return err
			}
			logOutput, logFile = f, f
		}
		l, err := logs.New(logOutput, logLevel)
		if err != nil {
			closeLogFile()
			return err
		}
		logger = l
		if _, ok := formats.Constructors[output]; !ok {
			return errors.Errorf("unknown output format '%s'", output)
		}
		switch profileMode {
		case "":
		case "cpu":
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		case "mem":
			profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
		default:
			return errors.Errorf("unknown profile mode '%s'", profileMode)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
		closeLogFile()
	},
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		closeLogFile()
		cobra.CheckErr(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog file path, ~/.datalite/catalog.yaml by default.")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Write logs to logs.txt in this directory instead of stderr.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "One of debug, info, warn, error.")
	rootCmd.PersistentFlags().StringVar(&profileMode, "profile", "", "Write a cpu or mem profile to the working directory.")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "Output format: table, csv or json.")
}

func readCatalog() (*config.Config, error) {
	path := catalogPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	level.Debug(logger).Log("msg", "reading catalog", "path", path)

	cfg, err := config.Read(path, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read catalog %s", path)
	}
	return cfg, nil
}

func printChunks(w io.Writer, s schema.Schema, chunks ...*schema.Chunk) error {
	return eager.NewOutputPrinter(s, formats.Constructors[output]).Run(w, chunks...)
}

// textChunk builds a chunk of varchar columns, used for the command's own reports.
func textChunk(names []string, rows [][]string) (*schema.Chunk, error) {
	fields := make([]schema.Field, len(names))
	builders := make([]*columnar.StringArrayBuilder, len(names))
	for i := range names {
		fields[i] = schema.Field{Name: names[i], Type: types.Varchar}
		builders[i] = columnar.NewStringArrayBuilder(len(rows))
	}
	for _, row := range rows {
		for i := range builders {
			builders[i].PushString(row[i])
		}
	}
	columns := make([]columnar.ArrayImpl, len(builders))
	for i := range builders {
		columns[i] = builders[i].Finish()
	}
	return schema.NewChunk(schema.NewSchema(fields...), columns...)
}

func printText(w io.Writer, names []string, rows [][]string) error {
	c, err := textChunk(names, rows)
	if err != nil {
		return err
	}
	return printChunks(w, c.Schema(), c)
}
