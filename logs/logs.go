package logs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/datafreelab/datalite/status"
)

// callerDepth skips the go-kit frames between a level.X(logger).Log call
// site and the caller valuer: the valuer, bindValues, this context's Log,
// the level filter and the prefix context added by level.X.
const callerDepth = 5

// New returns a logfmt logger writing to w that drops entries below lvl.
// Valid levels are debug, info, warn and error. Entries must be logged
// through the level helpers for the caller key to point at the call site.
func New(w io.Writer, lvl string) (log.Logger, error) {
	var option level.Option
	switch lvl {
	case "debug":
		option = level.AllowDebug()
	case "info", "":
		option = level.AllowInfo()
	case "warn":
		option = level.AllowWarn()
	case "error":
		option = level.AllowError()
	default:
		return nil, status.Errorf(status.InvalidArgument, "unknown log level '%s'", lvl)
	}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.Caller(callerDepth))
	return level.NewFilter(logger, option), nil
}

// OpenFile truncates dir/logs.txt for writing, creating dir if needed.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "couldn't create %s directory", dir)
	}
	f, err := os.Create(filepath.Join(dir, "logs.txt"))
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create logs file")
	}
	return f, nil
}
