package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-kit/log/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datafreelab/datalite/arrowconv"
	"github.com/datafreelab/datalite/config"
	"github.com/datafreelab/datalite/status"
)

const testCatalog = "../config/fixtures/catalog.yaml"

func run(t *testing.T, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--output", "csv", "--log-level", "error", "--catalog", testCatalog}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "MAP < VARCHAR , LIST<INTEGER> >", "map<jsonb,int>", "list<", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "input,canonical,kind,status\n\"MAP < VARCHAR , LIST<INTEGER> >\",\"map<varchar,list<int>>\",map,OK\n")
	assert.Contains(t, out, ",ErrInvalidMapKey\n")
	assert.Contains(t, out, ",ErrParseDataType\n")
	assert.Contains(t, out, "nothing,nothing,-,OK\n")
}

func TestKindsCommand(t *testing.T) {
	out, err := run(t, "kinds")
	require.NoError(t, err)
	assert.Contains(t, out, "tag,kind,scalar,ref,array,builder\n")
	assert.Contains(t, out, "StringArrayBuilder")
	assert.Contains(t, out, "MapArray")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "users,")
	assert.Contains(t, out, "events,\"(at timestamp, payload jsonb, raw bytea, ok nullable<bool>)\",1\n")
}

func TestDescribeCommand(t *testing.T) {
	out, err := run(t, "describe", "events")
	require.NoError(t, err)
	assert.Contains(t, out, "name,type,kind,nullable\n")
	assert.Contains(t, out, "ok,nullable<bool>,bool,true\n")

	_, err = run(t, "describe", "missing")
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "id,name,balance,joined,tags,attrs\n")
	assert.Contains(t, out, "2,bob,0.1,2022-11-30,[],{}\n")
}

func TestExportCommand(t *testing.T) {
	out, err := run(t, "export", "users")
	require.NoError(t, err)

	cfg, err := config.Read(testCatalog, logger)
	require.NoError(t, err)
	users, _ := cfg.Table("users")
	s, err := users.Schema()
	require.NoError(t, err)

	chunks, err := arrowconv.ReadIPC(bytes.NewReader([]byte(out)), memory.DefaultAllocator, s)
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, 2, chunks[0].Len())
}

func TestUnknownOutput(t *testing.T) {
	rootCmd.SetArgs([]string{"--output", "xml", "kinds"})
	rootCmd.SetOut(&bytes.Buffer{})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))
}

func TestUnknownLogLevelKeepsLogger(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { logDir = "" })

	_, err := run(t, "--log-dir", dir, "--log-level", "bogus", "kinds")
	assert.Equal(t, status.InvalidArgument, status.Of(err))
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { level.Error(logger).Log("msg", "command failed", "err", err) })
	assert.Nil(t, logFile)
}

func TestLogDir(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { logDir = "" })

	_, err := run(t, "--log-dir", dir, "--log-level", "debug", "check")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "logs.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"checked table\" table=users rows=2")
}
