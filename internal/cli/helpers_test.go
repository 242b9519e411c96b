package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/equipments/internal/paths"
)

// CmdResult holds the output of one in-process invocation.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// TestEnv is an isolated config and data directory pair.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

// NewTestEnv creates temp directories and clears directory overrides from
// the environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvDataDir, "")
	t.Setenv(paths.EnvImageDir, "")
	t.Setenv("EQUIPMENTS_BACKEND", "")
	t.Setenv("EQUIPMENTS_STRICT_IMAGES", "")
	t.Setenv("EQUIPMENTS_METRICS_FILE", "")
	return &TestEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
}

// Run executes the command tree with the env's directories.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	full := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	code := run(root, full, &stderr)
	return CmdResult{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// MustRun executes args and fails the test on a non-zero exit code.
func (e *TestEnv) MustRun(args ...string) CmdResult {
	e.t.Helper()
	res := e.Run(args...)
	require.Equal(e.t, exitSuccess, res.ExitCode, "args %v\nstdout: %s\nstderr: %s", args, res.Stdout, res.Stderr)
	return res
}

// ParseJSON decodes stdout into T.
func ParseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), "stdout: %s", s)
	return v
}
