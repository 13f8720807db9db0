package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kochuseyin65/muayane/internal/apitest"
	"github.com/Kochuseyin65/muayane/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommandHealthyBackend(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "report.json")

	stdout, err := execute(t, "run",
		"--base", srv.BaseURL(),
		"--output", out,
		"--format", "json",
		"--poll-delay", "1ms")
	require.NoError(t, err, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var summary report.Summary
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 25, summary.Total)
	assert.Equal(t, 0, summary.Failed)
	assert.Contains(t, stdout, `"failed": 0`)
}

func TestRunCommandReportsFailure(t *testing.T) {
	srv := apitest.New(apitest.Options{})
	defer srv.Close()
	out := filepath.Join(t.TempDir(), "report.json")

	stdout, err := execute(t, "run",
		"--base", srv.BaseURL(),
		"--pass", "wrong",
		"--output", out,
		"--format", "pretty",
		"--poll-delay", "1ms")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one or more steps failed")

	// the summary document is written even on failure
	if _, statErr := os.Stat(out); statErr != nil {
		t.Fatalf("summary file missing: %v", statErr)
	}
	assert.Contains(t, stdout, "FAIL  login_admin")
}

func TestRunCommandRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "run", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestListCommand(t *testing.T) {
	stdout, err := execute(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, stdout, "health")
	assert.Contains(t, stdout, "work_order_status_flow")
}
