package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/colorchanger"
	"github.com/aretw0/colorchanger/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "colorchanger version "+colorchanger.Version+"\n", out)
}

func TestSessionCommands_FileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	t.Setenv("COLORCHANGER_STORE_DRIVER", config.DriverFile)
	t.Setenv("COLORCHANGER_STORE_PATH", dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	rt, err := newRuntime(cfg, false)
	require.NoError(t, err)
	_, err = rt.Engine.Turn(context.Background(), "s1", colorchanger.Launch("r1"))
	require.NoError(t, err)
	require.NoError(t, rt.Close())

	out, err := execute(t, "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "- s1")

	out, err = execute(t, "session", "inspect", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, `"current_input_handler_id": "r1"`)
	assert.Contains(t, out, `"state": "ROLL_CALL"`)

	out, err = execute(t, "session", "rm", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed session 's1'")

	out, err = execute(t, "session", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No active sessions found.")
}

func TestSessionCommands_RejectMemoryStore(t *testing.T) {
	_, err := execute(t, "session", "ls")
	assert.ErrorContains(t, err, "memory store")
}
