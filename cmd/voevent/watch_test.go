package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr := &syncBuffer{}, &syncBuffer{}

	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs([]string{"watch", dir, "--config", writeConfig(t, "")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "watching directory")
	}, 5*time.Second, 10*time.Millisecond)

	data, err := os.ReadFile(packetPath("SWIFT_bat_position_v2.0_example.xml"))
	require.NoError(t, err)
	staging := t.TempDir()
	for name, contents := range map[string][]byte{
		"good.xml":  data,
		"bad.xml":   []byte("<VOEvent"),
		"notes.txt": []byte("not a packet"),
	} {
		src := filepath.Join(staging, name)
		require.NoError(t, os.WriteFile(src, contents, 0o644))
		require.NoError(t, os.Rename(src, filepath.Join(dir, name)))
	}

	require.Eventually(t, func() bool {
		out := stdout.String()
		return strings.Contains(out, "good.xml: valid") && strings.Contains(out, "bad.xml: invalid")
	}, 5*time.Second, 10*time.Millisecond)
	assert.NotContains(t, stdout.String(), "notes.txt")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.Contains(t, stderr.String(), "stopped watching")
}

func TestWatchCmd_MissingDir(t *testing.T) {
	_, _, err := executeCommand(t, "watch", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
