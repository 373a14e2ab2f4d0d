// Package testutil holds helpers shared by package tests.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// RequireShell skips the test when no POSIX shell is available.
func RequireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool scripts need a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available in PATH")
	}
}

// FakeTool writes an executable shell script standing in for the asset tool
// and returns its absolute path. The body runs with the tool's argv as "$@".
func FakeTool(t *testing.T, body string) string {
	t.Helper()
	RequireShell(t)
	path := filepath.Join(t.TempDir(), "pcli2")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

// JSONTool returns a fake tool that prints payload on stdout and exits 0
// regardless of arguments.
func JSONTool(t *testing.T, payload string) string {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(data, []byte(payload), 0o644); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	return FakeTool(t, "cat '"+data+"'")
}
