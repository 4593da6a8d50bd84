package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunUsage(t *testing.T) {
	for _, tt := range []struct {
		name string
		args []string
		want string
	}{
		{"no arguments", nil, "expected 3 arguments, got 0"},
		{"too few", []string{"compress", "in"}, "expected 3 arguments, got 2"},
		{"too many", []string{"compress", "a", "b", "c"}, "expected 3 arguments, got 4"},
		{"bad mode", []string{"squash", "a", "b"}, "Invalid mode: squash"},
		{"bad format", []string{"-format", "lz", "compress", "a", "b"}, "unknown format"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			require.Equal(t, 1, run("huffpack", tt.args, &stderr))
			require.Contains(t, stderr.String(), tt.want)
			require.Contains(t, stderr.String(), "Usage: huffpack")
		})
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	require.Equal(t, 1, run("huffpack", []string{"-fast", "compress", "a", "b"}, &stderr))
	require.Contains(t, stderr.String(), "flag provided but not defined")
}

func TestRunRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.txt.huff")
	out := filepath.Join(dir, "out.txt")
	content := []byte("aaab\nbbbc\n")
	require.NoError(t, os.WriteFile(in, content, 0644))

	var stderr bytes.Buffer
	require.Equal(t, 0, run("huffpack", []string{"compress", in, packed, "-quiet", "-progress=false"}, &stderr))
	require.Equal(t, 0, run("huffpack", []string{"-progress=false", "decompress", packed, out}, &stderr))
	require.Contains(t, stderr.String(), "Decompressing")

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, content, got)

	require.Equal(t, 0, run("huffpack", []string{"-quiet", "-progress=false", "-drop-newlines", "decompress", packed, out}, &stderr))
	got, err = os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, []byte("aaabbbbc"), got)
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	var stderr bytes.Buffer
	code := run("huffpack", []string{"-quiet", "compress", filepath.Join(dir, "nope"), filepath.Join(dir, "out")}, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "read input")
}

func TestIsTerminal(t *testing.T) {
	require.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "stderr"))
	require.NoError(t, err)
	defer f.Close()
	require.False(t, isTerminal(f))
}

func TestRunProgressFollowsStderr(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, bytes.Repeat([]byte("progress "), 200), 0644))

	// a buffer is not a terminal, so no bar is drawn unless asked for
	var stderr bytes.Buffer
	require.Equal(t, 0, run("huffpack", []string{"compress", in, filepath.Join(dir, "out")}, &stderr))
	require.Contains(t, stderr.String(), "Compressing")
	require.NotContains(t, stderr.String(), "KiB")
}
