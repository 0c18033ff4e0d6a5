package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func buildDict(t *testing.T, words string, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	dict := filepath.Join(dir, "words.dawg")
	require.NoError(t, os.WriteFile(input, []byte(words), 0o644))

	_, err := run(t, append([]string{"build", "-i", input, "-o", dict}, extra...)...)
	require.NoError(t, err)
	return dict
}

func TestBuildAndCheck(t *testing.T) {
	dict := buildDict(t, "cat\ncats\ndog\n")

	out, err := run(t, "check", "--dict", dict, "cat", "dog")
	require.NoError(t, err)
	assert.Equal(t, "cat: yes\ndog: yes\n", out)

	out, err = run(t, "check", "-d", dict, "cat", "ca")
	require.ErrorIs(t, err, errMissing)
	assert.Equal(t, "cat: yes\nca: no\n", out)
}

func TestBuildSort(t *testing.T) {
	dict := buildDict(t, "pear\napple\n", "--sort")
	out, err := run(t, "check", "-d", dict, "apple", "pear")
	require.NoError(t, err)
	assert.Equal(t, "apple: yes\npear: yes\n", out)
}

func TestBuildUnsorted(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(input, []byte("pear\napple\n"), 0o644))

	_, err := run(t, "build", "-i", input, "-o", filepath.Join(dir, "words.dawg"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of order")
}

func TestStatsDumpVerify(t *testing.T) {
	dict := buildDict(t, "ab\n")

	out, err := run(t, "stats", "-d", dict)
	require.NoError(t, err)
	assert.Contains(t, out, "edges:        258")
	assert.Contains(t, out, "root letters: 1")
	assert.Contains(t, out, "bytes:        1040")

	out, err = run(t, "dump", "-d", dict)
	require.NoError(t, err)
	assert.Contains(t, out, "Edges=258")

	out, err = run(t, "verify", "-d", dict)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (258 edges)")
}

func TestMissingDict(t *testing.T) {
	_, err := run(t, "verify", "-d", filepath.Join(t.TempDir(), "missing.dawg"))
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dict := buildDict(t, "owl\n")
	cfgPath := filepath.Join(t.TempDir(), "flatdawg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("serve:\n  dict: "+dict+"\nlog:\n  level: error\n"), 0o644))

	out, err := run(t, "--config", cfgPath, "check", "owl")
	require.NoError(t, err)
	assert.Equal(t, "owl: yes\n", out)
}

func TestInvalidLogFormat(t *testing.T) {
	_, err := run(t, "--log-format", "xml", "verify")
	require.Error(t, err)
}
