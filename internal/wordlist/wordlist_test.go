package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	input := "cat\r\n\ndog\nbird\r\n"
	var words []string
	var lines []int
	err := Scan(strings.NewReader(input), func(line int, w string) error {
		words = append(words, w)
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog", "bird"}, words)
	assert.Equal(t, []int{1, 3, 4}, lines)
}

func TestScanStopsOnError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := Scan(strings.NewReader("a\nb\nc\n"), func(_ int, w string) error {
		n++
		if w == "b" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, n)
}

func TestSorted(t *testing.T) {
	words, err := Sorted(strings.NewReader("pear\napple\nbanana\napple\nBanana\n\xff\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana", "apple", "banana", "pear", "\xff"}, words)
}

func TestSortedEmpty(t *testing.T) {
	words, err := Sorted(strings.NewReader("\n\n"))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	rc, err := Open(path)
	require.NoError(t, err)
	defer rc.Close()
	words, err := Sorted(rc)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)

	_, err = Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
