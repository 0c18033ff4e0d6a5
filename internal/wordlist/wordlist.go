// Package wordlist reads newline separated word lists.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tidwall/btree"
)

const maxLineSize = 1 << 20

// Open opens path for reading; "-" means standard input.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	return f, nil
}

// Scan calls fn with each non-empty line of r, stripped of a trailing
// carriage return, in input order. The line number is 1-based. Scanning
// stops at the first error fn returns.
func Scan(r io.Reader, fn func(line int, word string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		word := strings.TrimSuffix(sc.Text(), "\r")
		if word == "" {
			continue
		}
		if err := fn(line, word); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}
	return nil
}

func byteLess(a, b string) bool { return a < b }

// Sorted reads every word of r and returns them in byte order with
// duplicates removed, ready to be fed to a Builder.
func Sorted(r io.Reader) ([]string, error) {
	tr := btree.NewBTreeG[string](byteLess)
	err := Scan(r, func(_ int, word string) error {
		tr.Set(word)
		return nil
	})
	if err != nil {
		return nil, err
	}

	words := make([]string, 0, tr.Len())
	tr.Scan(func(word string) bool {
		words = append(words, word)
		return true
	})
	return words, nil
}
