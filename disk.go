package flatdawg

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

/* FILE FORMAT

All integers are little-endian uint32, independent of the host.

- 4 bytes: magic number 0xC6ACC231
- 4 bytes: number of edges N
- N * 4 bytes: packed edges, index 0 first

The synthetic before-root edge is not stored; it is recreated on load.
*/

// Magic identifies files written by WriteTo.
const Magic uint32 = 0xC6ACC231

const edgeSize = 4

// Save writes the graph to a file. Returns the number of bytes written.
func (g *Graph) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}

	n, err := g.WriteTo(f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	return n, err
}

// WriteTo writes the graph to w. A failed or short write at any stage is
// returned as a *WriteError; nothing is retried.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var word [4]byte

	binary.LittleEndian.PutUint32(word[:], Magic)
	n, err := writeFull(w, word[:])
	total += int64(n)
	if err != nil {
		return total, g.fail(&WriteError{Field: "magic number", Err: err})
	}

	count := g.NumEdges()
	binary.LittleEndian.PutUint32(word[:], uint32(count))
	n, err = writeFull(w, word[:])
	total += int64(n)
	if err != nil {
		return total, g.fail(&WriteError{Field: "number of edges", Err: err})
	}

	data := make([]byte, count*edgeSize)
	for i, e := range g.edges[:count] {
		binary.LittleEndian.PutUint32(data[i*edgeSize:], uint32(e))
	}
	n, err = writeFull(w, data)
	total += int64(n)
	if err != nil {
		return total, g.fail(&WriteError{Field: "edge data", Err: err})
	}

	return total, nil
}

func writeFull(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// Load reads a graph from a file. The file is memory mapped while it is
// decoded; the returned graph does not reference it.
func Load(filename string) (*Graph, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Read(io.NewSectionReader(r, 0, int64(r.Len())))
}

// Read returns a graph decoded from r.
func Read(r io.Reader) (*Graph, error) {
	g := &Graph{}
	if _, err := g.ReadFrom(r); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadFrom replaces the graph with one decoded from r. On failure the graph
// is left empty.
func (g *Graph) ReadFrom(r io.Reader) (int64, error) {
	g.clear()

	var total int64
	var word [4]byte

	n, err := io.ReadFull(r, word[:])
	total += int64(n)
	if err != nil {
		return total, g.fail(readError("file identifier", len(word), n, err))
	}
	if magic := binary.LittleEndian.Uint32(word[:]); magic != Magic {
		return total, g.fail(fmt.Errorf("%w: expected %#x but got %#x", ErrBadMagic, Magic, magic))
	}

	n, err = io.ReadFull(r, word[:])
	total += int64(n)
	if err != nil {
		return total, g.fail(readError("number of edges", len(word), n, err))
	}
	count := binary.LittleEndian.Uint32(word[:])
	if count > MaxChild+1 {
		return total, g.fail(fmt.Errorf("%w: %d edges, max is %d", ErrTooLarge, count, MaxChild+1))
	}

	data := make([]byte, int(count)*edgeSize)
	n, err = io.ReadFull(r, data)
	total += int64(n)
	if err != nil {
		return total, g.fail(readError("edges", len(data), n, err))
	}

	edges := make([]Edge, count+1)
	for i := range edges[:count] {
		edges[i] = Edge(binary.LittleEndian.Uint32(data[i*edgeSize:]))
	}
	g.setEdges(edges)

	return total, nil
}

func readError(field string, expected, got int, err error) error {
	fe := &FormatError{Field: field, Expected: expected, Got: got}
	if err != io.EOF && err != io.ErrUnexpectedEOF {
		fe.Err = err
	}
	return fe
}
