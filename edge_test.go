package flatdawg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeFields(t *testing.T) {
	e := NewEdge('x', true, false, 12345)
	assert.Equal(t, byte('x'), e.Letter())
	assert.True(t, e.EndOfWord())
	assert.False(t, e.EndOfNode())
	assert.Equal(t, uint32(12345), e.Child())

	// each setter leaves the other fields alone
	e = e.WithLetter(0xff)
	e = e.WithEndOfNode(true)
	e = e.WithEndOfWord(false)
	assert.Equal(t, byte(0xff), e.Letter())
	assert.False(t, e.EndOfWord())
	assert.True(t, e.EndOfNode())
	assert.Equal(t, uint32(12345), e.Child())

	e.SetChild(MaxChild)
	assert.Equal(t, uint32(MaxChild), e.Child())
	assert.Equal(t, byte(0xff), e.Letter())
	assert.True(t, e.EndOfNode())
}

func TestEdgeBitLayout(t *testing.T) {
	assert.Equal(t, Edge(0x41), NewEdge('A', false, false, 0))
	assert.Equal(t, Edge(0x141), NewEdge('A', true, false, 0))
	assert.Equal(t, Edge(0x241), NewEdge('A', false, true, 0))
	assert.Equal(t, Edge(1<<10|0x41), NewEdge('A', false, false, 1))
	assert.Equal(t, Edge(0xFFFFFFFF), NewEdge(0xff, true, true, MaxChild))
	assert.GreaterOrEqual(t, MaxChild, 1000000)
}

func TestEdgeChildTruncated(t *testing.T) {
	e := NewEdge('a', true, true, MaxChild+1)
	assert.Equal(t, uint32(0), e.Child())
	assert.Equal(t, byte('a'), e.Letter())
	assert.True(t, e.EndOfWord())
}

func TestEdgeEquality(t *testing.T) {
	a := NewEdge('q', true, true, 7)
	b := Edge(0).WithChild(7).WithEndOfNode(true).WithEndOfWord(true).WithLetter('q')
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, b.WithEndOfWord(false))
}

func TestEdgeString(t *testing.T) {
	assert.Equal(t, "('c' -> 300 eow:true eon:false)", NewEdge('c', true, false, 300).String())
}
