package dictbuild

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/flatdawg"
	"github.com/milden6/flatdawg/internal/config"
	"github.com/milden6/flatdawg/internal/metrics"
)

func testConfig() config.BuildConfig {
	return config.BuildConfig{
		Input:         "-",
		Output:        "words.dawg",
		MaxWordLength: flatdawg.DefaultMaxWordLength,
		MaxEdges:      flatdawg.DefaultMaxEdges,
		TableSize:     flatdawg.DefaultTableSize,
	}
}

func TestBuild(t *testing.T) {
	m := metrics.New()
	c := New(testConfig(), m, zerolog.Nop())

	res, err := c.Build(context.Background(), strings.NewReader("cat\ncats\ncats\ndog\n"))
	require.NoError(t, err)

	assert.True(t, res.Graph.ContainsWord("cat"))
	assert.True(t, res.Graph.ContainsWord("cats"))
	assert.True(t, res.Graph.ContainsWord("dog"))
	assert.False(t, res.Graph.ContainsWord("do"))
	assert.Equal(t, 3, res.Stats.Words)
	assert.Equal(t, 1, res.Stats.Duplicates)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.WordsAdded))
}

func TestBuildUnsortedFails(t *testing.T) {
	m := metrics.New()
	c := New(testConfig(), m, zerolog.Nop())

	_, err := c.Build(context.Background(), strings.NewReader("dog\ncat\n"))
	require.ErrorIs(t, err, flatdawg.ErrOutOfOrder)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsRejected.WithLabelValues(metrics.ReasonOrder)))
}

func TestBuildSkipInvalid(t *testing.T) {
	cfg := testConfig()
	cfg.SkipInvalid = true
	cfg.MaxWordLength = 5
	m := metrics.New()
	c := New(cfg, m, zerolog.Nop())

	res, err := c.Build(context.Background(), strings.NewReader("bee\nant\ncow\nelephant\nfox\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rejected)
	assert.True(t, res.Graph.ContainsWord("bee"))
	assert.True(t, res.Graph.ContainsWord("fox"))
	assert.False(t, res.Graph.ContainsWord("ant"))
	assert.False(t, res.Graph.ContainsWord("elephant"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsRejected.WithLabelValues(metrics.ReasonOrder)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsRejected.WithLabelValues(metrics.ReasonTooLong)))
}

func TestBuildSorted(t *testing.T) {
	cfg := testConfig()
	cfg.Sort = true
	c := New(cfg, nil, zerolog.Nop())

	res, err := c.Build(context.Background(), strings.NewReader("zebra\napple\nmango\napple\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Stats.Words)
	for _, w := range []string{"apple", "mango", "zebra"} {
		assert.True(t, res.Graph.ContainsWord(w), w)
	}
}

func TestBuildCapacityIsFatal(t *testing.T) {
	cfg := testConfig()
	cfg.SkipInvalid = true
	cfg.MaxEdges = flatdawg.ReservedEdges + 1
	m := metrics.New()
	c := New(cfg, m, zerolog.Nop())

	_, err := c.Build(context.Background(), strings.NewReader("abc\nabd\n"))
	require.ErrorIs(t, err, flatdawg.ErrGraphFull)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WordsRejected.WithLabelValues(metrics.ReasonCapacity)))
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sb strings.Builder
	for i := 0; i < checkEvery; i++ {
		sb.WriteString("a\n")
	}
	_, err := New(testConfig(), nil, zerolog.Nop()).Build(ctx, strings.NewReader(sb.String()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildFile(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Input = filepath.Join(dir, "words.txt")
	cfg.Output = filepath.Join(dir, "words.dawg")
	cfg.MetricsFile = filepath.Join(dir, "flatdawg.prom")
	require.NoError(t, os.WriteFile(cfg.Input, []byte("hello\r\njello\r\n"), 0o644))

	_, err := New(cfg, metrics.New(), zerolog.Nop()).BuildFile(context.Background())
	require.NoError(t, err)

	g, err := flatdawg.Load(cfg.Output)
	require.NoError(t, err)
	require.NoError(t, g.Verify())
	assert.True(t, g.ContainsWord("hello"))
	assert.True(t, g.ContainsWord("jello"))

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "flatdawg_words_added_total 2")
}

func TestBuildFileMissingInput(t *testing.T) {
	cfg := testConfig()
	cfg.Input = filepath.Join(t.TempDir(), "missing.txt")
	_, err := New(cfg, nil, zerolog.Nop()).BuildFile(context.Background())
	require.Error(t, err)
}
