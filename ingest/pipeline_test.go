package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/graph"
)

const goodTTL = `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix ex: <http://example.org/> .

ex:SovereignState rdfs:label "Sovereign State" ;
    rdfs:subClassOf ex:Polity .
ex:Polity rdfs:label "Polity" .
`

const goodRDF = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#"
         xmlns:owl="http://www.w3.org/2002/07/owl#">
  <owl:Class rdf:about="http://example.org/Currency">
    <rdfs:label>Currency</rdfs:label>
  </owl:Class>
</rdf:RDF>`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		SourceDir: filepath.Join(dir, "src"),
		CachePath: filepath.Join(dir, "cache", "fibo.nt"),
		Ingest:    config.IngestConfig{TimeoutSeconds: 30},
	}
}

func writeSource(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, name), []byte(content), 0644))
}

func newPipeline(cfg *config.Config) *Pipeline {
	return New(cfg, zap.NewNop().Sugar())
}

func TestRunParsesMixedSources(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "states.ttl", goodTTL)
	writeSource(t, cfg, "currency.rdf", goodRDF)

	store, report, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	assert.Equal(t, 2, report.Documents)
	assert.Empty(t, report.Skipped)

	_, ok := store.Entity("http://example.org/SovereignState")
	assert.True(t, ok)
	_, ok = store.Entity("http://example.org/Currency")
	assert.True(t, ok)

	// A cache must exist afterwards.
	_, err = os.Stat(cfg.CachePath)
	assert.NoError(t, err)
}

func TestRunSkipsMalformedDocument(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "good.ttl", goodTTL)
	writeSource(t, cfg, "broken.ttl", `ex:A nope:B "unterminated .`)

	store, report, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0].Path, "broken.ttl")
	assert.Greater(t, store.Len(), 0)
}

func TestRunFailsWhenNothingParses(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "broken.ttl", `complete garbage {{{`)

	_, _, err := newPipeline(cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestRunFailsWithNoSourcesAndNoCache(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0755))

	_, _, err := newPipeline(cfg).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestRunPrefersCache(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "states.ttl", goodTTL)

	_, first, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	require.False(t, first.FromCache)

	// Remove sources entirely: the cache alone must satisfy a restart.
	require.NoError(t, os.RemoveAll(cfg.SourceDir))

	store, second, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	_, ok := store.Entity("http://example.org/SovereignState")
	assert.True(t, ok)
}

func TestForceRefreshBypassesCache(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "states.ttl", goodTTL)

	_, _, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)

	// Change the sources; a forced refresh must observe the change.
	writeSource(t, cfg, "states.ttl", goodTTL+"\nex:NewThing rdfs:label \"New Thing\" .\n")
	cfg.ForceRefresh = true

	store, report, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.FromCache)
	_, ok := store.Entity("http://example.org/NewThing")
	assert.True(t, ok)
}

func TestIngestionIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	writeSource(t, cfg, "states.ttl", goodTTL)
	writeSource(t, cfg, "currency.rdf", goodRDF)
	cfg.ForceRefresh = true

	first, _, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)
	second, _, err := newPipeline(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.EntityCount(), second.EntityCount())
	first.EachEntity(func(rec *graph.EntityRecord) {
		other, ok := second.Entity(rec.IRI)
		require.True(t, ok, rec.IRI)
		assert.Equal(t, rec.Labels, other.Labels)
		assert.Equal(t, rec.Parents, other.Parents)
		assert.Equal(t, rec.Ordinal, other.Ordinal)
	})
}

func TestWriteCacheIsAtomic(t *testing.T) {
	cfg := testConfig(t)
	store := graph.NewTripleStore()
	store.Add(graph.Statement{
		Subject:   graph.IRI("http://example.org/A"),
		Predicate: graph.IRI(graph.RDFSLabel),
		Object:    graph.Literal("A"),
	})

	require.NoError(t, WriteCache(store, cfg.CachePath))

	// No temp file left behind.
	_, err := os.Stat(cfg.CachePath + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := LoadCache(cfg.CachePath)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
}

func TestLoadCacheMissing(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "absent.nt"))
	assert.Error(t, err)
}
