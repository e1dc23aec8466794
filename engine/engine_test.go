package engine

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/errors"
)

// fixture covers the canonical FIBO shapes: SovereignState -> Polity ->
// LegalPerson, the currency labels, and an is-a cycle.
const fixtureTTL = `
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
@prefix fibo-be: <https://spec.edmcouncil.org/fibo/ontology/BE/> .
@prefix fibo-fnd: <https://spec.edmcouncil.org/fibo/ontology/FND/> .
@prefix ex: <http://example.org/> .

fibo-be:LegalEntities/LegalPersons/LegalPerson rdfs:label "Legal Person" .

fibo-be:GovernmentEntities/Polities/Polity rdfs:label "Polity" ;
    rdfs:subClassOf fibo-be:LegalEntities/LegalPersons/LegalPerson .

fibo-be:GovernmentEntities/Polities/SovereignState rdfs:label "Sovereign State" ;
    skos:definition "a polity with effective internal and external sovereignty" ;
    rdfs:subClassOf fibo-be:GovernmentEntities/Polities/Polity .

fibo-fnd:Accounting/CurrencyAmount/Currency rdfs:label "Currency" .
fibo-fnd:Accounting/CurrencyAmount/CurrencyIdentifier rdfs:label "Currency Identifier" .
fibo-fnd:Accounting/CurrencyAmount/MonetaryAmount rdfs:label "Monetary Amount" ;
    skos:definition "an amount of money expressed in a currency" .

ex:CycleA rdfs:label "Cycle A" ; rdfs:subClassOf ex:CycleB .
ex:CycleB rdfs:label "Cycle B" ; rdfs:subClassOf ex:CycleC .
ex:CycleC rdfs:label "Cycle C" ; rdfs:subClassOf ex:CycleA .
`

func fixtureConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		SourceDir: filepath.Join(dir, "src"),
		CachePath: filepath.Join(dir, "fibo.nt"),
		Search:    config.SearchConfig{DefaultLimit: 10, MaxLimit: 50},
		Engine:    config.EngineConfig{WaitForReady: false},
		Ingest:    config.IngestConfig{TimeoutSeconds: 30},
	}
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SourceDir, "fixture.ttl"), []byte(fixtureTTL), 0644))
	return cfg
}

func readyEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(fixtureConfig(t), zap.NewNop().Sugar())
	_, err := e.Load(context.Background())
	require.NoError(t, err)
	return e
}

func TestQueryBeforeLoadRejectsWhenConfigured(t *testing.T) {
	e := New(fixtureConfig(t), zap.NewNop().Sugar())

	_, err := e.Define(context.Background(), "Currency")
	require.Error(t, err)
	assert.True(t, errors.IsNotReady(err))
	assert.False(t, e.Ready())
}

func TestQueryBeforeLoadBlocksWhenConfigured(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Engine.WaitForReady = true
	e := New(cfg, zap.NewNop().Sugar())

	done := make(chan *DefineResult, 1)
	go func() {
		res, err := e.Define(context.Background(), "Currency")
		require.NoError(t, err)
		done <- res
	}()

	// Give the query a moment to start blocking, then publish.
	time.Sleep(50 * time.Millisecond)
	_, err := e.Load(context.Background())
	require.NoError(t, err)

	select {
	case res := <-done:
		require.NotNil(t, res)
		assert.Equal(t, []string{"Currency"}, res.Labels)
	case <-time.After(5 * time.Second):
		t.Fatal("blocked query never completed")
	}
}

func TestBlockedQueryHonorsContext(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Engine.WaitForReady = true
	e := New(cfg, zap.NewNop().Sugar())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := e.Define(ctx, "Currency")
	assert.Error(t, err)
}

func TestDefineWorkedExample(t *testing.T) {
	e := readyEngine(t)

	res, err := e.Define(context.Background(), "sovereign state")
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "fibo:BE/GovernmentEntities/Polities/SovereignState", res.IRI)
	assert.Equal(t, []string{"Sovereign State"}, res.Labels)
	assert.Equal(t, []string{"a polity with effective internal and external sovereignty"}, res.Definitions)
	assert.Equal(t, []string{"Polity"}, res.Parents)
	assert.True(t, res.HasLocality)
	assert.Equal(t, "BE/GovernmentEntities/Polities", res.Locality)
	assert.Equal(t, 1, res.Candidates)
}

func TestDefineNotFoundIsNotAnError(t *testing.T) {
	e := readyEngine(t)

	res, err := e.Define(context.Background(), "no such term anywhere")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDefineReportsCandidateCount(t *testing.T) {
	e := readyEngine(t)

	// "Cycle" token-matches three labels; the first by ingestion order wins
	// but the contention is reported.
	res, err := e.Define(context.Background(), "Cycle")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, []string{"Cycle A"}, res.Labels)
	assert.Equal(t, 3, res.Candidates)
}

func TestSearchWorkedExample(t *testing.T) {
	e := readyEngine(t)

	hits, err := e.Search(context.Background(), "currency", 5)
	require.NoError(t, err)

	// Monetary Amount mentions currency only in its definition; label-match
	// ranking excludes it, leaving exactly the two label matches in order.
	require.Len(t, hits, 2)
	assert.Equal(t, "Currency", hits[0].Label)
	assert.Equal(t, "Currency Identifier", hits[1].Label)
}

func TestSearchLimitValidation(t *testing.T) {
	e := readyEngine(t)

	for _, limit := range []int{0, -1, -100} {
		_, err := e.Search(context.Background(), "currency", limit)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err), "limit %d", limit)
	}
}

func TestSearchTruncatesAndCaps(t *testing.T) {
	e := readyEngine(t)

	hits, err := e.Search(context.Background(), "currency", 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Currency", hits[0].Label)

	// A limit beyond the configured maximum is capped, not rejected.
	_, err = e.Search(context.Background(), "currency", 10_000)
	assert.NoError(t, err)
}

func TestSearchDeterministic(t *testing.T) {
	e := readyEngine(t)

	first, err := e.Search(context.Background(), "c", 25)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := e.Search(context.Background(), "c", 25)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestHierarchyWorkedExample(t *testing.T) {
	e := readyEngine(t)

	nodes, err := e.Hierarchy(context.Background(), "SovereignState", Ancestors, 2)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Polity", nodes[0].Label)
	assert.Equal(t, 1, nodes[0].Level)
	assert.Equal(t, "Legal Person", nodes[1].Label)
	assert.Equal(t, 2, nodes[1].Level)
}

func TestHierarchyDescendants(t *testing.T) {
	e := readyEngine(t)

	nodes, err := e.Hierarchy(context.Background(), "Legal Person", Descendants, 5)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Polity", nodes[0].Label)
	assert.Equal(t, 1, nodes[0].Level)
	assert.Equal(t, "Sovereign State", nodes[1].Label)
	assert.Equal(t, 2, nodes[1].Level)
}

func TestHierarchyDepthBound(t *testing.T) {
	e := readyEngine(t)

	nodes, err := e.Hierarchy(context.Background(), "SovereignState", Ancestors, 1)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Polity", nodes[0].Label)
}

func TestHierarchyCycleTerminates(t *testing.T) {
	e := readyEngine(t)

	nodes, err := e.Hierarchy(context.Background(), "Cycle A", Ancestors, 100)
	require.NoError(t, err)

	// A -> B -> C -> A: the revisit of A is suppressed, traversal stops.
	require.Len(t, nodes, 2)
	assert.Equal(t, "Cycle B", nodes[0].Label)
	assert.Equal(t, "Cycle C", nodes[1].Label)

	seen := map[string]int{}
	for _, n := range nodes {
		seen[n.IRI]++
		assert.Equal(t, 1, seen[n.IRI], "entity %s appears more than once", n.IRI)
	}
}

func TestHierarchyInvalidArguments(t *testing.T) {
	e := readyEngine(t)

	_, err := e.Hierarchy(context.Background(), "Currency", Direction("sideways"), 2)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = e.Hierarchy(context.Background(), "Currency", Ancestors, 0)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestHierarchyRootHasEmptyAncestors(t *testing.T) {
	e := readyEngine(t)

	// Legal Person is declared but has no superclasses: the answer is an
	// empty walk, not an unresolved term.
	nodes, err := e.Hierarchy(context.Background(), "Legal Person", Ancestors, 3)
	require.NoError(t, err)
	require.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestHierarchyNotFound(t *testing.T) {
	e := readyEngine(t)

	nodes, err := e.Hierarchy(context.Background(), "nothing here", Ancestors, 2)
	require.NoError(t, err)
	assert.Nil(t, nodes)
}

func TestLocate(t *testing.T) {
	e := readyEngine(t)

	res, err := e.Locate(context.Background(), "SovereignState")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.HasLocality)
	assert.Equal(t, "BE/GovernmentEntities/Polities", res.Locality)

	missing, err := e.Locate(context.Background(), "utterly absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRefreshSwapsSnapshotAtomically(t *testing.T) {
	cfg := fixtureConfig(t)
	e := New(cfg, zap.NewNop().Sugar())
	_, err := e.Load(context.Background())
	require.NoError(t, err)
	firstBuild := e.BuiltAt()

	// Concurrent readers throughout the refresh must always see a
	// consistent snapshot.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				res, err := e.Define(context.Background(), "Currency")
				assert.NoError(t, err)
				assert.NotNil(t, res)
			}
		}()
	}

	extra := "\nex:NewCurrency rdfs:label \"Brand New Currency\" .\n"
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.SourceDir, "fixture.ttl"), []byte(fixtureTTL+extra), 0644))

	_, err = e.Refresh(context.Background())
	require.NoError(t, err)
	close(stop)
	wg.Wait()

	assert.True(t, e.BuiltAt().After(firstBuild))
	res, err := e.Define(context.Background(), "Brand New Currency")
	require.NoError(t, err)
	require.NotNil(t, res)
}

func TestLoadFailureLeavesEngineNotReady(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		SourceDir: filepath.Join(dir, "empty"),
		CachePath: filepath.Join(dir, "fibo.nt"),
		Ingest:    config.IngestConfig{TimeoutSeconds: 5},
	}
	require.NoError(t, os.MkdirAll(cfg.SourceDir, 0755))

	e := New(cfg, zap.NewNop().Sugar())
	_, err := e.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
	assert.False(t, e.Ready())
}
