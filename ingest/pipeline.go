// Package ingest turns raw ontology source documents into one consistent
// triple store, and maintains the consolidated cache that lets subsequent
// starts skip re-parsing.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fonto-dev/fonto/config"
	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/graph"
)

// ParseError records one skipped source document.
type ParseError struct {
	Path string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Report summarizes one ingestion run.
type Report struct {
	FromCache  bool
	Documents  int // documents parsed successfully
	Skipped    []ParseError
	Statements int
	Entities   int
	Duration   time.Duration
}

// Pipeline reads a set of graph-description source files, or the pre-merged
// cache, and produces one triple store.
type Pipeline struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

// New returns a pipeline over the configured source and cache locations.
func New(cfg *config.Config, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log.Named("ingest")}
}

// Run produces the triple store. With a valid cache present and no forced
// refresh, the cache is loaded directly and sources are not re-validated.
// Otherwise every source document is parsed; malformed documents are
// skipped and recorded, and only zero successful documents is fatal. After
// a successful source parse the cache is rewritten atomically.
func (p *Pipeline) Run(ctx context.Context) (*graph.TripleStore, *Report, error) {
	start := time.Now()

	if p.cfg.Ingest.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(p.cfg.Ingest.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	if !p.cfg.ForceRefresh {
		if store, err := p.fromCache(); err == nil {
			report := &Report{
				FromCache:  true,
				Statements: store.Len(),
				Entities:   store.EntityCount(),
				Duration:   time.Since(start),
			}
			p.log.Infow("loaded cache",
				"path", p.cfg.CachePath,
				"statements", report.Statements,
				"duration", report.Duration,
			)
			return store, report, nil
		}
	}

	store, report, err := p.fromSources(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := WriteCache(store, p.cfg.CachePath); err != nil {
		// The in-memory store is good; a failed cache write only costs the
		// next startup a re-parse.
		p.log.Warnw("failed to write cache", "path", p.cfg.CachePath, "error", err)
	} else {
		p.log.Infow("cache written", "path", p.cfg.CachePath, "statements", store.Len())
	}

	report.Duration = time.Since(start)
	return store, report, nil
}

func (p *Pipeline) fromCache() (*graph.TripleStore, error) {
	if _, err := os.Stat(p.cfg.CachePath); err != nil {
		return nil, err
	}
	store, err := LoadCache(p.cfg.CachePath)
	if err != nil {
		p.log.Warnw("cache unreadable, falling back to sources",
			"path", p.cfg.CachePath, "error", err)
		return nil, err
	}
	return store, nil
}

func (p *Pipeline) fromSources(ctx context.Context) (*graph.TripleStore, *Report, error) {
	paths, err := p.scanSources()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrUnavailable, err.Error())
	}
	if len(paths) == 0 {
		return nil, nil, errors.Wrapf(errors.ErrUnavailable,
			"no ontology documents under %s and no usable cache", p.cfg.SourceDir)
	}

	p.log.Infow("parsing sources", "dir", p.cfg.SourceDir, "documents", len(paths))

	store := graph.NewTripleStore()
	report := &Report{}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrap(err, "ingestion cancelled")
		}
		if err := p.parseDocument(path, store, fmt.Sprintf("d%d", i)); err != nil {
			report.Skipped = append(report.Skipped, ParseError{Path: path, Err: err})
			p.log.Warnw("skipping malformed document", "path", path, "error", err)
			continue
		}
		report.Documents++
		if report.Documents%50 == 0 {
			p.log.Debugw("ingestion progress", "parsed", report.Documents, "total", len(paths))
		}
	}

	if report.Documents == 0 {
		return nil, nil, errors.Wrapf(errors.ErrUnavailable,
			"all %d documents under %s failed to parse", len(paths), p.cfg.SourceDir)
	}

	report.Statements = store.Len()
	report.Entities = store.EntityCount()
	p.log.Infow("sources parsed",
		"documents", report.Documents,
		"skipped", len(report.Skipped),
		"statements", report.Statements,
		"entities", report.Entities,
	)
	return store, report, nil
}

// scanSources collects ontology documents under the source directory in a
// deterministic order, so re-ingesting the same tree yields identical
// entity ordinals.
func (p *Pipeline) scanSources() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(p.cfg.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".rdf", ".owl", ".ttl", ".nt":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", p.cfg.SourceDir)
	}
	sort.Strings(paths)
	return paths, nil
}

func (p *Pipeline) parseDocument(path string, store *graph.TripleStore, docTag string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".nt":
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		normalized := graph.NormalizeDateLiterals(string(content))
		return graph.ParseTurtle(strings.NewReader(normalized), store, docTag)
	default: // .rdf, .owl
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return graph.ParseRDFXML(f, store, docTag)
	}
}
