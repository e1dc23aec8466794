package ingest

import (
	"os"
	"path/filepath"

	"github.com/fonto-dev/fonto/errors"
	"github.com/fonto-dev/fonto/graph"
)

// LoadCache reads the consolidated N-Triples cache into a fresh store.
func LoadCache(path string) (*graph.TripleStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open cache %s", path)
	}
	defer f.Close()

	store := graph.NewTripleStore()
	if err := graph.ParseTurtle(f, store, "cache"); err != nil {
		return nil, errors.Wrapf(err, "failed to parse cache %s", path)
	}
	if store.Len() == 0 {
		return nil, errors.Newf("cache %s contains no statements", path)
	}
	return store, nil
}

// WriteCache serializes the store to path, fully replacing any previous
// cache. The write goes to a temporary file first and is renamed into
// place, so a crash mid-write never leaves a corrupt cache behind.
func WriteCache(store *graph.TripleStore, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "failed to create cache directory for %s", path)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", tmp)
	}

	if err := graph.WriteNTriples(store, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to serialize cache to %s", tmp)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to flush %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "failed to replace cache %s", path)
	}
	return nil
}
