// Package sources loads and saves the per-source YAML data files that back
// a hierarchy. It is the bridge between the pure resolver and a data
// directory; the resolver itself never performs IO.
package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"go.yaml.in/yaml/v4"

	"github.com/strataconf/strata/resolver"
)

// storeLogger is used for warnings when loading malformed data files.
// Tests can replace this with a discard logger to suppress expected warnings.
var storeLogger = slog.Default()

// Store reads and writes per-source data files beneath a base URL. Source
// ids are treated as paths relative to the base, exactly as they appear in
// the hierarchy. Backed by the afs abstraction, so the base may be a local
// directory or any URL scheme afs supports.
type Store struct {
	fs afs.Service
}

// NewStore returns a Store backed by the default afs service.
func NewStore() *Store {
	return &Store{fs: afs.New()}
}

// LoadAll reads the data files for the given source ids from dataDir and
// returns them as a snapshot. A missing file means the source has no data
// yet and is simply absent from the snapshot. A file whose document is not
// a mapping is logged and treated as empty; YAML syntax errors are fatal.
func (s *Store) LoadAll(ctx context.Context, dataDir string, ids []string) (resolver.Snapshot, error) {
	snapshot := make(resolver.Snapshot, len(ids))
	for _, id := range ids {
		location := url.Join(dataDir, id)

		exists, err := s.fs.Exists(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("sources: checking %s: %w", location, err)
		}
		if !exists {
			continue
		}

		content, err := s.fs.DownloadWithURL(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("sources: reading %s: %w", location, err)
		}

		var doc any
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("sources: parsing %s: %w", location, err)
		}
		switch data := doc.(type) {
		case nil:
			snapshot[id] = map[string]any{}
		case map[string]any:
			snapshot[id] = data
		default:
			storeLogger.Warn("data file is not a mapping, treating as empty",
				"source", id, "location", location)
			snapshot[id] = map[string]any{}
		}
	}
	return snapshot, nil
}

// Save writes the snapshot entries named by only beneath outputDir, one
// YAML file per source. Sources missing from the snapshot are skipped.
// Parent directories are created as needed.
func (s *Store) Save(ctx context.Context, outputDir string, snapshot resolver.Snapshot, only []string) error {
	for _, id := range only {
		data, ok := snapshot[id]
		if !ok {
			continue
		}

		content, err := yaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("sources: marshaling %s: %w", id, err)
		}

		location := url.Join(outputDir, id)
		if err := s.fs.Upload(ctx, location, os.FileMode(0o644), bytes.NewReader(content)); err != nil {
			return fmt.Errorf("sources: writing %s: %w", location, err)
		}
	}
	return nil
}
