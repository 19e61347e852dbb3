// Package source provides grant collections for the scheduler and API to
// sweep over when no database is configured.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shadowgoose/grantpulse/internal/models"
)

// FileSource reads grants from one or more JSON files and merges them into
// a single collection. Files may hold either a bare array of grants or an
// object with a top-level "grants" key. Missing files are skipped so a
// deployment can list optional drop-in paths.
type FileSource struct {
	paths []string
}

func NewFileSource(paths ...string) *FileSource {
	return &FileSource{paths: paths}
}

func (f *FileSource) ListGrants(_ context.Context) ([]models.GrantRecord, error) {
	var merged []models.GrantRecord
	for _, path := range f.paths {
		grants, err := readGrantFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		merged = append(merged, grants...)
	}
	log.Printf("File source loaded %d grants from %d paths", len(merged), len(f.paths))
	return merged, nil
}

func readGrantFile(path string) ([]models.GrantRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '[' {
		var grants []models.GrantRecord
		if err := json.Unmarshal(raw, &grants); err != nil {
			return nil, fmt.Errorf("error parsing grant file %s: %w", path, err)
		}
		return grants, nil
	}

	var wrapper struct {
		Grants []models.GrantRecord `json:"grants"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, fmt.Errorf("error parsing grant file %s: %w", path, err)
	}
	return wrapper.Grants, nil
}
