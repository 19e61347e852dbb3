package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_MergesArrayAndWrapperFiles(t *testing.T) {
	dir := t.TempDir()
	bare := writeFile(t, dir, "bare.json", `[{"id":"a","name":"Grant A","funder":"F"}]`)
	wrapped := writeFile(t, dir, "wrapped.json", `{"grants":[{"id":"b","name":"Grant B","funder":"F"},{"id":"c","name":"Grant C","funder":"F"}]}`)

	grants, err := NewFileSource(bare, wrapped).ListGrants(context.Background())
	if err != nil {
		t.Fatalf("ListGrants failed: %v", err)
	}
	if len(grants) != 3 {
		t.Fatalf("expected 3 merged grants, got %d", len(grants))
	}
	if grants[0].Name != "Grant A" || grants[2].ID != "c" {
		t.Fatalf("unexpected merge order: %+v", grants)
	}
}

func TestFileSource_SkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "present.json", `[{"id":"a","name":"Grant A","funder":"F"}]`)

	grants, err := NewFileSource(filepath.Join(dir, "missing.json"), present).ListGrants(context.Background())
	if err != nil {
		t.Fatalf("ListGrants failed: %v", err)
	}
	if len(grants) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(grants))
	}
}

func TestFileSource_RejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.json", `{"grants": "not an array"}`)

	if _, err := NewFileSource(bad).ListGrants(context.Background()); err == nil {
		t.Fatal("expected an error for malformed grant file")
	}
}
