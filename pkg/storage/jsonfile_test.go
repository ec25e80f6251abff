package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type document struct {
	Items []string `json:"items"`
}

func TestLoadJSONMissingFile(t *testing.T) {
	var doc document
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &doc)
	if err != nil {
		t.Fatalf("a missing file must not be an error, got: %v", err)
	}
	if doc.Items != nil {
		t.Errorf("expected the target untouched, got %v", doc.Items)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	if err := SaveJSON(path, document{Items: []string{"a", "b"}}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	var doc document
	if err := LoadJSON(path, &doc); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if len(doc.Items) != 2 || doc.Items[1] != "b" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestSaveJSONCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "doc.json")

	if err := SaveJSON(path, document{}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected the file to exist: %v", err)
	}
}

func TestSaveJSONLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := SaveJSON(path, document{Items: []string{"a"}}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestLoadJSONCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	var doc document
	if err := LoadJSON(path, &doc); err == nil {
		t.Error("expected an error for a corrupt document")
	}
}
