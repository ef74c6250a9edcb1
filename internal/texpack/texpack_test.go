package texpack

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriter_New(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.vfxpack")

	w, err := New(dbPath, Metadata{Name: "Test Pack", Generator: "vfxtex", Version: "1"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created")
	}

	var count int
	if err := w.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='textures'").Scan(&count); err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected textures table to exist, got count=%d", count)
	}

	if err := w.db.QueryRow("SELECT COUNT(*) FROM metadata").Scan(&count); err != nil {
		t.Fatalf("Failed to query metadata: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 metadata rows, got %d", count)
	}
}

func TestWriter_BatchFlush(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "batch.vfxpack")
	w, err := New(dbPath, Metadata{Name: "batch"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}
	defer w.Close()
	w.batchSize = 2

	for _, name := range []string{"a.png", "b.png", "c.png"} {
		if err := w.Write(Entry{Name: name, Kind: "noise", Width: 4, Height: 4, Data: []byte(name)}); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	var count int
	if err := w.db.QueryRow("SELECT COUNT(*) FROM textures").Scan(&count); err != nil {
		t.Fatalf("Failed to count textures: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 textures after automatic flush, got %d", count)
	}
	if len(w.batch) != 1 {
		t.Errorf("Expected 1 buffered texture, got %d", len(w.batch))
	}

	if err := w.Write(Entry{Kind: "noise"}); err == nil {
		t.Error("Expected error for empty texture name")
	}
}

func TestReader_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "round.vfxpack")

	w, err := New(dbPath, Metadata{Name: "Round Trip", Description: "flipbooks", Generator: "vfxtex", Version: "1"})
	if err != nil {
		t.Fatalf("Failed to create writer: %v", err)
	}

	data := bytes.Repeat([]byte("fake png data "), 64)
	entries := []Entry{
		{Name: "flipbook_fbm_64_4x4.png", Kind: "flipbook", Width: 256, Height: 256, Cols: 4, Rows: 4, Seed: 42, Params: `{"pattern":"fbm"}`, Data: data},
		{Name: "noise_simplex_64_tileable.png", Kind: "noise", Width: 64, Height: 64, Seed: 7, Data: data[:10]},
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	r, err := OpenReader(dbPath)
	if err != nil {
		t.Fatalf("Failed to open reader: %v", err)
	}
	defer r.Close()

	got, err := r.ReadTexture("flipbook_fbm_64_4x4.png")
	if err != nil {
		t.Fatalf("Failed to read texture: %v", err)
	}
	if !bytes.Equal(got.Data, data) {
		t.Error("Texture data mismatch after round trip")
	}
	if got.Frames() != 16 || got.Seed != 42 || got.Params != `{"pattern":"fbm"}` {
		t.Errorf("Unexpected entry fields: %+v", got)
	}

	single, err := r.ReadTexture("noise_simplex_64_tileable.png")
	if err != nil {
		t.Fatalf("Failed to read texture: %v", err)
	}
	if single.Cols != 1 || single.Rows != 1 {
		t.Errorf("Expected 1x1 grid for single texture, got %dx%d", single.Cols, single.Rows)
	}

	if _, err := r.ReadTexture("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	list, err := r.List()
	if err != nil {
		t.Fatalf("Failed to list textures: %v", err)
	}
	if len(list) != 2 || list[0].Name != "flipbook_fbm_64_4x4.png" || list[1].Name != "noise_simplex_64_tileable.png" {
		t.Fatalf("Unexpected list: %v", list)
	}
	if list[0].Data != nil {
		t.Error("List must not load texture data")
	}

	meta, err := r.Metadata()
	if err != nil {
		t.Fatalf("Failed to read metadata: %v", err)
	}
	if meta.Name != "Round Trip" || meta.Description != "flipbooks" || meta.Count != 2 {
		t.Errorf("Unexpected metadata: %+v", meta)
	}
}

func TestWriter_ReopenKeepsTextures(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.vfxpack")

	for i, name := range []string{"first.png", "second.png"} {
		meta := Metadata{Generator: "vfxtex"}
		if i == 0 {
			meta.Name = "kept"
		}
		w, err := New(dbPath, meta)
		if err != nil {
			t.Fatalf("Failed to open writer: %v", err)
		}
		if err := w.Write(Entry{Name: name, Kind: "sprite", Width: 1, Height: 1, Data: []byte{1}}); err != nil {
			t.Fatalf("Failed to write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Failed to close: %v", err)
		}
	}

	r, err := OpenReader(dbPath)
	if err != nil {
		t.Fatalf("Failed to open reader: %v", err)
	}
	defer r.Close()

	meta, err := r.Metadata()
	if err != nil {
		t.Fatalf("Failed to read metadata: %v", err)
	}
	if meta.Count != 2 {
		t.Errorf("Expected 2 textures, got %d", meta.Count)
	}
	if meta.Name != "kept" {
		t.Errorf("Expected name to survive reopen, got %q", meta.Name)
	}
}

func TestOpenReader_MissingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	if err := os.WriteFile(dbPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenReader(dbPath); err == nil {
		t.Error("Expected error for database without textures table")
	}
}

func TestMetadataToMap(t *testing.T) {
	m := Metadata{Name: "n", Version: "2"}.ToMap()
	if len(m) != 2 || m["name"] != "n" || m["version"] != "2" {
		t.Errorf("Unexpected map: %v", m)
	}
}
