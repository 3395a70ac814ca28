package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileStore(t *testing.T) {
	t.Run("creates store with custom path", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		if store.Path() != configPath {
			t.Errorf("Expected path %s, got %s", configPath, store.Path())
		}
		if store.IsModified() {
			t.Error("New store should not be modified")
		}
	})

	t.Run("creates store with default path when empty", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		store, err := NewFileStore("")
		if err != nil {
			t.Fatalf("NewFileStore with empty path failed: %v", err)
		}

		dir, _ := DefaultDir()
		if store.Path() != filepath.Join(dir, "config.json") {
			t.Errorf("Expected default path under %s, got %s", dir, store.Path())
		}
	})

	t.Run("fails on unreadable config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte("{invalid json}"), 0600); err != nil {
			t.Fatalf("Failed to write invalid JSON: %v", err)
		}
		if _, err := NewFileStore(configPath); err == nil {
			t.Error("NewFileStore should fail for invalid JSON")
		}
	})
}

func TestFileStore_Load(t *testing.T) {
	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")

		doc := map[string]interface{}{
			"version": "1",
			"sections": map[string]map[string]interface{}{
				"storage": {"data_file": "/tmp/maps.json"},
				"ui":      {"toast_duration": "2s"},
			},
		}
		data, _ := json.MarshalIndent(doc, "", "  ")
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}

		storage, _ := store.GetSection("storage")
		ui, _ := store.GetSection("ui")
		if storage["data_file"] != "/tmp/maps.json" {
			t.Error("storage section not loaded correctly")
		}
		if ui["toast_duration"] != "2s" {
			t.Error("ui section not loaded correctly")
		}
	})

	t.Run("handles non-existent file", func(t *testing.T) {
		store := &FileStore{path: filepath.Join(t.TempDir(), "nonexistent.json")}
		if err := store.Load(); err != nil {
			t.Fatalf("Load should not fail for non-existent file: %v", err)
		}
		section, _ := store.GetSection("storage")
		if len(section) != 0 {
			t.Error("Expected empty section for non-existent file")
		}
	})

	t.Run("handles missing sections key", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		if err := os.WriteFile(configPath, []byte(`{"version":"1"}`), 0600); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		store := &FileStore{path: configPath}
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := store.SetSection("ui", map[string]interface{}{"a": 1}); err != nil {
			t.Fatalf("SetSection after load failed: %v", err)
		}
	})
}

func TestFileStore_Save(t *testing.T) {
	t.Run("saves config to file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.json")
		store, _ := NewFileStore(configPath)

		if err := store.SetSection("storage", map[string]interface{}{"on_corrupt": "quarantine"}); err != nil {
			t.Fatalf("SetSection failed: %v", err)
		}
		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("Failed to read saved config: %v", err)
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			t.Fatalf("Saved config is not valid JSON: %v", err)
		}
		if doc["version"] != configVersion {
			t.Error("Version not saved correctly")
		}
		sections, ok := doc["sections"].(map[string]interface{})
		if !ok {
			t.Fatal("Sections not saved correctly")
		}
		storage, ok := sections["storage"].(map[string]interface{})
		if !ok || storage["on_corrupt"] != "quarantine" {
			t.Errorf("storage section not saved correctly: %v", sections)
		}

		if _, err := os.Stat(configPath + ".tmp"); !os.IsNotExist(err) {
			t.Error("temp file should be gone after save")
		}
	})

	t.Run("creates directory if needed", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

		store, _ := NewFileStore(configPath)
		store.SetSection("ui", map[string]interface{}{"detail_style": "dracula"})

		if err := store.Save(); err != nil {
			t.Fatalf("Save should create nested directories: %v", err)
		}
		if _, err := os.Stat(configPath); err != nil {
			t.Errorf("config file was not created: %v", err)
		}
	})

	t.Run("clears modified flag after save", func(t *testing.T) {
		store, _ := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
		store.SetSection("ui", map[string]interface{}{"detail_style": "dracula"})

		if !store.IsModified() {
			t.Error("Store should be modified after SetSection")
		}
		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if store.IsModified() {
			t.Error("Store should not be modified after Save")
		}
	})
}

func TestFileStore_SectionCopies(t *testing.T) {
	store, _ := NewFileStore(filepath.Join(t.TempDir(), "config.json"))

	in := map[string]interface{}{"key": "value"}
	store.SetSection("s", in)
	in["key"] = "changed"

	out, _ := store.GetSection("s")
	if out["key"] != "value" {
		t.Error("SetSection must copy its input")
	}
	out["key"] = "changed"

	again, _ := store.GetSection("s")
	if again["key"] != "value" {
		t.Error("GetSection must return a copy")
	}
}
