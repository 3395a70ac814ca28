package config

import (
	"path/filepath"
	"testing"
	"time"
)

// resetGlobal clears the singleton between tests.
func resetGlobal(t *testing.T) {
	t.Helper()
	globalMu.Lock()
	globalManager = nil
	globalMu.Unlock()
	t.Cleanup(func() {
		globalMu.Lock()
		globalManager = nil
		globalMu.Unlock()
	})
}

func TestInitialize(t *testing.T) {
	t.Run("registers default sections", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")

		if err := Initialize(configPath); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if !IsInitialized() {
			t.Error("Global manager should be initialized")
		}

		sections := Global().GetSections()
		if len(sections) != 2 {
			t.Fatalf("Expected 2 sections, got %d", len(sections))
		}
		if sections[0].ID() != SectionIDStorage || sections[1].ID() != SectionIDUI {
			t.Errorf("Unexpected section order: %s, %s", sections[0].ID(), sections[1].ID())
		}
	})

	t.Run("loads saved values", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")

		store, err := NewFileStore(configPath)
		if err != nil {
			t.Fatalf("NewFileStore failed: %v", err)
		}
		store.SetSection(SectionIDStorage, map[string]interface{}{"on_corrupt": "quarantine"})
		store.SetSection(SectionIDUI, map[string]interface{}{"toast_duration": "5s"})
		if err := store.Save(); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		if err := Initialize(configPath); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		if got := GetStorage().CorruptionPolicy(); got != "quarantine" {
			t.Errorf("Expected quarantine policy, got %q", got)
		}
		if got := GetUI().GetToastDuration(); got != 5*time.Second {
			t.Errorf("Expected 5s toast, got %v", got)
		}
	})

	t.Run("persists through SaveAll", func(t *testing.T) {
		resetGlobal(t)
		configPath := filepath.Join(t.TempDir(), "config.json")

		if err := Initialize(configPath); err != nil {
			t.Fatalf("Initialize failed: %v", err)
		}
		GetUI().SetToastDuration(2 * time.Second)
		if err := Global().SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		resetGlobal(t)
		if err := Initialize(configPath); err != nil {
			t.Fatalf("second Initialize failed: %v", err)
		}
		if got := GetUI().GetToastDuration(); got != 2*time.Second {
			t.Errorf("Expected 2s after reload, got %v", got)
		}
	})
}

func TestGlobal_PanicsWhenUninitialized(t *testing.T) {
	resetGlobal(t)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Global should panic before Initialize")
		}
	}()
	Global()
}

func TestAccessorsWhenUninitialized(t *testing.T) {
	resetGlobal(t)

	if IsInitialized() {
		t.Error("should not be initialized")
	}
	if GetStorage() != nil {
		t.Error("GetStorage should be nil before Initialize")
	}
	if GetUI() != nil {
		t.Error("GetUI should be nil before Initialize")
	}
}
