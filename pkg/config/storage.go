package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// SectionIDStorage is the identifier for the storage settings section
	SectionIDStorage = "storage"

	// DefaultDataFileName is the data file created next to the config file
	DefaultDataFileName = "UserMaps.json"

	defaultOnCorrupt = "fail"
)

// StorageSection configures where maps are kept and how a damaged data file
// is handled.
type StorageSection struct {
	DataFile  string `json:"data_file"`
	OnCorrupt string `json:"on_corrupt"`
	mu        sync.RWMutex
}

// NewStorageSection creates a storage section with default settings.
func NewStorageSection() *StorageSection {
	return &StorageSection{OnCorrupt: defaultOnCorrupt}
}

// ID returns the section identifier.
func (s *StorageSection) ID() string {
	return SectionIDStorage
}

// Title returns the section title.
func (s *StorageSection) Title() string {
	return "Storage"
}

// Description returns the section description.
func (s *StorageSection) Description() string {
	return "Location of the maps data file and what to do when it cannot be read."
}

// Data returns the current configuration data.
func (s *StorageSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"data_file":  s.DataFile,
		"on_corrupt": s.OnCorrupt,
	}
}

// SetData updates the configuration from the provided data.
func (s *StorageSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		str, ok := value.(string)
		switch key {
		case "data_file":
			if !ok {
				return fmt.Errorf("invalid value type for data_file: expected string, got %T", value)
			}
			s.DataFile = str
		case "on_corrupt":
			if !ok {
				return fmt.Errorf("invalid value type for on_corrupt: expected string, got %T", value)
			}
			s.OnCorrupt = str
		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}
	return nil
}

// Validate validates the current configuration.
func (s *StorageSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.OnCorrupt {
	case "", "fail", "quarantine":
	default:
		return fmt.Errorf("on_corrupt must be fail or quarantine, got %q", s.OnCorrupt)
	}
	if ext := strings.ToLower(filepath.Ext(s.DataFile)); s.DataFile != "" && ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("data_file must end in .json, .yaml or .yml, got %q", s.DataFile)
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *StorageSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DataFile = ""
	s.OnCorrupt = defaultOnCorrupt
}

// ResolveDataFile returns the configured data file, or DefaultDataFileName
// inside dir when none is set. A leading "~/" is expanded against home.
func (s *StorageSection) ResolveDataFile(dir, home string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.DataFile == "":
		return filepath.Join(dir, DefaultDataFileName)
	case strings.HasPrefix(s.DataFile, "~/") && home != "":
		return filepath.Join(home, s.DataFile[2:])
	default:
		return s.DataFile
	}
}

// CorruptionPolicy returns the configured policy name.
func (s *StorageSection) CorruptionPolicy() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.OnCorrupt
}
