package config

import (
	"fmt"
	"sync"
	"time"
)

const (
	// SectionIDUI is the identifier for the UI settings section
	SectionIDUI = "ui"

	// Default values for UI settings
	defaultToastDuration = 3 * time.Second
	defaultDetailStyle   = "monokai"
)

// UISection manages terminal interface settings.
type UISection struct {
	ToastDuration time.Duration `json:"toast_duration"`
	DetailStyle   string        `json:"detail_style"`
	mu            sync.RWMutex
}

// NewUISection creates a new UI section with default settings.
func NewUISection() *UISection {
	return &UISection{
		ToastDuration: defaultToastDuration,
		DetailStyle:   defaultDetailStyle,
	}
}

// ID returns the section identifier.
func (s *UISection) ID() string {
	return SectionIDUI
}

// Title returns the section title.
func (s *UISection) Title() string {
	return "UI Settings"
}

// Description returns the section description.
func (s *UISection) Description() string {
	return "Configure how long notifications stay visible and the color style of the map detail view."
}

// Data returns the current configuration data.
func (s *UISection) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]any{
		"toast_duration": s.ToastDuration.String(),
		"detail_style":   s.DetailStyle,
	}
}

// SetData updates the configuration from the provided data.
func (s *UISection) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range data {
		switch key {
		case "toast_duration":
			// Handle both string and numeric duration values
			switch v := value.(type) {
			case string:
				duration, err := time.ParseDuration(v)
				if err != nil {
					return fmt.Errorf("invalid duration string for toast_duration: %w", err)
				}
				s.ToastDuration = duration
			case float64:
				// JSON numbers come as float64
				s.ToastDuration = time.Duration(v)
			case int64:
				s.ToastDuration = time.Duration(v)
			default:
				return fmt.Errorf("invalid value type for toast_duration: expected string or number, got %T", value)
			}

		case "detail_style":
			style, ok := value.(string)
			if !ok {
				return fmt.Errorf("invalid value type for detail_style: expected string, got %T", value)
			}
			s.DetailStyle = style

		default:
			// Ignore unknown keys for forward compatibility
			continue
		}
	}

	return nil
}

// Validate validates the current configuration.
func (s *UISection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Toasts shorter than half a second cannot be read
	if s.ToastDuration < 500*time.Millisecond || s.ToastDuration > 30*time.Second {
		return fmt.Errorf("toast_duration must be between 500ms and 30s, got %v", s.ToastDuration)
	}
	if s.DetailStyle == "" {
		return fmt.Errorf("detail_style must not be empty")
	}

	return nil
}

// Reset resets the section to default configuration.
func (s *UISection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ToastDuration = defaultToastDuration
	s.DetailStyle = defaultDetailStyle
}

// GetToastDuration returns how long toasts stay on screen.
func (s *UISection) GetToastDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ToastDuration
}

// GetDetailStyle returns the chroma style name for the detail view.
func (s *UISection) GetDetailStyle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.DetailStyle
}

// SetToastDuration sets how long toasts stay on screen.
func (s *UISection) SetToastDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ToastDuration = d
}
