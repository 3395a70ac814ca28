package config

import (
	"sync"
	"testing"
	"time"
)

func TestUISection_DefaultValues(t *testing.T) {
	ui := NewUISection()

	if d := ui.GetToastDuration(); d != 3*time.Second {
		t.Errorf("Expected default toast duration of 3s, got %v", d)
	}
	if s := ui.GetDetailStyle(); s != "monokai" {
		t.Errorf("Expected default detail style monokai, got %q", s)
	}
	if err := ui.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestUISection_SetData(t *testing.T) {
	tests := []struct {
		name      string
		data      map[string]any
		wantToast time.Duration
		wantStyle string
		wantErr   bool
	}{
		{
			name:      "duration string",
			data:      map[string]any{"toast_duration": "5s", "detail_style": "dracula"},
			wantToast: 5 * time.Second,
			wantStyle: "dracula",
		},
		{
			name:      "json number",
			data:      map[string]any{"toast_duration": float64(2 * time.Second)},
			wantToast: 2 * time.Second,
			wantStyle: "monokai",
		},
		{
			name:      "unknown keys ignored",
			data:      map[string]any{"theme": "dark"},
			wantToast: 3 * time.Second,
			wantStyle: "monokai",
		},
		{name: "bad duration", data: map[string]any{"toast_duration": "soon"}, wantErr: true},
		{name: "bad duration type", data: map[string]any{"toast_duration": true}, wantErr: true},
		{name: "bad style type", data: map[string]any{"detail_style": 7}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := NewUISection()
			err := ui.SetData(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SetData failed: %v", err)
			}
			if ui.GetToastDuration() != tt.wantToast {
				t.Errorf("toast duration: got %v, want %v", ui.GetToastDuration(), tt.wantToast)
			}
			if ui.GetDetailStyle() != tt.wantStyle {
				t.Errorf("detail style: got %q, want %q", ui.GetDetailStyle(), tt.wantStyle)
			}
		})
	}
}

func TestUISection_Validate(t *testing.T) {
	tests := []struct {
		name    string
		toast   time.Duration
		style   string
		wantErr bool
	}{
		{name: "minimum", toast: 500 * time.Millisecond, style: "monokai"},
		{name: "maximum", toast: 30 * time.Second, style: "monokai"},
		{name: "too short", toast: 100 * time.Millisecond, style: "monokai", wantErr: true},
		{name: "too long", toast: time.Minute, style: "monokai", wantErr: true},
		{name: "empty style", toast: time.Second, style: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := NewUISection()
			ui.SetToastDuration(tt.toast)
			ui.DetailStyle = tt.style
			err := ui.Validate()
			if tt.wantErr && err == nil {
				t.Error("Expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected validation error: %v", err)
			}
		})
	}
}

func TestUISection_DataRoundTrip(t *testing.T) {
	ui := NewUISection()
	ui.SetToastDuration(1500 * time.Millisecond)

	other := NewUISection()
	if err := other.SetData(ui.Data()); err != nil {
		t.Fatalf("SetData failed: %v", err)
	}
	if other.GetToastDuration() != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s after round trip, got %v", other.GetToastDuration())
	}

	other.Reset()
	if other.GetToastDuration() != 3*time.Second {
		t.Errorf("Reset should restore default, got %v", other.GetToastDuration())
	}
}

func TestUISection_ThreadSafety(t *testing.T) {
	ui := NewUISection()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			ui.SetToastDuration(time.Duration(n+1) * time.Second)
		}(i)
		go func() {
			defer wg.Done()
			_ = ui.GetToastDuration()
			_ = ui.Data()
		}()
	}
	wg.Wait()
}
