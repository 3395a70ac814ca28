package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the envelope version written by Encode.
// Version 0 is the legacy layout: a bare list of maps with no envelope.
const CurrentVersion = 1

// Format names an on-disk encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts the names used on the command line and in config.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("store: unknown format %q (want json or yaml)", s)
	}
}

// FormatForPath picks the encoding from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// envelope is the versioned document stored in the data file.
type envelope struct {
	Version int        `json:"version" yaml:"version"`
	Maps    Collection `json:"maps" yaml:"maps"`
}

// Encode renders c in the given format wrapped in a current-version envelope.
func Encode(format Format, c Collection) ([]byte, error) {
	env := envelope{Version: CurrentVersion, Maps: c}
	if env.Maps == nil {
		env.Maps = Collection{}
	}
	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(&env)
		if err != nil {
			return nil, fmt.Errorf("store: encode yaml: %w", err)
		}
		return b, nil
	case FormatJSON, "":
		b, err := json.MarshalIndent(&env, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("store: encode json: %w", err)
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("store: unknown format %q", format)
	}
}

// Decode parses raw bytes into a collection. Any failure wraps ErrCorrupt.
func Decode(format Format, raw []byte) (Collection, error) {
	var (
		c   Collection
		err error
	)
	switch format {
	case FormatYAML:
		c, err = decodeYAML(raw)
	case FormatJSON, "":
		c, err = decodeJSON(raw)
	default:
		return nil, fmt.Errorf("store: unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for i, m := range c {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: map %d: %w", ErrCorrupt, i, err)
		}
	}
	if c == nil {
		c = Collection{}
	}
	return c, nil
}

func decodeJSON(raw []byte) (Collection, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty document")
	}
	if trimmed[0] == '[' {
		var legacy Collection
		if err := strictJSON(trimmed, &legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}
	var env envelope
	if err := strictJSON(trimmed, &env); err != nil {
		return nil, err
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	return env.Maps, nil
}

// strictJSON decodes exactly one JSON value with no unknown fields and
// nothing but whitespace after it.
func strictJSON(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("json: trailing data after document")
	}
	return nil
}

func decodeYAML(raw []byte) (Collection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	if doc.Content[0].Kind == yaml.SequenceNode {
		var legacy Collection
		if err := strictYAML(raw, &legacy); err != nil {
			return nil, err
		}
		return legacy, nil
	}
	var env envelope
	if err := strictYAML(raw, &env); err != nil {
		return nil, err
	}
	if err := checkVersion(env.Version); err != nil {
		return nil, err
	}
	return env.Maps, nil
}

// strictYAML is strictJSON for YAML: one document, known fields only.
func strictYAML(raw []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return errors.New("yaml: more than one document")
	}
	return nil
}

func checkVersion(v int) error {
	if v < 1 || v > CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	return nil
}

// Export writes c to w in the given format.
func Export(w io.Writer, format Format, c Collection) error {
	b, err := Encode(format, c)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("store: export: %w", err)
	}
	return nil
}
