package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Format identifies a registry file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

type documentFile struct {
	Actions []model.Action `json:"actions" yaml:"actions" toml:"actions"`
}

// Parse decodes a registry document. Labels, placeholders and descriptions
// are stripped of markup before the actions are validated.
func Parse(data []byte, format Format) (*Registry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("registry: document is empty")
	}

	var doc documentFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("registry: parse json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("registry: parse yaml: %w", err)
		}
	case FormatTOML:
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, fmt.Errorf("registry: parse toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("registry: parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("registry: unsupported format %q", format)
	}

	if len(doc.Actions) == 0 {
		return nil, fmt.Errorf("registry: document declares no actions")
	}
	for i := range doc.Actions {
		doc.Actions[i] = sanitizeAction(doc.Actions[i])
	}
	return New(doc.Actions...)
}

// LoadFile reads a single registry file, picking the decoder by extension.
func LoadFile(path string) (*Registry, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("registry: unsupported file extension %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read %s: %w", path, err)
	}
	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return r, nil
}

// LoadFS walks fsys and merges every JSON, YAML or TOML registry file in
// lexical path order. Action ids must be unique across files.
func LoadFS(fsys fs.FS) (*Registry, error) {
	if fsys == nil {
		return New()
	}

	var parts []*Registry
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		format, ok := FormatFromPath(path)
		if !ok {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("registry: read %s: %w", path, err)
		}
		part, err := Parse(data, format)
		if err != nil {
			return fmt.Errorf("%w (file %s)", err, path)
		}
		parts = append(parts, part)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Merge(parts...)
}

// Load resolves a path that may point at a single file or a directory.
func Load(path string) (*Registry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("registry: %w", err)
	}
	if info.IsDir() {
		return LoadFS(os.DirFS(path))
	}
	return LoadFile(path)
}
