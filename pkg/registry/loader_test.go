package registry_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
)

const yamlDoc = `
actions:
  - id: reset-mfa
    description: Reset <b>MFA</b> devices
    fields:
      - name: EMAIL
        label: <em>Email</em>
        kind: email
        placeholder: e.g., user@example.com
      - name: REGION
        kind: Select
        placeholder: Pick a region
        options: ["eu", "us"]
`

const jsonDoc = `{
  "actions": [
    {"id": "unlock-account", "fields": [{"name": "CASE_ID", "kind": "text"}]}
  ]
}`

const tomlDoc = `
[[actions]]
id = "close-account"

[[actions.fields]]
name = "ACCOUNT_ID"
kind = "text"
placeholder = "e.g., 1234"
`

func TestParse_YAMLSanitisesCopy(t *testing.T) {
	reg, err := registry.Parse([]byte(yamlDoc), registry.FormatYAML)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	action := reg.MustLookup("reset-mfa")

	want := model.Action{
		ID:          "reset-mfa",
		Description: "Reset MFA devices",
		Fields: []model.Field{
			{Name: "EMAIL", Label: "Email", Kind: model.FieldKindEmail, Placeholder: "e.g., user@example.com"},
			{Name: "REGION", Kind: model.FieldKindSelect, Placeholder: "Pick a region", Options: []string{"eu", "us"}},
		},
	}
	if diff := cmp.Diff(want, action); diff != "" {
		t.Fatalf("action mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_JSONAndTOML(t *testing.T) {
	jsonReg, err := registry.Parse([]byte(jsonDoc), registry.FormatJSON)
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if !jsonReg.Has("unlock-account") {
		t.Fatalf("json action missing")
	}

	tomlReg, err := registry.Parse([]byte(tomlDoc), registry.FormatTOML)
	if err != nil {
		t.Fatalf("parse toml: %v", err)
	}
	field, ok := tomlReg.MustLookup("close-account").Field("ACCOUNT_ID")
	if !ok || field.Placeholder != "e.g., 1234" {
		t.Fatalf("toml field mismatch: %+v", field)
	}
}

func TestParse_RejectsUnknownKeysAndBadTables(t *testing.T) {
	cases := map[string]struct {
		data   string
		format registry.Format
	}{
		"empty":           {data: "  ", format: registry.FormatYAML},
		"no actions":      {data: `{"actions": []}`, format: registry.FormatJSON},
		"unknown json":    {data: `{"actions": [], "extra": 1}`, format: registry.FormatJSON},
		"unknown yaml":    {data: "actions:\n  - id: a\n    colour: red\n", format: registry.FormatYAML},
		"unknown toml":    {data: "[[actions]]\nid = \"a\"\nweight = 3\n", format: registry.FormatTOML},
		"select no opts":  {data: "actions:\n  - id: a\n    fields:\n      - {name: X, kind: select}\n", format: registry.FormatYAML},
		"unknown format":  {data: "x", format: "ini"},
		"duplicate field": {data: "actions:\n  - id: a\n    fields:\n      - {name: X, kind: text}\n      - {name: X, kind: text}\n", format: registry.FormatYAML},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := registry.Parse([]byte(tc.data), tc.format); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadFS_MergesFilesInPathOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml":     {Data: []byte(yamlDoc)},
		"b/c.json":   {Data: []byte(jsonDoc)},
		"d.toml":     {Data: []byte(tomlDoc)},
		"README.txt": {Data: []byte("ignored")},
	}
	reg, err := registry.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if diff := cmp.Diff([]string{"reset-mfa", "unlock-account", "close-account"}, reg.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_DuplicateAcrossFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a.json": {Data: []byte(jsonDoc)},
		"b.json": {Data: []byte(jsonDoc)},
	}
	if _, err := registry.LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestLoad_FileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "actions.yml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fromFile, err := registry.Load(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	fromDir, err := registry.Load(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if diff := cmp.Diff(fromFile.IDs(), fromDir.IDs()); diff != "" {
		t.Fatalf("file vs dir mismatch (-want +got):\n%s", diff)
	}

	_, err = registry.LoadFile(filepath.Join(dir, "actions.ini"))
	if err == nil || !strings.Contains(err.Error(), "unsupported file extension") {
		t.Fatalf("expected extension error, got %v", err)
	}
}
