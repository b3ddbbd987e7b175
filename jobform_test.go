package jobform

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

func TestAssetsFSContainsPageScript(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), "jobform.js")
	if err != nil {
		t.Fatalf("expected page script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "Copied!") {
		t.Fatalf("expected page script to carry the copy acknowledgement")
	}
}

func TestEmbeddedTemplatesIncludePage(t *testing.T) {
	for _, name := range []string{"page.tmpl", "fields.tmpl"} {
		if _, err := fs.Stat(EmbeddedTemplates(), name); err != nil {
			t.Fatalf("template %s: %v", name, err)
		}
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(context.Background(), "change-email", map[string]string{"CASE_ID": "42"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `id="OLD_EMAIL"`) || !strings.Contains(out, `value="42"`) {
		t.Fatalf("unexpected fragment:\n%s", out)
	}
}

func TestBuildURL(t *testing.T) {
	url, err := BuildURL("delete-ping-id", map[string]string{"EMAIL": "e", "CASE_ID": "c"},
		urlbuilder.WithBaseURL("https://ci.example.com"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(url, "https://ci.example.com/job/delete-ping-id/job/parambuild/?env=prod&UNIT_ID=1&") {
		t.Fatalf("url = %q", url)
	}

	if _, err := BuildURL("reboot", nil); !errors.Is(err, registry.ErrActionNotFound) {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
}
