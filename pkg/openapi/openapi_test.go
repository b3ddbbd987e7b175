package openapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

func TestExport_DescribesEveryAction(t *testing.T) {
	builder := urlbuilder.New(urlbuilder.WithBaseURL("https://ci.example.com/"), urlbuilder.WithEnv("staging"))
	doc, err := openapi.Export(context.Background(), registry.Default(), builder)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if doc.Servers[0].URL != "https://ci.example.com" {
		t.Fatalf("server url = %q", doc.Servers[0].URL)
	}
	if doc.Paths.Len() != registry.Default().Len() {
		t.Fatalf("expected %d paths, got %d", registry.Default().Len(), doc.Paths.Len())
	}

	item := doc.Paths.Value("/job/delete-ping-id/job/parambuild/")
	if item == nil || item.Get == nil {
		t.Fatalf("delete-ping-id operation missing")
	}
	var names []string
	for _, ref := range item.Get.Parameters {
		names = append(names, ref.Value.Name)
		if !ref.Value.Required {
			t.Fatalf("parameter %s must be required", ref.Value.Name)
		}
	}
	if diff := cmp.Diff([]string{"env", "UNIT_ID", "EMAIL", "CASE_ID"}, names); diff != "" {
		t.Fatalf("parameter order mismatch (-want +got):\n%s", diff)
	}

	unit := item.Get.Parameters.GetByInAndName("query", "UNIT_ID")
	if diff := cmp.Diff([]any{"1"}, unit.Schema.Value.Enum); diff != "" {
		t.Fatalf("fixed unit enum mismatch (-want +got):\n%s", diff)
	}
	env := item.Get.Parameters.GetByInAndName("query", "env")
	if env.Schema.Value.Default != "staging" {
		t.Fatalf("env default = %v", env.Schema.Value.Default)
	}
	email := item.Get.Parameters.GetByInAndName("query", "EMAIL")
	if email.Schema.Value.Format != "email" {
		t.Fatalf("EMAIL format = %q", email.Schema.Value.Format)
	}

	select_ := doc.Paths.Value("/job/change-default-unit-id/job/parambuild/").Get.Parameters.GetByInAndName("query", "UNIT_ID")
	if diff := cmp.Diff([]any{"1", "3", "4"}, select_.Schema.Value.Enum); diff != "" {
		t.Fatalf("select enum mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_RoundTripsExport(t *testing.T) {
	doc, err := openapi.Export(context.Background(), registry.Default(), nil)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	reg, err := openapi.Import(context.Background(), payload)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := cmp.Diff(registry.Default().Actions(), reg.Actions()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImport_Errors(t *testing.T) {
	if _, err := openapi.Import(context.Background(), nil); !errors.Is(err, openapi.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}

	doc := []byte(`{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{"/health":{"get":{"responses":{"200":{"description":"ok"}}}}}}`)
	if _, err := openapi.Import(context.Background(), doc); !errors.Is(err, openapi.ErrNoOperations) {
		t.Fatalf("expected ErrNoOperations, got %v", err)
	}

	if _, err := openapi.Import(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openapi.Export(ctx, registry.Default(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
