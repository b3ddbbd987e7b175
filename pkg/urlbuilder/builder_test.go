package urlbuilder_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

const host = "http://jenkins-ops.tools.ilabank.internal"

func TestBuild_ChangeEmailRoundTrip(t *testing.T) {
	action := registry.Default().MustLookup("change-email")

	got, err := urlbuilder.New().Build(action, urlbuilder.Values{
		"OLD_EMAIL": "a@x.com",
		"NEW_EMAIL": "b@x.com",
		"CASE_ID":   "123",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := host + "/job/change-email/job/parambuild/?env=prod&OLD_EMAIL=a%40x.com&NEW_EMAIL=b%40x.com&CASE_ID=123"
	if got != want {
		t.Fatalf("url mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestBuild_DeletePingIDInjectsFixedUnit(t *testing.T) {
	action := registry.Default().MustLookup("delete-ping-id")

	got, err := urlbuilder.New().Build(action, urlbuilder.Values{
		"EMAIL":   "user@example.com",
		"CASE_ID": "42",
		"UNIT_ID": "9",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := host + "/job/delete-ping-id/job/parambuild/?env=prod&UNIT_ID=1&EMAIL=user%40example.com&CASE_ID=42"
	if got != want {
		t.Fatalf("url mismatch\nwant: %s\n got: %s", want, got)
	}

	parsed, err := urlbuilder.Parse(got)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if first := parsed.Params[1]; first.Name != "UNIT_ID" || first.Value != "1" {
		t.Fatalf("first field param = %+v, want UNIT_ID=1", first)
	}
}

func TestBuild_OtherActionsNeverInjectUnit(t *testing.T) {
	action := registry.Default().MustLookup("change-default-unit-id")
	got, err := urlbuilder.New().Build(action, urlbuilder.Values{
		"EMAIL":   "a@x.com",
		"UNIT_ID": "3",
		"CASE_ID": "7",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Count(got, "UNIT_ID=") != 1 || !strings.Contains(got, "&UNIT_ID=3&") {
		t.Fatalf("unexpected UNIT_ID handling: %s", got)
	}
}

func TestBuild_MissingFieldForEveryOmission(t *testing.T) {
	reg := registry.Default()
	builder := urlbuilder.New()

	for _, action := range reg.Actions() {
		for _, omitted := range action.Fields {
			values := urlbuilder.Values{}
			for _, field := range action.Fields {
				if field.Name == omitted.Name {
					continue
				}
				if len(field.Options) > 0 {
					values[field.Name] = field.Options[0]
					continue
				}
				values[field.Name] = "value"
			}

			got, err := builder.Build(action, values)
			if got != "" {
				t.Fatalf("%s without %s produced url %q", action.ID, omitted.Name, got)
			}
			if !errors.Is(err, urlbuilder.ErrMissingField) {
				t.Fatalf("%s without %s: expected ErrMissingField, got %v", action.ID, omitted.Name, err)
			}
			var missing *urlbuilder.MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *MissingFieldError, got %T", err)
			}
			if missing.Name != omitted.Name || missing.Label != omitted.Label {
				t.Fatalf("missing = %+v, want %s", missing, omitted.Name)
			}
			if missing.Message() != "Please fill in "+omitted.Label {
				t.Fatalf("message = %q", missing.Message())
			}
		}
	}
}

func TestBuild_ReportsFirstMissingFieldInOrder(t *testing.T) {
	action := registry.Default().MustLookup("change-email")
	_, err := urlbuilder.New().Build(action, urlbuilder.Values{"CASE_ID": "1"})

	var missing *urlbuilder.MissingFieldError
	if !errors.As(err, &missing) || missing.Name != "OLD_EMAIL" {
		t.Fatalf("expected OLD_EMAIL missing, got %v", err)
	}
}

func TestBuild_EncodesReservedCharacters(t *testing.T) {
	action := registry.Default().MustLookup("change-email")
	raw := map[string]string{
		"OLD_EMAIL": "a+b@x.com",
		"NEW_EMAIL": "c d/e=f?@x.com",
		"CASE_ID":   "12&3",
	}

	got, err := urlbuilder.New().Build(action, urlbuilder.Values(raw))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasSuffix(got, "&CASE_ID=12%263") {
		t.Fatalf("CASE_ID not encoded: %s", got)
	}
	if !strings.Contains(got, "NEW_EMAIL=c%20d%2Fe%3Df%3F%40x.com") {
		t.Fatalf("NEW_EMAIL not encoded: %s", got)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	for name, value := range raw {
		if query.Get(name) != value {
			t.Fatalf("%s round trip = %q, want %q", name, query.Get(name), value)
		}
	}
}

func TestBuild_ActionWithoutFields(t *testing.T) {
	got, err := urlbuilder.New().Build(model.Action{ID: "ping"}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if want := host + "/job/ping/job/parambuild/?env=prod"; got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}

func TestBuild_IsIdempotent(t *testing.T) {
	action := registry.Default().MustLookup("update-credit-card-hold-reference")
	values := urlbuilder.Values{"HOLD_REFERENCE_ID": "323454", "CRM_CASE_ID": "1", "CASE_ID": "2"}
	builder := urlbuilder.New()

	first, err := builder.Build(action, values)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	second, _ := builder.Build(action, values)
	if first != second {
		t.Fatalf("builds differ:\n%s\n%s", first, second)
	}
}

func TestBuilderOptions(t *testing.T) {
	builder := urlbuilder.New(
		urlbuilder.WithBaseURL("https://ci.example.com/"),
		urlbuilder.WithEnv("staging"),
		urlbuilder.WithEnv("  "),
	)
	action := registry.Default().MustLookup("delete-ping-id")
	got, err := builder.Build(action, urlbuilder.Values{"EMAIL": "e", "CASE_ID": "c"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "https://ci.example.com/job/delete-ping-id/job/parambuild/?env=staging&UNIT_ID=1&EMAIL=e&CASE_ID=c"
	if got != want {
		t.Fatalf("url mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestEncodeComponent(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"abcXYZ019":        "abcXYZ019",
		"-_.!~*'()":        "-_.!~*'()",
		"a b":              "a%20b",
		"a+b":              "a%2Bb",
		"&=/?#":            "%26%3D%2F%3F%23",
		"user@example.com": "user%40example.com",
		"ü":                "%C3%BC",
	}
	for in, want := range cases {
		if got := urlbuilder.EncodeComponent(in); got != want {
			t.Fatalf("EncodeComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParse(t *testing.T) {
	parsed, err := urlbuilder.Parse(host + "/job/change-email/job/parambuild/?env=prod&OLD_EMAIL=a%40x.com&CASE_ID=12%263")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := urlbuilder.Parsed{
		BaseURL:  host,
		ActionID: "change-email",
		Params: []urlbuilder.Param{
			{Name: "env", Value: "prod"},
			{Name: "OLD_EMAIL", Value: "a@x.com"},
			{Name: "CASE_ID", Value: "12&3"},
		},
	}
	if diff := cmp.Diff(want, parsed); diff != "" {
		t.Fatalf("parsed mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"not a url", "/job/x/job/parambuild/", host + "/job/x/", host + "/job//job/parambuild/"} {
		if _, err := urlbuilder.Parse(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
