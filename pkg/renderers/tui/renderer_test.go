package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/registry"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/urlbuilder"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	infoMessages []string
	inputConfigs []InputConfig
	selects      []SelectConfig
	inputPos     int
	selectPos    int
	err          error
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	return false, errors.New("no confirm scripted")
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	s.selects = append(s.selects, cfg)
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func loadState(t *testing.T, actionID string) *form.State {
	t.Helper()
	state := form.NewState()
	state.Load(registry.Default().MustLookup(actionID))
	return state
}

func TestRender_URLOutput(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a@x.com", "b@x.com", "123"}}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), loadState(t, "change-email"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := urlbuilder.DefaultBaseURL + "/job/change-email/job/parambuild/?env=prod&OLD_EMAIL=a%40x.com&NEW_EMAIL=b%40x.com&CASE_ID=123"
	if string(out) != want {
		t.Fatalf("url mismatch\nwant: %s\n got: %s", want, out)
	}
	if driver.inputConfigs[0].Help != "e.g., user@example.com" {
		t.Fatalf("placeholder not used as help: %+v", driver.inputConfigs[0])
	}
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("content type = %q", r.ContentType())
	}
}

func TestRender_EmptyAnswerIsReasked(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "x@y.z", "9"}}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), loadState(t, "delete-ping-id"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"Please fill in EMAIL"}, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(out), "?env=prod&UNIT_ID=1&EMAIL=x%40y.z&CASE_ID=9") {
		t.Fatalf("unexpected url %s", out)
	}
}

func TestRender_SelectShowsOnlyChoices(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@x.com", "7"},
		selectIdx: []int{-1, 2},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatJSON))
	state := loadState(t, "change-default-unit-id")

	out, err := r.Render(context.Background(), state, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff([]string{"1", "3", "4"}, driver.selects[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if len(driver.infoMessages) != 1 {
		t.Fatalf("expected one re-ask message, got %v", driver.infoMessages)
	}

	if !strings.HasPrefix(string(out), `{"action":"change-default-unit-id","values":{"EMAIL":"a@x.com","UNIT_ID":"4","CASE_ID":"7"}`) {
		t.Fatalf("json must keep field order: %s", out)
	}
	var payload struct {
		Action string            `json:"action"`
		Values map[string]string `json:"values"`
		URL    string            `json:"url"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasSuffix(payload.URL, "&EMAIL=a%40x.com&UNIT_ID=4&CASE_ID=7") {
		t.Fatalf("url = %s", payload.URL)
	}
	if state.Value("UNIT_ID") != "4" {
		t.Fatalf("answers must be written back to the state")
	}
}

func TestRender_FormOutput(t *testing.T) {
	driver := &stubDriver{inputs: []string{"12&3", "crm", "c 1"}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), loadState(t, "update-credit-card-hold-reference"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "action=update-credit-card-hold-reference&HOLD_REFERENCE_ID=12%263&CRM_CASE_ID=crm&CASE_ID=c%201"
	if string(out) != want {
		t.Fatalf("form output mismatch\nwant: %s\n got: %s", want, out)
	}
}

func TestRender_ErrorsAreShownBeforePrompting(t *testing.T) {
	driver := &stubDriver{inputs: []string{"a@x.com", "1"}}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	_, err := r.Render(context.Background(), loadState(t, "delete-ping-id"), render.RenderOptions{
		Errors:     map[string][]string{"EMAIL": {"Please fill in EMAIL"}},
		FormErrors: []string{"Failed to copy URL"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{"! Failed to copy URL", "! Please fill in EMAIL"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_AbortAndEmptyState(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{err: ErrAborted}))

	if _, err := r.Render(context.Background(), loadState(t, "delete-ping-id"), render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
	if _, err := r.Render(context.Background(), form.NewState(), render.RenderOptions{}); !errors.Is(err, ErrNoAction) {
		t.Fatalf("expected ErrNoAction, got %v", err)
	}
}

func TestSelectAction(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1}}
	r := New(WithPromptDriver(driver))

	id, err := r.SelectAction(context.Background(), registry.Default())
	if err != nil {
		t.Fatalf("select action: %v", err)
	}
	if id != "delete-ping-id" {
		t.Fatalf("action = %q", id)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, ok := ParseOutputFormat(""); !ok || f != OutputFormatURL {
		t.Fatalf("empty format should default to url")
	}
	if _, ok := ParseOutputFormat("yaml"); ok {
		t.Fatalf("yaml is not a supported format")
	}
}
