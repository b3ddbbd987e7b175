package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
)

func TestFieldValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   model.Field
		wantErr bool
	}{
		{name: "text", field: model.Field{Name: "CASE_ID", Kind: model.FieldKindText}},
		{name: "email", field: model.Field{Name: "EMAIL", Kind: model.FieldKindEmail}},
		{name: "select", field: model.Field{Name: "UNIT_ID", Kind: model.FieldKindSelect, Options: []string{"1", "3"}}},
		{name: "missing name", field: model.Field{Kind: model.FieldKindText}, wantErr: true},
		{name: "unknown kind", field: model.Field{Name: "X", Kind: "number"}, wantErr: true},
		{name: "select without options", field: model.Field{Name: "UNIT_ID", Kind: model.FieldKindSelect}, wantErr: true},
		{name: "text with options", field: model.Field{Name: "X", Kind: model.FieldKindText, Options: []string{"a"}}, wantErr: true},
		{name: "duplicate option", field: model.Field{Name: "X", Kind: model.FieldKindSelect, Options: []string{"a", "a"}}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.field.Validate()
			if tc.wantErr {
				if !errors.Is(err, model.ErrInvalidField) {
					t.Fatalf("expected ErrInvalidField, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestActionValidate_RejectsDuplicateFieldNames(t *testing.T) {
	action := model.Action{
		ID: "change-email",
		Fields: []model.Field{
			{Name: "CASE_ID", Kind: model.FieldKindText},
			{Name: "CASE_ID", Kind: model.FieldKindText},
		},
	}
	if err := action.Validate(); !errors.Is(err, model.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestActionValidate_RejectsReservedCharactersInID(t *testing.T) {
	for _, id := range []string{"", " padded", "a/b", "a?b", "a&b"} {
		if err := (model.Action{ID: id}).Validate(); err == nil {
			t.Fatalf("expected error for id %q", id)
		}
	}
}

func TestActionClone_IsDeep(t *testing.T) {
	action := model.Action{
		ID: "change-default-unit-id",
		Fields: []model.Field{
			{Name: "UNIT_ID", Kind: model.FieldKindSelect, Options: []string{"1", "3", "4"}},
		},
	}
	clone := action.Clone()
	clone.Fields[0].Options[0] = "9"
	clone.Fields[0].Name = "OTHER"

	if diff := cmp.Diff([]string{"1", "3", "4"}, action.Fields[0].Options); diff != "" {
		t.Fatalf("original options mutated (-want +got):\n%s", diff)
	}
	if action.Fields[0].Name != "UNIT_ID" {
		t.Fatalf("original field mutated: %q", action.Fields[0].Name)
	}
}

func TestFieldDisplayLabel(t *testing.T) {
	if got := (model.Field{Name: "EMAIL"}).DisplayLabel(); got != "EMAIL" {
		t.Fatalf("fallback label = %q", got)
	}
	if got := (model.Field{Name: "EMAIL", Label: "Email"}).DisplayLabel(); got != "Email" {
		t.Fatalf("label = %q", got)
	}
}
