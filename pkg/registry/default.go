package registry

import "github.com/goliatone/go-jobform/pkg/model"

// Action ids of the built-in table.
const (
	ActionChangeEmail                   = "change-email"
	ActionDeletePingID                  = "delete-ping-id"
	ActionChangeDefaultUnitID           = "change-default-unit-id"
	ActionUpdateCreditCardHoldReference = "update-credit-card-hold-reference"
)

const (
	emailPlaceholder  = "e.g., user@example.com"
	caseIDPlaceholder = "e.g., 645677867"
)

var defaultRegistry = MustNew(defaultActions()...)

// Default returns the built-in action table.
func Default() *Registry {
	return defaultRegistry
}

func defaultActions() []model.Action {
	return []model.Action{
		{
			ID:          ActionChangeEmail,
			Description: "Replace a user's login email",
			Fields: []model.Field{
				emailField("OLD_EMAIL"),
				emailField("NEW_EMAIL"),
				caseIDField("CASE_ID"),
			},
		},
		{
			// UNIT_ID is fixed to 1 by the URL builder, never entered.
			ID:          ActionDeletePingID,
			Description: "Remove a user's PingID enrolment",
			Fields: []model.Field{
				emailField("EMAIL"),
				caseIDField("CASE_ID"),
			},
		},
		{
			ID:          ActionChangeDefaultUnitID,
			Description: "Move a user to another default unit",
			Fields: []model.Field{
				emailField("EMAIL"),
				{
					Name:        "UNIT_ID",
					Label:       "UNIT_ID",
					Kind:        model.FieldKindSelect,
					Options:     []string{"1", "3", "4"},
					Placeholder: "Select Unit ID",
				},
				caseIDField("CASE_ID"),
			},
		},
		{
			ID:          ActionUpdateCreditCardHoldReference,
			Description: "Update the hold reference on a credit card",
			Fields: []model.Field{
				{Name: "HOLD_REFERENCE_ID", Label: "HOLD_REFERENCE_ID", Kind: model.FieldKindText, Placeholder: "e.g., 323454"},
				caseIDField("CRM_CASE_ID"),
				caseIDField("CASE_ID"),
			},
		},
	}
}

func emailField(name string) model.Field {
	return model.Field{Name: name, Label: name, Kind: model.FieldKindEmail, Placeholder: emailPlaceholder}
}

func caseIDField(name string) model.Field {
	return model.Field{Name: name, Label: name, Kind: model.FieldKindText, Placeholder: caseIDPlaceholder}
}
