package model

// FieldKind is the closed set of input kinds a field can render as.
type FieldKind string

const (
	FieldKindText   FieldKind = "text"
	FieldKindEmail  FieldKind = "email"
	FieldKindSelect FieldKind = "select"
)

// Valid reports whether k is one of the supported kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldKindText, FieldKindEmail, FieldKindSelect:
		return true
	default:
		return false
	}
}

// FreeText reports whether the kind renders as a typed text input.
func (k FieldKind) FreeText() bool {
	return k == FieldKindText || k == FieldKindEmail
}

// Field describes one input the operator must supply. Struct tags cover the
// registry file formats (JSON, YAML, TOML) so loaders can decode directly.
type Field struct {
	Name        string    `json:"name" yaml:"name" toml:"name"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Kind        FieldKind `json:"kind" yaml:"kind" toml:"kind"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// HasOption reports whether value is one of the declared choices.
func (f Field) HasOption(value string) bool {
	for _, option := range f.Options {
		if option == value {
			return true
		}
	}
	return false
}

// Action is a named job-trigger operation. Field order is significant: it
// drives on-screen order and query-parameter order.
type Action struct {
	ID          string  `json:"id" yaml:"id" toml:"id"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Fields      []Field `json:"fields" yaml:"fields" toml:"fields"`
}

// Field returns the descriptor called name.
func (a Action) Field(name string) (Field, bool) {
	for _, field := range a.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (a Action) FieldNames() []string {
	names := make([]string, 0, len(a.Fields))
	for _, field := range a.Fields {
		names = append(names, field.Name)
	}
	return names
}

// Clone returns a deep copy so callers cannot mutate shared descriptors.
func (a Action) Clone() Action {
	out := a
	if a.Fields == nil {
		return out
	}
	out.Fields = make([]Field, len(a.Fields))
	for i, field := range a.Fields {
		if field.Options != nil {
			field.Options = append([]string(nil), field.Options...)
		}
		out.Fields[i] = field
	}
	return out
}
