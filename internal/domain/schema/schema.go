// Package schema models a collection's field schema as reported by the
// search backend, and infers sensible search defaults from it.
package schema

// Field type names as used on the wire.
const (
	TypeString      = "string"
	TypeStringArray = "string[]"
	TypeInt32       = "int32"
	TypeInt64       = "int64"
	TypeFloat       = "float"
	TypeBool        = "bool"
)

// Field is one field definition in a collection schema.
type Field struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Index bool   `json:"index"`
	Sort  bool   `json:"sort,omitempty"`
	Facet bool   `json:"facet,omitempty"`
}

// IsTextual reports whether the field holds free text.
func (f Field) IsTextual() bool {
	return f.Type == TypeString || f.Type == TypeStringArray
}

// IsNumeric reports whether the field holds a number (timestamps included,
// the backend stores them as int64).
func (f Field) IsNumeric() bool {
	return f.Type == TypeInt32 || f.Type == TypeInt64 || f.Type == TypeFloat
}

// Schema is a collection's field schema.
type Schema struct {
	Name                string  `json:"name"`
	Fields              []Field `json:"fields"`
	DefaultSortingField string  `json:"default_sorting_field,omitempty"`
}

// QueryFields returns the indexed textual fields, in schema order.
// Used when a caller does not name query fields explicitly.
func (s Schema) QueryFields() []string {
	var fields []string
	for _, f := range s.Fields {
		if f.Index && f.IsTextual() {
			fields = append(fields, f.Name)
		}
	}
	return fields
}

// DefaultSort returns the sort expression to use when a caller supplies
// none: the declared default sorting field, else the first indexed numeric
// field, else empty (backend relevance order).
func (s Schema) DefaultSort() string {
	if s.DefaultSortingField != "" {
		return s.DefaultSortingField + ":desc"
	}
	for _, f := range s.Fields {
		if f.Index && f.IsNumeric() {
			return f.Name + ":desc"
		}
	}
	return ""
}
