package schema

import "testing"

func TestQueryFields(t *testing.T) {
	s := Schema{
		Name: "products",
		Fields: []Field{
			{Name: "title", Type: TypeString, Index: true},
			{Name: "tags", Type: TypeStringArray, Index: true},
			{Name: "hidden", Type: TypeString, Index: false},
			{Name: "rating", Type: TypeFloat, Index: true},
			{Name: "active", Type: TypeBool, Index: true},
		},
	}

	got := s.QueryFields()
	want := []string{"title", "tags"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestQueryFields_NoneIndexed(t *testing.T) {
	s := Schema{Fields: []Field{{Name: "title", Type: TypeString, Index: false}}}
	if got := s.QueryFields(); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDefaultSort_DeclaredField(t *testing.T) {
	s := Schema{
		DefaultSortingField: "popularity",
		Fields: []Field{
			{Name: "rating", Type: TypeFloat, Index: true},
		},
	}
	if got := s.DefaultSort(); got != "popularity:desc" {
		t.Errorf("expected popularity:desc, got %q", got)
	}
}

func TestDefaultSort_FirstIndexedNumeric(t *testing.T) {
	s := Schema{
		Fields: []Field{
			{Name: "title", Type: TypeString, Index: true},
			{Name: "views", Type: TypeInt64, Index: true},
			{Name: "rating", Type: TypeFloat, Index: true},
		},
	}
	if got := s.DefaultSort(); got != "views:desc" {
		t.Errorf("expected views:desc, got %q", got)
	}
}

func TestDefaultSort_NoCandidate(t *testing.T) {
	s := Schema{
		Fields: []Field{
			{Name: "title", Type: TypeString, Index: true},
			{Name: "count", Type: TypeInt32, Index: false},
		},
	}
	if got := s.DefaultSort(); got != "" {
		t.Errorf("expected empty sort, got %q", got)
	}
}

func TestFieldKinds(t *testing.T) {
	if !(Field{Type: TypeString}).IsTextual() || !(Field{Type: TypeStringArray}).IsTextual() {
		t.Error("string kinds must be textual")
	}
	if (Field{Type: TypeBool}).IsTextual() {
		t.Error("bool is not textual")
	}
	for _, ty := range []string{TypeInt32, TypeInt64, TypeFloat} {
		if !(Field{Type: ty}).IsNumeric() {
			t.Errorf("%s must be numeric", ty)
		}
	}
	if (Field{Type: TypeString}).IsNumeric() {
		t.Error("string is not numeric")
	}
}
