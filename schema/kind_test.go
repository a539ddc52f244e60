package schema

import (
	"strings"
	"testing"

	"github.com/schemaforge/tsgen/errdefs"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		s    *Schema
		want Kind
	}{
		{
			name: "allOf wins over declared type",
			s:    &Schema{AllOf: []*Schema{{}}, Type: TypeList{"object"}},
			want: KindAllOf,
		},
		{
			name: "oneOf before anyOf",
			s:    &Schema{OneOf: []*Schema{{}}, AnyOf: []*Schema{{}}},
			want: KindOneOf,
		},
		{
			name: "anyOf",
			s:    &Schema{AnyOf: []*Schema{{}}},
			want: KindAnyOf,
		},
		{
			name: "reference marker",
			s:    &Schema{Ref: "#/definitions/x", Type: TypeList{"string"}},
			want: KindRef,
		},
		{
			name: "custom type text",
			s:    &Schema{TSType: "Date", Type: TypeList{"string"}},
			want: KindCustom,
		},
		{
			name: "list items",
			s:    &Schema{Items: &Items{Single: &Schema{}}},
			want: KindList,
		},
		{
			name: "tuple items",
			s:    &Schema{Items: &Items{Tuple: []*Schema{{}}}},
			want: KindTuple,
		},
		{
			name: "enum",
			s:    &Schema{Enum: []any{"a"}, Type: TypeList{"string"}},
			want: KindEnum,
		},
		{
			name: "boolean",
			s:    &Schema{Type: TypeList{"boolean"}},
			want: KindBoolean,
		},
		{
			name: "null",
			s:    &Schema{Type: TypeList{"null"}},
			want: KindNull,
		},
		{
			name: "number",
			s:    &Schema{Type: TypeList{"number"}},
			want: KindNumber,
		},
		{
			name: "integer classifies as number",
			s:    &Schema{Type: TypeList{"integer"}},
			want: KindNumber,
		},
		{
			name: "string",
			s:    &Schema{Type: TypeList{"string"}},
			want: KindString,
		},
		{
			name: "nullable pair classifies by the non-null entry",
			s:    &Schema{Type: TypeList{"string", "null"}},
			want: KindString,
		},
		{
			name: "null-first pair",
			s:    &Schema{Type: TypeList{"null", "number"}},
			want: KindNumber,
		},
		{
			name: "bare array type is an unbounded list",
			s:    &Schema{Type: TypeList{"array"}},
			want: KindList,
		},
		{
			name: "object with title",
			s:    &Schema{Type: TypeList{"object"}, Title: "T"},
			want: KindNamedObject,
		},
		{
			name: "object without naming hint",
			s:    &Schema{Type: TypeList{"object"}},
			want: KindUnnamedObject,
		},
		{
			name: "any type",
			s:    &Schema{Type: TypeList{"any"}},
			want: KindAny,
		},
		{
			name: "untyped with properties",
			s:    &Schema{Properties: map[string]*Schema{"a": {}}},
			want: KindUnnamedObject,
		},
		{
			name: "untyped with id",
			s:    &Schema{ID: "thing.json"},
			want: KindNamedObject,
		},
		{
			name: "empty schema is unconstrained",
			s:    &Schema{},
			want: KindAny,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeOf(tt.s)
			if err != nil {
				t.Fatalf("TypeOf() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TypeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeOf_Errors(t *testing.T) {
	tests := []struct {
		name    string
		s       *Schema
		wantMsg string
	}{
		{
			name:    "explicitly empty type array",
			s:       &Schema{Type: TypeList{}},
			wantMsg: "empty type array",
		},
		{
			name:    "two non-null entries",
			s:       &Schema{Type: TypeList{"string", "number"}},
			wantMsg: "must pair null",
		},
		{
			name:    "doubled null",
			s:       &Schema{Type: TypeList{"null", "null"}},
			wantMsg: "must pair null",
		},
		{
			name:    "more than two entries",
			s:       &Schema{Type: TypeList{"string", "number", "null"}},
			wantMsg: "more than two",
		},
		{
			name:    "unrecognized type",
			s:       &Schema{Type: TypeList{"frog"}},
			wantMsg: "unsupported type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TypeOf(tt.s)
			if err == nil {
				t.Fatal("TypeOf() succeeded, want error")
			}
			if !errdefs.IsShape(err) {
				t.Errorf("error = %v, want shape error", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q missing %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestIsNullable(t *testing.T) {
	tests := []struct {
		name string
		s    *Schema
		want bool
	}{
		{"string with null", &Schema{Type: TypeList{"string", "null"}}, true},
		{"null first", &Schema{Type: TypeList{"null", "number"}}, true},
		{"bare null is not nullable", &Schema{Type: TypeList{"null"}}, false},
		{"single type", &Schema{Type: TypeList{"string"}}, false},
		{"doubled null", &Schema{Type: TypeList{"null", "null"}}, false},
		{"no type", &Schema{}, false},
	}
	for _, tt := range tests {
		if got := tt.s.IsNullable(); got != tt.want {
			t.Errorf("%s: IsNullable() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNonNullType(t *testing.T) {
	tests := []struct {
		s    *Schema
		want string
	}{
		{&Schema{Type: TypeList{"null", "string"}}, "string"},
		{&Schema{Type: TypeList{"number"}}, "number"},
		{&Schema{Type: TypeList{"null"}}, ""},
		{&Schema{}, ""},
	}
	for _, tt := range tests {
		if got := tt.s.NonNullType(); got != tt.want {
			t.Errorf("NonNullType(%v) = %q, want %q", tt.s.Type, got, tt.want)
		}
	}
}
