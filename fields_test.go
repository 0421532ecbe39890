package tableopts_test

import (
	"reflect"
	"testing"

	"github.com/reoring/tableopts"
)

func field(name, typ string, extra ...any) *tableopts.Value {
	kv := append([]any{"name", tableopts.String(name), "type", tableopts.String(typ)}, extra...)
	return obj(kv...)
}

func TestDecodeFields_OrderAndDefaults(t *testing.T) {
	got, err := tableopts.DecodeFields(tableopts.Array(
		field("id", "int64", "nullable", tableopts.Bool(false)),
		field("name", "string"),
		field("score", "DOUBLE", "comment", tableopts.String("ignored")),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []tableopts.Field{
		{Name: "id", Type: tableopts.TypeInt64, Nullable: false},
		{Name: "name", Type: tableopts.TypeUtf8, Nullable: true},
		{Name: "score", Type: tableopts.TypeFloat64, Nullable: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %+v\nwant %+v", got, want)
	}
}

func TestDecodeFields_Nested(t *testing.T) {
	got, err := tableopts.DecodeFields(tableopts.Array(
		field("tags", "list", "children", tableopts.Array(field("item", "utf8"))),
		field("point", "struct", "children", tableopts.Array(field("x", "float64"), field("y", "float64"))),
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || len(got[0].Children) != 1 || len(got[1].Children) != 2 {
		t.Fatalf("unexpected nesting: %+v", got)
	}
	if got[1].Children[1].Name != "y" {
		t.Fatalf("child order lost: %+v", got[1].Children)
	}
}

func TestDecodeFields_EmptyArray(t *testing.T) {
	got, err := tableopts.DecodeFields(tableopts.Array())
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestDecodeFields_Errors(t *testing.T) {
	tests := []struct {
		name string
		arr  *tableopts.Value
		code string
		path string
		msg  string
	}{
		{
			"element not object", tableopts.Array(tableopts.String("id")),
			tableopts.CodeInvalidType, "/fields/0",
			"type mismatch for field 'fields[0]': expected object, received string",
		},
		{
			"name not string", tableopts.Array(obj("name", tableopts.Number("1"), "type", tableopts.String("int32"))),
			tableopts.CodeInvalidType, "/fields/0/name",
			"type mismatch for field 'fields[0].name': expected string, received number",
		},
		{
			"missing name", tableopts.Array(field("a", "int32"), obj("type", tableopts.String("int32"))),
			tableopts.CodeRequired, "/fields/1/name",
			"missing required field 'fields[1].name'",
		},
		{
			"missing type", tableopts.Array(obj("name", tableopts.String("a"))),
			tableopts.CodeRequired, "/fields/0/type",
			"missing required field 'fields[0].type'",
		},
		{
			"unknown type", tableopts.Array(field("a", "varchar")),
			tableopts.CodeInvalidEnum, "/fields/0/type",
			"unknown data type 'varchar' for field 'fields[0].type'",
		},
		{
			"nullable not boolean", tableopts.Array(field("a", "int32", "nullable", tableopts.String("no"))),
			tableopts.CodeInvalidType, "/fields/0/nullable",
			"type mismatch for field 'fields[0].nullable': expected boolean, received string",
		},
		{
			"children on scalar", tableopts.Array(field("a", "int32", "children", tableopts.Array())),
			tableopts.CodeInvalidValue, "/fields/0/children",
			"field 'fields[0].children' is only allowed for list and struct types, got int32",
		},
		{
			"list arity", tableopts.Array(field("a", "list", "children", tableopts.Array(field("x", "int8"), field("y", "int8")))),
			tableopts.CodeInvalidValue, "/fields/0/children",
			"field 'fields[0].children' of a list must hold exactly one element type, got 2",
		},
		{
			"struct without members", tableopts.Array(field("a", "struct")),
			tableopts.CodeInvalidValue, "/fields/0/children",
			"field 'fields[0].children' of a struct must hold at least one member",
		},
		{
			"nested child error", tableopts.Array(field("a", "list", "children", tableopts.Array(field("x", "nope")))),
			tableopts.CodeInvalidEnum, "/fields/0/children/0/type",
			"unknown data type 'nope' for field 'fields[0].children[0].type'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tableopts.DecodeFields(tt.arr)
			is, ok := tableopts.AsIssue(err)
			if !ok {
				t.Fatalf("expected *Issue, got %v", err)
			}
			if is.Code != tt.code || is.Path != tt.path || is.Message != tt.msg {
				t.Fatalf("issue = {%s %s %q}\nwant  {%s %s %q}", is.Code, is.Path, is.Message, tt.code, tt.path, tt.msg)
			}
		})
	}
}

func TestParseDataType(t *testing.T) {
	for in, want := range map[string]tableopts.DataType{
		"int32": tableopts.TypeInt32, "INTEGER": tableopts.TypeInt32, "Boolean": tableopts.TypeBool,
		"text": tableopts.TypeUtf8, "bigint": tableopts.TypeInt64, "timestamp": tableopts.TypeTimestamp,
	} {
		got, ok := tableopts.ParseDataType(in)
		if !ok || got != want {
			t.Errorf("ParseDataType(%q) = %q, %v", in, got, ok)
		}
	}
	if _, ok := tableopts.ParseDataType("decimal(10,2)"); ok {
		t.Errorf("decimal should be rejected")
	}
	if !tableopts.TypeList.Nested() || tableopts.TypeUtf8.Nested() {
		t.Errorf("Nested() mismatch")
	}
}
