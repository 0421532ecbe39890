package tableopts_test

import (
	"strings"
	"testing"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/source/gojson"
)

// withDrivers runs fn once per JSON driver.
func withDrivers(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, d := range []tableopts.JSONDriver{nil, gojson.Driver()} {
		name := "encoding/json"
		if d != nil {
			name = d.Name()
		}
		t.Run(name, func(t *testing.T) {
			if d != nil {
				tableopts.SetJSONDriver(d)
				defer tableopts.UseDefaultJSONDriver()
			}
			fn(t)
		})
	}
}

func TestParseDocument_KeepsOrderAndDuplicates(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		doc, err := tableopts.ParseDocument(tableopts.JSONBytes([]byte(`{"b":1,"a":[true,null,"x"],"b":{"c":-2.5}}`)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ms := doc.Members()
		if len(ms) != 3 || ms[0].Key != "b" || ms[1].Key != "a" || ms[2].Key != "b" {
			t.Fatalf("members = %+v", ms)
		}
		if ms[0].Value.Kind() != tableopts.KindNumber || ms[0].Value.Text() != "1" {
			t.Fatalf("first b = %v %q", ms[0].Value.Kind(), ms[0].Value.Text())
		}
		elems := ms[1].Value.Elements()
		if len(elems) != 3 || elems[0].Kind() != tableopts.KindTrue || elems[1].Kind() != tableopts.KindNull || elems[2].Text() != "x" {
			t.Fatalf("array = %+v", elems)
		}
		last, ok := doc.Get("b")
		if !ok || last.Kind() != tableopts.KindObject {
			t.Fatalf("Get should return the last b, got %v", last)
		}
		c := last.Members()[0].Value
		if c.Text() != "-2.5" {
			t.Fatalf("number text = %q", c.Text())
		}
	})
}

func TestDecodeBytes_Properties(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		for _, in := range []string{`[]`, `"s"`, `3`, `true`, `null`} {
			got, err := tableopts.DecodeBytes([]byte(in))
			if err != nil || got.SchemaName != nil || got.TableName != nil || got.Fields != nil {
				t.Fatalf("%s: got %+v, %v", in, got, err)
			}
		}

		got, err := tableopts.DecodeBytes([]byte(`{"schema": "main", "name": "t1"}`))
		if err != nil || got.QualifiedName("") != "main.t1" || len(got.Fields) != 0 {
			t.Fatalf("got %+v, %v", got, err)
		}

		_, err = tableopts.DecodeBytes([]byte(`{"schema": 42}`))
		if err == nil || err.Error() != "type mismatch for field 'schema': expected string, received number" {
			t.Fatalf("err = %v", err)
		}

		_, err = tableopts.DecodeBytes([]byte(`{"fields": "not-an-array"}`))
		if err == nil || err.Error() != "type mismatch for field 'fields': expected array, received string" {
			t.Fatalf("err = %v", err)
		}

		got, err = tableopts.DecodeBytes([]byte(`{"unknownKey": true, "name": "orders"}`))
		if n, _ := got.Table(); err != nil || n != "orders" {
			t.Fatalf("got %+v, %v", got, err)
		}

		got, err = tableopts.DecodeBytes([]byte(`{"name": "a", "name": "b"}`))
		if n, _ := got.Table(); err != nil || n != "b" {
			t.Fatalf("got %+v, %v", got, err)
		}

		got, err = tableopts.DecodeBytes([]byte(`{"name":"t","fields":[{"name":"id","type":"int32"},{"name":"v","type":"utf8","nullable":false}]}`))
		if err != nil || len(got.Fields) != 2 || got.Fields[1].Nullable {
			t.Fatalf("got %+v, %v", got, err)
		}
	})
}

func TestParseDocument_Malformed(t *testing.T) {
	withDrivers(t, func(t *testing.T) {
		for _, in := range []string{``, `   `, `{"name":`, `[1,2`, `{} {}`} {
			_, err := tableopts.ParseDocument(tableopts.JSONBytes([]byte(in)))
			is, ok := tableopts.AsIssue(err)
			if !ok || is.Code != tableopts.CodeParseError {
				t.Errorf("%q: expected parse_error, got %v", in, err)
			}
		}
	})
}

func TestParseDocument_SyntaxErrors(t *testing.T) {
	for _, in := range []string{`{"name" "x"}`, `{"a":1}x`, `{"a":tru}`} {
		_, err := tableopts.ParseDocument(tableopts.JSONBytes([]byte(in)))
		is, ok := tableopts.AsIssue(err)
		if !ok || is.Code != tableopts.CodeParseError {
			t.Errorf("%q: expected parse_error, got %v", in, err)
		}
		if is != nil && is.Cause == nil {
			t.Errorf("%q: tokenizer error should be kept as cause", in)
		}
	}
}

func TestParseDocument_DuplicatePolicy(t *testing.T) {
	in := []byte(`{"name":"a","fields":[{"name":"x","type":"int8","name":"y"}],"name":"b"}`)

	_, err := tableopts.ParseDocument(tableopts.JSONBytes(in), tableopts.ParseOpt{Strictness: tableopts.Strictness{OnDuplicateKey: tableopts.Error}})
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeDuplicateKey || is.Path != "/fields/0/name" {
		t.Fatalf("expected nested duplicate_key first, got %v (%+v)", err, is)
	}

	var warnings []tableopts.Issue
	doc, err := tableopts.ParseDocumentWith(tableopts.JSONBytes(in),
		tableopts.ParseOpt{Strictness: tableopts.Strictness{OnDuplicateKey: tableopts.Warn}},
		func(is tableopts.Issue) { warnings = append(warnings, is) })
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(warnings) != 2 || warnings[0].Path != "/fields/0/name" || warnings[1].Path != "/name" {
		t.Fatalf("warnings = %+v", warnings)
	}
	opts, err := tableopts.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n, _ := opts.Table(); n != "b" || opts.Fields[0].Name != "y" {
		t.Fatalf("last occurrence should win: %+v", opts)
	}
}

func TestParseDocument_MaxDepth(t *testing.T) {
	opt := tableopts.ParseOpt{MaxDepth: 2}
	if _, err := tableopts.ParseDocument(tableopts.JSONBytes([]byte(`{"fields":[]}`)), opt); err != nil {
		t.Fatalf("depth 2 should pass: %v", err)
	}
	_, err := tableopts.ParseDocument(tableopts.JSONBytes([]byte(`{"fields":[{"name":"a"}]}`)), opt)
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeParseError || is.Path != "/fields/0" {
		t.Fatalf("expected depth error at /fields/0, got %v (%+v)", err, is)
	}
}

func TestDecodeReader_MaxBytes(t *testing.T) {
	in := `{"name":"` + strings.Repeat("x", 64) + `"}`
	_, err := tableopts.DecodeReader(strings.NewReader(in), tableopts.ParseOpt{MaxBytes: 16})
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeTruncated {
		t.Fatalf("expected truncated, got %v", err)
	}
	got, err := tableopts.DecodeReader(strings.NewReader(in), tableopts.ParseOpt{MaxBytes: 1024})
	if err != nil || len(*got.TableName) != 64 {
		t.Fatalf("got %+v, %v", got, err)
	}
	got, err = tableopts.DecodeReader(strings.NewReader(`{"schema":"s"}`))
	if s, _ := got.Schema(); err != nil || s != "s" {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestSetJSONDriver_NilIgnored(t *testing.T) {
	before := tableopts.CurrentJSONDriver().Name()
	tableopts.SetJSONDriver(nil)
	if got := tableopts.CurrentJSONDriver().Name(); got != before {
		t.Fatalf("driver changed to %q", got)
	}
}
