package yamldoc_test

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/reoring/tableopts"
	"github.com/reoring/tableopts/source/yamldoc"
)

const ordersYAML = `
schema: main
name: orders
fields:
  - name: id
    type: int64
    nullable: false
  - name: tags
    type: list
    children:
      - {name: item, type: utf8}
`

func TestDecode_MatchesJSON(t *testing.T) {
	fromYAML, err := yamldoc.Decode(nil, []byte(ordersYAML))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromJSON, err := tableopts.DecodeBytes([]byte(`{"schema":"main","name":"orders","fields":[
		{"name":"id","type":"int64","nullable":false},
		{"name":"tags","type":"list","children":[{"name":"item","type":"utf8"}]}]}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if !reflect.DeepEqual(fromYAML, fromJSON) {
		t.Fatalf("yaml %+v\njson %+v", fromYAML, fromJSON)
	}
}

func TestParse_ScalarTags(t *testing.T) {
	doc, err := yamldoc.Parse([]byte("a: 12\nb: 1.5\nc: true\nd: ~\ne: \"12\"\nf: plain\ng: False\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]tableopts.Kind{
		"a": tableopts.KindNumber, "b": tableopts.KindNumber, "c": tableopts.KindTrue,
		"d": tableopts.KindNull, "e": tableopts.KindString, "f": tableopts.KindString,
		"g": tableopts.KindFalse,
	}
	for k, kind := range want {
		v, ok := doc.Get(k)
		if !ok || v.Kind() != kind {
			t.Errorf("%s: kind = %v, want %v", k, v.Kind(), kind)
		}
	}
}

func TestParse_KeepsOrderAndDuplicates(t *testing.T) {
	doc, err := yamldoc.Parse([]byte("name: a\nschema: s\nname: b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var keys []string
	for _, m := range doc.Members() {
		keys = append(keys, m.Key)
	}
	if strings.Join(keys, ",") != "name,schema,name" {
		t.Fatalf("keys = %v", keys)
	}
	opts, err := tableopts.Decode(doc)
	if n, _ := opts.Table(); err != nil || n != "b" {
		t.Fatalf("got %+v, %v", opts, err)
	}
}

func TestParse_StrictDuplicate(t *testing.T) {
	_, err := yamldoc.Parse([]byte("fields:\n  - name: a\n    name: b\n"), yamldoc.Strict())
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeDuplicateKey || is.Path != "/fields/0/name" {
		t.Fatalf("err = %v", err)
	}
	var de *yamldoc.DuplicateKeyError
	if !errors.As(err, &de) {
		t.Fatalf("expected DuplicateKeyError in chain")
	}
	if de.Key != "name" || de.FirstLine != 2 || de.Line != 3 {
		t.Fatalf("positions = %+v", de)
	}
}

func TestParse_WarnDuplicates(t *testing.T) {
	var got []tableopts.Issue
	doc, err := yamldoc.Parse([]byte("name: a\nname: b\nname: c\n"), yamldoc.WarnDuplicates(func(is tableopts.Issue) {
		got = append(got, is)
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Members()) != 3 || len(got) != 2 || got[0].Path != "/name" {
		t.Fatalf("members = %d, warnings = %+v", len(doc.Members()), got)
	}
}

func TestParse_MaxDepth(t *testing.T) {
	in := []byte("fields:\n  - name: a\n    type: int8\n")
	if _, err := yamldoc.Parse(in, yamldoc.MaxDepth(3)); err != nil {
		t.Fatalf("depth 3 should pass: %v", err)
	}
	_, err := yamldoc.Parse(in, yamldoc.MaxDepth(2))
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeParseError || is.Path != "/fields/0" {
		t.Fatalf("err = %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":   "",
		"syntax":  "name: [unterminated\n",
		"complex": "? [a, b]\n: 1\n",
	} {
		_, err := yamldoc.Parse([]byte(in))
		is, ok := tableopts.AsIssue(err)
		if !ok || is.Code != tableopts.CodeParseError {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestReader_ReadAll(t *testing.T) {
	docs, err := yamldoc.NewReader(strings.NewReader("name: a\n---\nname: b\n---\n- 1\n")).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %d", len(docs))
	}
	if docs[2].Kind() != tableopts.KindArray {
		t.Fatalf("third doc kind = %v", docs[2].Kind())
	}
	opts, err := tableopts.Decode(docs[2])
	if err != nil || opts.TableName != nil {
		t.Fatalf("non-object document should decode empty: %+v, %v", opts, err)
	}
}

func TestParse_Alias(t *testing.T) {
	doc, err := yamldoc.Parse([]byte("base: &b orders\nname: *b\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := tableopts.Decode(doc)
	if n, _ := opts.Table(); err != nil || n != "orders" {
		t.Fatalf("got %+v, %v", opts, err)
	}
}

func TestParse_AliasedContainers(t *testing.T) {
	in := "col: &c {name: id, type: int64}\nname: t\nfields: [*c, {name: v, type: utf8}]\n"
	opts, err := yamldoc.Decode(nil, []byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Fields) != 2 || opts.Fields[0].Name != "id" || opts.Fields[0].Type != tableopts.TypeInt64 {
		t.Fatalf("fields = %+v", opts.Fields)
	}
}

func TestParse_RecursiveAlias(t *testing.T) {
	for _, in := range []string{
		"name: &x [*x]\n",
		"a: &m {b: {c: *m}}\n",
	} {
		done := make(chan error, 1)
		go func() {
			_, err := yamldoc.Parse([]byte(in))
			done <- err
		}()
		select {
		case err := <-done:
			is, ok := tableopts.AsIssue(err)
			if !ok || is.Code != tableopts.CodeParseError || !strings.Contains(is.Message, "recursive alias") {
				t.Fatalf("%q: err = %v", in, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("%q: parse did not return", in)
		}
	}
}

// nestedAliases builds levels of lists that each repeat the previous list
// ten times, so the expanded size grows tenfold per level.
func nestedAliases(levels int) []byte {
	var b strings.Builder
	b.WriteString("a0: &a0 [x, x, x, x, x, x, x, x, x, x]\n")
	for i := 1; i <= levels; i++ {
		refs := strings.TrimSuffix(strings.Repeat(fmt.Sprintf("*a%d, ", i-1), 10), ", ")
		fmt.Fprintf(&b, "a%d: &a%d [%s]\n", i, i, refs)
	}
	return []byte(b.String())
}

func TestParse_AliasExpansionLimit(t *testing.T) {
	start := time.Now()
	_, err := yamldoc.Parse(nestedAliases(6))
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeParseError || is.Message != "alias expansion limit exceeded" {
		t.Fatalf("err = %v", err)
	}
	if d := time.Since(start); d > 2*time.Second {
		t.Fatalf("rejecting took %v", d)
	}

	// One level expands to 110 nodes, inside the default budget.
	if _, err := yamldoc.Parse(nestedAliases(1)); err != nil {
		t.Fatalf("small expansion rejected: %v", err)
	}
	if _, err := yamldoc.Parse(nestedAliases(1), yamldoc.MaxAliasNodes(50)); err == nil {
		t.Fatalf("expected the explicit budget to apply")
	}
}

func TestParse_ExplicitBoolTag(t *testing.T) {
	doc, err := yamldoc.Parse([]byte("a: !!bool yes\nb: !!bool Off\nc: !!bool TRUE\nd: yes\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]tableopts.Kind{
		"a": tableopts.KindTrue, "b": tableopts.KindFalse, "c": tableopts.KindTrue,
		"d": tableopts.KindString,
	}
	for k, kind := range want {
		if v, _ := doc.Get(k); v.Kind() != kind {
			t.Errorf("%s: kind = %v, want %v", k, v.Kind(), kind)
		}
	}

	_, err = yamldoc.Parse([]byte("nullable: !!bool maybe\n"))
	is, ok := tableopts.AsIssue(err)
	if !ok || is.Code != tableopts.CodeParseError || is.Path != "/nullable" {
		t.Fatalf("err = %v", err)
	}
}
