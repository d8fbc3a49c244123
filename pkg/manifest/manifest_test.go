package manifest

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/doctracer/internal/docblock"
	"github.com/cmmoran/doctracer/internal/model"
)

const document = `
version: 1
classes:
  - namespace: Example
    name: Acme
    file: src/Acme.php
    modifiers: [final]
    doc: |
      /**
       * The Acme class.
       */
    constants:
      - name: VERSION
        default: "1.0"
      - name: LIST
        default: [1, 2]
      - name: NIL
        default: null
      - name: NONE
    properties:
      - name: priority
        type: "?int"
        default: 5
        default_printed: PRIORITY
      - name: label
        type: "string|null"
    methods:
      - name: hello
        modifiers: [public, static]
        doc: "/** @return string */"
        params:
          - name: name
            default: world
          - name: flag
            type: null|bool
            default: true
          - name: rest
            variadic: true
  - namespace: Example
    name: Greeter
    kind: interface
`

func TestParse_Records(t *testing.T) {
	m, err := Parse([]byte(document))
	require.NoError(t, err)
	records, err := m.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)

	acme := records[0]
	assert.Equal(t, `Example\Acme`, acme.FullName)
	assert.Equal(t, model.KindClass, acme.Kind)
	assert.Equal(t, "The Acme class.", acme.Doc.Summary)
	assert.Equal(t, []string{"final"}, acme.Modifiers)

	defaults := map[string]string{}
	for _, c := range acme.Constants {
		defaults[c.Name] = c.Default
	}
	assert.Equal(t, map[string]string{
		"VERSION": "'1.0'",
		"LIST":    "[1, 2]",
		"NIL":     "null",
		"NONE":    "",
	}, defaults)

	prio, ok := acme.Property("priority")
	require.True(t, ok)
	assert.Equal(t, "PRIORITY", prio.Default, "printed form wins")
	assert.Equal(t, "?int", prio.Type)
	label, ok := acme.Property("label")
	require.True(t, ok)
	assert.Equal(t, "?string", label.Type, "null member folds into the prefix")

	hello, ok := acme.Method("hello")
	require.True(t, ok)
	want := []model.ParamRecord{
		{Name: "name", Default: "'world'"},
		{Name: "flag", Type: "?bool", Default: "true"},
		{Name: "rest", Variadic: true},
	}
	if diff := cmp.Diff(want, hello.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, hello.Doc.Group("return"), 1)

	assert.Equal(t, model.KindInterface, records[1].Kind)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "classes: ["},
		{"future version", "version: 99\nclasses: []"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}

	records := []struct {
		name string
		doc  string
	}{
		{"missing class name", "classes: [{namespace: X}]"},
		{"unknown kind", "classes: [{name: A, kind: enum}]"},
		{"unnamed member", "classes: [{name: A, methods: [{type: int}]}]"},
	}
	for _, tt := range records {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			_, err = m.Records()
			assert.Error(t, err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Version, m.Version)
	assert.Empty(t, m.Classes)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	raw := "/**\n * Say hello.\n *\n * @param string $name who\n */"
	records := []*model.ClassRecord{
		{
			Name: "Acme", FullName: `Example\Acme`, Namespace: "Example", File: "src/Acme.php",
			Kind: model.KindTrait, Parent: `Example\Base`, Interfaces: []string{"Countable"},
			Constants: []*model.MemberRecord{
				{Kind: model.MemberConstant, Name: "NIL", Default: "null", Line: 3},
			},
			Methods: []*model.MemberRecord{
				{
					Kind: model.MemberMethod, Name: "hello", Modifiers: []string{"public"}, Type: "string",
					DocComment: raw, Doc: docblock.Parse(raw), Line: 9,
					Params: []model.ParamRecord{{Name: "name", Type: "string", Default: "'world'", ByRef: true}},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "manifest.yaml")
	require.NoError(t, FromRecords(records).Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	got, err := loaded.Records()
	require.NoError(t, err)

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_OmitsEmpty(t *testing.T) {
	var buf bytes.Buffer
	m := FromRecords([]*model.ClassRecord{{Name: "A", FullName: "A", Kind: model.KindClass}})
	require.NoError(t, m.Write(&buf))
	out := buf.String()
	assert.Contains(t, out, "version: 1\n")
	assert.Contains(t, out, "kind: class\n")
	for _, key := range []string{"constants:", "properties:", "methods:", "default", "modifiers:", "doc:"} {
		assert.NotContains(t, out, key)
	}
}
