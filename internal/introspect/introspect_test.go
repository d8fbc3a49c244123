package introspect

import (
	"context"
	"errors"
	"go/ast"
	"go/token"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/doctracer/internal/model"
)

const fixture = "testdata/acme"

func inspect(t *testing.T, opts Options) map[string]*model.ClassRecord {
	t.Helper()
	records, err := New(opts).Inspect(context.Background(), fixture)
	require.NoError(t, err)
	out := make(map[string]*model.ClassRecord, len(records))
	for _, r := range records {
		out[r.FullName] = r
	}
	return out
}

func memberNames(ms []*model.MemberRecord) []string {
	var out []string
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func TestInspect_Struct(t *testing.T) {
	got := inspect(t, Options{})

	acme := got["example.com/acme.Acme"]
	require.NotNil(t, acme)
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, "example.com/acme", acme.Namespace)
	assert.Equal(t, "acme.go", acme.File)
	assert.Equal(t, model.KindClass, acme.Kind)
	assert.Equal(t, "Acme greets people.", acme.Doc.Summary)
	assert.Equal(t, "It keeps a count.", acme.Doc.Description)
	assert.Equal(t, []string{"example.com/acme.Greeter"}, acme.Interfaces)

	assert.Equal(t, []string{"Base", "Name", "Count"}, memberNames(acme.Properties))
	base, _ := acme.Property("Base")
	assert.Equal(t, []string{"embedded"}, base.Modifiers)
	assert.Equal(t, "Base", base.Type)
	name, _ := acme.Property("Name")
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "Name is the display name.", name.Doc.Summary)
	count, _ := acme.Property("Count")
	assert.Equal(t, "Count of greetings.", count.Doc.Summary)

	assert.Equal(t, []string{"NewAcme", "Greet", "String", "Sum"}, memberNames(acme.Methods))
	ctor, _ := acme.Method("NewAcme")
	assert.Equal(t, []string{"static"}, ctor.Modifiers)
	assert.Equal(t, "*Acme", ctor.Type)

	sum, _ := acme.Method("Sum")
	want := []model.ParamRecord{
		{Name: "base", Type: "int"},
		{Name: "values", Type: "int", Variadic: true},
	}
	if diff := cmp.Diff(want, sum.Params); diff != "" {
		t.Errorf("Sum params mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "(total int, err error)", sum.Type)
	assert.Equal(t, "Sum adds values to base.", sum.Doc.Summary)
	assert.Positive(t, sum.Line)

	str, _ := acme.Method("String")
	assert.True(t, str.Doc.IsEmpty())
}

func TestInspect_InterfaceAndConstants(t *testing.T) {
	got := inspect(t, Options{})

	greeter := got["example.com/acme.Greeter"]
	require.NotNil(t, greeter)
	assert.Equal(t, model.KindInterface, greeter.Kind)
	assert.Equal(t, []string{"fmt.Stringer"}, greeter.Interfaces)
	require.Len(t, greeter.Methods, 1)
	greet := greeter.Methods[0]
	assert.Equal(t, []string{"abstract"}, greet.Modifiers)
	assert.Equal(t, "string", greet.Type)
	params := greet.Doc.Group("param")
	require.Len(t, params, 1)
	assert.Equal(t, &model.ParamTag{Type: "string", Variable: "name", Description: "who to greet", Raw: "string $name who to greet"}, params[0])

	level := got["example.com/acme.Level"]
	require.NotNil(t, level)
	require.Len(t, level.Constants, 2)
	assert.Equal(t, "Low", level.Constants[0].Name)
	assert.Equal(t, "Level", level.Constants[0].Type)
	assert.Equal(t, "0", level.Constants[0].Default)
	assert.Equal(t, "Low is the lowest level.", level.Constants[0].Doc.Summary)
	assert.Equal(t, "1", level.Constants[1].Default)
	assert.True(t, level.Constants[1].Doc.IsEmpty())

	special := got["example.com/acme.Special"]
	require.NotNil(t, special)
	assert.Equal(t, "example.com/acme.Level", special.Parent)
	assert.False(t, special.HasMembers())

	square := got["example.com/acme/shapes.Square"]
	require.NotNil(t, square)
	assert.Equal(t, "shapes/shapes.go", square.File)
	assert.Equal(t, []string{"example.com/acme/shapes.Shape"}, square.Interfaces)
	lvl, ok := square.Property("Level")
	require.True(t, ok)
	assert.Equal(t, "acme.Level", lvl.Type)

	assert.NotContains(t, got, "example.com/acme.hidden")
	assert.Contains(t, got, "example.com/acme.Old")
	assert.Contains(t, got, "example.com/acme/skipme.Skipped")
}

func TestInspect_Filters(t *testing.T) {
	got := inspect(t, Options{
		Exclude:           []string{"skipme"},
		ExcludeTypes:      []string{"base"},
		ExcludeDeprecated: true,
		ExcludeByTags:     ParseTagFilters("json:-"),
	})

	assert.NotContains(t, got, "example.com/acme/skipme.Skipped")
	assert.NotContains(t, got, "example.com/acme.Base")
	assert.NotContains(t, got, "example.com/acme.Old")
	acme := got["example.com/acme.Acme"]
	require.NotNil(t, acme)
	assert.Equal(t, []string{"Base", "Name"}, memberNames(acme.Properties))
}

func TestInspect_IncludeUnexported(t *testing.T) {
	got := inspect(t, Options{IncludeUnexported: true})

	hidden := got["example.com/acme.hidden"]
	require.NotNil(t, hidden)
	assert.Equal(t, []string{"unexported"}, hidden.Modifiers)

	acme := got["example.com/acme.Acme"]
	require.NotNil(t, acme)
	secret, ok := acme.Property("secret")
	require.True(t, ok)
	assert.Equal(t, []string{"unexported"}, secret.Modifiers)
}

func TestInspect_Errors(t *testing.T) {
	in := New(Options{})

	_, err := in.Inspect(context.Background(), filepath.Join(fixture, "missing"))
	assert.ErrorIs(t, err, ErrPathNotFound)

	_, err = in.Inspect(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoModule)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = in.Inspect(ctx, fixture)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestParseTagFilters(t *testing.T) {
	assert.Equal(t, []TagFilter{{Key: "json", Value: "-"}, {Key: "gorm", Value: "->"}},
		ParseTagFilters("json:-", "broken", "gorm:->"))
}

func TestOmitField(t *testing.T) {
	lit := func(tag string) *ast.BasicLit {
		return &ast.BasicLit{Kind: token.STRING, Value: strconv.Quote(tag)}
	}
	tests := []struct {
		name    string
		tag     *ast.BasicLit
		filters string
		want    bool
	}{
		{"no tag", nil, "json:-", false},
		{"match", lit(`json:"-"`), "json:-", true},
		{"other key", lit(`json:"-"`), "dto:-", false},
		{"part of list", lit(`gorm:"type:uuid;primary_key"`), "gorm:primary_key", true},
		{"escaped quote before match", lit(`json:"a\"b,omitempty" dto:"-"`), "dto:-", true},
		{"escaped quote in value", lit(`json:"a\"b,x"`), "json:x", true},
		{"bad literal", &ast.BasicLit{Kind: token.STRING, Value: "json"}, "json:-", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, omitField(tt.tag, ParseTagFilters(tt.filters)))
		})
	}
}

func TestComment(t *testing.T) {
	assert.Equal(t, "// One.\n//\n// Two.", comment("One.\n\nTwo.\n"))
	assert.Equal(t, "", comment("\n"))
	assert.Equal(t, "One.\n\nTwo.", uncomment(comment("One.\n\nTwo.")))
	assert.True(t, deprecated("Old.\n\nDeprecated: use New."))
	assert.False(t, deprecated("Not Deprecated: here."))
}
