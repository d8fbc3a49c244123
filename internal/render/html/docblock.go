// Package html renders a laid-out report as a single HTML page.
package html

import (
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"

	"github.com/cmmoran/doctracer/internal/model"
	"github.com/cmmoran/doctracer/internal/render"
)

var docblockTmpl = template.Must(template.New("docblock").Parse(docblockTemplate))

type column struct {
	Class string
	Text  string
	Types []string // set on type columns; rendered as "|"-separated spans
}

type tagRow struct {
	Name    string
	Columns []column
}

type tagTable struct {
	Kind string
	Rows []tagRow
}

type docView struct {
	Summary        safehtml.HTML
	Description    safehtml.HTML
	HasDescription bool
	Tables         []tagTable
}

// FormatDocBlock renders doc: summary and description through markdown,
// then one table per tag kind. markdown must return sanitized HTML.
func FormatDocBlock(doc model.DocBlock, markdown render.MarkdownFunc) safehtml.HTML {
	if markdown == nil {
		markdown = render.Markdown
	}
	v := docView{
		Summary:        trusted(markdown(doc.Summary)),
		Description:    trusted(markdown(doc.Description)),
		HasDescription: doc.Description != "",
	}
	for _, g := range doc.Tags {
		tt := tagTable{Kind: g.Kind}
		for _, tag := range g.Tags {
			tt.Rows = append(tt.Rows, tagRow{Name: tag.Name(), Columns: tagColumns(tag)})
		}
		v.Tables = append(v.Tables, tt)
	}
	h, err := docblockTmpl.ExecuteToHTML(v)
	if err != nil {
		return safehtml.HTMLEscaped(doc.Summary)
	}
	return h
}

// tagColumns picks the column set from the tag variant.
func tagColumns(tag model.DocTag) []column {
	switch t := tag.(type) {
	case *model.ParamTag:
		variable := ""
		if t.Variable != "" {
			variable = "$" + t.Variable
		}
		return []column{
			typeColumn(t.Type),
			{Class: "dt-doc-tag-variable", Text: variable},
			{Class: "dt-doc-tag-description", Text: t.Description},
		}
	case *model.TypedTag:
		return []column{
			typeColumn(t.Type),
			{Class: "dt-doc-tag-description", Text: t.Description},
		}
	}
	return []column{{Class: "dt-doc-tag-render", Text: tag.Text()}}
}

func typeColumn(typ string) column {
	c := column{Class: "dt-doc-tag-type"}
	if c.Types = model.UnionMembers(typ); len(c.Types) > 0 && strings.HasPrefix(strings.TrimSpace(typ), "?") {
		c.Types[0] = "?" + c.Types[0]
	}
	return c
}

// trusted wraps output of the sanitizing markdown function.
func trusted(s string) safehtml.HTML {
	return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(s)
}
