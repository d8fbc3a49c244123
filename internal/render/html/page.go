package html

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/template"

	"github.com/cmmoran/doctracer/internal/catalog"
	"github.com/cmmoran/doctracer/internal/layout"
	"github.com/cmmoran/doctracer/internal/model"
	"github.com/cmmoran/doctracer/internal/render"
)

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// Renderer writes a catalog snapshot as one HTML page.
type Renderer struct {
	settings render.Settings
	markdown render.MarkdownFunc
	logger   *slog.Logger
}

type RendererOption func(*Renderer)

// WithMarkdown replaces the markdown function. fn must return sanitized HTML.
func WithMarkdown(fn render.MarkdownFunc) RendererOption {
	return func(r *Renderer) {
		r.markdown = fn
	}
}

func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = l
	}
}

func NewRenderer(s render.Settings, opts ...RendererOption) *Renderer {
	r := &Renderer{settings: s, markdown: render.Markdown, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// FormatDocBlock is FormatDocBlock with the renderer's markdown function.
func (r *Renderer) FormatDocBlock(doc model.DocBlock) safehtml.HTML {
	return FormatDocBlock(doc, r.markdown)
}

type paramView struct {
	Name    string
	Type    string
	Default string
	Last    bool
}

type memberView struct {
	Kind      string
	Name      string
	Modifiers string
	Type      string
	Default   string
	Params    []paramView
}

type classView struct {
	Name       string
	File       string
	Kind       string
	Modifiers  string
	Parent     string
	Interfaces string
}

type cellView struct {
	Kind     string
	Role     string
	RowSpan  int
	ColSpan  int
	Text     string
	Anchor   safehtml.Identifier
	Title    string // symbol path behind Anchor
	Class    *classView
	Member   *memberView
	Doc      safehtml.HTML
	DocEmpty bool
}

type rowView struct {
	Class string
	Cells []cellView
}

type pageView struct {
	Title   string
	Tagline string
	Footer  string
	Counts  string
	Version string
	Created string
	Rows    []rowView
}

// Render lays out snap and writes the page to w.
func (r *Renderer) Render(w io.Writer, snap catalog.Snapshot) error {
	table := layout.Build(snap, r.FormatDocBlock)
	if err := table.Verify(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	v := pageView{
		Title:   r.settings.Title,
		Tagline: r.settings.Tagline,
		Footer:  r.settings.FooterText(),
		Counts:  render.Counts(table.Stats),
		Version: r.settings.Version,
		Created: r.settings.CreatedText(),
		Rows:    make([]rowView, 0, table.Len()),
	}
	ids := anchors{}
	for _, row := range table.Rows {
		v.Rows = append(v.Rows, newRowView(row, ids))
	}
	r.logger.Debug("rendering html", "rows", table.Len(), "classes", table.Stats.Classes)
	if err := pageTmpl.Execute(w, v); err != nil {
		return fmt.Errorf("execute page template: %w", err)
	}
	return nil
}

func newRowView(row layout.Row[safehtml.HTML], ids anchors) rowView {
	rv := rowView{Cells: make([]cellView, 0, len(row.Cells))}
	switch {
	case row.StartsNamespace():
		rv.Class = "dt-group-namespace"
	case row.StartsClass():
		rv.Class = "dt-group-class"
	}
	for _, c := range row.Cells {
		rv.Cells = append(rv.Cells, newCellView(c, ids))
	}
	return rv
}

func newCellView(c layout.Cell[safehtml.HTML], ids anchors) cellView {
	cv := cellView{
		Role:     c.Role,
		RowSpan:  c.RowSpan,
		ColSpan:  c.ColSpan,
		Text:     c.Text,
		Doc:      c.Doc,
		DocEmpty: c.DocEmpty,
	}
	switch c.Kind {
	case layout.CellNamespace:
		cv.Kind = "namespace"
		cv.Title = c.Text
		cv.Anchor = ids.id("ns", cv.Title)
	case layout.CellClass:
		cv.Kind = "class"
		cv.Title = c.Class.FullName
		cv.Anchor = ids.id("class", cv.Title)
		cv.Class = newClassView(c.Class)
	case layout.CellClassDoc:
		cv.Kind = "classdoc"
	case layout.CellMember:
		cv.Kind = "member"
		cv.Title = c.Class.Anchor(c.Member)
		cv.Anchor = ids.id("member", cv.Title)
		cv.Member = newMemberView(c.Member)
	case layout.CellDoc:
		cv.Kind = "doc"
	}
	return cv
}

func newClassView(c *model.ClassRecord) *classView {
	return &classView{
		Name:       c.Name,
		File:       c.File,
		Kind:       c.Kind.String(),
		Modifiers:  strings.Join(c.Modifiers, " "),
		Parent:     c.Parent,
		Interfaces: strings.Join(c.Interfaces, ", "),
	}
}

func newMemberView(m *model.MemberRecord) *memberView {
	mv := &memberView{
		Kind:      m.Kind.String(),
		Name:      m.Name,
		Modifiers: m.ModifierString(),
		Type:      m.Type,
		Default:   m.Default,
	}
	for i, p := range m.Params {
		mv.Params = append(mv.Params, paramView{
			Name:    render.ParamName(p),
			Type:    p.Type,
			Default: p.Default,
			Last:    i == len(m.Params)-1,
		})
	}
	return mv
}

// anchors hands out element ids that are unique within one page.
type anchors map[string]bool

// id turns a symbol path into an element id. Characters outside
// [A-Za-z0-9_-] become "-"; the empty (global) namespace becomes "_". A slug
// already handed out gets a "-2", "-3", ... suffix.
func (a anchors) id(prefix, path string) safehtml.Identifier {
	base := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '-'
	}, path)
	if base == "" {
		base = "_"
	}
	slug := base
	for n := 2; a[prefix+"/"+slug]; n++ {
		slug = base + "-" + strconv.Itoa(n)
	}
	a[prefix+"/"+slug] = true

	switch prefix {
	case "ns":
		return safehtml.IdentifierFromConstantPrefix("dt-ns", slug)
	case "class":
		return safehtml.IdentifierFromConstantPrefix("dt-class", slug)
	}
	return safehtml.IdentifierFromConstantPrefix("dt-member", slug)
}
