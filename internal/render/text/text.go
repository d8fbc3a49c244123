// Package text renders a laid-out report for the terminal.
package text

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/cmmoran/doctracer/internal/catalog"
	"github.com/cmmoran/doctracer/internal/layout"
	"github.com/cmmoran/doctracer/internal/model"
	"github.com/cmmoran/doctracer/internal/render"
)

const DefaultWidth = 100

const (
	classIndent  = 2
	memberIndent = 4
	docIndent    = 6
)

type styles struct {
	title     lipgloss.Style
	tagline   lipgloss.Style
	namespace lipgloss.Style
	class     lipgloss.Style
	member    lipgloss.Style
	muted     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:     lipgloss.NewStyle().Bold(true),
		tagline:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		namespace: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		class:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		member:    lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
	}
}

// Renderer writes a catalog snapshot as indented terminal text. Namespace
// and class headings print once, on the first row of their group.
type Renderer struct {
	settings render.Settings
	md       *glamour.TermRenderer
	styles   styles
	logger   *slog.Logger
}

// NewRenderer builds a renderer wrapping docblocks at width columns.
func NewRenderer(s render.Settings, width int) (*Renderer, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width-docIndent),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{settings: s, md: md, styles: defaultStyles(), logger: slog.Default()}, nil
}

// Markdown renders text with glamour. It falls back to text on error.
func (r *Renderer) Markdown(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out, err := r.md.Render(text)
	if err != nil {
		r.logger.Warn("markdown render failed", "error", err)
		return text
	}
	return strings.Trim(out, "\n")
}

// FormatDocBlock renders doc as markdown: summary, description and a list
// of tags.
func (r *Renderer) FormatDocBlock(doc model.DocBlock) string {
	return r.Markdown(DocBlockMarkdown(doc))
}

// DocBlockMarkdown writes doc as a markdown document.
func DocBlockMarkdown(doc model.DocBlock) string {
	var b strings.Builder
	for _, s := range []string{doc.Summary, doc.Description} {
		if s != "" {
			b.WriteString(s)
			b.WriteString("\n\n")
		}
	}
	for _, g := range doc.Tags {
		for _, tag := range g.Tags {
			b.WriteString("- **@" + tag.Name() + "**")
			for _, part := range tagParts(tag) {
				if part != "" {
					b.WriteString(" " + part)
				}
			}
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}

func tagParts(tag model.DocTag) []string {
	switch t := tag.(type) {
	case *model.ParamTag:
		variable := ""
		if t.Variable != "" {
			variable = "`$" + t.Variable + "`"
		}
		return []string{code(t.Type), variable, t.Description}
	case *model.TypedTag:
		return []string{code(t.Type), t.Description}
	}
	return []string{tag.Text()}
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

// Render lays out snap and writes it to w.
func (r *Renderer) Render(w io.Writer, snap catalog.Snapshot) error {
	table := layout.Build(snap, r.FormatDocBlock)
	if err := table.Verify(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	var b strings.Builder
	b.WriteString(r.styles.title.Render(r.settings.Title))
	if r.settings.Tagline != "" {
		b.WriteString(" " + r.styles.tagline.Render(r.settings.Tagline))
	}
	b.WriteString("\n")

	for _, row := range table.Rows {
		if row.StartsClass() {
			b.WriteString("\n")
		}
		for _, c := range row.Cells {
			r.writeCell(&b, c)
		}
	}

	b.WriteString("\n")
	b.WriteString(r.styles.muted.Render(r.settings.FooterText()) + "\n")
	b.WriteString(render.Counts(table.Stats) + "\n")
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("Generated by DocTracer v%s at %s", r.settings.Version, r.settings.CreatedText())) + "\n")

	r.logger.Debug("rendering text", "rows", table.Len(), "classes", table.Stats.Classes)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (r *Renderer) writeCell(b *strings.Builder, c layout.Cell[string]) {
	switch c.Kind {
	case layout.CellNamespace:
		name := c.Text
		if name == "" {
			name = "(global)"
		}
		b.WriteString(r.styles.namespace.Render("namespace "+name) + "\n")
	case layout.CellClass:
		b.WriteString(indent(r.styles.class.Render(classHeading(c.Class)), classIndent) + "\n")
	case layout.CellClassDoc:
		b.WriteString(indent(c.Doc, memberIndent) + "\n")
	case layout.CellMember:
		b.WriteString(indent(r.styles.member.Render(render.Signature(c.Member)), memberIndent) + "\n")
	case layout.CellDoc:
		if c.DocEmpty {
			b.WriteString(indent(r.styles.muted.Render("n/a"), docIndent) + "\n")
			return
		}
		b.WriteString(indent(c.Doc, docIndent) + "\n")
	}
}

func classHeading(c *model.ClassRecord) string {
	parts := append([]string(nil), c.Modifiers...)
	parts = append(parts, c.Kind.String(), c.Name)
	if c.Parent != "" {
		parts = append(parts, "extends", c.Parent)
	}
	if len(c.Interfaces) > 0 {
		parts = append(parts, "implements", strings.Join(c.Interfaces, ", "))
	}
	return strings.Join(parts, " ")
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
