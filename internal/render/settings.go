package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/inflection"

	"github.com/cmmoran/doctracer/internal/layout"
	"github.com/cmmoran/doctracer/internal/model"
)

// Settings are the page-level texts shared by all renderers.
type Settings struct {
	Title   string
	Tagline string
	Footer  string // defaults to "Title - Tagline"
	Version string
	Created time.Time // defaults to the render time
}

// FooterText returns Footer, or "Title - Tagline" when it is unset.
func (s Settings) FooterText() string {
	if s.Footer != "" {
		return s.Footer
	}
	switch {
	case s.Title == "":
		return s.Tagline
	case s.Tagline == "":
		return s.Title
	}
	return s.Title + " - " + s.Tagline
}

// CreatedText formats Created, using now when it is unset.
func (s Settings) CreatedText() string {
	created := s.Created
	if created.IsZero() {
		created = time.Now()
	}
	return created.Format(time.DateTime)
}

// Counts summarizes stats as "2 namespaces, 3 classes, 1 constant, ...".
func Counts(s layout.Stats) string {
	parts := []string{
		count(s.Namespaces, "namespace"),
		count(s.Classes, "class"),
		count(s.Constants, "constant"),
		count(s.Properties, "property"),
		count(s.Methods, "method"),
	}
	return strings.Join(parts, ", ")
}

func count(n int, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// ParamName is the parameter name with its by-reference and variadic
// markers.
func ParamName(p model.ParamRecord) string {
	name := p.Name
	if p.Variadic {
		name = "..." + name
	}
	if p.ByRef {
		name = "&" + name
	}
	return name
}

// Signature renders a member on one line:
//
//	public const VERSION = '1.0'
//	protected ?int priority = null
//	public hello(string name, int ...rest): string
func Signature(m *model.MemberRecord) string {
	var b strings.Builder
	if mods := m.ModifierString(); mods != "" {
		b.WriteString(mods)
		b.WriteByte(' ')
	}
	switch m.Kind {
	case model.MemberMethod:
		b.WriteString(m.Name)
		b.WriteByte('(')
		for i, p := range m.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.Type != "" {
				b.WriteString(p.Type)
				b.WriteByte(' ')
			}
			b.WriteString(ParamName(p))
			if p.HasDefault() {
				b.WriteString(" = ")
				b.WriteString(p.Default)
			}
		}
		b.WriteByte(')')
		if m.Type != "" {
			b.WriteString(": ")
			b.WriteString(m.Type)
		}
		return b.String()
	case model.MemberConstant:
		b.WriteString("const ")
	}
	if m.Type != "" {
		b.WriteString(m.Type)
		b.WriteByte(' ')
	}
	b.WriteString(m.Name)
	if m.HasDefault() {
		b.WriteString(" = ")
		b.WriteString(m.Default)
	}
	return b.String()
}
