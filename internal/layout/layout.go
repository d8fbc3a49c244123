// Package layout arranges a catalog snapshot into a grouped table whose
// namespace and class cells span every row of their group.
package layout

import (
	"fmt"

	"github.com/cmmoran/doctracer/internal/catalog"
	"github.com/cmmoran/doctracer/internal/model"
)

type CellKind int

const (
	CellNamespace CellKind = iota // namespace label, first row of a namespace group
	CellClass                     // class label, first row of a class group
	CellClassDoc                  // class docblock, spans the member and doc columns
	CellMember                    // constant, property or method signature
	CellDoc                       // member documentation
)

// CSS roles attached to cells.
const (
	RoleNamespace = "dt-namespace-start"
	RoleClass     = "dt-class-start"
	RoleClassDoc  = "dt-class-start dt-docblock"
	RoleConstant  = "dt-constant"
	RoleProperty  = "dt-property"
	RoleMethod    = "dt-method"
	RoleDoc       = "dt-docblock"
)

// Boundary marks the first row of a group.
type Boundary int

const (
	BoundaryNone      Boundary = iota
	BoundaryClass              // first row of a class group
	BoundaryNamespace          // first row of a namespace group, and so of its first class
)

// Cell is one table cell. M is the renderer's markup type for formatted
// docblocks.
type Cell[M any] struct {
	Kind    CellKind
	Role    string
	RowSpan int
	ColSpan int
	Text    string

	Class  *model.ClassRecord  // set on CellClass and CellClassDoc
	Member *model.MemberRecord // set on CellMember and CellDoc

	// Doc is the formatted docblock of CellClassDoc and CellDoc cells. It is
	// the zero M when DocEmpty is set; the renderer prints its own
	// "not available" marker for those.
	Doc      M
	DocEmpty bool
}

// Row is one table row.
type Row[M any] struct {
	Cells    []Cell[M]
	Boundary Boundary

	Namespace string
	Class     *model.ClassRecord
	Member    *model.MemberRecord // nil on a class-summary row
	DocBlock  model.DocBlock      // the docblock behind the row's doc cell
}

// StartsNamespace reports whether the row opens a namespace group.
func (r Row[M]) StartsNamespace() bool { return r.Boundary == BoundaryNamespace }

// StartsClass reports whether the row opens a class group.
func (r Row[M]) StartsClass() bool { return r.Boundary != BoundaryNone }

// Stats counts what a table shows.
type Stats struct {
	Namespaces int
	Classes    int
	Constants  int
	Properties int
	Methods    int
}

// Table is the laid-out report.
type Table[M any] struct {
	Rows  []Row[M]
	Stats Stats
}

// Len is the number of rows.
func (t *Table[M]) Len() int { return len(t.Rows) }

type classPlan struct {
	class   *model.ClassRecord
	summary bool
	rows    int
}

type namespacePlan struct {
	name    string
	classes []classPlan
	rows    int
}

// plan counts the rows of every group. Classes without members and
// namespaces without rows are dropped.
func plan(snap catalog.Snapshot) []namespacePlan {
	var out []namespacePlan
	for _, ns := range snap {
		np := namespacePlan{name: ns.Name}
		for _, c := range ns.Classes {
			if c == nil || !c.HasMembers() {
				continue
			}
			cp := classPlan{class: c, summary: !c.Doc.IsEmpty(), rows: c.MemberCount()}
			if cp.summary {
				cp.rows++
			}
			np.classes = append(np.classes, cp)
			np.rows += cp.rows
		}
		if np.rows > 0 {
			out = append(out, np)
		}
	}
	return out
}

// Build lays out snap. formatDoc is called once for every non-empty
// docblock that gets a documentation cell. Build does not modify snap and
// may be called repeatedly.
func Build[M any](snap catalog.Snapshot, formatDoc func(model.DocBlock) M) *Table[M] {
	if formatDoc == nil {
		formatDoc = func(model.DocBlock) M { var zero M; return zero }
	}
	t := &Table[M]{}
	for _, np := range plan(snap) {
		t.Stats.Namespaces++
		nsCell := &Cell[M]{Kind: CellNamespace, Role: RoleNamespace, RowSpan: np.rows, ColSpan: 1, Text: np.name}

		for _, cp := range np.classes {
			t.Stats.Classes++
			c := cp.class
			classCell := &Cell[M]{Kind: CellClass, Role: RoleClass, RowSpan: cp.rows, ColSpan: 1, Text: c.Name, Class: c}

			// open emits the pending group cells on the first row of each
			// group; later rows of the group get none.
			open := func(r *Row[M]) {
				r.Namespace = np.name
				r.Class = c
				if nsCell != nil {
					r.Boundary = BoundaryNamespace
					r.Cells = append(r.Cells, *nsCell)
					nsCell = nil
				}
				if classCell != nil {
					if r.Boundary == BoundaryNone {
						r.Boundary = BoundaryClass
					}
					r.Cells = append(r.Cells, *classCell)
					classCell = nil
				}
			}

			if cp.summary {
				r := Row[M]{DocBlock: c.Doc}
				open(&r)
				r.Cells = append(r.Cells, Cell[M]{
					Kind: CellClassDoc, Role: RoleClassDoc, RowSpan: 1, ColSpan: 2,
					Class: c, Doc: formatDoc(c.Doc),
				})
				t.Rows = append(t.Rows, r)
			}

			for _, group := range [][]*model.MemberRecord{c.Constants, c.Properties, c.Methods} {
				for _, m := range group {
					r := Row[M]{Member: m, DocBlock: m.Doc}
					open(&r)
					r.Cells = append(r.Cells, Cell[M]{
						Kind: CellMember, Role: memberRole(m.Kind), RowSpan: 1, ColSpan: 1,
						Text: m.Name, Class: c, Member: m,
					})
					doc := Cell[M]{Kind: CellDoc, Role: RoleDoc, RowSpan: 1, ColSpan: 1, Class: c, Member: m, DocEmpty: m.Doc.IsEmpty()}
					if !doc.DocEmpty {
						doc.Doc = formatDoc(m.Doc)
					}
					r.Cells = append(r.Cells, doc)
					t.Rows = append(t.Rows, r)
					t.Stats.count(m.Kind)
				}
			}
		}
	}
	return t
}

func (s *Stats) count(k model.MemberKind) {
	switch k {
	case model.MemberConstant:
		s.Constants++
	case model.MemberProperty:
		s.Properties++
	case model.MemberMethod:
		s.Methods++
	}
}

func memberRole(k model.MemberKind) string {
	switch k {
	case model.MemberConstant:
		return RoleConstant
	case model.MemberProperty:
		return RoleProperty
	}
	return RoleMethod
}

// Verify checks that every namespace and class group has exactly one
// spanning cell, on its first row, whose RowSpan equals the group's row
// count.
func (t *Table[M]) Verify() error {
	type open struct {
		label     string
		span, got int
	}
	var ns, cls *open
	closeGroup := func(g *open, what string) error {
		if g != nil && g.got != g.span {
			return fmt.Errorf("%s %q: rowspan %d but %d rows", what, g.label, g.span, g.got)
		}
		return nil
	}

	for i, r := range t.Rows {
		var nsCells, classCells int
		for _, c := range r.Cells {
			switch c.Kind {
			case CellNamespace:
				nsCells++
				if err := closeGroup(ns, "namespace"); err != nil {
					return err
				}
				ns = &open{label: c.Text, span: c.RowSpan}
			case CellClass:
				classCells++
				if err := closeGroup(cls, "class"); err != nil {
					return err
				}
				cls = &open{label: c.Text, span: c.RowSpan}
			}
		}
		switch {
		case nsCells > 1 || classCells > 1:
			return fmt.Errorf("row %d: more than one group cell of a kind", i)
		case nsCells == 1 && (classCells != 1 || r.Boundary != BoundaryNamespace):
			return fmt.Errorf("row %d: namespace start without class start or boundary", i)
		case nsCells == 0 && classCells == 1 && r.Boundary != BoundaryClass:
			return fmt.Errorf("row %d: class start without class boundary", i)
		case classCells == 0 && r.Boundary != BoundaryNone:
			return fmt.Errorf("row %d: boundary without group cell", i)
		case ns == nil || cls == nil:
			return fmt.Errorf("row %d: row outside any group", i)
		}
		ns.got++
		cls.got++
		if ns.got > ns.span || cls.got > cls.span {
			return fmt.Errorf("row %d: group already closed", i)
		}
	}
	if err := closeGroup(ns, "namespace"); err != nil {
		return err
	}
	return closeGroup(cls, "class")
}
