package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/doctracer/internal/catalog"
	"github.com/cmmoran/doctracer/internal/model"
)

func summary(s string) model.DocBlock { return model.DocBlock{Summary: s} }

func member(kind model.MemberKind, name string, doc model.DocBlock) *model.MemberRecord {
	return &model.MemberRecord{Kind: kind, Name: name, Doc: doc}
}

func classRec(ns, name string, doc model.DocBlock, members ...*model.MemberRecord) *model.ClassRecord {
	c := &model.ClassRecord{Name: name, FullName: ns + `\` + name, Namespace: ns, Kind: model.KindClass, Doc: doc}
	for _, m := range members {
		switch m.Kind {
		case model.MemberConstant:
			c.Constants = append(c.Constants, m)
		case model.MemberProperty:
			c.Properties = append(c.Properties, m)
		default:
			c.Methods = append(c.Methods, m)
		}
	}
	return c
}

func snapshot(t *testing.T, records ...*model.ClassRecord) catalog.Snapshot {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.Ingest(records...))
	return c.Snapshot()
}

func format(d model.DocBlock) string { return "doc:" + d.Summary }

func kinds[M any](r Row[M]) []CellKind {
	out := make([]CellKind, len(r.Cells))
	for i, c := range r.Cells {
		out[i] = c.Kind
	}
	return out
}

func TestBuild_Empty(t *testing.T) {
	table := Build(catalog.Snapshot(nil), format)
	assert.Equal(t, 0, table.Len())
	assert.NoError(t, table.Verify())
	assert.Equal(t, Stats{}, table.Stats)
}

func TestBuild_Grouping(t *testing.T) {
	snap := snapshot(t,
		classRec("N1", "A", summary("class A"),
			member(model.MemberConstant, "VERSION", model.DocBlock{}),
			member(model.MemberProperty, "priority", summary("prio")),
			member(model.MemberMethod, "hello", summary("say hello")),
			member(model.MemberMethod, "bye", model.DocBlock{}),
		),
		classRec("N2", "B", model.DocBlock{},
			member(model.MemberMethod, "run", model.DocBlock{}),
		),
		classRec("N1", "A2", model.DocBlock{},
			member(model.MemberMethod, "count", summary("counts")),
		),
	)

	table := Build(snap, format)
	require.NoError(t, table.Verify())
	require.Equal(t, 7, table.Len())

	// N1/A: class summary row + 4 members; N1/A2: 1; N2/B: 1.
	r := table.Rows
	assert.Equal(t, []CellKind{CellNamespace, CellClass, CellClassDoc}, kinds(r[0]))
	assert.Equal(t, BoundaryNamespace, r[0].Boundary)
	assert.Equal(t, "N1", r[0].Cells[0].Text)
	assert.Equal(t, 6, r[0].Cells[0].RowSpan)
	assert.Equal(t, "A", r[0].Cells[1].Text)
	assert.Equal(t, 5, r[0].Cells[1].RowSpan)
	assert.Equal(t, 2, r[0].Cells[2].ColSpan)
	assert.Equal(t, "doc:class A", r[0].Cells[2].Doc)
	assert.Nil(t, r[0].Member)

	for i := 1; i <= 4; i++ {
		assert.Equal(t, []CellKind{CellMember, CellDoc}, kinds(r[i]), "row %d", i)
		assert.Equal(t, BoundaryNone, r[i].Boundary, "row %d", i)
	}
	assert.Equal(t, []string{"VERSION", "priority", "hello", "bye"},
		[]string{r[1].Cells[0].Text, r[2].Cells[0].Text, r[3].Cells[0].Text, r[4].Cells[0].Text})
	assert.Equal(t, RoleConstant, r[1].Cells[0].Role)
	assert.Equal(t, RoleProperty, r[2].Cells[0].Role)
	assert.Equal(t, RoleMethod, r[3].Cells[0].Role)

	assert.True(t, r[1].Cells[1].DocEmpty)
	assert.Equal(t, "", r[1].Cells[1].Doc)
	assert.False(t, r[2].Cells[1].DocEmpty)
	assert.Equal(t, "doc:prio", r[2].Cells[1].Doc)

	assert.Equal(t, []CellKind{CellClass, CellMember, CellDoc}, kinds(r[5]))
	assert.Equal(t, BoundaryClass, r[5].Boundary)
	assert.Equal(t, "A2", r[5].Cells[0].Text)
	assert.Equal(t, 1, r[5].Cells[0].RowSpan)

	assert.Equal(t, []CellKind{CellNamespace, CellClass, CellMember, CellDoc}, kinds(r[6]))
	assert.Equal(t, BoundaryNamespace, r[6].Boundary)
	assert.Equal(t, "N2", r[6].Namespace)
	assert.Equal(t, 1, r[6].Cells[0].RowSpan)

	assert.Equal(t, Stats{Namespaces: 2, Classes: 3, Constants: 1, Properties: 1, Methods: 4}, table.Stats)
}

func TestBuild_EmptyClassSuppressed(t *testing.T) {
	snap := snapshot(t,
		classRec("Only", "Parent", summary("documented but empty")),
		classRec("Mixed", "Empty", summary("also empty")),
		classRec("Mixed", "Full", model.DocBlock{}, member(model.MemberMethod, "m", model.DocBlock{})),
	)

	table := Build(snap, format)
	require.NoError(t, table.Verify())
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "Mixed", table.Rows[0].Cells[0].Text)
	assert.Equal(t, "Full", table.Rows[0].Cells[1].Text)
	assert.Equal(t, 1, table.Stats.Namespaces)
	assert.Equal(t, 1, table.Stats.Classes)
}

func TestBuild_FormatsOnlyNonEmptyDocs(t *testing.T) {
	snap := snapshot(t, classRec("N", "A", model.DocBlock{},
		member(model.MemberConstant, "C", model.DocBlock{}),
		member(model.MemberMethod, "m", summary("x")),
	))
	calls := 0
	table := Build(snap, func(d model.DocBlock) string {
		calls++
		return d.Summary
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, table.Len())
	// No class summary row for an empty class docblock.
	assert.Equal(t, []CellKind{CellNamespace, CellClass, CellMember, CellDoc}, kinds(table.Rows[0]))
}

func TestBuild_DescriptionOnlyTagsCountAsDoc(t *testing.T) {
	tagged := model.DocBlock{}
	tagged.Add(&model.GenericTag{Kind: "author", Raw: "someone"})
	snap := snapshot(t, classRec("N", "A", tagged, member(model.MemberMethod, "m", tagged)))

	table := Build(snap, format)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, CellClassDoc, table.Rows[0].Cells[2].Kind)
	assert.False(t, table.Rows[1].Cells[1].DocEmpty)
}

func TestBuild_SpanConservation(t *testing.T) {
	var records []*model.ClassRecord
	for n := 0; n < 4; n++ {
		ns := fmt.Sprintf("NS%d", n)
		for c := 0; c < 5; c++ {
			doc := model.DocBlock{}
			if (n+c)%2 == 0 {
				doc = summary("documented")
			}
			var members []*model.MemberRecord
			for m := 0; m < (n*c)%4; m++ {
				members = append(members, member(model.MemberKind(m%3), fmt.Sprintf("m%d", m), doc))
			}
			records = append(records, classRec(ns, fmt.Sprintf("C%d", c), doc, members...))
		}
	}

	table := Build(snapshot(t, records...), format)
	require.NoError(t, table.Verify())

	nsRows := map[string]int{}
	classRows := map[string]int{}
	nsSpan := map[string]int{}
	classSpan := map[string]int{}
	for _, r := range table.Rows {
		nsRows[r.Namespace]++
		classRows[r.Class.FullName]++
		for _, c := range r.Cells {
			switch c.Kind {
			case CellNamespace:
				_, dup := nsSpan[c.Text]
				require.False(t, dup, "second namespace cell for %s", c.Text)
				nsSpan[c.Text] = c.RowSpan
			case CellClass:
				_, dup := classSpan[c.Class.FullName]
				require.False(t, dup, "second class cell for %s", c.Class.FullName)
				classSpan[c.Class.FullName] = c.RowSpan
			}
		}
	}
	assert.Equal(t, nsRows, nsSpan)
	assert.Equal(t, classRows, classSpan)
	assert.NotContains(t, nsSpan, "NS0", "NS0 classes have no members")
}

func TestBuild_Repeatable(t *testing.T) {
	snap := snapshot(t, classRec("N", "A", summary("a"), member(model.MemberMethod, "m", summary("m"))))
	first := Build(snap, format)
	second := Build(snap, format)
	assert.Equal(t, first, second)
}

func TestVerify_DetectsBrokenSpans(t *testing.T) {
	snap := snapshot(t, classRec("N", "A", model.DocBlock{},
		member(model.MemberMethod, "a", model.DocBlock{}),
		member(model.MemberMethod, "b", model.DocBlock{}),
	))
	table := Build(snap, format)
	require.NoError(t, table.Verify())

	table.Rows[0].Cells[0].RowSpan = 3
	assert.Error(t, table.Verify())

	table = Build(snap, format)
	table.Rows = table.Rows[1:]
	assert.Error(t, table.Verify())
}
