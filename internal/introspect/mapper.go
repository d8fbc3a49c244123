package introspect

import (
	"go/ast"
	"go/doc"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/cmmoran/doctracer/internal/docblock"
	"github.com/cmmoran/doctracer/internal/model"
)

// entry pairs a record with the type it was built from so interfaces can be
// resolved once every package is mapped.
type entry struct {
	rec   *model.ClassRecord
	named *types.Named
}

type mapper struct {
	opts    *Options
	fset    *token.FileSet
	modDir  string
	entries []entry
	ifaces  []entry
}

func newMapper(opts *Options, fset *token.FileSet, modDir string) *mapper {
	return &mapper{opts: opts, fset: fset, modDir: modDir}
}

func (m *mapper) addPackage(pkg *packages.Package) error {
	mode := doc.PreserveAST
	if m.opts.IncludeUnexported {
		mode |= doc.AllDecls
	}
	dp, err := doc.NewFromFiles(m.fset, pkg.Syntax, pkg.PkgPath, mode)
	if err != nil {
		return err
	}
	pm := &pkgMapper{mapper: m, pkg: pkg}
	for _, t := range dp.Types {
		if m.excludedType(t) {
			continue
		}
		obj, ok := pkg.Types.Scope().Lookup(t.Name).(*types.TypeName)
		if !ok || obj.IsAlias() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		rec := pm.class(t, named)
		e := entry{rec: rec, named: named}
		m.entries = append(m.entries, e)
		if rec.Kind == model.KindInterface {
			m.ifaces = append(m.ifaces, e)
		}
	}
	return nil
}

func (m *mapper) excludedType(t *doc.Type) bool {
	if m.opts.ExcludeDeprecated && deprecated(t.Doc) {
		return true
	}
	for _, ex := range m.opts.ExcludeTypes {
		if strings.EqualFold(ex, t.Name) {
			return true
		}
	}
	return false
}

// records resolves implemented interfaces and returns the mapped classes.
func (m *mapper) records() []*model.ClassRecord {
	out := make([]*model.ClassRecord, 0, len(m.entries))
	for _, e := range m.entries {
		if e.rec.Kind != model.KindInterface && e.named.TypeParams().Len() == 0 {
			for _, i := range m.ifaces {
				iface, ok := i.named.Underlying().(*types.Interface)
				if !ok || iface.NumMethods() == 0 {
					continue
				}
				if types.Implements(e.named, iface) || types.Implements(types.NewPointer(e.named), iface) {
					e.rec.Interfaces = append(e.rec.Interfaces, i.rec.FullName)
				}
			}
		}
		out = append(out, e.rec)
	}
	return out
}

type pkgMapper struct {
	*mapper
	pkg *packages.Package
}

// qualifier prints types of the inspected package bare and others by package
// name.
func (pm *pkgMapper) qualifier(other *types.Package) string {
	if other == pm.pkg.Types {
		return ""
	}
	return other.Name()
}

func (pm *pkgMapper) typeString(t types.Type) string {
	if t == nil {
		return ""
	}
	return types.TypeString(t, pm.qualifier)
}

func (pm *pkgMapper) file(pos token.Pos) string {
	name := pm.fset.Position(pos).Filename
	if rel, err := filepath.Rel(pm.modDir, name); err == nil {
		return filepath.ToSlash(rel)
	}
	return name
}

func (pm *pkgMapper) line(pos token.Pos) int {
	return pm.fset.Position(pos).Line
}

func (pm *pkgMapper) class(t *doc.Type, named *types.Named) *model.ClassRecord {
	ts := typeSpec(t)
	rec := &model.ClassRecord{
		Name:       t.Name,
		FullName:   pm.pkg.PkgPath + "." + t.Name,
		Namespace:  pm.pkg.PkgPath,
		Kind:       model.KindClass,
		DocComment: comment(t.Doc),
	}
	rec.Doc = docblock.Parse(rec.DocComment)
	if ts != nil {
		rec.File = pm.file(ts.Pos())
		if ts.TypeParams != nil {
			rec.Modifiers = append(rec.Modifiers, "generic")
		}
	}
	if !ast.IsExported(t.Name) {
		rec.Modifiers = append(rec.Modifiers, "unexported")
	}

	if _, ok := named.Underlying().(*types.Interface); ok {
		rec.Kind = model.KindInterface
	}
	// type A B: B is the parent; its members are not repeated on A.
	if ts != nil {
		if parent, ok := pm.pkg.TypesInfo.TypeOf(ts.Type).(*types.Named); ok {
			rec.Parent = fullName(parent)
		}
	}
	switch x := typeExpr(ts).(type) {
	case *ast.InterfaceType:
		pm.interfaceMembers(rec, x)
	case *ast.StructType:
		pm.fields(rec, x)
	}

	for _, v := range t.Consts {
		pm.constants(rec, v)
	}
	for _, f := range t.Funcs {
		if mr := pm.method(f.Decl, f.Doc, "static"); mr != nil {
			rec.Methods = append(rec.Methods, mr)
		}
	}
	for _, f := range t.Methods {
		if f.Level > 0 {
			continue
		}
		if mr := pm.method(f.Decl, f.Doc); mr != nil {
			rec.Methods = append(rec.Methods, mr)
		}
	}
	return rec
}

func (pm *pkgMapper) constants(rec *model.ClassRecord, v *doc.Value) {
	for _, spec := range v.Decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}
		text := v.Doc
		if vs.Doc != nil {
			text = vs.Doc.Text()
		} else if len(v.Decl.Specs) > 1 {
			text = ""
		}
		for _, id := range vs.Names {
			if id.Name == "_" || !pm.visible(id.Name) {
				continue
			}
			c, ok := pm.pkg.TypesInfo.Defs[id].(*types.Const)
			if !ok {
				continue
			}
			mr := &model.MemberRecord{
				Kind:       model.MemberConstant,
				Name:       id.Name,
				Type:       pm.typeString(c.Type()),
				Default:    c.Val().ExactString(),
				DocComment: comment(text),
				Line:       pm.line(id.Pos()),
			}
			if !pm.keep(mr) {
				continue
			}
			rec.Constants = append(rec.Constants, mr)
		}
	}
}

func (pm *pkgMapper) fields(rec *model.ClassRecord, st *ast.StructType) {
	for _, f := range st.Fields.List {
		if omitField(f.Tag, pm.opts.ExcludeByTags) {
			continue
		}
		text := f.Doc.Text()
		if text == "" {
			text = f.Comment.Text()
		}
		typ := pm.typeString(pm.pkg.TypesInfo.TypeOf(f.Type))
		if len(f.Names) == 0 {
			name := embeddedFieldName(f.Type)
			if name == "" || !pm.visible(name) {
				continue
			}
			mr := &model.MemberRecord{
				Kind:       model.MemberProperty,
				Name:       name,
				Modifiers:  []string{"embedded"},
				Type:       typ,
				DocComment: comment(text),
				Line:       pm.line(f.Pos()),
			}
			if pm.keep(mr) {
				rec.Properties = append(rec.Properties, mr)
			}
			continue
		}
		for _, id := range f.Names {
			if id.Name == "_" || !pm.visible(id.Name) {
				continue
			}
			mr := &model.MemberRecord{
				Kind:       model.MemberProperty,
				Name:       id.Name,
				Type:       typ,
				DocComment: comment(text),
				Line:       pm.line(id.Pos()),
			}
			if !ast.IsExported(id.Name) {
				mr.Modifiers = []string{"unexported"}
			}
			if pm.keep(mr) {
				rec.Properties = append(rec.Properties, mr)
			}
		}
	}
}

func (pm *pkgMapper) interfaceMembers(rec *model.ClassRecord, it *ast.InterfaceType) {
	for _, f := range it.Methods.List {
		if len(f.Names) == 0 {
			if embedded, ok := pm.pkg.TypesInfo.TypeOf(f.Type).(*types.Named); ok {
				rec.Interfaces = append(rec.Interfaces, fullName(embedded))
			}
			continue
		}
		text := f.Doc.Text()
		if text == "" {
			text = f.Comment.Text()
		}
		for _, id := range f.Names {
			if !pm.visible(id.Name) {
				continue
			}
			fn, ok := pm.pkg.TypesInfo.Defs[id].(*types.Func)
			if !ok {
				continue
			}
			mr := pm.signature(id.Name, fn, text, []string{"abstract"})
			mr.Line = pm.line(id.Pos())
			if pm.keep(mr) {
				rec.Methods = append(rec.Methods, mr)
			}
		}
	}
}

func (pm *pkgMapper) method(decl *ast.FuncDecl, text string, modifiers ...string) *model.MemberRecord {
	if decl == nil {
		return nil
	}
	fn, ok := pm.pkg.TypesInfo.Defs[decl.Name].(*types.Func)
	if !ok {
		return nil
	}
	if !ast.IsExported(decl.Name.Name) {
		modifiers = append(modifiers, "unexported")
	}
	mr := pm.signature(decl.Name.Name, fn, text, modifiers)
	mr.Line = pm.line(decl.Name.Pos())
	if !pm.keep(mr) {
		return nil
	}
	return mr
}

func (pm *pkgMapper) signature(name string, fn *types.Func, text string, modifiers []string) *model.MemberRecord {
	sig := fn.Type().(*types.Signature)
	mr := &model.MemberRecord{
		Kind:       model.MemberMethod,
		Name:       name,
		Modifiers:  modifiers,
		DocComment: comment(text),
	}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		p := model.ParamRecord{Name: v.Name(), Type: pm.typeString(v.Type())}
		if sig.Variadic() && i == params.Len()-1 {
			p.Variadic = true
			if s, ok := v.Type().(*types.Slice); ok {
				p.Type = pm.typeString(s.Elem())
			}
		}
		mr.Params = append(mr.Params, p)
	}
	switch res := sig.Results(); {
	case res.Len() == 1 && res.At(0).Name() == "":
		mr.Type = pm.typeString(res.At(0).Type())
	case res.Len() > 0:
		mr.Type = pm.typeString(res)
	}
	return mr
}

// keep parses the member's docblock and applies the deprecation filter.
func (pm *pkgMapper) keep(mr *model.MemberRecord) bool {
	if pm.opts.ExcludeDeprecated && deprecated(uncomment(mr.DocComment)) {
		return false
	}
	mr.Doc = docblock.Parse(mr.DocComment)
	return true
}

func (pm *pkgMapper) visible(name string) bool {
	return pm.opts.IncludeUnexported || ast.IsExported(name)
}

func typeSpec(t *doc.Type) *ast.TypeSpec {
	if t.Decl == nil {
		return nil
	}
	for _, s := range t.Decl.Specs {
		if ts, ok := s.(*ast.TypeSpec); ok && ts.Name.Name == t.Name {
			return ts
		}
	}
	return nil
}

func typeExpr(ts *ast.TypeSpec) ast.Expr {
	if ts == nil {
		return nil
	}
	return ts.Type
}

func fullName(n *types.Named) string {
	obj := n.Obj()
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

func embeddedFieldName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.StarExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexExpr:
		return embeddedFieldName(t.X)
	case *ast.IndexListExpr:
		return embeddedFieldName(t.X)
	}
	return ""
}

// comment turns doc text back into a "//" line comment.
func comment(text string) string {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = "//"
		} else {
			lines[i] = "// " + l
		}
	}
	return strings.Join(lines, "\n")
}

func uncomment(c string) string {
	lines := strings.Split(c, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimPrefix(l, "//"), " ")
	}
	return strings.Join(lines, "\n")
}
