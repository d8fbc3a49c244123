package model

import "strings"

// ClassRecord is one symbol (class, trait or interface) and the members
// declared directly on it. Inherited members are never present.
type ClassRecord struct {
	Name       string // short name, "Acme"
	FullName   string // fully-qualified name, "Example\Acme" or "example.com/pkg.Acme"
	Namespace  string // "Example", "example.com/pkg"
	File       string // source file, relative to the inspected base directory
	Kind       SymbolKind
	Modifiers  []string
	Parent     string   // fully-qualified parent, "" when none
	Interfaces []string // fully-qualified implemented interfaces

	DocComment string // raw structured comment including delimiters
	Doc        DocBlock

	Constants  []*MemberRecord
	Properties []*MemberRecord
	Methods    []*MemberRecord
}

// HasMembers reports whether the class declares anything documentable.
func (c *ClassRecord) HasMembers() bool {
	return len(c.Constants) > 0 || len(c.Properties) > 0 || len(c.Methods) > 0
}

// MemberCount is the number of declared constants, properties and methods.
func (c *ClassRecord) MemberCount() int {
	return len(c.Constants) + len(c.Properties) + len(c.Methods)
}

// Constant returns the constant named name.
func (c *ClassRecord) Constant(name string) (*MemberRecord, bool) {
	return findMember(c.Constants, name)
}

// Property returns the property named name.
func (c *ClassRecord) Property(name string) (*MemberRecord, bool) {
	return findMember(c.Properties, name)
}

// Method returns the method named name.
func (c *ClassRecord) Method(name string) (*MemberRecord, bool) {
	return findMember(c.Methods, name)
}

// Members returns constants, then properties, then methods.
func (c *ClassRecord) Members() []*MemberRecord {
	out := make([]*MemberRecord, 0, c.MemberCount())
	out = append(out, c.Constants...)
	out = append(out, c.Properties...)
	out = append(out, c.Methods...)
	return out
}

// Anchor is the page anchor of a member: FullName + "\" + member name.
func (c *ClassRecord) Anchor(m *MemberRecord) string {
	return c.FullName + `\` + m.Name
}

// Clone returns a copy whose slices and members can be modified
// independently of c.
func (c *ClassRecord) Clone() *ClassRecord {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Modifiers = cloneStrings(c.Modifiers)
	cp.Interfaces = cloneStrings(c.Interfaces)
	cp.Doc = c.Doc.Clone()
	cp.Constants = cloneMembers(c.Constants)
	cp.Properties = cloneMembers(c.Properties)
	cp.Methods = cloneMembers(c.Methods)
	return &cp
}

// MemberRecord is a constant, property or method.
type MemberRecord struct {
	Kind      MemberKind
	Name      string
	Modifiers []string
	// Type is the declared type annotation, "" when none. For methods it is
	// the return type.
	Type string
	// Default is the printed default value. "" means no default; the literal
	// "null" means an explicit null default.
	Default    string
	DocComment string
	Doc        DocBlock
	Params     []ParamRecord // methods only
	Line       int
}

// ModifierString joins the modifiers with single spaces.
func (m *MemberRecord) ModifierString() string {
	return strings.Join(m.Modifiers, " ")
}

// HasDefault reports whether a default value was declared.
func (m *MemberRecord) HasDefault() bool {
	return m.Default != ""
}

func (m *MemberRecord) clone() *MemberRecord {
	cp := *m
	cp.Modifiers = cloneStrings(m.Modifiers)
	cp.Doc = m.Doc.Clone()
	if m.Params != nil {
		cp.Params = append([]ParamRecord(nil), m.Params...)
	}
	return &cp
}

// ParamRecord is one method parameter.
type ParamRecord struct {
	Name     string
	Type     string
	Default  string // same "" vs "null" convention as MemberRecord.Default
	Variadic bool
	ByRef    bool
}

// HasDefault reports whether a default value was declared.
func (p ParamRecord) HasDefault() bool {
	return p.Default != ""
}

func findMember(ms []*MemberRecord, name string) (*MemberRecord, bool) {
	for _, m := range ms {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func cloneMembers(ms []*MemberRecord) []*MemberRecord {
	if ms == nil {
		return nil
	}
	out := make([]*MemberRecord, len(ms))
	for i, m := range ms {
		out[i] = m.clone()
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
