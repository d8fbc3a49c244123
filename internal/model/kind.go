package model

import "fmt"

type SymbolKind int

const (
	KindInvalid   SymbolKind = iota
	KindClass                // class, or a Go struct/named type
	KindTrait                // trait
	KindInterface            // interface
)

var symbolKindNames = map[SymbolKind]string{
	KindClass:     "class",
	KindTrait:     "trait",
	KindInterface: "interface",
}

func (k SymbolKind) String() string {
	if s, ok := symbolKindNames[k]; ok {
		return s
	}
	return "invalid"
}

// ParseSymbolKind is the inverse of SymbolKind.String. An empty string is
// read as KindClass.
func ParseSymbolKind(s string) (SymbolKind, error) {
	if s == "" {
		return KindClass, nil
	}
	for k, name := range symbolKindNames {
		if name == s {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("unknown symbol kind %q", s)
}

type MemberKind int

const (
	MemberConstant MemberKind = iota
	MemberProperty
	MemberMethod
)

func (k MemberKind) String() string {
	switch k {
	case MemberConstant:
		return "constant"
	case MemberProperty:
		return "property"
	case MemberMethod:
		return "method"
	}
	return "invalid"
}
