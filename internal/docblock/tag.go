package docblock

import (
	"regexp"
	"strings"

	"github.com/cmmoran/doctracer/internal/model"
)

// Class is the parsing behavior of a tag name.
type Class int

const (
	ClassGeneric Class = iota // verbatim text only
	ClassParam                // type $variable description
	ClassTyped                // type description
)

// ClassOf returns the behavior class of the tag name (without "@").
func ClassOf(name string) Class {
	switch name {
	case "param":
		return ClassParam
	case "var", "return", "throws":
		return ClassTyped
	}
	return ClassGeneric
}

func parseTag(name, body string) model.DocTag {
	switch ClassOf(name) {
	case ClassParam:
		return parseParam(body)
	case ClassTyped:
		return parseTyped(name, body)
	}
	return &model.GenericTag{Kind: name, Raw: body}
}

func parseParam(body string) model.DocTag {
	tag := &model.ParamTag{Raw: body}
	first, rest := nextToken(body)
	if first == "" {
		return tag
	}
	if v, ok := variableName(first); ok {
		tag.Variable = v
		tag.Description = rest
		return tag
	}
	if !ValidType(first) {
		return &model.GenericTag{Kind: "param", Raw: body}
	}
	tag.Type = first
	second, afterSecond := nextToken(rest)
	if v, ok := variableName(second); ok {
		tag.Variable = v
		tag.Description = afterSecond
		return tag
	}
	// No variable: keep whatever follows the type as the description.
	tag.Description = rest
	return tag
}

func parseTyped(name, body string) model.DocTag {
	tag := &model.TypedTag{Kind: name, Raw: body}
	first, rest := nextToken(body)
	if first == "" {
		return tag
	}
	if !ValidType(first) {
		return &model.GenericTag{Kind: name, Raw: body}
	}
	tag.Type = first
	tag.Description = rest
	return tag
}

// variableName accepts "$name", "&$name", "...$name" and "&...$name".
func variableName(tok string) (string, bool) {
	tok = strings.TrimPrefix(tok, "&")
	tok = strings.TrimPrefix(tok, "...")
	if len(tok) < 2 || tok[0] != '$' {
		return "", false
	}
	return tok[1:], true
}

// nextToken reads one whitespace-delimited token from s. Whitespace inside
// <>, {} or () does not end the token, so "array<int, string>" is one token.
func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t\n")
	depth := 0
	for i, r := range s {
		switch r {
		case '<', '{', '(':
			depth++
		case '>', '}', ')':
			if depth > 0 {
				depth--
			}
		case ' ', '\t', '\n':
			if depth == 0 {
				return s[:i], strings.TrimSpace(s[i:])
			}
		}
	}
	return s, ""
}

var typeExprRE = func() *regexp.Regexp {
	atom := `(?:\[\]|\*)*\??(?:\$this|\\?[A-Za-z_][\w\\-]*(?:<.*>|\{.*\}|\[[\w\s,]*\])?|\(.+\))(?:\[\])*`
	return regexp.MustCompile(`^` + atom + `(?:[|&]` + atom + `)*$`)
}()

// ValidType reports whether s is a syntactically valid type expression,
// e.g. "string", "?int", "int|string|null", "\Foo\Bar[]", "array<int, T>".
func ValidType(s string) bool {
	return typeExprRE.MatchString(s)
}
