package introspect

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"
)

// omitField reports whether a struct field's tag matches one of filters.
func omitField(tag *ast.BasicLit, filters []TagFilter) bool {
	if tag == nil || len(filters) == 0 {
		return false
	}
	raw, err := strconv.Unquote(tag.Value)
	if err != nil {
		return false
	}
	st := reflect.StructTag(raw)
	for _, f := range filters {
		if v, ok := st.Lookup(f.Key); ok && containsTagPart(v, f.Value) {
			return true
		}
	}
	return false
}

// containsTagPart splits a tag value on common delimiters and reports whether
// any fragment matches the expected value.
func containsTagPart(tagVal, expected string) bool {
	for _, part := range strings.FieldsFunc(tagVal, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if part == expected {
			return true
		}
	}
	return false
}

// ParseTagFilters reads "key:value" strings. Malformed entries are skipped.
func ParseTagFilters(specs ...string) []TagFilter {
	var out []TagFilter
	for _, s := range specs {
		key, val, ok := strings.Cut(s, ":")
		if !ok || key == "" {
			continue
		}
		out = append(out, TagFilter{Key: strings.TrimSpace(key), Value: strings.TrimSpace(val)})
	}
	return out
}

func deprecated(doc string) bool {
	for _, para := range strings.Split(doc, "\n\n") {
		if strings.HasPrefix(strings.TrimSpace(para), "Deprecated:") {
			return true
		}
	}
	return false
}
