package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TypeExpr builds a type annotation from its union members. A nullable
// annotation is written as a "?" prefix followed by the "|"-joined members;
// an explicit "null" member is folded into the prefix.
func TypeExpr(nullable bool, members ...string) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		switch {
		case m == "":
			continue
		case strings.EqualFold(m, "null"):
			nullable = true
			continue
		case strings.HasPrefix(m, "?"):
			nullable = true
			m = m[1:]
		}
		parts = append(parts, m)
	}
	if len(parts) == 0 {
		if nullable {
			return "null"
		}
		return ""
	}
	s := strings.Join(parts, "|")
	if nullable {
		return "?" + s
	}
	return s
}

// UnionMembers splits an annotation into its members, dropping a leading "?".
// A "|" nested in <>, {} or () does not split.
func UnionMembers(typ string) []string {
	typ = strings.TrimPrefix(strings.TrimSpace(typ), "?")
	if typ == "" {
		return nil
	}
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range typ {
		switch r {
		case '<', '{', '(':
			depth++
		case '>', '}', ')':
			if depth > 0 {
				depth--
			}
		case '|':
			if depth == 0 {
				out = append(out, typ[start:i])
				start = i + 1
			}
		}
	}
	return append(out, typ[start:])
}

// NormalizeType rewrites an annotation into the TypeExpr form, so "int|null"
// and "null|int" both read "?int".
func NormalizeType(typ string) string {
	typ = strings.TrimSpace(typ)
	return TypeExpr(strings.HasPrefix(typ, "?"), UnionMembers(typ)...)
}

// PrintValue renders a declared default value. Callers only call it when a
// default exists, so nil prints as "null" and never as "".
func PrintValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + x + "'"
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case []any, map[string]any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return fmt.Sprint(x)
		}
		return strings.ReplaceAll(strings.TrimSpace(buf.String()), ",", ", ")
	}
	return fmt.Sprint(v)
}
