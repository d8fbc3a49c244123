// Package docblock parses structured comments ("/** ... */" blocks with
// @tags) into model.DocBlock values.
package docblock

import (
	"strings"
	"unicode"

	"github.com/cmmoran/doctracer/internal/model"
)

// Parse parses a raw structured comment, delimiters included. It never
// fails: an empty comment yields the empty docblock and a malformed tag
// degrades to a generic tag carrying its verbatim text.
func Parse(raw string) model.DocBlock {
	lines := stripComment(raw)
	if len(lines) == 0 {
		return model.DocBlock{}
	}

	var (
		doc model.DocBlock
		i   int
	)
	for i < len(lines) && lines[i] == "" {
		i++
	}

	var summary []string
	for ; i < len(lines); i++ {
		if lines[i] == "" || isTagLine(lines[i]) {
			break
		}
		summary = append(summary, lines[i])
	}
	doc.Summary = strings.Join(summary, "\n")

	// tag lines inside a fenced code block belong to the description
	start, opener := i, -1
	for ; i < len(lines); i++ {
		if opener < 0 && isTagLine(lines[i]) {
			break
		}
		if isFence(lines[i]) {
			if opener < 0 {
				opener = i
			} else {
				opener = -1
			}
		}
	}
	if opener >= 0 {
		// unterminated fence: tags after the opener still split out
		for i = opener; i < len(lines) && !isTagLine(lines[i]); i++ {
		}
	}
	doc.Description = strings.TrimSpace(strings.Join(lines[start:i], "\n"))

	var (
		name string
		body []string
	)
	flush := func() {
		if name != "" {
			doc.Add(parseTag(name, strings.TrimSpace(strings.Join(body, "\n"))))
		}
	}
	for ; i < len(lines); i++ {
		if n, rest, ok := splitTag(lines[i]); ok {
			flush()
			name, body = n, []string{rest}
			continue
		}
		body = append(body, strings.TrimSpace(lines[i]))
	}
	flush()

	return doc
}

// stripComment removes comment delimiters and per-line decoration and
// returns the body lines with trailing whitespace trimmed.
func stripComment(raw string) []string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return nil
	}

	block := strings.HasPrefix(raw, "/*")
	if block {
		// the closing delimiter goes first so "/**/" does not lose its "*"
		raw = strings.TrimSuffix(raw, "*/")
		raw = strings.TrimPrefix(raw, "/**")
		raw = strings.TrimPrefix(raw, "/*")
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case block && strings.HasPrefix(trimmed, "*"):
			line = dropOneSpace(trimmed[1:])
		case !block && strings.HasPrefix(trimmed, "//"):
			line = dropOneSpace(trimmed[2:])
		case block:
			line = trimmed
		}
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func dropOneSpace(s string) string {
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t") {
		return s[1:]
	}
	return s
}

func isFence(line string) bool {
	line = strings.TrimSpace(line)
	return strings.HasPrefix(line, "```") || strings.HasPrefix(line, "~~~")
}

func isTagLine(line string) bool {
	_, _, ok := splitTag(line)
	return ok
}

// splitTag splits "@name rest" into its name and the rest of the line.
func splitTag(line string) (name, rest string, ok bool) {
	line = strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(line, "@") {
		return "", "", false
	}
	end := 1
	for end < len(line) && isTagNameByte(line[end]) {
		end++
	}
	if end == 1 {
		return "", "", false
	}
	return line[1:end], line[end:], true
}

func isTagNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-', b == '_', b == '\\', b == ':':
		return true
	}
	return false
}
