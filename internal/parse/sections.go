// Package parse extracts structured fields from free-form LLM completions.
// The section labels and fencing scanned for here are the wire contract
// declared by the prompt templates; the two sides change together.
//
// Every extractor is a best-effort scan: a missing section yields a zero
// value, never an error. Only JSON corruption inside a located section is
// caught, and it degrades to an empty result.
package parse

import "strings"

// indexAfterLabel returns the offset just past "<label>:" in text, matched
// case-insensitively, or -1 when the label is absent. An optional numeric
// prefix such as "2. " before the label is covered because the search is a
// plain substring match on the label itself.
func indexAfterLabel(text, label string) int {
	needle := strings.ToLower(label) + ":"
	idx := strings.Index(strings.ToLower(text), needle)
	if idx < 0 {
		return -1
	}
	return idx + len(needle)
}

// labeledLine returns the remainder of the line following "<label>:",
// trimmed, or "" when the label is absent.
func labeledLine(text, label string) string {
	pos := indexAfterLabel(text, label)
	if pos < 0 {
		return ""
	}
	rest := text[pos:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// section returns the text following "<label>:" up to the next numbered
// heading ("\n2. Something:") or end of input, trimmed.
func section(text, label string) string {
	pos := indexAfterLabel(text, label)
	if pos < 0 {
		return ""
	}
	body := text[pos:]
	if end := nextNumberedHeading(body); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// nextNumberedHeading finds the offset of the next "N. " heading at a line
// start, or -1.
func nextNumberedHeading(text string) int {
	offset := 0
	for {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			return -1
		}
		lineStart := offset + nl + 1
		if isNumberedHeading(text[lineStart:]) {
			return lineStart
		}
		offset = lineStart
	}
}

func isNumberedHeading(line string) bool {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > start && i < len(line) && line[i] == '.'
}

// fencedBlock returns the contents of the first ``` fenced block in text,
// with any language tag on the opening fence dropped, trimmed. ok is false
// when no complete fence exists.
func fencedBlock(text string) (string, bool) {
	open := strings.Index(text, "```")
	if open < 0 {
		return "", false
	}
	rest := text[open+3:]
	// optional language tag up to end of line
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if !strings.Contains(tag, "```") && len(tag) <= 20 {
			rest = rest[nl+1:]
		}
	}
	closing := strings.Index(rest, "```")
	if closing < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:closing]), true
}

// bracketed returns the contents of the first [...] span in text, without
// the brackets, or "" when none exists.
func bracketed(text string) string {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return ""
	}
	closing := strings.IndexByte(text[open:], ']')
	if closing < 0 {
		return ""
	}
	return text[open+1 : open+closing]
}

// balancedBraces returns the first balanced {...} span in text, or "".
func balancedBraces(text string) string {
	start := -1
	depth := 0
	for i, ch := range text {
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					return text[start : i+1]
				}
			}
		}
	}
	return ""
}
