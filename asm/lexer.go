package asm

import "strings"

// sourceLine is one normalized logical line: comment stripped, trimmed,
// and split into whitespace-separated tokens. Blank and comment-only lines
// never produce a sourceLine.
type sourceLine struct {
	num    int // 1-based
	tokens []string
}

// lexSource normalizes raw source text into the sequence of logical lines
// described here: strip from the first ';' onward, trim, skip
// lines that are empty afterward, split the remainder on whitespace.
//
// This repo uses byte scanning directly since VM4380 comments are always
// introduced by ';' with no escaping to worry about.
func lexSource(lines []string) []sourceLine {
	out := make([]sourceLine, 0, len(lines))
	for i, raw := range lines {
		stripped := raw
		if idx := strings.IndexByte(raw, ';'); idx >= 0 {
			stripped = raw[:idx]
		}
		stripped = strings.TrimSpace(stripped)
		if stripped == "" {
			continue
		}
		out = append(out, sourceLine{num: i + 1, tokens: strings.Fields(stripped)})
	}
	return out
}

// splitOperands re-splits a joined operand string on ',', trimming each
// piece.
func splitOperands(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
