package catalogedit

import (
	"strings"
	"unicode/utf8"
)

func buildLineOffsets(b []byte) []int {
	offsets := []int{0}
	for i, c := range b {
		if c == '\n' && i+1 < len(b) {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// offsetFor converts yaml.v3's 1-based line/column into a byte offset.
// Columns count characters, not bytes, so the line prefix is walked rune by
// rune; a multi-byte key earlier on the line must not shift the span.
func offsetFor(b []byte, lineOffsets []int, line, col int) int {
	if line <= 0 || col <= 0 || line > len(lineOffsets) {
		return -1
	}
	off := lineOffsets[line-1]
	for n := col - 1; n > 0; n-- {
		if off >= len(b) || b[off] == '\n' {
			return -1
		}
		_, size := utf8.DecodeRune(b[off:])
		off += size
	}
	return off
}

// findLineEnd returns the offset of the '\n' ending the line containing
// 'from', or len(b)-1 when the final line has no trailing newline.
func findLineEnd(b []byte, from int) int {
	if from < 0 {
		return 0
	}
	for i := from; i < len(b); i++ {
		if b[i] == '\n' {
			return i
		}
	}
	return len(b) - 1
}

// findScalarEndOnLine returns the end (exclusive) of the scalar token that
// starts at 'pos', scanning only within the current line:
//   - single-quoted tokens end at the closing quote ('' escapes a quote)
//   - double-quoted tokens end at the closing quote (backslash escapes)
//   - bare tokens end at the first '#' or end-of-line, with trailing
//     whitespace (including a CR on CRLF input) trimmed
//
// Inside a flow collection a bare token additionally ends at ',', '}' or
// ']', which belong to the enclosing collection, not the token.
func findScalarEndOnLine(b []byte, pos int, flow bool) int {
	if pos < 0 || pos >= len(b) {
		return pos
	}
	le := findLineEnd(b, pos)
	scanLimit := le
	if b[le] != '\n' {
		// final line without newline
		scanLimit = le + 1
	}

	if b[pos] == '\'' {
		i := pos + 1
		for i < scanLimit {
			if b[i] == '\'' {
				if i+1 < scanLimit && b[i+1] == '\'' {
					i += 2
					continue
				}
				return i + 1
			}
			i++
		}
		return scanLimit
	}
	if b[pos] == '"' {
		i := pos + 1
		esc := false
		for i < scanLimit {
			if esc {
				esc = false
				i++
				continue
			}
			switch b[i] {
			case '\\':
				esc = true
			case '"':
				return i + 1
			}
			i++
		}
		return scanLimit
	}

	j := pos
	for j < scanLimit && b[j] != '#' {
		if flow && (b[j] == ',' || b[j] == '}' || b[j] == ']') {
			break
		}
		j++
	}
	for j > pos && (b[j-1] == ' ' || b[j-1] == '\t' || b[j-1] == '\r') {
		j--
	}
	return j
}

// findKeyEndOnLine returns the end (exclusive) of the mapping key token that
// starts at 'pos'. Quoted keys end at the closing quote; bare keys end at the
// ':' separating key from value.
func findKeyEndOnLine(b []byte, pos int) int {
	if pos < 0 || pos >= len(b) {
		return pos
	}
	if b[pos] == '\'' || b[pos] == '"' {
		return findScalarEndOnLine(b, pos, false)
	}
	limit := findLineEnd(b, pos)
	if b[limit] != '\n' {
		limit++
	}
	j := pos
	for j < limit {
		if b[j] == ':' && (j+1 >= limit || b[j+1] == ' ' || b[j+1] == '\t' || b[j+1] == '\r') {
			break
		}
		j++
	}
	for j > pos && (b[j-1] == ' ' || b[j-1] == '\t') {
		j--
	}
	return j
}

var yamlBareDisallowed = map[string]struct{}{
	"true": {}, "false": {}, "True": {}, "False": {},
	"yes": {}, "no": {}, "Yes": {}, "No": {},
	"on": {}, "off": {}, "On": {}, "Off": {},
	"null": {}, "Null": {}, "NULL": {}, "~": {},
}

func isSafeBareString(s string) bool {
	if _, bad := yamlBareDisallowed[s]; bad {
		return false
	}
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', ':', '#', '{', '}', '[', ']', ',', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
			return false
		}
	}
	return true
}

// stringReplacementToken renders newVal in the quoting style of the token it
// replaces. A previously bare token stays bare when the new value is safe to
// write bare; otherwise it gets double quotes.
func stringReplacementToken(oldTok []byte, newVal string) []byte {
	if len(oldTok) > 0 && oldTok[0] == '\'' {
		return []byte("'" + strings.ReplaceAll(newVal, "'", "''") + "'")
	}
	if len(oldTok) > 0 && oldTok[0] == '"' {
		return []byte(`"` + escapeDoubleQuotes(newVal) + `"`)
	}
	if string(oldTok) == newVal {
		return append([]byte(nil), oldTok...)
	}
	if isSafeBareString(newVal) {
		return []byte(newVal)
	}
	return []byte(`"` + escapeDoubleQuotes(newVal) + `"`)
}

func escapeDoubleQuotes(s string) string {
	repl := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
	)
	return repl.Replace(s)
}
