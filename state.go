package catalogedit

import (
	"bytes"
	"sort"

	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// document binds the two synchronized views of one parsed workspace file.
//
// The structural view (root) is a yaml.v3 node tree carrying exact line and
// column positions for every token. The plain-value view (plain) is an
// ordered mapping used for shape validation and value lookup; it loses
// formatting, so it is never rendered. Edits reach the output exclusively as
// byte-span patches against original, and every span is derived from the
// position of the structural node that was located. That derivation is what
// keeps the two views pointing at the same underlying pair.
//
// A document lives for exactly one call: parsed fresh, mutated at most once,
// then discarded.
type document struct {
	root        *yaml.Node     // top-level mapping of the structural view
	plain       gyaml.MapSlice // ordered plain-value view
	original    []byte         // exact source bytes backing the token view
	lineOffsets []int          // starting offset of each line in original
}

// span is a half-open byte range [start, end) into document.original.
type span struct {
	start int
	end   int
}

// patch replaces original[start:end] with data when the document is rendered.
type patch struct {
	span
	data []byte
}

// render applies the patches to the original bytes. Everything outside the
// patched spans is copied through byte-for-byte, so comments, blank lines,
// quoting, and indentation survive untouched.
func (d *document) render(patches []patch) ([]byte, bool) {
	sort.SliceStable(patches, func(i, j int) bool {
		if patches[i].start == patches[j].start {
			return patches[i].end < patches[j].end
		}
		return patches[i].start < patches[j].start
	})

	var buf bytes.Buffer
	cursor := 0
	for _, p := range patches {
		if p.start < cursor || p.end < p.start || p.end > len(d.original) {
			return nil, false
		}
		buf.Write(d.original[cursor:p.start])
		buf.Write(p.data)
		cursor = p.end
	}
	if cursor < len(d.original) {
		buf.Write(d.original[cursor:])
	}
	return buf.Bytes(), true
}
