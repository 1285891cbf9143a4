package catalogedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindScalarEndOnLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		pos  int
		flow bool
		want string
	}{
		{"bare", "  lodash: ^4.17.0\n", 10, false, "^4.17.0"},
		{"bare with comment", "  react: ^17.0.0 # pinned\n", 9, false, "^17.0.0"},
		{"bare at eof without newline", "  lodash: ^4.17.0", 10, false, "^4.17.0"},
		{"bare with crlf", "  lodash: ^4.17.0\r\n", 10, false, "^4.17.0"},
		{"single quoted", "  react: '17.0.0'\n", 9, false, "'17.0.0'"},
		{"single quoted with escape", "  a: 'it''s'\n", 5, false, "'it''s'"},
		{"double quoted", `  express: "4.18.0"   # pinned` + "\n", 11, false, `"4.18.0"`},
		{"double quoted with escape", `  a: "x\"y"` + "\n", 5, false, `"x\"y"`},
		{"flow bare before comma", "catalog: { lodash: ^4.0.0, react: ^17.0.0 }\n", 19, true, "^4.0.0"},
		{"flow bare before closing brace", "catalog: { lodash: ^4.0.0, react: ^17.0.0 }\n", 34, true, "^17.0.0"},
		{"flow bare before closing bracket", "xs: [^1.0.0]\n", 5, true, "^1.0.0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := []byte(tc.line)
			end := findScalarEndOnLine(b, tc.pos, tc.flow)
			assert.Equal(t, tc.want, string(b[tc.pos:end]))
		})
	}
}

func TestFindKeyEndOnLine(t *testing.T) {
	cases := []struct {
		name string
		line string
		pos  int
		want string
	}{
		{"bare key", "  lodash: ^4.17.0\n", 2, "lodash"},
		{"bare key without value", "catalogs:\n", 0, "catalogs"},
		{"double quoted key", `  "lodash": ^4.17.0` + "\n", 2, `"lodash"`},
		{"single quoted key", "  'react-dom': ^17.0.0\n", 2, "'react-dom'"},
		{"quoted scoped package name", "  '@types/node': ^20.0.0\n", 2, "'@types/node'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := []byte(tc.line)
			end := findKeyEndOnLine(b, tc.pos)
			assert.Equal(t, tc.want, string(b[tc.pos:end]))
		})
	}
}

func TestStringReplacementToken(t *testing.T) {
	cases := []struct {
		name string
		old  string
		new  string
		want string
	}{
		{"bare stays bare", "^4.17.0", "^4.17.21", "^4.17.21"},
		{"bare unchanged text kept", "^4.17.0", "^4.17.0", "^4.17.0"},
		{"bare to unsafe gets double quotes", "^4.17.0", ">=4 <5", `">=4 <5"`},
		{"double quoted stays double quoted", `"4.18.0"`, "4.18.2", `"4.18.2"`},
		{"single quoted stays single quoted", "'17.0.0'", "17.0.2", "'17.0.2'"},
		{"single quote escaping", "'a'", "it's", "'it''s'"},
		{"backslash escaping in double quotes", `"a"`, `pkgs\x`, `"pkgs\\x"`},
		{"reserved word gets quoted", "^1.0.0", "null", `"null"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, string(stringReplacementToken([]byte(tc.old), tc.new)))
		})
	}
}

func TestMutateResolvesOnlyMappingParents(t *testing.T) {
	doc, err := parseDocument([]byte("catalog:\n  lodash: ^4.17.0\ncatalogs: plain\n"), "")
	require.NoError(t, err)
	require.NotNil(t, doc)

	// "catalogs" is a scalar, not a container.
	_, ok := mutate(doc, []string{"catalogs", "react17", "react"}, "", "^17.0.0")
	assert.False(t, ok)

	// Resolvable parent, present leaf.
	patches, ok := mutate(doc, []string{"catalog", "lodash"}, "", "^4.17.21")
	require.True(t, ok)
	require.Len(t, patches, 1)
	out, ok := doc.render(patches)
	require.True(t, ok)
	assert.Contains(t, string(out), "lodash: ^4.17.21")
}

func TestRenameAndValueProduceTwoPatches(t *testing.T) {
	doc, err := parseDocument([]byte("catalog:\n  lodash: ^4.17.0\n"), "")
	require.NoError(t, err)
	require.NotNil(t, doc)

	patches, ok := mutate(doc, []string{"catalog", "lodash"}, "lodash", "^4.17.21")
	require.True(t, ok)
	require.Len(t, patches, 2)

	out, ok := doc.render(patches)
	require.True(t, ok)
	assert.Equal(t, "catalog:\n  lodash: ^4.17.21\n", string(out))
}

func TestRenderRejectsOverlappingPatches(t *testing.T) {
	doc := &document{original: []byte("catalog:\n  lodash: ^4.17.0\n")}
	patches := []patch{
		{span: span{start: 12, end: 20}, data: []byte("x")},
		{span: span{start: 18, end: 24}, data: []byte("y")},
	}
	if _, ok := doc.render(patches); ok {
		t.Fatalf("overlapping spans must not render")
	}
}

func TestRenderWithoutPatchesIsIdentity(t *testing.T) {
	in := []byte("catalog:\n  lodash: ^4.17.0\n")
	doc := &document{original: in}
	out, ok := doc.render(nil)
	require.True(t, ok)
	assert.Equal(t, in, out)
}
