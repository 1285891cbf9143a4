package catalogedit

import "gopkg.in/yaml.v3"

// mutate locates the key/value pair at path in the structural view and turns
// the requested edits into byte patches against the token view. newName is
// optional (empty means no rename); the value substitution is always
// requested. It reports failure when the path does not resolve to a pair or
// when the value token cannot be substituted in place.
func mutate(doc *document, path []string, newName, newValue string) ([]patch, bool) {
	parent := resolveMapping(doc.root, path[:len(path)-1])
	if parent == nil {
		return nil, false
	}
	key, value := locatePair(parent, path[len(path)-1])
	if key == nil {
		return nil, false
	}

	flow := parent.Style&yaml.FlowStyle != 0

	var patches []patch
	if newName != "" {
		p, ok := keyPatch(doc, key, newName)
		if !ok {
			return nil, false
		}
		patches = append(patches, p)
	}
	p, ok := valuePatch(doc, value, newValue, flow)
	if !ok {
		return nil, false
	}
	return append(patches, p), true
}

// resolveMapping walks mapping keys from the top-level mapping down to the
// container that should hold the leaf pair. Scalar and alias values along the
// way do not resolve: an aliased catalog group lives under its anchor, not
// here.
func resolveMapping(root *yaml.Node, path []string) *yaml.Node {
	cur := root
	for _, seg := range path {
		if cur == nil || cur.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(cur.Content); i += 2 {
			k := cur.Content[i]
			if k.Kind == yaml.ScalarNode && k.Value == seg {
				next = cur.Content[i+1]
			}
		}
		cur = next
	}
	if cur == nil || cur.Kind != yaml.MappingNode {
		return nil
	}
	return cur
}

// locatePair scans the mapping's direct pairs for a scalar key whose text is
// exactly key. The last occurrence wins, matching plainValue's lookup
// semantics for duplicate keys.
func locatePair(m *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	var k, v *yaml.Node
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Kind == yaml.ScalarNode && m.Content[i].Value == key {
			k, v = m.Content[i], m.Content[i+1]
		}
	}
	return k, v
}

// keyPatch rewrites the key token in place, re-using its quoting style.
// The new name's legality is the caller's responsibility.
func keyPatch(doc *document, key *yaml.Node, newName string) (patch, bool) {
	start := offsetFor(doc.original, doc.lineOffsets, key.Line, key.Column)
	if start < 0 || start >= len(doc.original) {
		return patch{}, false
	}
	end := findKeyEndOnLine(doc.original, start)
	if end <= start {
		return patch{}, false
	}
	tok := stringReplacementToken(doc.original[start:end], newName)
	return patch{span: span{start: start, end: end}, data: tok}, true
}

// valuePatch rewrites the value token in place. Aliases are refused:
// substituting an alias's text would either rewrite the shared anchor,
// changing every other reference to it, or desynchronize the alias from its
// anchor. Anchor-defining scalars are refused for the same sharing reason,
// and block scalars because their text is not a single in-line token. flow
// tells the bare-token scan that ',' and the closing bracket end the token.
func valuePatch(doc *document, value *yaml.Node, newValue string, flow bool) (patch, bool) {
	if value == nil || value.Kind != yaml.ScalarNode || value.Anchor != "" {
		return patch{}, false
	}
	if value.Style == yaml.LiteralStyle || value.Style == yaml.FoldedStyle {
		return patch{}, false
	}
	start := offsetFor(doc.original, doc.lineOffsets, value.Line, value.Column)
	if start < 0 || start >= len(doc.original) {
		return patch{}, false
	}
	end := findScalarEndOnLine(doc.original, start, flow)
	if end <= start {
		return patch{}, false
	}
	tok := stringReplacementToken(doc.original[start:end], newValue)
	return patch{span: span{start: start, end: end}, data: tok}, true
}
