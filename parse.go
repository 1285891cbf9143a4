package catalogedit

import (
	gyaml "github.com/goccy/go-yaml"
	"gopkg.in/yaml.v3"
)

// parseDocument builds both views of the source text from one pass over the
// same bytes.
//
// A yaml.v3 parse failure means the input is not YAML at all and comes back
// as a *SyntaxError. Well-formed YAML whose top level is not a mapping is a
// shape problem, not a syntax problem, and is reported as (nil, nil) so the
// caller can treat the file as "not applicable" rather than broken.
func parseDocument(data []byte, filePath string) (*document, error) {
	var tree yaml.Node
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &SyntaxError{Path: filePath, Err: err}
	}
	if tree.Kind != yaml.DocumentNode || len(tree.Content) == 0 || tree.Content[0].Kind != yaml.MappingNode {
		return nil, nil
	}

	// The ordered decode keeps duplicate keys and document order, which is
	// what lets lookup agree with the structural scan (last occurrence wins
	// in both views).
	var plain gyaml.MapSlice
	if err := gyaml.UnmarshalWithOptions(data, &plain, gyaml.UseOrderedMap(), gyaml.AllowDuplicateMapKey()); err != nil {
		return nil, nil
	}

	return &document{
		root:        tree.Content[0],
		plain:       plain,
		original:    data,
		lineOffsets: buildLineOffsets(data),
	}, nil
}
