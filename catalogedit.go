// Package catalogedit rewrites single dependency pins inside pnpm-style
// workspace catalog files without disturbing any other byte of the document.
//
// The document is validated and queried through a structural view and
// mutated through the original source bytes, so comments, quoting, blank
// lines, and indentation outside the rewritten token survive verbatim. The
// intended consumer is version-bump tooling whose output gets diffed by
// humans.
package catalogedit

import (
	"fmt"

	gyaml "github.com/goccy/go-yaml"
)

// Upgrade describes one edit: the key path of the entry to change and the
// replacement version string.
//
// Path has the form ["catalog", dep] or ["catalogs", catalogName, dep].
// When Rename is set, the key token of the located pair is rewritten to the
// final path segment as well, keeping its original quoting style.
type Upgrade struct {
	Path     []string
	NewValue string
	Rename   bool
}

// SyntaxError reports source text that is not parseable YAML. This is the
// one failure treated as fatal rather than "not applicable": no fallback
// mechanism can recover from malformed input.
type SyntaxError struct {
	Path string // file path, when known
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("catalogedit: %s: invalid YAML: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("catalogedit: invalid YAML: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type config struct {
	filePath    string
	reportError func(error)
}

// Option configures a single call. Calls are otherwise stateless.
type Option func(*config)

// WithFilePath attaches a file path to syntax errors for caller-side
// reporting.
func WithFilePath(path string) Option {
	return func(c *config) { c.filePath = path }
}

// WithErrorReporter routes syntax errors to fn instead of returning them;
// the call itself then reports "not applicable". Use this when a central
// error sink formats parse failures for the user.
func WithErrorReporter(fn func(error)) Option {
	return func(c *config) { c.reportError = fn }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// UpdateCatalogDependency rewrites the version pinned at upgrade.Path inside
// fileContent and returns the patched text.
//
// The return contract is three-way:
//   - the input bytes, verbatim, when the entry already has the requested
//     value (a true no-op),
//   - rewritten text on a successful mutation,
//   - (nil, nil) when this mechanism does not apply: the path is not
//     catalog-shaped, the document is not a catalog workspace, the entry does
//     not exist, or its value cannot be substituted in place (for example an
//     alias).
//
// Only malformed YAML produces an error, carrying the configured file path;
// with WithErrorReporter installed the error goes to the reporter and the
// call returns (nil, nil).
func UpdateCatalogDependency(fileContent []byte, upgrade Upgrade, opts ...Option) ([]byte, error) {
	if !validUpgradePath(upgrade.Path) {
		return nil, nil
	}
	cfg := newConfig(opts)

	doc, err := parseDocument(fileContent, cfg.filePath)
	if err != nil {
		if cfg.reportError != nil {
			cfg.reportError(err)
			return nil, nil
		}
		return nil, err
	}
	if doc == nil || !validWorkspaceShape(doc.plain) {
		return nil, nil
	}

	if cur, ok := currentValueAt(doc.plain, upgrade.Path); ok && cur == upgrade.NewValue && !upgrade.Rename {
		return fileContent, nil
	}

	newName := ""
	if upgrade.Rename {
		newName = upgrade.Path[len(upgrade.Path)-1]
	}
	patches, ok := mutate(doc, upgrade.Path, newName, upgrade.NewValue)
	if !ok {
		return nil, nil
	}
	out, ok := doc.render(patches)
	if !ok {
		return nil, nil
	}
	return out, nil
}

// ReadCatalogDependency returns the version currently pinned at path. The
// boolean is false when the path does not resolve to a string entry. Error
// semantics match UpdateCatalogDependency.
func ReadCatalogDependency(fileContent []byte, path []string, opts ...Option) (string, bool, error) {
	if !validUpgradePath(path) {
		return "", false, nil
	}
	cfg := newConfig(opts)

	doc, err := parseDocument(fileContent, cfg.filePath)
	if err != nil {
		if cfg.reportError != nil {
			cfg.reportError(err)
			return "", false, nil
		}
		return "", false, err
	}
	if doc == nil || !validWorkspaceShape(doc.plain) {
		return "", false, nil
	}
	v, ok := currentValueAt(doc.plain, path)
	return v, ok, nil
}

// Workspace is the decoded plain-value form of a workspace file, for callers
// that only need the pinned versions. Aliases are resolved during decoding.
type Workspace struct {
	Catalog  map[string]string            `yaml:"catalog"`
	Catalogs map[string]map[string]string `yaml:"catalogs"`
}

// DecodeWorkspace decodes fileContent into a Workspace.
func DecodeWorkspace(fileContent []byte) (*Workspace, error) {
	var ws Workspace
	if err := gyaml.Unmarshal(fileContent, &ws); err != nil {
		return nil, fmt.Errorf("catalogedit: failed to decode workspace: %w", err)
	}
	return &ws, nil
}
