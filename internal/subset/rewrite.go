package subset

import (
	"fmt"
	"sort"
	"strings"

	"docsubset/internal/document"
	"docsubset/internal/nav"
)

// Options parameterises a rewrite. Zero values are not usable; callers build
// Options from the tool configuration.
type Options struct {
	// Section is the resolved canonical section label to keep.
	Section string

	// AlwaysShownMarker keeps any top-level nav entry whose label contains
	// this text (case-insensitive), e.g. "get started".
	AlwaysShownMarker string

	// HomePage keeps any top-level nav entry whose sole leaf is this path,
	// e.g. "index.md".
	HomePage string

	// AlwaysKeep lists content directories that are never excluded
	// (shared assets, snippets, stylesheets, ...).
	AlwaysKeep []string

	// DocsRoots lists the top-level directories under the content root.
	// nil means the listing was unavailable; exclusions are then skipped.
	DocsRoots []string

	// ExcludePlugin is the key of the exclusion plugin entry ("exclude").
	ExcludePlugin string

	// RefPlugin is the key of the API-reference plugin entry
	// ("mkdocstrings").
	RefPlugin string
}

// Result describes what a rewrite kept and excluded, for logging.
type Result struct {
	Matched   string
	KeptRoots []string
	Patterns  []string
}

// Apply rewrites doc in place to describe only the requested section.
//
// The nav is replaced by the always-shown entries followed by the matched
// group; exclusion patterns for unused content directories are merged into
// the exclusion plugin; cross-package reference resolution is switched off.
// On error the document must be discarded, not written.
func Apply(doc *document.Mapping, opts Options) (*Result, error) {
	navValue, ok := doc.Get("nav")
	if !ok {
		return nil, ErrNoNav
	}
	forest, err := nav.Parse(navValue)
	if err != nil {
		return nil, fmt.Errorf("parsing nav: %w", err)
	}

	matched, found := nav.Find(forest, opts.Section)
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, opts.Section)
	}

	newNav := alwaysShown(forest, opts)
	newNav = append(newNav, matched)
	doc.Set("nav", nav.Values(newNav))

	kept := Roots(nav.LeafPaths(newNav...))
	patterns := Patterns(DeriveExclusions(kept, opts.DocsRoots, opts.AlwaysKeep))
	if len(patterns) > 0 {
		mergeExcludePlugin(doc, opts.ExcludePlugin, patterns)
	}

	suppressCrossRefs(doc, opts.RefPlugin)

	return &Result{
		Matched:   matched.Label,
		KeptRoots: sortedKeys(kept),
		Patterns:  patterns,
	}, nil
}

// alwaysShown selects the top-level entries retained regardless of the
// requested section, preserving their relative order: groups whose label
// contains the marker, and entries whose sole leaf is the home page.
func alwaysShown(forest []nav.Node, opts Options) []nav.Node {
	marker := strings.ToLower(opts.AlwaysShownMarker)

	var kept []nav.Node
	for _, n := range forest {
		switch v := n.(type) {
		case nav.Leaf:
			if opts.HomePage != "" && v.Path == opts.HomePage {
				kept = append(kept, v)
			}
		case nav.Group:
			if marker != "" && strings.Contains(strings.ToLower(v.Label), marker) {
				kept = append(kept, v)
				continue
			}
			if leaf, ok := soleLeaf(v); ok && opts.HomePage != "" && leaf.Path == opts.HomePage {
				kept = append(kept, v)
			}
		}
	}
	return kept
}

func soleLeaf(g nav.Group) (nav.Leaf, bool) {
	if len(g.Children) != 1 {
		return nav.Leaf{}, false
	}
	leaf, ok := g.Children[0].(nav.Leaf)
	return leaf, ok
}

// mergeExcludePlugin adds patterns to the exclusion plugin's regex list.
//
// An existing entry keeps its position and its pre-existing patterns; the
// new ones are appended. When no entry exists, a fresh plugin mapping is
// inserted at index 0 so exclusion runs before any plugin that might touch
// the excluded files. A missing plugins key is created on demand.
func mergeExcludePlugin(doc *document.Mapping, pluginKey string, patterns []string) {
	plugins, _ := doc.GetSequence("plugins")

	if entry := findPlugin(plugins, pluginKey); entry != nil {
		cfg := entry.GetMapping(pluginKey)
		if cfg == nil {
			cfg = document.NewMapping()
			entry.Set(pluginKey, cfg)
		}
		regex, _ := cfg.GetSequence("regex")
		for _, p := range patterns {
			regex = append(regex, document.String(p))
		}
		cfg.Set("regex", regex)
		return
	}

	regex := make(document.Sequence, 0, len(patterns))
	for _, p := range patterns {
		regex = append(regex, document.String(p))
	}
	cfg := document.NewMapping()
	cfg.Set("regex", regex)
	entry := document.NewMapping()
	entry.Set(pluginKey, cfg)

	plugins = append(document.Sequence{entry}, plugins...)
	doc.Set("plugins", plugins)
}

// suppressCrossRefs disables cross-package symbol resolution in the
// API-reference plugin. With most sections excluded, preloaded modules and
// inventory lookups would either fail outright or emit links into pages
// that no longer exist. A document without the plugin is left untouched.
func suppressCrossRefs(doc *document.Mapping, pluginKey string) {
	plugins, _ := doc.GetSequence("plugins")
	entry := findPlugin(plugins, pluginKey)
	if entry == nil {
		return
	}
	cfg := entry.GetMapping(pluginKey)
	if cfg == nil {
		return
	}
	handlers := cfg.GetMapping("handlers")
	if handlers == nil {
		return
	}

	for _, h := range handlers.Entries() {
		handler, ok := h.Value.(*document.Mapping)
		if !ok {
			continue
		}
		options := handler.GetMapping("options")
		if options == nil {
			options = document.NewMapping()
			handler.Set("options", options)
		}
		if options.Has("preload_modules") {
			options.Set("preload_modules", document.Sequence{})
		}
		options.Set("signature_crossrefs", document.Bool(false))
		options.Set("show_inheritance_diagram", document.Bool(false))
		options.Set("allow_inspection", document.Bool(false))
		options.Set("enable_inventory", document.Bool(false))
		handler.Set("import", document.Sequence{})
	}
}

// findPlugin returns the single-entry plugin mapping keyed by name, or nil.
// Plugins listed as bare strings have no options to rewrite and are skipped.
func findPlugin(plugins document.Sequence, name string) *document.Mapping {
	for _, item := range plugins {
		m, ok := item.(*document.Mapping)
		if !ok {
			continue
		}
		if m.Has(name) {
			return m
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
