package subset

import (
	"errors"
	"reflect"
	"testing"

	"docsubset/internal/document"
	"docsubset/internal/nav"
)

const rewriteConfig = `site_name: Reference Docs
nav:
  - Get started: index.md
  - LangChain:
      - langchain/index.md
  - LangGraph:
      - langgraph/index.md
      - Guides:
          - langgraph/guides/streaming.md
plugins:
  - search
  - mkdocstrings:
      handlers:
        python:
          options:
            preload_modules:
              - corelib
              - extralib
            show_source: true
`

func decodeDoc(t *testing.T, text string) *document.Mapping {
	t.Helper()
	doc, err := document.NewCodec().Decode([]byte(text))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return doc
}

func defaultOptions() Options {
	return Options{
		Section:           "langgraph",
		AlwaysShownMarker: "get started",
		HomePage:          "index.md",
		AlwaysKeep:        []string{"static", "_snippets"},
		DocsRoots:         []string{"langchain", "langgraph", "langsmith", "static"},
		ExcludePlugin:     "exclude",
		RefPlugin:         "mkdocstrings",
	}
}

func TestApply_NavReplacement(t *testing.T) {
	doc := decodeDoc(t, rewriteConfig)

	result, err := Apply(doc, defaultOptions())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if result.Matched != "LangGraph" {
		t.Errorf("Matched = %q, want LangGraph", result.Matched)
	}

	navValue, _ := doc.Get("nav")
	forest, err := nav.Parse(navValue)
	if err != nil {
		t.Fatalf("Parse() of rewritten nav error = %v", err)
	}
	if len(forest) != 2 {
		t.Fatalf("rewritten nav has %d entries, want 2", len(forest))
	}
	first := forest[0].(nav.Group)
	if first.Label != "Get started" {
		t.Errorf("entry 0 = %q, want the always-shown entry first", first.Label)
	}
	last := forest[1].(nav.Group)
	if last.Label != "LangGraph" {
		t.Errorf("entry 1 = %q, want the matched section last", last.Label)
	}
}

func TestApply_SectionNotFoundIsFatal(t *testing.T) {
	doc := decodeDoc(t, rewriteConfig)
	opts := defaultOptions()
	opts.Section = "nonexistent"

	_, err := Apply(doc, opts)
	if !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("Apply() error = %v, want ErrSectionNotFound", err)
	}
}

func TestApply_MissingNavIsFatal(t *testing.T) {
	doc := decodeDoc(t, "site_name: Docs\n")
	_, err := Apply(doc, defaultOptions())
	if !errors.Is(err, ErrNoNav) {
		t.Errorf("Apply() error = %v, want ErrNoNav", err)
	}
}

func TestApply_InsertsExcludePluginAtHead(t *testing.T) {
	doc := decodeDoc(t, rewriteConfig)

	result, err := Apply(doc, defaultOptions())
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	want := []string{"^langchain/.*", "^langsmith/.*"}
	if !reflect.DeepEqual(result.Patterns, want) {
		t.Errorf("Patterns = %v, want %v", result.Patterns, want)
	}

	plugins, _ := doc.GetSequence("plugins")
	if len(plugins) != 3 {
		t.Fatalf("plugins has %d entries, want 3", len(plugins))
	}
	head, ok := plugins[0].(*document.Mapping)
	if !ok || !head.Has("exclude") {
		t.Fatalf("plugins[0] = %#v, want the exclude plugin at index 0", plugins[0])
	}
	if s, ok := plugins[1].(document.Scalar); !ok || s.Text != "search" {
		t.Errorf("plugins[1] = %#v, pre-existing order not preserved", plugins[1])
	}

	regex, _ := head.GetMapping("exclude").GetSequence("regex")
	if got := scalarTexts(regex); !reflect.DeepEqual(got, want) {
		t.Errorf("regex = %v, want %v", got, want)
	}
}

func TestApply_MergePreservesExistingPatterns(t *testing.T) {
	doc := decodeDoc(t, `nav:
  - LangGraph:
      - langgraph/index.md
plugins:
  - search
  - exclude:
      regex:
        - ^foo/.*
`)
	opts := defaultOptions()
	opts.DocsRoots = []string{"langgraph", "bar"}

	if _, err := Apply(doc, opts); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	plugins, _ := doc.GetSequence("plugins")
	if len(plugins) != 2 {
		t.Fatalf("plugins has %d entries, want 2 (no new entry inserted)", len(plugins))
	}
	entry := plugins[1].(*document.Mapping)
	regex, _ := entry.GetMapping("exclude").GetSequence("regex")
	want := []string{"^foo/.*", "^bar/.*"}
	if got := scalarTexts(regex); !reflect.DeepEqual(got, want) {
		t.Errorf("regex = %v, want existing patterns kept and new ones appended: %v", got, want)
	}
}

func TestApply_DegradedDirectoryListing(t *testing.T) {
	doc := decodeDoc(t, rewriteConfig)
	opts := defaultOptions()
	opts.DocsRoots = nil

	result, err := Apply(doc, opts)
	if err != nil {
		t.Fatalf("Apply() error = %v, want graceful degradation", err)
	}
	if len(result.Patterns) != 0 {
		t.Errorf("Patterns = %v, want none without a directory listing", result.Patterns)
	}

	plugins, _ := doc.GetSequence("plugins")
	if findPlugin(plugins, "exclude") != nil {
		t.Error("exclude plugin should not be added when there is nothing to exclude")
	}
}

func TestApply_SuppressesCrossRefs(t *testing.T) {
	doc := decodeDoc(t, rewriteConfig)

	if _, err := Apply(doc, defaultOptions()); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	plugins, _ := doc.GetSequence("plugins")
	handler := findPlugin(plugins, "mkdocstrings").
		GetMapping("mkdocstrings").
		GetMapping("handlers").
		GetMapping("python")

	options := handler.GetMapping("options")
	preload, _ := options.GetSequence("preload_modules")
	if len(preload) != 0 {
		t.Errorf("preload_modules = %v, want emptied", preload)
	}
	for _, flag := range []string{
		"signature_crossrefs",
		"show_inheritance_diagram",
		"allow_inspection",
		"enable_inventory",
	} {
		v, ok := options.Get(flag)
		if !ok {
			t.Errorf("option %s not set", flag)
			continue
		}
		if s := v.(document.Scalar); s.Text != "false" {
			t.Errorf("option %s = %q, want false", flag, s.Text)
		}
	}
	if imports, _ := handler.GetSequence("import"); len(imports) != 0 {
		t.Errorf("import = %v, want cleared", imports)
	}
	// Unrelated options survive.
	if v, ok := options.Get("show_source"); !ok {
		t.Error("unrelated option show_source was dropped")
	} else if s := v.(document.Scalar); s.Text != "true" {
		t.Errorf("show_source = %q, want true", s.Text)
	}
}

func TestApply_NoRefPluginIsNoop(t *testing.T) {
	doc := decodeDoc(t, `nav:
  - LangGraph:
      - langgraph/index.md
`)
	opts := defaultOptions()
	opts.DocsRoots = []string{"langgraph", "langchain"}

	if _, err := Apply(doc, opts); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	// The plugins key is created on demand for the exclusion entry.
	plugins, ok := doc.GetSequence("plugins")
	if !ok || len(plugins) != 1 {
		t.Fatalf("plugins = %#v, want just the exclude entry", plugins)
	}
}

func scalarTexts(seq document.Sequence) []string {
	var texts []string
	for _, v := range seq {
		if s, ok := v.(document.Scalar); ok {
			texts = append(texts, s.Text)
		}
	}
	return texts
}
