package nav

import (
	"reflect"
	"testing"

	"docsubset/internal/document"
)

const sampleNav = `nav:
  - Get started: index.md
  - LangGraph:
      - langgraph/index.md
      - Guides:
          - langgraph/guides/streaming.md
  - LangSmith:
      - langsmith/index.md
      - Observability:
          - LangGraph:
              - langsmith/langgraph/index.md
`

func parseSample(t *testing.T, text string) []Node {
	t.Helper()
	doc, err := document.NewCodec().Decode([]byte(text))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	navValue, ok := doc.Get("nav")
	if !ok {
		t.Fatal("nav key missing")
	}
	forest, err := Parse(navValue)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return forest
}

func TestParse_Shapes(t *testing.T) {
	forest := parseSample(t, sampleNav)

	if len(forest) != 3 {
		t.Fatalf("parsed %d top-level nodes, want 3", len(forest))
	}

	home, ok := forest[0].(Group)
	if !ok || home.Label != "Get started" {
		t.Fatalf("node 0 = %#v, want group 'Get started'", forest[0])
	}
	if len(home.Children) != 1 {
		t.Fatalf("'Get started' has %d children, want 1", len(home.Children))
	}
	if leaf, ok := home.Children[0].(Leaf); !ok || leaf.Path != "index.md" {
		t.Errorf("'Get started' child = %#v, want leaf index.md", home.Children[0])
	}

	lg := forest[1].(Group)
	if lg.Label != "LangGraph" || len(lg.Children) != 2 {
		t.Errorf("LangGraph group = %#v", lg)
	}
}

func TestParse_RejectsBadShapes(t *testing.T) {
	if _, err := Parse(document.String("index.md")); err == nil {
		t.Error("Parse() of a bare scalar should fail")
	}
	if _, err := Parse(document.Sequence{document.Tagged{Tag: "!ENV", Text: "X"}}); err == nil {
		t.Error("Parse() of a tagged nav item should fail")
	}
}

func TestFind_ShallowestMatchWins(t *testing.T) {
	forest := parseSample(t, sampleNav)

	// "LangGraph" exists at depth 1 and nested under LangSmith at depth 3;
	// the depth-1 group must win.
	got, ok := Find(forest, "LangGraph")
	if !ok {
		t.Fatal("Find() = not found")
	}
	if len(got.Children) != 2 {
		t.Errorf("Find() returned the nested group: %#v", got)
	}
	paths := LeafPaths(got)
	if paths[0] != "langgraph/index.md" {
		t.Errorf("Find() matched wrong group, first leaf = %q", paths[0])
	}
}

func TestFind_CaseInsensitive(t *testing.T) {
	forest := parseSample(t, sampleNav)

	upper, okUpper := Find(forest, "LANGGRAPH")
	lower, okLower := Find(forest, "langgraph")
	if !okUpper || !okLower {
		t.Fatal("Find() should match regardless of case")
	}
	if !reflect.DeepEqual(upper, lower) {
		t.Error("case variants matched different groups")
	}
}

func TestFind_NotFound(t *testing.T) {
	forest := parseSample(t, sampleNav)

	if _, ok := Find(forest, "no-such-section"); ok {
		t.Error("Find() = found, want not found")
	}
	if _, ok := Find(nil, "anything"); ok {
		t.Error("Find() on an empty forest should report not found")
	}
}

func TestLeafPaths_Complete(t *testing.T) {
	forest := parseSample(t, sampleNav)

	got := LeafPaths(forest...)
	want := []string{
		"index.md",
		"langgraph/index.md",
		"langgraph/guides/streaming.md",
		"langsmith/index.md",
		"langsmith/langgraph/index.md",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LeafPaths() = %v, want %v", got, want)
	}
}

func TestLeafPaths_KeepsDuplicates(t *testing.T) {
	forest := []Node{
		Group{Label: "A", Children: []Node{Leaf{Path: "a/index.md"}, Leaf{Path: "a/index.md"}}},
	}
	got := LeafPaths(forest...)
	if len(got) != 2 {
		t.Errorf("LeafPaths() = %v, want duplicate preserved", got)
	}
}

func TestValues_RoundTrip(t *testing.T) {
	forest := parseSample(t, sampleNav)

	back, err := Parse(Values(forest))
	if err != nil {
		t.Fatalf("Parse(Values()) error = %v", err)
	}
	if !reflect.DeepEqual(LeafPaths(back...), LeafPaths(forest...)) {
		t.Error("Values()/Parse() round trip changed the leaf set")
	}
	if !reflect.DeepEqual(back, forest) {
		t.Errorf("Values()/Parse() round trip changed the tree\n got %#v\nwant %#v", back, forest)
	}
}
