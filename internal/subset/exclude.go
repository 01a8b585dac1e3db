package subset

import (
	"sort"
	"strings"
)

// Roots reduces leaf paths to the set of their top-level directories:
// "langgraph/guides/streaming.md" contributes "langgraph". Paths without a
// separator (root-level files such as "index.md") contribute the file name
// itself, which harmlessly never collides with a directory exclusion.
// Empty or degenerate paths are skipped, never fatal.
func Roots(paths []string) map[string]struct{} {
	roots := make(map[string]struct{})
	for _, p := range paths {
		root, _, _ := strings.Cut(p, "/")
		if root == "" {
			continue
		}
		roots[root] = struct{}{}
	}
	return roots
}

// DeriveExclusions returns the sorted top-level directories to exclude from
// the build: every member of all that is neither kept nor always kept.
//
// A nil or empty all means the content directory could not be enumerated;
// the result is then empty so the caller proceeds without exclusions rather
// than failing the run.
func DeriveExclusions(kept map[string]struct{}, all []string, alwaysKeep []string) []string {
	if len(all) == 0 {
		return nil
	}

	keep := make(map[string]struct{}, len(alwaysKeep))
	for _, dir := range alwaysKeep {
		keep[dir] = struct{}{}
	}

	var excluded []string
	for _, root := range all {
		if _, ok := kept[root]; ok {
			continue
		}
		if _, ok := keep[root]; ok {
			continue
		}
		excluded = append(excluded, root)
	}
	sort.Strings(excluded)
	return excluded
}

// Patterns renders excluded roots as anchored regular expressions for the
// exclusion plugin. "^<root>/.*" matches everything under the directory and
// nothing under a differently named root that merely shares a prefix:
// excluding "langchain" leaves "langchain-core/..." untouched because the
// pattern requires the separator immediately after the name.
func Patterns(roots []string) []string {
	patterns := make([]string, 0, len(roots))
	for _, root := range roots {
		patterns = append(patterns, "^"+root+"/.*")
	}
	return patterns
}
