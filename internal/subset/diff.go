package subset

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// summaryLimit caps the number of changed lines rendered by Summary so a
// heavily rewritten document does not flood the terminal.
const summaryLimit = 120

// Summary renders a line-level diff between the original and generated
// configuration text, with changed lines prefixed by "-" and "+". Unchanged
// regions are collapsed. Returns the empty string when nothing changed.
func Summary(before, after []byte) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	count := 0
	truncated := false

	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range splitLines(d.Text) {
			if count >= summaryLimit {
				truncated = true
				break
			}
			sb.WriteString(prefix)
			sb.WriteString(" ")
			sb.WriteString(line)
			sb.WriteString("\n")
			count++
		}
	}

	if truncated {
		sb.WriteString("... (summary truncated)\n")
	}
	return sb.String()
}

func splitLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}
