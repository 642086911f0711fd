// Package pandoc strips pandoc-style attribute blocks from markdown.
//
// The wiki export carries pandoc attributes like {.class}, {#id} and
// {width="600"} that the MyST parser chokes on. MyST's own brace syntax,
// such as ```{toctree}, always follows a backtick and must be left alone.
package pandoc

import (
	"regexp"
	"strings"
)

var (
	// candidateBlock is any single-line brace block. Whether it is a
	// pandoc attribute is decided by the filters below, since Go's
	// regexp has no lookaround.
	candidateBlock = regexp.MustCompile(`\{[^}\n]+\}`)

	// attrLead matches the tokens that open a pandoc attribute list:
	// a class, an id, or a key= assignment.
	attrLead = regexp.MustCompile(`^(?:[.#]|[a-z]+=)`)
)

// Strip removes every pandoc attribute block from text and returns the
// stripped text with the number of blocks removed. Brace blocks preceded by
// a backtick are directives, not attributes, and survive unchanged.
func Strip(text string) (string, int) {
	var sb strings.Builder
	sb.Grow(len(text))
	count := 0
	last := 0
	// A rejected candidate must not swallow the region it spans: an
	// attribute can start one rune inside it, as in {{.class}}. Resume the
	// scan just past the rejected opening brace instead of past the match.
	for i := 0; i < len(text); {
		loc := candidateBlock.FindStringIndex(text[i:])
		if loc == nil {
			break
		}
		start, end := i+loc[0], i+loc[1]
		if (start > 0 && text[start-1] == '`') || !attrLead.MatchString(text[start+1:end-1]) {
			i = start + 1
			continue
		}
		sb.WriteString(text[last:start])
		last = end
		count++
		i = end
	}
	if count == 0 {
		return text, 0
	}
	sb.WriteString(text[last:])
	return sb.String(), count
}
