// Package content owns the two content-level concerns of a merge: deciding
// whether an existing file carries real work (IsMeaningful) and producing
// boilerplate for files that are being created or repopulated (Provider).
package content

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)^\s*//.*$`)
	hashCommentRe  = regexp.MustCompile(`(?m)^\s*#.*$`)
	htmlCommentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// emptyIdioms is the closed list of "placeholder shapes" that do not count
// as content even though they are syntactically non-empty. Matched against
// the whole comment-stripped, trimmed text.
var emptyIdioms = []*regexp.Regexp{
	regexp.MustCompile(`^\{\s*\}$`),                                  // empty object literal
	regexp.MustCompile(`^\[\s*\]$`),                                  // empty array literal
	regexp.MustCompile(`^export\s+default\s+\{\s*\}\s*;?$`),          // empty default export
	regexp.MustCompile(`^module\.exports\s*=\s*\{\s*\}\s*;?$`),       // empty CJS export
	regexp.MustCompile(`^export\s+default\s+\[\s*\]\s*;?$`),          // empty default array export
	regexp.MustCompile(`^module\.exports\s*=\s*\[\s*\]\s*;?$`),
}

// IsMeaningful reports whether file content carries real work. The checks
// run in a fixed order: trim, strip block/line/hash/HTML comments, trim
// again, then reject the empty-idiom shapes. Anything that survives,
// including a single real statement, is meaningful and must be preserved.
//
// This is the single implementation shared by the adjuster and the merge
// executor; both consult it so a file is classified once, the same way.
func IsMeaningful(data []byte) bool {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return false
	}

	text = blockCommentRe.ReplaceAllString(text, "")
	text = htmlCommentRe.ReplaceAllString(text, "")
	text = lineCommentRe.ReplaceAllString(text, "")
	text = hashCommentRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	for _, idiom := range emptyIdioms {
		if idiom.MatchString(text) {
			return false
		}
	}
	return true
}
