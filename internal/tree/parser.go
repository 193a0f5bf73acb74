package tree

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/agentic-research/treegraft/internal/policy"
)

// Parser turns raw indented/annotated tree text into a node forest.
type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

var (
	// Decorative glyphs commonly pasted alongside tree text. They carry no
	// structural meaning and are removed before any other processing.
	glyphReplacer = strings.NewReplacer(
		"️", "", // variation selector
		"📁", "", "📂", "", "🗂", "", "🗃", "",
		"📄", "", "📃", "", "📜", "", "🌳", "", "➜", "",
	)

	// Trailing inline annotations: "#", "//", "--" comments (whitespace
	// separated so names like "web--old.js" survive) and a final
	// parenthetical remark.
	commentRe       = regexp.MustCompile(`\s+(#|//|--).*$`)
	parentheticalRe = regexp.MustCompile(`\s*\([^()]*\)\s*$`)

	// The summary line emitted by tree(1): "3 directories, 14 files".
	summaryRe = regexp.MustCompile(`(?i)^\d+\s+director(y|ies),\s+\d+\s+files?$`)
)

// Parse reads tree-drawing text and returns the root nodes plus warnings for
// any lines that could not be attached. It never fails: one bad line does
// not abort the document.
func (p *Parser) Parse(raw string) ([]*Node, []Warning) {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var warnings []Warning
	warn := func(line int, text, msg string) {
		warnings = append(warnings, Warning{Line: line, Text: text, Message: msg})
		p.log.Debug("skipping line", zap.Int("line", line), zap.String("reason", msg))
	}

	// Sentinel frame below any real level; its children are the roots.
	sentinel := &Node{Kind: Folder}
	type frame struct {
		node  *Node
		level int
	}
	stack := []frame{{node: sentinel, level: -1}}

	for i, line := range strings.Split(raw, "\n") {
		lineNum := i + 1
		line = glyphReplacer.Replace(line)
		if strings.TrimSpace(line) == "" {
			continue
		}
		if summaryRe.MatchString(strings.TrimSpace(line)) {
			continue
		}

		level, label := splitIndent(line)
		if isCommentLabel(label) {
			// The whole line is commentary, not an entry.
			p.log.Debug("skipping comment line", zap.Int("line", lineNum))
			continue
		}
		label = parentheticalRe.ReplaceAllString(label, "")
		label = strings.TrimSpace(commentRe.ReplaceAllString(label, ""))
		if label == "" {
			warn(lineNum, line, "no name left after stripping decorations")
			continue
		}

		node := classify(label)

		// Pop ancestors at or below this line's depth; the survivor is the
		// parent. Level-0 lines land on the sentinel and become roots.
		for len(stack) > 1 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].node
		if parent.Kind == File {
			warn(lineNum, line, "parent entry is a file, cannot hold children")
			continue
		}
		parent.Children = append(parent.Children, node)
		// Files are pushed too so a deeper line under one is recognised as
		// an orphan instead of silently attaching to the grandparent.
		stack = append(stack, frame{node: node, level: level})
	}

	return sentinel.Children, warnings
}

// isCommentLabel reports whether the label is pure annotation: commentRe
// only strips trailing comments, so a marker at the very start of the label
// must be caught separately or the remark would parse as a folder name.
func isCommentLabel(label string) bool {
	return strings.HasPrefix(label, "#") ||
		strings.HasPrefix(label, "//") ||
		strings.HasPrefix(label, "--")
}

// splitIndent measures the decoration prefix (whitespace, vertical
// connectors, branch markers) in two-character units and returns the
// remaining label. Tabs count as one unit on their own; every other prefix
// character counts as half a unit, so both space-indented text and
// glyph-drawn trees ("│   ├── name") nest consistently.
func splitIndent(line string) (level int, label string) {
	width := 0
	runes := []rune(line)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ' ' || r == '│' || r == '─':
			width++
			i++
		case r == '\t':
			width += 2
			i++
		case r == '├' || r == '└' || r == '|':
			width++
			i++
			for i < len(runes) && (runes[i] == '─' || runes[i] == '-') {
				width++
				i++
			}
		case (r == '`' || r == '+') && i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] == '-':
			// ASCII branch markers: `-- and +--
			width += 3
			i += 3
		case (r == '-' || r == '*') && i+1 < len(runes) && runes[i+1] == ' ':
			// Markdown-style bullet.
			width++
			i++
		default:
			return width / 2, strings.TrimSpace(string(runes[i:]))
		}
	}
	return width / 2, ""
}

// classify decides Folder vs File from the label alone: a trailing slash,
// a well-known folder basename, or a dotless name all mean Folder.
func classify(label string) *Node {
	if strings.HasSuffix(label, "/") {
		return &Node{Name: strings.TrimSuffix(label, "/"), Kind: Folder}
	}
	if policy.KnownFolderName(label) {
		return &Node{Name: label, Kind: Folder}
	}
	if !strings.Contains(label, ".") {
		return &Node{Name: label, Kind: Folder}
	}
	return &Node{Name: label, Kind: File}
}
