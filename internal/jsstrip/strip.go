package jsstrip

import (
	"bytes"
	"context"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// commentStripRegex is the regex-based fallback used when tree-sitter fails
// to parse the file at all (e.g. genuinely malformed input) — grounded on
// specvital-core's commentStripRegex.
var commentStripRegex = regexp.MustCompile(`//.*|/\*[\s\S]*?\*/`)

// Strip removes every comment node's bytes (replacing them with spaces so
// line/column numbers are preserved) from src. isTS selects the TypeScript
// grammar (superset of JS) vs the plain JavaScript grammar; either handles
// .js/.jsx/.ts/.tsx well enough for this lexical pass.
func Strip(ctx context.Context, src []byte, isTS bool) []byte {
	if !bytes.Contains(src, []byte("//")) && !bytes.Contains(src, []byte("/*")) {
		return src
	}

	tree, err := parse(ctx, isTS, src)
	if err != nil {
		return commentStripRegex.ReplaceAllFunc(src, blankOut)
	}
	defer tree.Close()

	return blankCommentNodes(tree.RootNode(), src)
}

// blankOut replaces a matched byte slice with spaces/newlines of the same
// length, preserving line numbers for downstream location reporting.
func blankOut(match []byte) []byte {
	out := make([]byte, len(match))
	for i, b := range match {
		if b == '\n' {
			out[i] = '\n'
		} else {
			out[i] = ' '
		}
	}
	return out
}

func blankCommentNodes(root *sitter.Node, content []byte) []byte {
	var ranges [][2]uint32
	collectCommentRanges(root, &ranges, 0)
	if len(ranges) == 0 {
		return content
	}

	out := append([]byte(nil), content...)
	for _, r := range ranges {
		copy(out[r[0]:r[1]], blankOut(content[r[0]:r[1]]))
	}
	return out
}

const maxWalkDepth = 1000

func collectCommentRanges(node *sitter.Node, ranges *[][2]uint32, depth int) {
	if node == nil || depth > maxWalkDepth {
		return
	}
	if node.Type() == "comment" {
		*ranges = append(*ranges, [2]uint32{node.StartByte(), node.EndByte()})
		return
	}
	n := int(node.ChildCount())
	for i := 0; i < n; i++ {
		collectCommentRanges(node.Child(i), ranges, depth+1)
	}
}
