package similarity

import (
	"bytes"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Suggestions come from LLM review stages and routinely carry markdown:
// inline code, fenced blocks, emphasis, links. Two stages describing the
// same issue often differ only in markup, so tokenization parses the
// markdown first and keeps the rendered text plus code content.

// stopWords are dropped during tokenization so that filler words don't
// dilute the overlap between paraphrased suggestions.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "it": true,
	"in": true, "of": true, "to": true, "and": true, "or": true,
	"for": true, "on": true, "at": true, "by": true, "with": true,
	"this": true, "that": true, "from": true, "as": true, "be": true,
	"should": true, "must": true, "could": true, "would": true,
}

// Tokenize normalizes a suggestion into a lower-cased word set:
// markdown stripped, punctuation removed, short tokens and stop words
// dropped.
func Tokenize(s string) map[string]bool {
	plain := stripMarkdown(s)

	words := strings.FieldsFunc(strings.ToLower(plain), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) < 2 || stopWords[w] {
			continue
		}
		set[w] = true
	}
	return set
}

// Jaccard returns the Jaccard index of two token sets: 0 when either
// set is empty, 1 for identical non-empty sets.
func Jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// stripMarkdown parses s as markdown and returns the plain text of all
// nodes, including code span and code block contents. Plain prose passes
// through unchanged apart from layout.
func stripMarkdown(s string) string {
	source := []byte(s)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	collectText(doc, source, &buf)
	return buf.String()
}

func collectText(n ast.Node, source []byte, buf *bytes.Buffer) {
	switch node := n.(type) {
	case *ast.Text:
		buf.Write(node.Segment.Value(source))
		buf.WriteByte(' ')
		return
	case *ast.CodeSpan:
		// Children are Text nodes; fall through to recursion.
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
			buf.WriteByte(' ')
		}
		return
	case *ast.AutoLink:
		buf.Write(node.URL(source))
		buf.WriteByte(' ')
		return
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		collectText(child, source, buf)
	}
}
