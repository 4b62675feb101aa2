package document

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

var markdown = goldmark.New()

// Bullet prefixes unordered list items in flattened text.
const Bullet = "• "

// Flatten reduces Markdown to the plain text a PDF paragraph can draw:
// one line per block, "• " before unordered items, "N. " before ordered
// items. Inline markup is dropped and its text kept.
func Flatten(src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	source := []byte(src)
	doc := markdown.Parser().Parse(gmtext.NewReader(source))

	var lines []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
			line := inlineText(node, source)
			if line != "" {
				lines = append(lines, listPrefix(node)+line)
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			segs := node.Lines()
			for i := 0; i < segs.Len(); i++ {
				seg := segs.At(i)
				if line := strings.TrimRight(string(seg.Value(source)), "\r\n"); line != "" {
					lines = append(lines, line)
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(lines, "\n")
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			switch {
			case t.HardLineBreak():
				b.WriteByte('\n')
			case t.SoftLineBreak():
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.URL(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// listPrefix returns the marker for the first block of a list item.
func listPrefix(n ast.Node) string {
	item, ok := n.Parent().(*ast.ListItem)
	if !ok || item.FirstChild() != n {
		return ""
	}
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return Bullet
	}
	index := list.Start
	for s := item.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		index++
	}
	return strconv.Itoa(index) + ". "
}
