// Package markup turns problem statements and solution notes into the HTML
// shown on study cards.
package markup

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/toc"
)

var dollarMathRe = regexp.MustCompile(`\$\$(.*?)\$\$`)

const tocMarker = "[TOC]"

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, mathExtension{}),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithASTTransformers(util.Prioritized(tocTransformer{}, 100)),
	),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// RewriteMath replaces every $$...$$ span on a line with the inline math
// delimiters \( and \).
func RewriteMath(s string) string {
	return dollarMathRe.ReplaceAllString(s, `\(${1}\)`)
}

// Transform rewrites math delimiters and converts the result from Markdown to
// HTML. Math spans in Markdown text reach the output with their delimiters
// intact. Raw HTML, code spans and code blocks pass through untouched.
func Transform(s string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(RewriteMath(s)), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// tocTransformer replaces a top-level paragraph holding only [TOC] with a
// nested list of links to the document's headings.
type tocTransformer struct{}

func (tocTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	src := reader.Source()

	var markers []ast.Node
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if p, ok := n.(*ast.Paragraph); ok && isTOCMarker(p, src) {
			markers = append(markers, p)
		}
	}
	if len(markers) == 0 {
		return
	}

	tree, err := toc.Inspect(doc, src)
	var list ast.Node
	if err == nil {
		list = toc.RenderList(tree)
	}
	for _, m := range markers {
		if list == nil {
			doc.RemoveChild(doc, m)
			continue
		}
		// Each marker needs its own copy of the list.
		doc.ReplaceChild(doc, m, list)
		list = toc.RenderList(tree)
	}
}

func isTOCMarker(p *ast.Paragraph, src []byte) bool {
	lines := p.Lines()
	if lines.Len() != 1 {
		return false
	}
	seg := lines.At(0)
	return strings.TrimSpace(string(seg.Value(src))) == tocMarker
}
