package markup

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindMath is the node kind of an inline \( \) or \[ \] math span.
var KindMath = ast.NewNodeKind("Math")

// mathNode holds a math span including its delimiters.
type mathNode struct {
	ast.BaseInline
	Segment text.Segment
}

func (n *mathNode) Kind() ast.NodeKind { return KindMath }

func (n *mathNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// mathParser claims \( \) and \[ \] spans that open and close on the same
// line, so their contents are not read as escapes or emphasis.
type mathParser struct{}

func (mathParser) Trigger() []byte { return []byte{'\\'} }

func (mathParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) < 2 {
		return nil
	}
	var closer []byte
	switch line[1] {
	case '(':
		closer = []byte(`\)`)
	case '[':
		closer = []byte(`\]`)
	default:
		return nil
	}

	end := bytes.Index(line[2:], closer)
	if end <= 0 {
		return nil
	}
	n := 2 + end + len(closer)
	block.Advance(n)
	return &mathNode{Segment: seg.WithStop(seg.Start + n)}
}

type mathRenderer struct{}

func (mathRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMath, renderMath)
}

// renderMath writes the span HTML-escaped. Unescaping first keeps entities
// that were already escaped in the source from being escaped twice.
func renderMath(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		span := string(n.(*mathNode).Segment.Value(source))
		if _, err := w.WriteString(html.EscapeString(html.UnescapeString(span))); err != nil {
			return ast.WalkStop, err
		}
	}
	return ast.WalkSkipChildren, nil
}

type mathExtension struct{}

func (mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(mathParser{}, 150)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(mathRenderer{}, 150)))
}
