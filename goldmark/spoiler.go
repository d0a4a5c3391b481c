package goldmark

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// KindSpoiler is the node kind of [Spoiler].
var KindSpoiler = ast.NewNodeKind("Spoiler")

// Spoiler is an inline ||hidden|| span.
type Spoiler struct {
	ast.BaseInline
}

// Kind implements ast.Node.
func (n *Spoiler) Kind() ast.NodeKind { return KindSpoiler }

// Dump implements ast.Node.
func (n *Spoiler) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

type spoilerDelimiterProcessor struct{}

func (p *spoilerDelimiterProcessor) IsDelimiter(b byte) bool { return b == '|' }

func (p *spoilerDelimiterProcessor) CanOpenCloser(opener, closer *parser.Delimiter) bool {
	return opener.Char == closer.Char
}

func (p *spoilerDelimiterProcessor) OnMatch(consumes int) ast.Node {
	return &Spoiler{}
}

var defaultSpoilerDelimiterProcessor = &spoilerDelimiterProcessor{}

// spoilerParser recognizes runs of exactly two pipes.
type spoilerParser struct{}

func (s *spoilerParser) Trigger() []byte { return []byte{'|'} }

func (s *spoilerParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	before := block.PrecendingCharacter()
	line, segment := block.PeekLine()
	node := parser.ScanDelimiter(line, before, 2, defaultSpoilerDelimiterProcessor)
	if node == nil || node.OriginalLength != 2 || before == '|' {
		return nil
	}
	node.Segment = segment.WithStop(segment.Start + node.OriginalLength)
	block.Advance(node.OriginalLength)
	pc.PushDelimiter(node)
	return node
}

func (s *spoilerParser) CloseBlock(parent ast.Node, pc parser.Context) {}
