package tsio

import (
	"fmt"
	"strings"

	"github.com/voadere/tsio/internal/ascii"
)

// nodeToken categorizes a FormatNode for the pretty-printer's color
// function, mirroring the "FormatToken" idea from a tree pretty-printer
// that renders the same structure twice (plain and ANSI-highlighted)
// from one walk.
type nodeToken int

const (
	tokenPrefix nodeToken = iota
	tokenSpecifier
	tokenStructural
	tokenOffset
	tokenError
)

var treeTheme = map[nodeToken]string{
	tokenPrefix:     ascii.DefaultTheme.Prefix,
	tokenSpecifier:  ascii.DefaultTheme.Specifier,
	tokenStructural: ascii.DefaultTheme.Structural,
	tokenOffset:     ascii.DefaultTheme.Offset,
	tokenError:      ascii.DefaultTheme.Error,
}

// colorFunc renders s under token, either plain or ANSI-wrapped.
type colorFunc func(s string, token nodeToken) string

// treePrinter accumulates an indented, box-drawn dump of a tree into a
// strings.Builder, tracking the running indentation prefix as a stack
// of strings so nested branches line up.
type treePrinter struct {
	indent []string
	output strings.Builder
	color  colorFunc
}

func newTreePrinter(color colorFunc) *treePrinter {
	return &treePrinter{color: color}
}

func (p *treePrinter) push(s string)   { p.indent = append(p.indent, s) }
func (p *treePrinter) pop()            { p.indent = p.indent[:len(p.indent)-1] }
func (p *treePrinter) pad()            { p.output.WriteString(strings.Join(p.indent, "")) }
func (p *treePrinter) write(s string)  { p.output.WriteString(s) }
func (p *treePrinter) writeln(s string) {
	p.write(s)
	p.output.WriteByte('\n')
}
func (p *treePrinter) padWrite(s string) {
	p.pad()
	p.write(s)
}

// Pretty renders the compiled tree as an indented, uncolored debug
// dump drawn with box-drawing characters: one line per node, showing its prefix, its specifier and
// structural nodes recursing into their child chain.
func (t *FormatTree) Pretty() string {
	p := newTreePrinter(func(s string, _ nodeToken) string { return s })
	p.walkChain(t.root)
	return p.output.String()
}

// Highlight is identical to Pretty but wraps each token in the ANSI
// color its category maps to in internal/ascii's DefaultTheme, for
// dumping a tree to an interactive terminal.
func (t *FormatTree) Highlight() string {
	p := newTreePrinter(func(s string, tok nodeToken) string {
		return treeTheme[tok] + s + ascii.Reset
	})
	p.walkChain(t.root)
	return p.output.String()
}

func (p *treePrinter) walkChain(n *FormatNode) {
	for cur := n; cur != nil; cur = cur.Next {
		last := cur.Next == nil
		p.walkNode(cur, last)
	}
}

func (p *treePrinter) walkNode(n *FormatNode, last bool) {
	branch, cont := "├── ", "│   "
	if last {
		branch, cont = "└── ", "    "
	}

	p.padWrite(branch)

	if n.Prefix != "" {
		p.write(p.color(fmt.Sprintf("%q", n.Prefix), tokenPrefix))
		p.write(" ")
	}

	switch {
	case n.Spec.special() && n.Spec.Specifier == 0:
		p.writeln(p.color("<end>", tokenError))
		return
	case n.Spec.Specifier == '{':
		p.writeln(p.color(fmt.Sprintf("Repeat(width=%d)", n.Spec.Width), tokenStructural) +
			p.color(fmt.Sprintf(" (@%d)", n.Spec.Offset), tokenOffset))
		p.push(cont)
		p.walkChain(n.Child)
		p.pop()
		return
	case n.Spec.Specifier == '[':
		p.writeln(p.color("Container", tokenStructural) +
			p.color(fmt.Sprintf(" (@%d)", n.Spec.Offset), tokenOffset))
		p.push(cont)
		p.walkChain(n.Child)
		p.pop()
		return
	case n.Spec.Specifier == '<':
		p.writeln(p.color("Tuple", tokenStructural) +
			p.color(fmt.Sprintf(" (@%d)", n.Spec.Offset), tokenOffset))
		p.push(cont)
		p.walkChain(n.Child)
		p.pop()
		return
	case n.Spec.Specifier == '}' || n.Spec.Specifier == ']' || n.Spec.Specifier == '>':
		p.writeln(p.color(fmt.Sprintf("close '%%%c'", n.Spec.Specifier), tokenStructural))
		return
	default:
		p.writeln(p.color(fmt.Sprintf("%%%c", n.Spec.Specifier), tokenSpecifier) +
			p.color(fmt.Sprintf(" (@%d)", n.Spec.Offset), tokenOffset))
		return
	}
}
