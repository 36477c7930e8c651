package render

import (
	"html/template"

	"github.com/dgallion1/folio/internal/content"
	"github.com/yuin/goldmark"
)

// DefaultMaxDepth is the nesting depth at which sections stop nesting and
// their subtrees are rendered flat.
const DefaultMaxDepth = 16

// Options configures a Renderer.
type Options struct {
	MaxDepth int
}

// Renderer interprets content trees. It holds no per-render state and is
// safe for concurrent use.
type Renderer struct {
	maxDepth int
	md       goldmark.Markdown
}

// New creates a Renderer. A non-positive MaxDepth selects DefaultMaxDepth.
func New(opts Options) *Renderer {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Renderer{
		maxDepth: opts.MaxDepth,
		md:       newMarkdown(),
	}
}

// MaxDepth returns the configured depth ceiling.
func (r *Renderer) MaxDepth() int {
	return r.maxDepth
}

// RenderNodes renders the root list of a document. Sections start at
// depth 0; root leaves are rendered directly.
func (r *Renderer) RenderNodes(nodes []content.Node) []Block {
	out := make([]Block, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, r.renderNode(n, 0))
	}
	return out
}

// Render renders one section found at depth, recursing into its children
// with depth+1.
func (r *Renderer) Render(s *content.Section, depth int) Block {
	if depth >= r.maxDepth {
		return r.renderFlat(s, depth)
	}
	b := sectionBlock(s, depth)
	b.Children = make([]Block, 0, len(s.Content))
	for _, child := range s.Content {
		b.Children = append(b.Children, r.renderNode(child, depth+1))
	}
	return b
}

// renderNode dispatches on the kind fixed at decode time. depth is the depth
// the node would have if it is a section.
func (r *Renderer) renderNode(n content.Node, depth int) Block {
	if n.Kind == content.KindSection && n.Section != nil {
		return r.Render(n.Section, depth)
	}
	return r.RenderLeaf(n)
}

// renderFlat renders a section at the depth ceiling. Its whole subtree is
// emitted as direct children in pre-order: nested sections contribute
// their heading only, leaves render as usual. The walk uses an explicit
// stack, so arbitrarily deep input does not grow the call stack.
func (r *Renderer) renderFlat(s *content.Section, depth int) Block {
	b := sectionBlock(s, depth)
	b.Children = []Block{}

	stack := make([]content.Node, 0, len(s.Content))
	for i := len(s.Content) - 1; i >= 0; i-- {
		stack = append(stack, s.Content[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Kind != content.KindSection || n.Section == nil {
			b.Children = append(b.Children, r.RenderLeaf(n))
			continue
		}
		if n.Section.IsHeading() {
			h := sectionBlock(n.Section, depth)
			h.Children = []Block{}
			b.Children = append(b.Children, h)
		}
		for i := len(n.Section.Content) - 1; i >= 0; i-- {
			stack = append(stack, n.Section.Content[i])
		}
	}
	return b
}

func sectionBlock(s *content.Section, depth int) Block {
	b := Block{
		Kind:  BlockSection,
		Depth: depth,
		Style: StyleFor(depth),
	}
	if s.IsHeading() {
		b.Heading = &Heading{
			Level:   s.Level,
			Text:    s.Text,
			Pattern: ClassifyLabel(s.Level),
		}
	}
	return b
}

// RenderLeaf renders a leaf node. Missing optional fields and unknown kinds
// produce an empty block rather than an error.
func (r *Renderer) RenderLeaf(n content.Node) Block {
	leaf := n.Leaf
	if leaf == nil {
		return Block{Kind: BlockEmpty}
	}
	switch n.Kind {
	case content.KindText:
		return Block{Kind: BlockText, HTML: FormatInline(leaf.Text)}

	case content.KindImage:
		return Block{
			Kind:    BlockImage,
			Src:     NormalizePath(leaf.URL),
			Alt:     leaf.Caption,
			Caption: leaf.Caption,
		}

	case content.KindTable:
		if leaf.Headers == nil || leaf.Rows == nil {
			return Block{Kind: BlockEmpty}
		}
		b := Block{
			Kind:    BlockTable,
			Caption: leaf.Caption,
			Headers: make([]template.HTML, len(leaf.Headers)),
			Rows:    make([][]template.HTML, len(leaf.Rows)),
		}
		for i, h := range leaf.Headers {
			b.Headers[i] = FormatInline(h)
		}
		for i, row := range leaf.Rows {
			cells := make([]template.HTML, len(row))
			for j, c := range row {
				cells[j] = FormatInline(c)
			}
			b.Rows[i] = cells
		}
		return b

	case content.KindMarkdown:
		out, err := r.Markdown(leaf.Text)
		if err != nil {
			return Block{Kind: BlockEmpty}
		}
		return Block{Kind: BlockMarkdown, HTML: out}
	}
	return Block{Kind: BlockEmpty}
}
