package render

import "html/template"

// BlockKind identifies what a rendered Block displays.
type BlockKind string

const (
	BlockSection  BlockKind = "section"
	BlockText     BlockKind = "text"
	BlockImage    BlockKind = "image"
	BlockTable    BlockKind = "table"
	BlockMarkdown BlockKind = "markdown"
	BlockEmpty    BlockKind = "empty"
)

// Block is the presentation-neutral output of the interpreter. Templates
// turn it into HTML.
type Block struct {
	Kind  BlockKind
	Depth int
	Style Style

	// Heading is set on sections that carry both a level and a text.
	Heading *Heading
	// Children holds a section's rendered content in document order.
	Children []Block

	// HTML is the trusted markup of text and markdown leaves.
	HTML template.HTML

	Src     string
	Alt     string
	Caption string

	Headers []template.HTML
	Rows    [][]template.HTML
}

// Heading is the badge and title shown at the top of a section.
type Heading struct {
	Level   string
	Text    string
	Pattern LabelPattern
}

// IsEmpty reports whether the block renders nothing.
func (b Block) IsEmpty() bool {
	return b.Kind == BlockEmpty
}

// Walk visits b and its descendants in pre-order. Returning false from fn
// skips the children of the visited block.
func (b Block) Walk(fn func(Block) bool) {
	if !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}
