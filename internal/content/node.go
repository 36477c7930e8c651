package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the variants of a Node. It is fixed when the node is
// decoded and never re-derived during traversal.
type Kind string

const (
	KindSection  Kind = "section"
	KindText     Kind = "text"
	KindImage    Kind = "image"
	KindTable    Kind = "table"
	KindMarkdown Kind = "markdown"
	KindUnknown  Kind = "unknown"
)

// Node is one entry of a content tree: either a structural Section or a Leaf.
// Exactly one of Section and Leaf is set, matching Kind.
type Node struct {
	Kind    Kind
	Section *Section
	Leaf    *Leaf
}

// Section is a structural node. It renders a heading only when both Level
// and Text are non-empty; otherwise it is a plain container.
type Section struct {
	Level   string
	Text    string
	Content []Node
}

// IsHeading reports whether the section carries a heading.
func (s *Section) IsHeading() bool {
	return s.Level != "" && s.Text != ""
}

// Leaf is a terminal content unit. Headers and Rows stay nil when the source
// omitted them, and are empty (non-nil) when the source gave empty arrays.
type Leaf struct {
	Type    string
	Text    string
	URL     string
	Caption string
	Headers []string
	Rows    [][]string
}

// NewSection builds a section node.
func NewSection(level, text string, children ...Node) Node {
	return Node{Kind: KindSection, Section: &Section{Level: level, Text: text, Content: children}}
}

// NewText builds a text leaf.
func NewText(text string) Node {
	return Node{Kind: KindText, Leaf: &Leaf{Type: string(KindText), Text: text}}
}

// NewImage builds an image leaf.
func NewImage(url, caption string) Node {
	return Node{Kind: KindImage, Leaf: &Leaf{Type: string(KindImage), URL: url, Caption: caption}}
}

// NewTable builds a table leaf.
func NewTable(headers []string, rows [][]string, caption string) Node {
	return Node{Kind: KindTable, Leaf: &Leaf{Type: string(KindTable), Headers: headers, Rows: rows, Caption: caption}}
}

// rawSection and rawLeaf are the wire shapes. Every field decodes
// tolerantly: label and text fields accept numbers and booleans as well as
// strings so hand-written files like "level": 1 still load, and a field of
// the wrong shape decodes as if it were absent.
type rawSection struct {
	Level   looseString `json:"level"`
	Text    looseString `json:"text"`
	Content nodeList    `json:"content"`
}

type rawLeaf struct {
	Type    looseString  `json:"type"`
	Text    looseString  `json:"text"`
	URL     looseString  `json:"url"`
	Caption looseString  `json:"caption"`
	Headers looseStrings `json:"headers"`
	Rows    looseRows    `json:"rows"`
}

// UnmarshalJSON resolves the node's kind once. An object is a section when it
// has a "level" key or a "content" key holding an array; anything else is a
// leaf typed by its "type" field.
func (n *Node) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		*n = Node{Kind: KindUnknown, Leaf: &Leaf{}}
		return nil
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("content node: %w", err)
	}

	_, hasLevel := keys["level"]
	if hasLevel || isArray(keys["content"]) {
		var rs rawSection
		if err := json.Unmarshal(data, &rs); err != nil {
			return fmt.Errorf("section: %w", err)
		}
		*n = Node{Kind: KindSection, Section: &Section{
			Level:   string(rs.Level),
			Text:    string(rs.Text),
			Content: []Node(rs.Content),
		}}
		return nil
	}

	var rl rawLeaf
	if err := json.Unmarshal(data, &rl); err != nil {
		return fmt.Errorf("leaf: %w", err)
	}
	leaf := &Leaf{
		Type:    string(rl.Type),
		Text:    string(rl.Text),
		URL:     string(rl.URL),
		Caption: string(rl.Caption),
		Headers: rl.Headers,
		Rows:    rl.Rows,
	}
	*n = Node{Kind: leafKind(leaf.Type), Leaf: leaf}
	return nil
}

// MarshalJSON writes the node back in the same shape it was read from.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindSection && n.Section != nil {
		content := n.Section.Content
		if content == nil {
			content = []Node{}
		}
		return json.Marshal(struct {
			Level   string `json:"level,omitempty"`
			Text    string `json:"text,omitempty"`
			Content []Node `json:"content"`
		}{n.Section.Level, n.Section.Text, content})
	}
	if n.Leaf == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(struct {
		Type    string     `json:"type,omitempty"`
		Text    string     `json:"text,omitempty"`
		URL     string     `json:"url,omitempty"`
		Caption string     `json:"caption,omitempty"`
		Headers []string   `json:"headers,omitempty"`
		Rows    [][]string `json:"rows,omitempty"`
	}{n.Leaf.Type, n.Leaf.Text, n.Leaf.URL, n.Leaf.Caption, n.Leaf.Headers, n.Leaf.Rows})
}

func leafKind(t string) Kind {
	switch Kind(t) {
	case KindText, KindImage, KindTable, KindMarkdown:
		return Kind(t)
	}
	return KindUnknown
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func stringsOf(in []looseString) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

// looseString decodes any JSON scalar into its textual form. null, objects
// and arrays become "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) || data[0] == '{' || data[0] == '[' {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	*s = looseString(data)
	return nil
}

// looseStrings is a list of loose scalars. Anything other than an array
// decodes as nil.
type looseStrings []string

func (l *looseStrings) UnmarshalJSON(data []byte) error {
	if !isArray(data) {
		*l = nil
		return nil
	}
	var items []looseString
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = stringsOf(items)
	return nil
}

// looseRows is a table body. A non-array body decodes as nil and a row that
// is not an array becomes an empty row.
type looseRows [][]string

func (r *looseRows) UnmarshalJSON(data []byte) error {
	if !isArray(data) {
		*r = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rows := make([][]string, len(raw))
	for i, item := range raw {
		var row looseStrings
		if err := json.Unmarshal(item, &row); err != nil {
			return err
		}
		if row == nil {
			row = looseStrings{}
		}
		rows[i] = row
	}
	*r = rows
	return nil
}

// nodeList is a section's children. Anything other than an array decodes as
// nil.
type nodeList []Node

func (l *nodeList) UnmarshalJSON(data []byte) error {
	if !isArray(data) {
		*l = nil
		return nil
	}
	var nodes []Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return err
	}
	*l = nodes
	return nil
}
