package render

import (
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/net/html"
)

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// PlainText strips markup from trusted HTML and returns its visible text.
// Line breaks and block boundaries become single spaces.
func PlainText(fragment template.HTML) string {
	doc, err := html.Parse(strings.NewReader(string(fragment)))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "br", "p", "div", "li", "td", "th", "tr":
				buf.WriteByte(' ')
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(buf.String()), " ")
}

// WordCount counts the words a reader sees in blocks, including headings,
// captions and table cells.
func WordCount(blocks []Block) int {
	n := 0
	for _, root := range blocks {
		root.Walk(func(b Block) bool {
			if b.Heading != nil {
				n += len(strings.Fields(b.Heading.Text))
			}
			n += len(strings.Fields(b.Caption))
			switch b.Kind {
			case BlockText, BlockMarkdown:
				n += len(strings.Fields(PlainText(b.HTML)))
			case BlockTable:
				for _, h := range b.Headers {
					n += len(strings.Fields(PlainText(h)))
				}
				for _, row := range b.Rows {
					for _, c := range row {
						n += len(strings.Fields(PlainText(c)))
					}
				}
			}
			return true
		})
	}
	return n
}

// ReadingTime estimates reading time in whole minutes, never less than one.
func ReadingTime(blocks []Block) int {
	words := WordCount(blocks)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ReadingTimeLabel formats ReadingTime the way post cards display it.
func ReadingTimeLabel(blocks []Block) string {
	return fmt.Sprintf("%d min read", ReadingTime(blocks))
}
