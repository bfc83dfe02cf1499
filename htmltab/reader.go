// Package htmltab flattens HTML documents into scannable text lines.
// Table rows become tab-separated lines and remaining text content
// becomes one line per text run, so that numeric tables in HTML reports
// can be detected by the same block scanner used for plain text files.
package htmltab

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Reader provides access to the flattened content of an HTML document.
type Reader struct {
	title      string
	metadata   map[string]string
	lines      []string
	tableCount int
}

// Open opens an HTML file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		metadata: make(map[string]string),
	}
	reader.extractHead(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	reader.flatten(body)

	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close for HTML (no file handles kept)
	return nil
}

// Title returns the document title, if any.
func (r *Reader) Title() string { return r.title }

// Metadata returns the document's meta tag name/content pairs.
func (r *Reader) Metadata() map[string]string { return r.metadata }

// TableCount returns the number of <table> elements found.
func (r *Reader) TableCount() int { return r.tableCount }

// Lines returns the flattened content lines in document order, without
// line terminators.
func (r *Reader) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Text returns the flattened content as newline-terminated text, ready
// for block scanning.
func (r *Reader) Text() string {
	if len(r.lines) == 0 {
		return ""
	}
	return strings.Join(r.lines, "\n") + "\n"
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = textContent(c)
			case "meta":
				name, content := "", ""
				for _, attr := range c.Attr {
					switch attr.Key {
					case "name", "property":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// flatten walks the DOM emitting lines. Tables are handled as a unit and
// not descended into twice; everything else contributes its text nodes,
// split on newlines so that preformatted data blocks keep their rows.
func (r *Reader) flatten(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "head":
			return
		case "table":
			r.tableCount++
			r.flattenTable(n)
			return
		}
	case html.TextNode:
		for _, line := range strings.Split(n.Data, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				r.lines = append(r.lines, trimmed)
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.flatten(c)
	}
}

// flattenTable emits one tab-separated line per table row.
func (r *Reader) flattenTable(table *html.Node) {
	var walkRows func(n *html.Node)
	walkRows = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					cells = append(cells, strings.Join(strings.Fields(textContent(c)), " "))
				}
			}
			if len(cells) > 0 {
				r.lines = append(r.lines, strings.Join(cells, "\t"))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walkRows(c)
		}
	}
	walkRows(table)
}

// textContent returns the concatenated text of a node's subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// findElement locates the first element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
