package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/orderscan/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files, including Word's "save as web page" output.
// Every block element without nested blocks becomes one Paragraph whose HTML
// is the element's own markup.
type HTMLParser struct{}

var blockTags = map[string]bool{
	"p": true, "li": true, "td": true, "th": true, "blockquote": true,
	"pre": true, "div": true, "dd": true, "dt": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]doctree.Paragraph, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []doctree.Paragraph
	var walk func(*html.Node) error
	walk = func(n *html.Node) error {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header", "head":
				return nil
			}
			if blockTags[n.Data] && !hasBlockChild(n) {
				text := strings.Join(strings.Fields(textContent(n)), " ")
				if text == "" {
					return nil
				}
				var buf bytes.Buffer
				if err := html.Render(&buf, n); err != nil {
					return fmt.Errorf("render %s: %w", n.Data, err)
				}
				out = append(out, doctree.Paragraph{Text: text, HTML: buf.String()})
				return nil
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}

	root := findBody(doc)
	if root == nil {
		root = doc
	}
	if err := walk(root); err != nil {
		return nil, err
	}
	return out, nil
}

func hasBlockChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (blockTags[c.Data] || c.Data == "table" || c.Data == "ul" || c.Data == "ol") {
			return true
		}
		if c.Type == html.ElementNode && hasBlockChild(c) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			buf.WriteString(n.Data)
		case n.Type == html.ElementNode && n.Data == "br":
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
