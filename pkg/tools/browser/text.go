package browser

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// MaxTextLength caps the page text returned to the model.
const MaxTextLength = 20000

// visibleText extracts the readable text of an HTML document's body. Scripts,
// styles and other non-rendered elements are dropped, block elements start new
// lines and runs of whitespace collapse to one space.
func visibleText(rawHTML string) (string, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return "", errors.Wrap(err, "failed to parse HTML")
	}

	root := findElement(doc, "body")
	if root == nil {
		root = doc
	}

	var lines []string
	var current strings.Builder
	flush := func() {
		line := strings.Join(strings.Fields(current.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			return
		case html.TextNode:
			current.WriteString(n.Data)
			current.WriteString(" ")
			return
		case html.ElementNode:
			tag := strings.ToLower(n.Data)
			if isSkippedElement(tag) {
				return
			}
			if isBlockElement(tag) || tag == "br" {
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	flush()

	text := strings.Join(lines, "\n")
	if len(text) > MaxTextLength {
		cut := strings.ToValidUTF8(text[:MaxTextLength], "")
		return cut + fmt.Sprintf("\n\n[Content truncated: %d of %d characters shown]", len(cut), len(text)), nil
	}
	return text, nil
}

// findElement returns the first element with the given tag, depth first.
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

// isSkippedElement returns true for elements whose content is never rendered as text
func isSkippedElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "iframe", "embed", "object", "svg", "head":
		return true
	}
	return false
}

// isBlockElement returns true for block-level elements (for line breaks)
func isBlockElement(tagName string) bool {
	switch tagName {
	case "div", "p", "section", "article", "header", "footer", "nav", "main", "aside",
		"h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li", "table", "tr",
		"form", "fieldset", "blockquote", "pre", "hr", "dl", "dt", "dd":
		return true
	}
	return false
}
