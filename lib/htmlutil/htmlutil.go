package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetText returns the concatenated text content of a node and all of its
// descendants, the same way a browser's textContent does.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CellText returns the text of a table cell trimmed of surrounding
// whitespace with non-printable runes removed.
func CellText(node *html.Node) string {
	text := GetText(node)
	text = removeNonPrintable(text)
	return strings.TrimSpace(text)
}

func removeNonPrintable(s string) string {
	out := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || c == '\n' || c == '\t' {
			out.WriteRune(c)
		}
	}
	return out.String()
}
