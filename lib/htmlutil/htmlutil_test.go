package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestGetText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div>hello <b>bold</b> world</div>`,
	))
	require.NoError(t, err)

	node := doc.Find("div").Nodes[0]
	require.Equal(t, "hello bold world", GetText(node))
}

func TestCellText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<table><tr><td>  120\n2:00:00  </td></tr></table>",
	))
	require.NoError(t, err)

	node := doc.Find("td").Nodes[0]
	text := CellText(node)
	require.Equal(t, "120\n2:00:00", text)
}
