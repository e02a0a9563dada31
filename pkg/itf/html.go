package itf

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// HTML is a parsed response document queried with XPath.
type HTML struct {
	tb  testing.TB
	doc *html.Node
}

// HTML parses the body as an HTML document.
func (r *Response) HTML() *HTML {
	r.tb.Helper()
	doc, err := htmlquery.Parse(strings.NewReader(r.rec.Body.String()))
	require.NoError(r.tb, err)
	return &HTML{tb: r.tb, doc: doc}
}

// Select queries the body with a CSS selector.
func (r *Response) Select(selector string) *goquery.Selection {
	r.tb.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(r.rec.Body.String()))
	require.NoError(r.tb, err)
	return doc.Find(selector)
}

func (h *HTML) Element(xpath string) *Element {
	h.tb.Helper()
	node, err := htmlquery.Query(h.doc, xpath)
	require.NoError(h.tb, err, "invalid xpath %q", xpath)
	return &Element{tb: h.tb, xpath: xpath, node: node}
}

func (h *HTML) Elements(xpath string) []*html.Node {
	h.tb.Helper()
	nodes, err := htmlquery.QueryAll(h.doc, xpath)
	require.NoError(h.tb, err, "invalid xpath %q", xpath)
	return nodes
}

type Element struct {
	tb    testing.TB
	xpath string
	node  *html.Node
}

func (e *Element) Exists() *Element {
	e.tb.Helper()
	require.NotNil(e.tb, e.node, "expected element %q", e.xpath)
	return e
}

func (e *Element) NotExists() *Element {
	e.tb.Helper()
	require.Nil(e.tb, e.node, "unexpected element %q", e.xpath)
	return e
}

func (e *Element) Attr(name string) string {
	e.tb.Helper()
	e.Exists()
	return htmlquery.SelectAttr(e.node, name)
}

func (e *Element) Text() string {
	e.tb.Helper()
	e.Exists()
	return strings.TrimSpace(htmlquery.InnerText(e.node))
}
