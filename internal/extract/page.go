package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	cardTableSelector  = "table.card-list"
	seriesNameSelector = "aside h2.pi-title"
	infoboxSelector    = "aside section"
	blockValueSelector = ".pi-data-value"
)

// Page is the raw material read from a saved series page.
type Page struct {
	Rows []Row
	Meta SeriesMeta
}

// ReadPage parses a saved series page. It only reads; deciding whether the page
// is complete is left to Extract.
func ReadPage(r io.Reader) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse page: %w", err)
	}

	page := Page{Meta: SeriesMeta{Name: seriesName(doc)}}

	doc.Find(cardTableSelector).First().Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 {
			return
		}
		row := make(Row, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, innerText(td))
		})
		page.Rows = append(page.Rows, row)
	})

	doc.Find(infoboxSelector).Each(func(_ int, section *goquery.Selection) {
		label := strings.TrimSpace(section.ChildrenFiltered("h2").First().Text())
		if label == "" {
			return
		}
		block := Block{Label: label}
		section.Find(blockValueSelector).Each(func(_ int, value *goquery.Selection) {
			block.Values = append(block.Values, innerText(value))
		})
		page.Meta.Blocks = append(page.Meta.Blocks, block)
	})

	return page, nil
}

func seriesName(doc *goquery.Document) string {
	if title := doc.Find(seriesNameSelector).First(); title.Length() > 0 {
		return strings.TrimSpace(title.Text())
	}
	return strings.TrimSpace(doc.Find("aside > h2").First().Text())
}

// innerText approximates rendered text: <br> and block boundaries become newlines
// so multi-line cells keep their first line distinct.
func innerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeText(&b, node)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteString("\n")
			return
		case "script", "style":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if n.Type == html.ElementNode && isBlock(n.Data) && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
		b.WriteString("\n")
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "div", "p", "li", "ul", "ol", "section":
		return true
	}
	return false
}
