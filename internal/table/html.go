package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tabkit/internal/util"
)

// ReadHTML turns every <table> with at least one row into a Table. The
// first row is the header. Tables are named after their id, their caption,
// or their position.
func ReadHTML(r io.Reader) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	out := []*Table{}
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		rows := sel.Find("tr")
		if rows.Length() == 0 {
			return
		}

		var head []string
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			head = append(head, normalizeSpaces(cell.Text()))
		})

		var body [][]string
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpaces(cell.Text()))
			})
			if len(cells) > 0 {
				body = append(body, cells)
			}
		})

		out = append(out, New(htmlTableName(sel, i), head, body))
	})
	return out, nil
}

func htmlTableName(sel *goquery.Selection, i int) string {
	if id, ok := sel.Attr("id"); ok && strings.TrimSpace(id) != "" {
		return strings.TrimSpace(id)
	}
	if caption := normalizeSpaces(sel.Find("caption").First().Text()); caption != "" {
		return caption
	}
	return fmt.Sprintf("table_%d", i+1)
}

func normalizeSpaces(input string) string {
	return util.Trim(input)
}
