// Package extractor turns IMPPAT pages into entity values. Label/value
// sections go through labels.Extract over the flattened page text; tables
// are read cell by cell with goquery.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/labels"
)

// Report describes how complete an extraction was. It never affects the
// extracted values.
type Report struct {
	Schema string
	Empty  []string
	Issues []labels.Issue
}

func newReport(schema, text string, spec labels.LabelSpec, rec labels.Record, limits labels.Limits) *Report {
	return &Report{
		Schema: schema,
		Empty:  labels.EmptyFields(spec, rec),
		Issues: labels.Validate(text, spec, rec, limits),
	}
}

func parse(htmlContent string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
}

// Fields runs a caller-supplied spec over an HTML document.
func Fields(htmlContent string, spec labels.LabelSpec, closeouts []string, limits labels.Limits) (labels.Record, []labels.Issue, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, nil, err
	}
	text := labels.Flatten(doc.Nodes...)
	rec := labels.Extract(text, spec, closeouts, nil)
	return rec, labels.Validate(text, spec, rec, limits), nil
}

// cellText is the text of a selection with whitespace runs collapsed.
// Inline markup such as <sub> joins its neighbours without a space.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// headerTexts returns the flattened text of every th in a table.
func headerTexts(table *goquery.Selection) []string {
	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, cellText(th))
	})
	return headers
}

// rowCells calls fn with the td cells of every row of table that has at
// least minCells of them.
func rowCells(table *goquery.Selection, minCells int, fn func(cells []string)) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		tds := row.Find("td")
		if tds.Length() < minCells {
			return
		}
		cells := make([]string, 0, tds.Length())
		tds.Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		fn(cells)
	})
}

// tablesAfterHeading walks h6/center headings and table.table elements in
// document order and calls fn for every table that comes after a heading
// accepted by match. fn returns false to stop the walk.
func tablesAfterHeading(doc *goquery.Document, match func(heading string) bool, fn func(table *goquery.Selection) bool) {
	seen := false
	doc.Find("h6, center, table.table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		switch goquery.NodeName(s) {
		case "h6", "center":
			if !seen && match(strings.ToLower(cellText(s))) {
				seen = true
			}
			return true
		}
		if !seen {
			return true
		}
		return fn(s)
	})
}

func firstH5(doc *goquery.Document) string {
	return cellText(doc.Find("h5").First())
}
