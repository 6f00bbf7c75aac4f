package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/entity"
)

// Section headings of the property pages.
const (
	HeadingPhysicochemical = "Physicochemical properties"
	HeadingDrugLikeness    = "Drug-likeness properties"
	HeadingADMET           = "ADMET properties"
)

// ExtractProperties reads the "Property name | Tool | Property value" table
// that follows heading. The tool column is dropped. The first matching table
// with at least one property wins.
func ExtractProperties(htmlContent, heading string) ([]entity.Property, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(heading)
	props := []entity.Property{}

	tablesAfterHeading(doc, func(h string) bool {
		return strings.Contains(h, want)
	}, func(table *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(strings.Join(headerTexts(table), " ")), "property name") {
			return true
		}
		rowCells(table, 3, func(cells []string) {
			if cells[0] == "" {
				return
			}
			props = append(props, entity.Property{Name: cells[0], Value: cells[2]})
		})
		return len(props) == 0
	})

	return props, nil
}
