package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/entity"
)

// ExtractDescriptors reads the chemical descriptors table.
func ExtractDescriptors(htmlContent string) ([]entity.Descriptor, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, err
	}

	table := descriptorTable(doc)
	descriptors := []entity.Descriptor{}
	if table == nil {
		return descriptors, nil
	}

	rowCells(table, 6, func(cells []string) {
		descriptors = append(descriptors, entity.Descriptor{
			Tool:            cells[0],
			Type:            cells[1],
			Descriptor:      cells[2],
			Description:     cells[3],
			DescriptorClass: cells[4],
			Result:          cells[5],
		})
	})
	return descriptors, nil
}

func descriptorTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find("table#table_id").First(); t.Length() > 0 {
		return t
	}
	if t := doc.Find("table.dataTable").First(); t.Length() > 0 {
		return t
	}

	var found *goquery.Selection
	tablesAfterHeading(doc, func(h string) bool {
		return strings.Contains(h, "descriptor")
	}, func(table *goquery.Selection) bool {
		found = table
		return false
	})
	return found
}
