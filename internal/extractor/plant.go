package extractor

import (
	"slices"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/labels"
)

const (
	FieldCommonName       = "common_name"
	FieldSynonymousNames  = "synonymous_names"
	FieldSystemOfMedicine = "system_of_medicine"
)

// PlantLabels are the labels of a plant page in page order. Kingdom,
// Family and Group come before every keyed label and bound nothing; they are
// listed so Validate reports them when they leak into or repeat in a value.
var PlantLabels = labels.LabelSpec{
	{Text: "Kingdom:"},
	{Text: "Family:"},
	{Text: "Group:"},
	{Text: "Common name:", Key: FieldCommonName},
	{Text: "Synonymous names:", Key: FieldSynonymousNames},
	{Text: "System of medicine:", Key: FieldSystemOfMedicine},
}

var PlantCloseouts = []string{"More Information:"}

// PlantLimits flags values long enough to suggest a missed boundary.
var PlantLimits = labels.Limits{
	FieldCommonName:       50,
	FieldSynonymousNames:  100,
	FieldSystemOfMedicine: 50,
}

var phytochemicalTableHeaders = []string{
	"IMPPAT Phytochemical identifier",
	"Phytochemical name",
}

// ExtractPlant extracts the plant fields and the phytochemical table from a
// plant details page.
func ExtractPlant(htmlContent string) (*entity.PlantRecord, *Report, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, nil, err
	}

	text := labels.Flatten(doc.Nodes...)
	rec := labels.Extract(text, PlantLabels, PlantCloseouts, nil)

	plant := &entity.PlantRecord{
		PlantName:        firstH5(doc),
		CommonName:       rec[FieldCommonName],
		SynonymousNames:  rec[FieldSynonymousNames],
		SystemOfMedicine: rec[FieldSystemOfMedicine],
		Phytochemicals:   []entity.Phytochemical{},
	}

	if table := phytochemicalTable(doc); table != nil {
		table.Find("tr").Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return // header
			}
			tds := row.Find("td")
			if tds.Length() < 5 {
				return
			}
			plant.Phytochemicals = append(plant.Phytochemicals, entity.Phytochemical{
				IndianMedicinalPlant: cellText(tds.Eq(0)),
				PlantPart:            cellText(tds.Eq(1)),
				Identifier:           cellText(tds.Eq(2)),
				Name:                 cellText(tds.Eq(3)),
				References:           cellText(tds.Eq(4)),
			})
		})
	}

	return plant, newReport("plant", text, PlantLabels, rec, PlantLimits), nil
}

func phytochemicalTable(doc *goquery.Document) *goquery.Selection {
	if t := doc.Find("table.phytochem.table").First(); t.Length() > 0 {
		return t
	}
	var found *goquery.Selection
	doc.Find("table").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		headers := headerTexts(t)
		for _, want := range phytochemicalTableHeaders {
			if slices.Contains(headers, want) {
				found = t
				return false
			}
		}
		return true
	})
	return found
}
