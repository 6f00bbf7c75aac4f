package extractor

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/entity"
)

const optionPlaceholder = "Choose from dropdown"

// ExtractPlantOptions lists the plants of the home page dropdown.
func ExtractPlantOptions(htmlContent string) ([]entity.PlantOption, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return nil, err
	}

	var options []entity.PlantOption
	doc.Find("option").Each(func(_ int, opt *goquery.Selection) {
		name := cellText(opt)
		if name == optionPlaceholder {
			return
		}
		value, _ := opt.Attr("value")
		options = append(options, entity.PlantOption{Value: value, Name: name})
	})
	return options, nil
}
