package entity

import "fmt"

// PageType identifies which kind of page a download belongs to.
type PageType string

const (
	PagePlant           PageType = "plant"
	PageSummary         PageType = "summary"
	PagePhysicochemical PageType = "physicochemical"
	PageDrugLikeness    PageType = "drug_likeness"
	PageADMET           PageType = "admet"
	PageDescriptors     PageType = "descriptors"
)

// DetailPages lists the per-phytochemical pages in download order.
var DetailPages = []PageType{
	PageSummary,
	PagePhysicochemical,
	PageDrugLikeness,
	PageADMET,
	PageDescriptors,
}

var detailPaths = map[PageType]string{
	PageSummary:         "/imppat/phytochemical-detailedpage/%s",
	PagePhysicochemical: "/imppat/physicochemicalproperties/%s",
	PageDrugLikeness:    "/imppat/druglikeproperties/%s",
	PageADMET:           "/imppat/admetproperties/%s",
	PageDescriptors:     "/imppat/chemicaldescriptors/%s",
}

// DetailPath returns the site path of a phytochemical detail page, or ""
// for page types that are not detail pages.
func (p PageType) DetailPath(phytochemicalID string) string {
	tmpl, ok := detailPaths[p]
	if !ok {
		return ""
	}
	return fmt.Sprintf(tmpl, phytochemicalID)
}

// FileName is the name a detail page is saved under.
func (p PageType) FileName(phytochemicalID string) string {
	return fmt.Sprintf("%s_%s.html", phytochemicalID, p)
}
