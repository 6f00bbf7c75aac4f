package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/labels"
)

const (
	FieldIdentifier              = "imppat_phytochemical_identifier"
	FieldPhytochemicalName       = "phytochemical_name"
	FieldSynonymousChemicalNames = "synonymous_chemical_names"
	FieldSMILES                  = "smiles"
	FieldClassyFireKingdom       = "classyfire_kingdom"
	FieldClassyFireSuperclass    = "classyfire_superclass"
	FieldClassyFireClass         = "classyfire_class"
	FieldClassyFireSubclass      = "classyfire_subclass"
	FieldNPPathway               = "np_classifier_biosynthetic_pathway"
	FieldNPSuperclass            = "np_classifier_superclass"
	FieldNPClass                 = "np_classifier_class"
	FieldNPLikenessScore         = "np_likeness_score"
)

// SummaryLabels follow the order of the phytochemical summary page. The
// unkeyed labels are sections whose values are not kept.
var SummaryLabels = labels.LabelSpec{
	{Text: "IMPPAT Phytochemical identifier:", Key: FieldIdentifier},
	{Text: "Phytochemical name:", Key: FieldPhytochemicalName},
	{Text: "Synonymous chemical names:", Key: FieldSynonymousChemicalNames},
	{Text: "External chemical identifiers:"},
	{Text: "SMILES:", Key: FieldSMILES},
	{Text: "InChI:"},
	{Text: "InChIKey:"},
	{Text: "DeepSMILES:"},
	{Text: "Functional groups:"},
	{Text: "Scaffold Graph/Node/Bond level:"},
	{Text: "Scaffold Graph/Node level:"},
	{Text: "Scaffold Graph level:"},
	{Text: "ClassyFire Kingdom:", Key: FieldClassyFireKingdom},
	{Text: "ClassyFire Superclass:", Key: FieldClassyFireSuperclass},
	{Text: "ClassyFire Class:", Key: FieldClassyFireClass},
	{Text: "ClassyFire Subclass:", Key: FieldClassyFireSubclass},
	{Text: "NP Classifier Biosynthetic pathway:", Key: FieldNPPathway},
	{Text: "NP Classifier Superclass:", Key: FieldNPSuperclass},
	{Text: "NP Classifier Class:", Key: FieldNPClass},
	{Text: "NP-Likeness score:", Key: FieldNPLikenessScore},
}

var SummaryCloseouts = []string{
	"Summary",
	"Chemical structure information",
	"Chemical structure download",
	"Molecular scaffolds",
	"Chemical classification",
}

// SummaryLimits catch values that ran into the next section.
var SummaryLimits = labels.Limits{
	FieldIdentifier:        20,
	FieldNPLikenessScore:   20,
	FieldClassyFireKingdom: 80,
}

const detailPathMarker = "/phytochemical-detailedpage/"

// ExtractSummary extracts the summary section of a phytochemical detail
// page. The page title seeds the phytochemical name.
func ExtractSummary(htmlContent string) (entity.PhytochemicalSummary, *Report, error) {
	doc, err := parse(htmlContent)
	if err != nil {
		return entity.PhytochemicalSummary{}, nil, err
	}

	seed := labels.Record{}
	if title := firstH5(doc); title != "" {
		if _, after, ok := strings.Cut(title, ":"); ok {
			title = strings.TrimSpace(after)
		}
		seed[FieldPhytochemicalName] = title
	}

	text := labels.Flatten(doc.Nodes...)
	rec := labels.Extract(text, SummaryLabels, SummaryCloseouts, seed)

	if rec[FieldIdentifier] == "" {
		rec[FieldIdentifier] = identifierFromLinks(doc)
	}

	return summaryFromRecord(rec), newReport("summary", text, SummaryLabels, rec, SummaryLimits), nil
}

// identifierFromLinks returns the last path segment of the first link to a
// phytochemical detail page.
func identifierFromLinks(doc *goquery.Document) string {
	var id string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if !strings.Contains(href, detailPathMarker) {
			return true
		}
		id = href[strings.LastIndex(href, "/")+1:]
		return false
	})
	return id
}

func summaryFromRecord(rec labels.Record) entity.PhytochemicalSummary {
	return entity.PhytochemicalSummary{
		Identifier:                      rec[FieldIdentifier],
		Name:                            rec[FieldPhytochemicalName],
		SynonymousChemicalNames:         rec[FieldSynonymousChemicalNames],
		SMILES:                          rec[FieldSMILES],
		ClassyFireKingdom:               rec[FieldClassyFireKingdom],
		ClassyFireSuperclass:            rec[FieldClassyFireSuperclass],
		ClassyFireClass:                 rec[FieldClassyFireClass],
		ClassyFireSubclass:              rec[FieldClassyFireSubclass],
		NPClassifierBiosyntheticPathway: rec[FieldNPPathway],
		NPClassifierSuperclass:          rec[FieldNPSuperclass],
		NPClassifierClass:               rec[FieldNPClass],
		NPLikenessScore:                 rec[FieldNPLikenessScore],
	}
}
