package extractor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/labels"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

func TestExtractPlant(t *testing.T) {
	plant, report, err := ExtractPlant(readFixture(t, "plant.html"))
	require.NoError(t, err)

	require.Equal(t, "Curcuma longa", plant.PlantName)
	require.Equal(t, "Turmeric, Haldi", plant.CommonName)
	require.Equal(t, "Curcuma domestica, Amomum curcuma", plant.SynonymousNames)
	require.Equal(t, "Ayurveda, Siddha, Unani", plant.SystemOfMedicine)

	want := []entity.Phytochemical{
		{IndianMedicinalPlant: "Curcuma longa", PlantPart: "Rhizome", Identifier: "IMPHY004141", Name: "Curcumin", References: "ISBN:9788185042084"},
		{IndianMedicinalPlant: "Curcuma longa", PlantPart: "Leaf", Identifier: "IMPHY004141", Name: "Curcumin", References: "PMID:12345678"},
		{IndianMedicinalPlant: "Curcuma longa", PlantPart: "Rhizome", Identifier: "IMPHY011995", Name: "ar-Turmerone", References: "ISBN:9788185042084"},
	}
	if diff := cmp.Diff(want, plant.Phytochemicals); diff != "" {
		t.Fatalf("phytochemicals mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"IMPHY004141", "IMPHY011995"}, plant.PhytochemicalIDs())

	require.Equal(t, "plant", report.Schema)
	require.Empty(t, report.Empty)
	require.Empty(t, report.Issues)
}

func TestExtractPlant_MissingFieldsAndTable(t *testing.T) {
	page := `<html><body><h5>Abelmoschus esculentus</h5>
<strong>Common name:</strong> Okra<br>
<strong>Synonymous names:</strong> Hibiscus esculentus<br>
<strong>More Information:</strong> none</body></html>`

	plant, report, err := ExtractPlant(page)
	require.NoError(t, err)

	require.Equal(t, "Okra", plant.CommonName)
	require.Equal(t, "Hibiscus esculentus", plant.SynonymousNames)
	require.Equal(t, "", plant.SystemOfMedicine)
	require.NotNil(t, plant.Phytochemicals)
	require.Empty(t, plant.Phytochemicals)
	require.Equal(t, []string{FieldSystemOfMedicine}, report.Empty)
}

func TestExtractPlant_ReportsRepeatedBoundaryLabel(t *testing.T) {
	page := `<div><b>Kingdom:</b> Plantae <b>Family:</b> Zingiberaceae <b>Group:</b> Angiosperm
<b>Common name:</b> Turmeric <b>Synonymous names:</b> Curcuma domestica
<b>System of medicine:</b> Ayurveda <b>Family:</b> Zingiberaceae</div>`

	plant, report, err := ExtractPlant(page)
	require.NoError(t, err)
	require.Equal(t, "Turmeric", plant.CommonName)
	require.Equal(t, "Ayurveda Family: Zingiberaceae", plant.SystemOfMedicine)

	require.Contains(t, report.Issues, labels.Issue{
		Label:   "Family:",
		Problem: labels.ProblemDuplicateLabel,
		Detail:  "found 2 times",
	})
	require.Contains(t, report.Issues, labels.Issue{
		Field:   FieldSystemOfMedicine,
		Label:   "Family:",
		Problem: labels.ProblemLabelLeak,
		Detail:  `value contains "Family:"`,
	})
}

func TestExtractPlant_TableFoundByHeaders(t *testing.T) {
	page := `<html><body><h5>Zingiber officinale</h5>
<table class="table">
<tr><th>Indian medicinal plant</th><th>Plant part</th><th>IMPPAT Phytochemical identifier</th><th>Phytochemical name</th><th>References</th></tr>
<tr><td>Zingiber officinale</td><td>Rhizome</td><td>IMPHY000001</td><td>Gingerol</td><td>PMID:1</td></tr>
</table></body></html>`

	plant, _, err := ExtractPlant(page)
	require.NoError(t, err)
	require.Len(t, plant.Phytochemicals, 1)
	require.Equal(t, "Gingerol", plant.Phytochemicals[0].Name)
}

func TestExtractSummary(t *testing.T) {
	summary, report, err := ExtractSummary(readFixture(t, "summary.html"))
	require.NoError(t, err)

	want := entity.PhytochemicalSummary{
		Identifier:                      "IMPHY004141",
		Name:                            "Curcumin",
		SynonymousChemicalNames:         "diferuloylmethane, turmeric yellow",
		SMILES:                          "COc1cc(/C=C/C(=O)CC(=O)/C=C/c2ccc(O)c(OC)c2)ccc1O",
		ClassyFireKingdom:               "Organic compounds",
		ClassyFireSuperclass:            "Phenylpropanoids and polyketides",
		ClassyFireClass:                 "Diarylheptanoids",
		ClassyFireSubclass:              "Linear diarylheptanoids",
		NPClassifierBiosyntheticPathway: "Shikimates and Phenylpropanoids",
		NPClassifierSuperclass:          "Diarylheptanoids",
		NPClassifierClass:               "Linear diarylheptanoids",
		NPLikenessScore:                 "1.23",
	}
	if diff := cmp.Diff(want, summary); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, report.Empty)
	// "SMILES:" also occurs inside "DeepSMILES:".
	require.Equal(t, []labels.Issue{{
		Field:   FieldSMILES,
		Label:   "SMILES:",
		Problem: labels.ProblemDuplicateLabel,
		Detail:  "found 2 times",
	}}, report.Issues)
}

func TestExtractSummary_TitleSeedsName(t *testing.T) {
	page := `<html><body><h5>Phytochemical: ar-Turmerone</h5>
<strong>Phytochemical name:</strong> Turmerone, aromatic<br>
<strong>SMILES:</strong> CC1=CC=C(C=C1)C(C)CC(=O)C=C(C)C</body></html>`

	summary, _, err := ExtractSummary(page)
	require.NoError(t, err)
	require.Equal(t, "ar-Turmerone", summary.Name)
	require.Equal(t, "CC1=CC=C(C=C1)C(C)CC(=O)C=C(C)C", summary.SMILES)
}

func TestExtractSummary_IdentifierFromLinks(t *testing.T) {
	page := `<html><body><h5>Curcumin</h5>
<a href="/imppat/home">Home</a>
<a href="https://cb.imsc.res.in/imppat/phytochemical-detailedpage/IMPHY004141">Summary</a>
<strong>NP-Likeness score:</strong> 1.23</body></html>`

	summary, report, err := ExtractSummary(page)
	require.NoError(t, err)
	require.Equal(t, "IMPHY004141", summary.Identifier)
	require.Equal(t, "Curcumin", summary.Name)
	require.Equal(t, "1.23", summary.NPLikenessScore)
	require.NotContains(t, report.Empty, FieldIdentifier)
}

func TestExtractProperties(t *testing.T) {
	page := readFixture(t, "physicochemical.html")

	testCases := []struct {
		heading  string
		expected []entity.Property
	}{
		{
			heading: HeadingPhysicochemical,
			expected: []entity.Property{
				{Name: "Molecular weight (g/mol)", Value: "368.38"},
				{Name: "Log P", Value: "3.37"},
				{Name: "Topological polar surface area", Value: "93.06"},
			},
		},
		{
			heading:  HeadingDrugLikeness,
			expected: []entity.Property{{Name: "Lipinski's rule of 5 filter", Value: "Passed"}},
		},
		{
			heading:  HeadingADMET,
			expected: []entity.Property{},
		},
	}

	for _, test := range testCases {
		t.Run(test.heading, func(t *testing.T) {
			props, err := ExtractProperties(page, test.heading)
			require.NoError(t, err)
			require.Equal(t, test.expected, props)
		})
	}
}

func TestExtractProperties_HeadingIsCaseInsensitive(t *testing.T) {
	page := `<h6>ADMET PROPERTIES</h6>
<table class="table"><tr><th>property name</th><th>tool</th><th>property value</th></tr>
<tr><td>GI absorption</td><td>SwissADME</td><td>High</td></tr></table>`

	props, err := ExtractProperties(page, HeadingADMET)
	require.NoError(t, err)
	require.Equal(t, []entity.Property{{Name: "GI absorption", Value: "High"}}, props)
}

func TestExtractDescriptors(t *testing.T) {
	descriptors, err := ExtractDescriptors(readFixture(t, "descriptors.html"))
	require.NoError(t, err)

	require.Equal(t, []entity.Descriptor{
		{Tool: "RDKit", Type: "2D", Descriptor: "MolWt", Description: "Molecular weight", DescriptorClass: "Constitutional", Result: "368.385"},
		{Tool: "PaDEL", Type: "2D", Descriptor: "nAcid", Description: "Number of acidic groups", DescriptorClass: "Acidic group count", Result: "0"},
	}, descriptors)
}

func TestExtractProperties_NoRowsIsEmptyNotNil(t *testing.T) {
	props, err := ExtractProperties("<h6>ADMET properties</h6><p>No data</p>", HeadingADMET)
	require.NoError(t, err)
	require.NotNil(t, props)
	require.Empty(t, props)

	out, err := json.Marshal(entity.PhytochemicalDetail{ADMETProperties: props})
	require.NoError(t, err)
	require.Contains(t, string(out), `"admet_properties":[]`)
}

func TestCellText_InlineMarkup(t *testing.T) {
	page := `<table class="table"><tr><th>property name</th><th>tool</th><th>property value</th></tr>
<tr><td>Molecular  formula</td><td>RDKit</td><td>C<sub>21</sub>H<sub>20</sub>O<sub>6</sub></td></tr>
<tr><td>Charge</td><td>RDKit</td><td>10<sup>-3</sup></td></tr></table>`
	page = "<h6>Physicochemical properties</h6>" + page

	props, err := ExtractProperties(page, HeadingPhysicochemical)
	require.NoError(t, err)
	require.Equal(t, []entity.Property{
		{Name: "Molecular formula", Value: "C21H20O6"},
		{Name: "Charge", Value: "10-3"},
	}, props)
}

func TestExtractDescriptors_FallbackToHeading(t *testing.T) {
	page := `<table class="table"><tr><td>a</td><td>b</td><td>c</td><td>d</td><td>e</td><td>f</td></tr></table>
<center><h6>Chemical Descriptors</h6></center>
<table class="table table-striped">
<tr><td>RDKit</td><td>2D</td><td>HeavyAtomCount</td><td>Heavy atoms</td><td>Constitutional</td><td>27</td></tr>
</table>`

	descriptors, err := ExtractDescriptors(page)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	require.Equal(t, "HeavyAtomCount", descriptors[0].Descriptor)
	require.Equal(t, "27", descriptors[0].Result)
}

func TestExtractDescriptors_NoTable(t *testing.T) {
	descriptors, err := ExtractDescriptors(`<p>No descriptors</p>`)
	require.NoError(t, err)
	require.NotNil(t, descriptors)
	require.Empty(t, descriptors)
}

func TestExtractPlantOptions(t *testing.T) {
	options, err := ExtractPlantOptions(readFixture(t, "home.html"))
	require.NoError(t, err)

	require.Equal(t, []entity.PlantOption{
		{Value: "/imppat/plantdetails/Curcuma%20longa", Name: "Curcuma longa"},
		{Value: "/imppat/plantdetails/Abelmoschus%20esculentus", Name: "Abelmoschus esculentus"},
		{Value: "/imppat/plantdetails/Zingiber%20officinale", Name: "Zingiber officinale"},
	}, options)
}

func TestFields(t *testing.T) {
	spec := labels.LabelSpec{
		{Text: "Common name:", Key: "common_name"},
		{Text: "Group:"},
	}
	rec, issues, err := Fields(`<p><b>Common name:</b> Okra <b>Group:</b> Angiosperm</p>`, spec, nil, nil)
	require.NoError(t, err)
	require.Equal(t, labels.Record{"common_name": "Okra"}, rec)
	require.Empty(t, issues)
}
