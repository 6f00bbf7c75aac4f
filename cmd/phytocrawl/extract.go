package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/phytochem-crawler/internal/entity"
	"github.com/user/phytochem-crawler/internal/extractor"
)

var extractType string

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Run one extractor over a saved page",
	Long: `Run the extractor for one page type over a saved HTML file and print
the result as JSON. Page types: plant, summary, physicochemical,
drug_likeness, admet, descriptors.

Examples:
  phytocrawl extract --type plant impat_webpages/Abrus_precatorius/plant_details.html
  phytocrawl extract --type summary IMPHY004519_summary.html`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		result, err := extractPage(entity.PageType(strings.ReplaceAll(extractType, "-", "_")), string(raw))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractType, "type", "t", string(entity.PagePlant), "page type of the file")
}

// extractedPage is what extract prints for label-based pages.
type extractedPage struct {
	Data   any      `json:"data"`
	Empty  []string `json:"empty_fields,omitempty"`
	Issues []string `json:"issues,omitempty"`
}

func extractPage(pt entity.PageType, html string) (any, error) {
	switch pt {
	case entity.PagePlant:
		record, report, err := extractor.ExtractPlant(html)
		if err != nil {
			return nil, err
		}
		return withReport(record, report), nil
	case entity.PageSummary:
		summary, report, err := extractor.ExtractSummary(html)
		if err != nil {
			return nil, err
		}
		return withReport(summary, report), nil
	case entity.PagePhysicochemical:
		return extractor.ExtractProperties(html, extractor.HeadingPhysicochemical)
	case entity.PageDrugLikeness:
		return extractor.ExtractProperties(html, extractor.HeadingDrugLikeness)
	case entity.PageADMET:
		return extractor.ExtractProperties(html, extractor.HeadingADMET)
	case entity.PageDescriptors:
		return extractor.ExtractDescriptors(html)
	default:
		return nil, fmt.Errorf("unknown page type %q", pt)
	}
}

func withReport(data any, report *extractor.Report) extractedPage {
	out := extractedPage{Data: data, Empty: report.Empty}
	for _, issue := range report.Issues {
		out.Issues = append(out.Issues, issue.String())
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
