package request

import "github.com/user/phytochem-crawler/internal/labels"

type SubmitPlantsRequest struct {
	Plants []string `json:"plants"`
	Force  bool     `json:"force"`
}

// ExtractRequest runs the label extractor over a caller's document. Exactly
// one of HTML and Text is expected; HTML wins when both are set.
type ExtractRequest struct {
	HTML      string           `json:"html"`
	Text      string           `json:"text"`
	Labels    labels.LabelSpec `json:"labels"`
	Closeouts []string         `json:"closeouts"`
	Limits    labels.Limits    `json:"limits"`
}
