package labels

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Problem names a kind of validation issue.
type Problem string

const (
	// ProblemLabelLeak: a value contains the text of another label,
	// usually because the LabelSpec order does not match the document.
	ProblemLabelLeak Problem = "label_leak"
	// ProblemTooLong: a value exceeds the length limit for its field.
	ProblemTooLong Problem = "too_long"
	// ProblemDuplicateLabel: a label occurs more than once in the text.
	// Extraction still uses the first occurrence.
	ProblemDuplicateLabel Problem = "duplicate_label"
)

// Issue describes one suspicious extraction result.
type Issue struct {
	Field   string  `json:"field,omitempty"`
	Label   string  `json:"label,omitempty"`
	Problem Problem `json:"problem"`
	Detail  string  `json:"detail,omitempty"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return fmt.Sprintf("%s %q: %s", i.Problem, i.Label, i.Detail)
	}
	return fmt.Sprintf("%s %s: %s", i.Problem, i.Field, i.Detail)
}

// Limits caps the length, in characters, of individual fields. Fields
// without an entry are unbounded.
type Limits map[string]int

// Validate reports problems with rec as extracted from text using spec.
// It never modifies rec.
func Validate(text string, spec LabelSpec, rec Record, limits Limits) []Issue {
	var issues []Issue

	for _, l := range spec {
		if l.Text == "" {
			continue
		}
		if n := strings.Count(text, l.Text); n > 1 {
			issues = append(issues, Issue{
				Field:   l.Key,
				Label:   l.Text,
				Problem: ProblemDuplicateLabel,
				Detail:  fmt.Sprintf("found %d times", n),
			})
		}
	}

	for _, key := range spec.Keys() {
		value := rec[key]
		if value == "" {
			continue
		}
		for _, other := range spec {
			if other.Text != "" && strings.Contains(value, other.Text) {
				issues = append(issues, Issue{
					Field:   key,
					Label:   other.Text,
					Problem: ProblemLabelLeak,
					Detail:  fmt.Sprintf("value contains %q", other.Text),
				})
			}
		}
		if max := limits[key]; max > 0 {
			if n := utf8.RuneCountInString(value); n > max {
				issues = append(issues, Issue{
					Field:   key,
					Problem: ProblemTooLong,
					Detail:  fmt.Sprintf("%d characters, limit %d", n, max),
				})
			}
		}
	}
	return issues
}

// EmptyFields returns the keyed fields of spec that rec leaves empty.
func EmptyFields(spec LabelSpec, rec Record) []string {
	var empty []string
	for _, key := range spec.Keys() {
		if rec[key] == "" {
			empty = append(empty, key)
		}
	}
	return empty
}
