// Package labels pulls field values out of flattened page text by slicing
// between known label strings.
//
// A LabelSpec lists labels in the order they appear in the document. The
// value of a label runs from the end of the label to the first later label
// of the LabelSpec that occurs in the text, or to a closeout heading if one
// comes sooner. Labels are assumed to occur once; the first occurrence is used.
package labels

import "strings"

// Label pairs a marker string with the record key its value is stored
// under. An empty Key makes the label a boundary marker only.
type Label struct {
	Text string `json:"label"`
	Key  string `json:"field,omitempty"`
}

// LabelSpec is an ordered list of labels.
type LabelSpec []Label

// Keys returns the record keys of s in order, skipping boundary
// markers.
func (s LabelSpec) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, l := range s {
		if l.Key != "" {
			keys = append(keys, l.Key)
		}
	}
	return keys
}

// Record maps field keys to extracted values. A key holding "" means the
// value was not found.
type Record map[string]string

// NewRecord returns a record with every keyed field of spec set to "".
func NewRecord(spec LabelSpec) Record {
	rec := make(Record, len(spec))
	for _, key := range spec.Keys() {
		rec[key] = ""
	}
	return rec
}

// Extract fills the keyed fields of spec from text. Fields that are
// already non-empty in seed are left untouched; seed itself is not
// modified. The result always contains every keyed field of spec.
func Extract(text string, spec LabelSpec, closeouts []string, seed Record) Record {
	rec := NewRecord(spec)
	for k, v := range seed {
		rec[k] = v
	}

	for i, l := range spec {
		if l.Key == "" || l.Text == "" {
			continue
		}
		pos := strings.Index(text, l.Text)
		if pos == -1 {
			continue
		}
		start := pos + len(l.Text)
		end := valueEnd(text, start, spec[i+1:], closeouts)

		value := Clean(text[start:end])
		if value == "" || rec[l.Key] != "" {
			continue
		}
		rec[l.Key] = value
	}
	return rec
}

// valueEnd finds where a value starting at start stops. The first label in
// later (in order) that occurs at or after start bounds the value; a
// closeout heading bounds it if it comes sooner.
func valueEnd(text string, start int, later LabelSpec, closeouts []string) int {
	end := len(text)
	rest := text[start:]

	for _, l := range later {
		if l.Text == "" {
			continue
		}
		if n := strings.Index(rest, l.Text); n != -1 {
			end = start + n
			break
		}
	}

	for _, h := range closeouts {
		if h == "" {
			continue
		}
		if n := strings.Index(rest, h); n != -1 && start+n < end {
			end = start + n
		}
	}
	return end
}

// Clean collapses whitespace runs to single spaces and strips surrounding
// commas, colons and spaces.
func Clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, ", :")
}
