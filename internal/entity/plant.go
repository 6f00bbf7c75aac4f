package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// PlantOption is one entry of the plant dropdown on the site's home page.
// Value is the site path of the plant page.
type PlantOption struct {
	Value string
	Name  string
}

// PlantRecord is everything extracted for one plant. It is the document
// written to plant_data.json and stored in the plant_records table.
type PlantRecord struct {
	PlantName        string          `json:"plant_name"`
	CommonName       string          `json:"common_name"`
	SynonymousNames  string          `json:"synonymous_names"`
	SystemOfMedicine string          `json:"system_of_medicine"`
	Phytochemicals   []Phytochemical `json:"phytochemicals"`
	ScrapedAt        time.Time       `json:"-"`
}

// PhytochemicalIDs returns the distinct phytochemical identifiers listed
// for the plant, in table order.
func (p *PlantRecord) PhytochemicalIDs() []string {
	seen := make(map[string]struct{}, len(p.Phytochemicals))
	ids := make([]string, 0, len(p.Phytochemicals))
	for _, ph := range p.Phytochemicals {
		id := ph.Identifier
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// AttachDetails sets Details on every phytochemical row whose identifier
// has an entry in details.
func (p *PlantRecord) AttachDetails(details map[string]*PhytochemicalDetail) {
	for i := range p.Phytochemicals {
		if d, ok := details[p.Phytochemicals[i].Identifier]; ok {
			p.Phytochemicals[i].Details = d
		}
	}
}

// SafeDirName turns a plant name into a directory name: surrounding space
// is trimmed and spaces and path separators become underscores.
func SafeDirName(name string) string {
	return dirNameReplacer.Replace(strings.TrimSpace(name))
}

var dirNameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// FilterPlants keeps the options whose name matches one of names, ignoring
// case and surrounding space. The order of all is preserved.
func FilterPlants(all []PlantOption, names []string) []PlantOption {
	fold := cases.Fold()
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[fold.String(strings.TrimSpace(n))] = struct{}{}
	}

	var matched []PlantOption
	for _, p := range all {
		if _, ok := wanted[fold.String(strings.TrimSpace(p.Name))]; ok {
			matched = append(matched, p)
		}
	}
	return matched
}
