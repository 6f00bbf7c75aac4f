package entity

// Phytochemical is one row of a plant's phytochemical table.
type Phytochemical struct {
	IndianMedicinalPlant string               `json:"indian_medicinal_plant"`
	PlantPart            string               `json:"plant_part"`
	Identifier           string               `json:"imppat_phytochemical_identifier"`
	Name                 string               `json:"phytochemical_name"`
	References           string               `json:"references"`
	Details              *PhytochemicalDetail `json:"details,omitempty"`
}

// PhytochemicalSummary holds the fields of a phytochemical's summary page.
type PhytochemicalSummary struct {
	Identifier                      string `json:"imppat_phytochemical_identifier"`
	Name                            string `json:"phytochemical_name"`
	SynonymousChemicalNames         string `json:"synonymous_chemical_names"`
	SMILES                          string `json:"smiles"`
	ClassyFireKingdom               string `json:"classyfire_kingdom"`
	ClassyFireSuperclass            string `json:"classyfire_superclass"`
	ClassyFireClass                 string `json:"classyfire_class"`
	ClassyFireSubclass              string `json:"classyfire_subclass"`
	NPClassifierBiosyntheticPathway string `json:"np_classifier_biosynthetic_pathway"`
	NPClassifierSuperclass          string `json:"np_classifier_superclass"`
	NPClassifierClass               string `json:"np_classifier_class"`
	NPLikenessScore                 string `json:"np_likeness_score"`
}

// PhytochemicalDetail merges the five detail pages of a phytochemical.
// Property lists are nil when their page could not be downloaded or parsed
// and empty when the page had no rows.
type PhytochemicalDetail struct {
	PhytochemicalSummary
	PhysicochemicalProperties []Property   `json:"physicochemical_properties,omitempty"`
	DrugLikenessProperties    []Property   `json:"drug_likeness_properties,omitempty"`
	ADMETProperties           []Property   `json:"admet_properties,omitempty"`
	ChemicalDescriptors       []Descriptor `json:"chemical_descriptors,omitempty"`
}

// Property is one row of a "Property name | Tool | Property value" table.
type Property struct {
	Name  string `json:"property_name"`
	Value string `json:"property_value"`
}

// Descriptor is one row of the chemical descriptors table.
type Descriptor struct {
	Tool            string `json:"tool"`
	Type            string `json:"type"`
	Descriptor      string `json:"descriptor"`
	Description     string `json:"description"`
	DescriptorClass string `json:"descriptor_class"`
	Result          string `json:"result"`
}
