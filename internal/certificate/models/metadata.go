package models

// MetadataDocument is the off-ledger description of a certificate, shaped
// like an NFT metadata file.
type MetadataDocument struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

// MetadataAttribute is one trait of a metadata document.
type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// Attribute returns the value of the named trait, or "" if absent.
func (d *MetadataDocument) Attribute(traitType string) string {
	for _, a := range d.Attributes {
		if a.TraitType == traitType {
			return a.Value
		}
	}
	return ""
}
