package models

// Property types recognized by the extractor and the listing provider.
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeVilla     = "villa"
	PropertyTypeTownhouse = "townhouse"
	PropertyTypePenthouse = "penthouse"
)

// BedroomsStudio is the bedroom value used for studio units.
const BedroomsStudio = "studio"

// SearchCriteria holds the structured constraints extracted from a user
// message. Every field is optional; the zero value means "no constraint
// yet known". Bedrooms is kept as text because it carries either a digit
// string or the literal "studio".
type SearchCriteria struct {
	Area         string `json:"area,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`
	Bedrooms     string `json:"bedrooms,omitempty"`
	MaxPrice     *int64 `json:"maxPrice,omitempty"`
	MinPrice     *int64 `json:"minPrice,omitempty"`
}

// IsEmpty reports whether no field has been set.
func (c SearchCriteria) IsEmpty() bool {
	return c.Area == "" &&
		c.PropertyType == "" &&
		c.Bedrooms == "" &&
		c.MaxPrice == nil &&
		c.MinPrice == nil
}
