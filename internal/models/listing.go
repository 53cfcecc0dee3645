package models

// Listing is a single search result as shown to the user.
type Listing struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
}

// PropertyDetail is the richer record returned by the provider's detail
// endpoint for one listing link.
type PropertyDetail struct {
	Title     string   `json:"title"`
	Price     float64  `json:"price"`
	Size      *float64 `json:"size,omitempty"`
	Bedrooms  int      `json:"bedrooms"`
	Bathrooms int      `json:"bathrooms"`
	Location  string   `json:"location"`
	Furnished bool     `json:"furnished"`
	Amenities []string `json:"amenities"`
	ImageURL  string   `json:"image_url,omitempty"`
}
