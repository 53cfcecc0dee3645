package config

import "strings"

// Area represents one Dubai district the agent can search in.
type Area struct {
	Name   string    `json:"name"`
	Center []float64 `json:"center"` // latitude, longitude
}

// SupportedAreas is the fixed district gazetteer. Order matters: the
// extractor picks the first name it finds in the message text, so more
// specific names must come before names they contain ("Jumeirah Village
// Circle" before "Jumeirah"). Abbreviations are entries of their own.
var SupportedAreas = []Area{
	{Name: "Dubai Marina", Center: []float64{25.0805, 55.1403}},
	{Name: "Downtown Dubai", Center: []float64{25.1972, 55.2744}},
	{Name: "Palm Jumeirah", Center: []float64{25.1124, 55.1390}},
	{Name: "Business Bay", Center: []float64{25.1850, 55.2650}},
	{Name: "Jumeirah Village Circle", Center: []float64{25.0600, 55.2094}},
	{Name: "JVC", Center: []float64{25.0600, 55.2094}},
	{Name: "Jumeirah Lake Towers", Center: []float64{25.0693, 55.1444}},
	{Name: "JLT", Center: []float64{25.0693, 55.1444}},
	{Name: "Jumeirah Beach Residence", Center: []float64{25.0769, 55.1336}},
	{Name: "JBR", Center: []float64{25.0769, 55.1336}},
	{Name: "Arabian Ranches", Center: []float64{25.0415, 55.2690}},
	{Name: "Dubai Hills Estate", Center: []float64{25.1109, 55.2444}},
	{Name: "Al Barsha", Center: []float64{25.1107, 55.2004}},
	{Name: "Mirdif", Center: []float64{25.2191, 55.4232}},
	{Name: "Deira", Center: []float64{25.2697, 55.3095}},
	{Name: "Bur Dubai", Center: []float64{25.2570, 55.2973}},
	{Name: "International City", Center: []float64{25.1625, 55.4101}},
	{Name: "Dubai Silicon Oasis", Center: []float64{25.1212, 55.3773}},
	{Name: "Dubai Sports City", Center: []float64{25.0390, 55.2190}},
	{Name: "Discovery Gardens", Center: []float64{25.0399, 55.1450}},
	{Name: "Al Furjan", Center: []float64{25.0261, 55.1411}},
	{Name: "The Springs", Center: []float64{25.0631, 55.1842}},
	{Name: "The Meadows", Center: []float64{25.0692, 55.1750}},
	{Name: "Emirates Hills", Center: []float64{25.0766, 55.1631}},
	{Name: "Jumeirah", Center: []float64{25.2048, 55.2597}},
	// Add more districts here as needed
}

// GetAreaNames returns the gazetteer names in their fixed order.
func GetAreaNames() []string {
	names := make([]string, len(SupportedAreas))
	for i, area := range SupportedAreas {
		names[i] = area.Name
	}
	return names
}

// GetAreaByName returns an area by name, case-insensitively.
func GetAreaByName(name string) *Area {
	for _, area := range SupportedAreas {
		if strings.EqualFold(area.Name, name) {
			return &area
		}
	}
	return nil
}
