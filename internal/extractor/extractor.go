package extractor

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/degenpilot404/realyieldagent/config"
	"github.com/degenpilot404/realyieldagent/internal/models"
)

var (
	apartmentPattern = regexp.MustCompile(`(?i)\b(?:apartment|flat)s?\b`)
	villaPattern     = regexp.MustCompile(`(?i)\b(?:villa|house)s?\b`)
	townhousePattern = regexp.MustCompile(`(?i)\btownhouses?\b`)
	penthousePattern = regexp.MustCompile(`(?i)\bpenthouses?\b`)

	bedroomsPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:bedrooms?|beds?|bdr|bhk|br|bd)\b`)
	studioPattern   = regexp.MustCompile(`(?i)\bstudio\b`)

	// The magnitude suffix belongs to the whole phrase, so "1.5 million"
	// and "1.5M" scale the same way.
	maxPricePattern = regexp.MustCompile(`(?i)\b(?:under|below|less\s+than|max(?:imum)?|up\s+to)\s*(?:aed|usd|dhs\.?|dirhams?|\$)?\s*([\d,]+(?:\.\d+)?)\s*(k|million|m)?\b`)
	minPricePattern = regexp.MustCompile(`(?i)\b(?:above|over|more\s+than|min(?:imum)?|at\s+least)\s*(?:aed|usd|dhs\.?|dirhams?|\$)?\s*([\d,]+(?:\.\d+)?)\s*(k|million|m)?\b`)
)

// Extract parses free-form message text into partial search criteria.
// It is a total function: text with no recognizable fields yields an
// empty criteria object, never an error. Fields are extracted
// independently and the first match per field wins.
func Extract(text string) models.SearchCriteria {
	criteria := models.SearchCriteria{}

	criteria.Area = extractArea(text)
	criteria.PropertyType = extractPropertyType(text)
	criteria.Bedrooms = extractBedrooms(text)
	criteria.MaxPrice = extractPrice(maxPricePattern, text)
	criteria.MinPrice = extractPrice(minPricePattern, text)

	return criteria
}

// extractArea scans the district gazetteer in its fixed order and
// returns the canonical name of the first district mentioned in the
// text. Ordering of the gazetteer is the only tie-break; there is no
// longest-match logic.
func extractArea(text string) string {
	lower := strings.ToLower(text)
	for _, area := range config.SupportedAreas {
		if strings.Contains(lower, strings.ToLower(area.Name)) {
			return area.Name
		}
	}
	return ""
}

func extractPropertyType(text string) string {
	switch {
	case apartmentPattern.MatchString(text):
		return models.PropertyTypeApartment
	case villaPattern.MatchString(text):
		return models.PropertyTypeVilla
	case townhousePattern.MatchString(text):
		return models.PropertyTypeTownhouse
	case penthousePattern.MatchString(text):
		return models.PropertyTypePenthouse
	}
	return ""
}

// extractBedrooms captures a numeric bedroom count such as "3 bed" or
// "2br". The literal word "studio" only applies when no numeric count
// is present in the same text.
func extractBedrooms(text string) string {
	if m := bedroomsPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if studioPattern.MatchString(text) {
		return models.BedroomsStudio
	}
	return ""
}

func extractPrice(pattern *regexp.Regexp, text string) *int64 {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	switch strings.ToLower(m[2]) {
	case "k":
		value *= 1_000
	case "m", "million":
		value *= 1_000_000
	}

	price := int64(math.Round(value))
	return &price
}
