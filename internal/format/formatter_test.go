package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/degenpilot404/realyieldagent/internal/models"
)

func TestFormatListings(t *testing.T) {
	listings := []models.Listing{
		{Title: "Marina View 2BR", Price: "AED 1,450,000", Link: "https://listings.example/1"},
		{Title: "JLT Studio", Price: "AED 620,000", Link: "https://listings.example/2"},
	}

	got := FormatListings(listings)

	want := "1. Marina View 2BR – AED 1,450,000\n" +
		"[https://listings.example/1]\n" +
		"\n" +
		"2. JLT Studio – AED 620,000\n" +
		"[https://listings.example/2]"
	assert.Equal(t, want, got)
}

func TestFormatListingsCollapsesNewlines(t *testing.T) {
	listings := []models.Listing{
		{Title: "Spacious\nVilla", Price: "AED\r\n3,200,000", Link: "https://listings.example/3"},
	}

	got := FormatListings(listings)

	assert.Equal(t, "1. Spacious Villa – AED 3,200,000\n[https://listings.example/3]", got)
}

func TestFormatListingsEmpty(t *testing.T) {
	assert.Equal(t, NoMatchesMessage, FormatListings(nil))
	assert.Equal(t, NoMatchesMessage, FormatListings([]models.Listing{}))
}

func TestFormatDetail(t *testing.T) {
	size := 1120.5
	detail := &models.PropertyDetail{
		Title:     "Marina View 2BR",
		Price:     1450000,
		Size:      &size,
		Bedrooms:  2,
		Bathrooms: 2,
		Location:  "Dubai Marina",
		Furnished: true,
		Amenities: []string{"pool", "gym"},
	}

	got := FormatDetail(detail)

	want := "Marina View 2BR\n" +
		"Price: AED 1,450,000\n" +
		"Bedrooms: 2\n" +
		"Bathrooms: 2\n" +
		"Size: 1120 sqft\n" +
		"Location: Dubai Marina\n" +
		"Furnished: yes\n" +
		"Amenities: pool, gym"
	assert.Equal(t, want, got)
}

func TestFormatDetailStudioAndAbsent(t *testing.T) {
	got := FormatDetail(&models.PropertyDetail{Title: "Compact unit", Price: 500000})
	assert.Contains(t, got, "Bedrooms: studio")
	assert.Contains(t, got, "Furnished: no")
	assert.NotContains(t, got, "Size:")
	assert.NotContains(t, got, "Amenities:")

	assert.Equal(t, NoDetailMessage, FormatDetail(nil))
}

func TestFormatCriteria(t *testing.T) {
	maxPrice := int64(1500000)
	criteria := models.SearchCriteria{
		Area:         "Dubai Marina",
		PropertyType: models.PropertyTypeApartment,
		Bedrooms:     "2",
		MaxPrice:     &maxPrice,
	}

	got := FormatCriteria(criteria)

	assert.Equal(t, "apartment, 2 bedroom, in Dubai Marina, under AED 1,500,000", got)
}

func TestFormatCriteriaStudioAndEmpty(t *testing.T) {
	assert.Equal(t, "studio, in JLT", FormatCriteria(models.SearchCriteria{Area: "JLT", Bedrooms: models.BedroomsStudio}))
	assert.Equal(t, "no specific criteria", FormatCriteria(models.SearchCriteria{}))
}

func TestFormatNearbySuggestion(t *testing.T) {
	assert.Equal(t, "", FormatNearbySuggestion(nil))
	assert.Equal(t,
		"Nearby areas you could try: Jumeirah Beach Residence, Jumeirah Lake Towers.",
		FormatNearbySuggestion([]string{"Jumeirah Beach Residence", "Jumeirah Lake Towers"}),
	)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{value: 0, want: "0"},
		{value: 950, want: "950"},
		{value: 1500, want: "1,500"},
		{value: 2000000, want: "2,000,000"},
		{value: 123456789, want: "123,456,789"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatAmount(tt.value), "value %d", tt.value)
	}
}
