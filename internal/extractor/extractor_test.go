package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/degenpilot404/realyieldagent/internal/models"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.SearchCriteria
	}{
		{
			name: "empty text",
			text: "",
			want: models.SearchCriteria{},
		},
		{
			name: "no recognizable fields",
			text: "hello, how are you today?",
			want: models.SearchCriteria{},
		},
		{
			name: "max price with million word",
			text: "under 1.5 million AED",
			want: models.SearchCriteria{MaxPrice: int64Ptr(1500000)},
		},
		{
			name: "max price with m suffix",
			text: "under 1.5M",
			want: models.SearchCriteria{MaxPrice: int64Ptr(1500000)},
		},
		{
			name: "max price with k suffix",
			text: "budget is under 950k",
			want: models.SearchCriteria{MaxPrice: int64Ptr(950000)},
		},
		{
			name: "comma grouped price",
			text: "3 bed in JVC under 2,000,000",
			want: models.SearchCriteria{
				Area:     "JVC",
				Bedrooms: "3",
				MaxPrice: int64Ptr(2000000),
			},
		},
		{
			name: "full query",
			text: "Show me 2 bedroom apartments in Dubai Marina under 1.5M",
			want: models.SearchCriteria{
				Area:         "Dubai Marina",
				PropertyType: models.PropertyTypeApartment,
				Bedrooms:     "2",
				MaxPrice:     int64Ptr(1500000),
			},
		},
		{
			name: "min and max price in one text",
			text: "over 500k and under 900k",
			want: models.SearchCriteria{
				MinPrice: int64Ptr(500000),
				MaxPrice: int64Ptr(900000),
			},
		},
		{
			name: "min price phrases",
			text: "penthouse above 3 million",
			want: models.SearchCriteria{
				PropertyType: models.PropertyTypePenthouse,
				MinPrice:     int64Ptr(3000000),
			},
		},
		{
			name: "townhouse is not a house",
			text: "townhouse in Arabian Ranches",
			want: models.SearchCriteria{
				Area:         "Arabian Ranches",
				PropertyType: models.PropertyTypeTownhouse,
			},
		},
		{
			name: "house maps to villa",
			text: "looking for a house in Mirdif",
			want: models.SearchCriteria{
				Area:         "Mirdif",
				PropertyType: models.PropertyTypeVilla,
			},
		},
		{
			name: "flat maps to apartment",
			text: "a flat in JLT please",
			want: models.SearchCriteria{
				Area:         "JLT",
				PropertyType: models.PropertyTypeApartment,
			},
		},
		{
			name: "studio bedrooms",
			text: "studio in Business Bay",
			want: models.SearchCriteria{
				Area:     "Business Bay",
				Bedrooms: models.BedroomsStudio,
			},
		},
		{
			name: "numeric bedrooms beat studio",
			text: "2br studio conversion",
			want: models.SearchCriteria{Bedrooms: "2"},
		},
		{
			name: "area match is case insensitive",
			text: "anything in dubai marina",
			want: models.SearchCriteria{Area: "Dubai Marina"},
		},
		{
			name: "specific area wins over general by gazetteer order",
			text: "villa in Jumeirah Village Circle",
			want: models.SearchCriteria{
				Area:         "Jumeirah Village Circle",
				PropertyType: models.PropertyTypeVilla,
			},
		},
		{
			name: "general area still matches on its own",
			text: "something in Jumeirah",
			want: models.SearchCriteria{Area: "Jumeirah"},
		},
		{
			name: "monthly is not a million suffix",
			text: "under 2,000,000 monthly",
			want: models.SearchCriteria{MaxPrice: int64Ptr(2000000)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.want.Area, got.Area)
			assert.Equal(t, tt.want.PropertyType, got.PropertyType)
			assert.Equal(t, tt.want.Bedrooms, got.Bedrooms)
			assertPriceEqual(t, tt.want.MaxPrice, got.MaxPrice, "maxPrice")
			assertPriceEqual(t, tt.want.MinPrice, got.MinPrice, "minPrice")
		})
	}
}

func assertPriceEqual(t *testing.T, want, got *int64, label string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, label)
		return
	}
	require.NotNil(t, got, label)
	assert.Equal(t, *want, *got, label)
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "Show me 2 bedroom apartments in Dubai Marina under 1.5M"

	first := Extract(text)
	second := Extract(text)

	assert.Equal(t, first, second)
}

func TestExtractEmptyCriteria(t *testing.T) {
	got := Extract("good morning")
	assert.True(t, got.IsEmpty())

	got = Extract("2 bed in JVC")
	assert.False(t, got.IsEmpty())
}
