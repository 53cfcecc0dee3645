package format

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/degenpilot404/realyieldagent/internal/models"
)

// NoMatchesMessage is the fixed reply for a search with zero results.
const NoMatchesMessage = "I couldn't find any listings matching your criteria. Would you like to broaden the search?"

// NoDetailMessage is the fixed reply when the detail endpoint stays
// unreachable for a listing link.
const NoDetailMessage = "I couldn't pull up the details for that listing right now. Please try again later."

var newlinePattern = regexp.MustCompile(`[\r\n]+`)

// FormatListings renders listings as a numbered block: title and price
// on one line, the bracketed link on the next, entries separated by a
// blank line. Embedded newlines in provider data are collapsed to
// spaces first.
func FormatListings(listings []models.Listing) string {
	if len(listings) == 0 {
		return NoMatchesMessage
	}

	blocks := make([]string, 0, len(listings))
	for i, listing := range listings {
		title := collapseNewlines(listing.Title)
		price := collapseNewlines(listing.Price)
		blocks = append(blocks, fmt.Sprintf("%d. %s – %s\n[%s]", i+1, title, price, listing.Link))
	}
	return strings.Join(blocks, "\n\n")
}

// FormatDetail renders a single-property card for link analysis.
func FormatDetail(detail *models.PropertyDetail) string {
	if detail == nil {
		return NoDetailMessage
	}

	var b strings.Builder

	title := collapseNewlines(detail.Title)
	if title == "" {
		title = "Property details"
	}
	b.WriteString(title + "\n")

	fmt.Fprintf(&b, "Price: AED %s\n", formatAmount(int64(math.Round(detail.Price))))
	if detail.Bedrooms == 0 {
		b.WriteString("Bedrooms: studio\n")
	} else {
		fmt.Fprintf(&b, "Bedrooms: %d\n", detail.Bedrooms)
	}
	fmt.Fprintf(&b, "Bathrooms: %d\n", detail.Bathrooms)
	if detail.Size != nil {
		fmt.Fprintf(&b, "Size: %.0f sqft\n", *detail.Size)
	}
	if detail.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", collapseNewlines(detail.Location))
	}
	if detail.Furnished {
		b.WriteString("Furnished: yes\n")
	} else {
		b.WriteString("Furnished: no\n")
	}
	if len(detail.Amenities) > 0 {
		fmt.Fprintf(&b, "Amenities: %s\n", strings.Join(detail.Amenities, ", "))
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatCriteria summarizes the fields present in criteria, used in
// save confirmations.
func FormatCriteria(criteria models.SearchCriteria) string {
	var parts []string
	if criteria.PropertyType != "" {
		parts = append(parts, criteria.PropertyType)
	}
	if criteria.Bedrooms == models.BedroomsStudio {
		parts = append(parts, "studio")
	} else if criteria.Bedrooms != "" {
		parts = append(parts, criteria.Bedrooms+" bedroom")
	}
	if criteria.Area != "" {
		parts = append(parts, "in "+criteria.Area)
	}
	if criteria.MaxPrice != nil {
		parts = append(parts, "under AED "+formatAmount(*criteria.MaxPrice))
	}
	if criteria.MinPrice != nil {
		parts = append(parts, "above AED "+formatAmount(*criteria.MinPrice))
	}

	if len(parts) == 0 {
		return "no specific criteria"
	}
	return strings.Join(parts, ", ")
}

// FormatNearbySuggestion lists districts worth trying after an empty
// result. An empty slice yields an empty string.
func FormatNearbySuggestion(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return "Nearby areas you could try: " + strings.Join(names, ", ") + "."
}

func collapseNewlines(s string) string {
	return newlinePattern.ReplaceAllString(s, " ")
}

func formatAmount(v int64) string {
	s := strconv.FormatInt(v, 10)
	if v < 0 || len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
