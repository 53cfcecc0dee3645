package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/degenpilot404/realyieldagent/internal/models"
	"github.com/degenpilot404/realyieldagent/internal/retry"
)

const (
	// PlaceholderLink marks entries the provider returns without a real URL.
	// Such entries are dropped before display.
	PlaceholderLink = "#"

	// MaxListings caps how many listings a single search surfaces.
	MaxListings = 5

	defaultTitle = "No Title"
	defaultPrice = "Price not specified"

	userAgent = "RealYield Agent/1.0"
)

// GatewayError reports a non-success response from the listing search
// endpoint. Search calls are single-shot; callers must not retry.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("listing provider returned status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the external listing provider.
type Client struct {
	searchURL string
	detailURL string
	client    *http.Client
	logger    *logrus.Logger
	policy    retry.Policy
}

func NewClient(searchURL, detailURL string, timeout time.Duration, policy retry.Policy, logger *logrus.Logger) *Client {
	return &Client{
		searchURL: searchURL,
		detailURL: detailURL,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
		policy:    policy,
	}
}

// searchPayload carries only the fields the provider understands.
// Bedrooms is a pointer so a studio (0) still serializes.
type searchPayload struct {
	Area     string `json:"area,omitempty"`
	Bedrooms *int   `json:"bedrooms,omitempty"`
	MaxPrice *int64 `json:"maxPrice,omitempty"`
}

func buildSearchPayload(criteria models.SearchCriteria) (searchPayload, bool) {
	payload := searchPayload{}
	hasFields := false

	if criteria.Area != "" {
		payload.Area = criteria.Area
		hasFields = true
	}

	if criteria.Bedrooms == models.BedroomsStudio {
		zero := 0
		payload.Bedrooms = &zero
		hasFields = true
	} else if criteria.Bedrooms != "" {
		if n, err := strconv.Atoi(criteria.Bedrooms); err == nil {
			payload.Bedrooms = &n
			hasFields = true
		}
	}

	if criteria.MaxPrice != nil {
		payload.MaxPrice = criteria.MaxPrice
		hasFields = true
	}

	return payload, hasFields
}

// Search queries the provider with whatever criteria fields are
// present. Empty criteria short-circuit to an empty result without a
// network call. A non-success status surfaces as *GatewayError and is
// never retried; an unrecognized response shape degrades to an empty
// result.
func (c *Client) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.Listing, error) {
	payload, ok := buildSearchPayload(criteria)
	if !ok {
		c.logger.Debug("Skipping listing search: no criteria to send")
		return []models.Listing{}, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Error("Listing search request failed")
		return nil, fmt.Errorf("listing search request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(respBody),
		}).Error("Listing search returned non-success status")
		return nil, &GatewayError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	entries, err := decodeListingArray(respBody)
	if err != nil {
		c.logger.WithError(err).Warn("Could not locate listings in search response")
		return []models.Listing{}, nil
	}

	listings := normalizeListings(entries)
	c.logger.WithField("count", len(listings)).Info("Listing search completed")
	return listings, nil
}

type listingEntry struct {
	Title string `json:"title"`
	Price string `json:"price"`
	Link  string `json:"link"`
}

// decodeListingArray accepts the three response shapes the provider is
// known to produce: a bare array, {"listings": [...]}, and
// {"data": {"listings": [...]}}, tried in that order.
func decodeListingArray(body []byte) ([]listingEntry, error) {
	var direct []listingEntry
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Listings *[]listingEntry `json:"listings"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Listings != nil {
		return *wrapped.Listings, nil
	}

	var nested struct {
		Data struct {
			Listings *[]listingEntry `json:"listings"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Data.Listings != nil {
		return *nested.Data.Listings, nil
	}

	return nil, fmt.Errorf("response does not contain a listing array")
}

// normalizeListings fills sentinel title/price values, drops entries
// without a usable link and truncates to MaxListings, preserving
// provider order.
func normalizeListings(entries []listingEntry) []models.Listing {
	listings := make([]models.Listing, 0, len(entries))
	for _, entry := range entries {
		if entry.Link == "" || entry.Link == PlaceholderLink {
			continue
		}

		title := entry.Title
		if title == "" {
			title = defaultTitle
		}
		price := entry.Price
		if price == "" {
			price = defaultPrice
		}

		listings = append(listings, models.Listing{
			Title: title,
			Price: price,
			Link:  entry.Link,
		})
		if len(listings) == MaxListings {
			break
		}
	}
	return listings
}

// FetchDetail loads the full record behind a listing link, retrying on
// the client's policy. Exhausted retries are absorbed: the caller gets
// nil rather than an error, so "no detail available" stays an ordinary
// result for the dialogue layer.
func (c *Client) FetchDetail(ctx context.Context, link string) *models.PropertyDetail {
	var detail *models.PropertyDetail

	err := c.policy.Do(ctx, func(attempt int) error {
		d, err := c.fetchDetailOnce(ctx, link)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"link":    link,
				"attempt": attempt,
			}).Warn("Detail fetch attempt failed")
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		c.logger.WithError(err).WithField("link", link).Error("Giving up on listing detail")
		return nil
	}

	return detail
}

func (c *Client) fetchDetailOnce(ctx context.Context, link string) (*models.PropertyDetail, error) {
	body, err := json.Marshal(map[string]string{"link": link})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal detail payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.detailURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create detail request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detail request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read detail response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detail endpoint returned status %d", resp.StatusCode)
	}

	var detail models.PropertyDetail
	if err := json.Unmarshal(respBody, &detail); err != nil {
		return nil, fmt.Errorf("failed to parse detail response: %v", err)
	}

	return &detail, nil
}

// CheckReachable sends one canary request to the search endpoint. Any
// status below 500 counts as reachable. Used at startup to surface a
// warning; it never gates normal operation.
func (c *Client) CheckReachable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.searchURL, bytes.NewBufferString("{}"))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Listing provider connectivity check failed")
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < http.StatusInternalServerError
}
