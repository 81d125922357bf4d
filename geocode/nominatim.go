package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sanketa/backend/models"
)

// ErrNotFound means the provider returned no result for the query.
var ErrNotFound = errors.New("no geocoding result")

// Client is a Nominatim search client.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewClient creates a geocoding client. Nominatim's usage policy requires a
// proper User-Agent on every request.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// nominatimResult is the subset of the jsonv2 response shape we read.
type nominatimResult struct {
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	BoundingBox []string `json:"boundingbox"`
}

// Geocode resolves a free-text query to its best-match location.
func (c *Client) Geocode(ctx context.Context, query string) (models.Location, error) {
	results, err := c.search(ctx, query, 1)
	if err != nil {
		return models.Location{}, err
	}
	if len(results) == 0 {
		return models.Location{}, ErrNotFound
	}

	it := results[0]
	lat, err := strconv.ParseFloat(it.Lat, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to parse latitude %q: %w", it.Lat, err)
	}
	lng, err := strconv.ParseFloat(it.Lon, 64)
	if err != nil {
		return models.Location{}, fmt.Errorf("failed to parse longitude %q: %w", it.Lon, err)
	}

	loc := models.Location{Lat: lat, Lng: lng, DisplayName: it.DisplayName}
	if loc.DisplayName == "" {
		loc.DisplayName = strings.TrimSpace(query)
	}
	if len(it.BoundingBox) == 4 {
		bbox := make([]float64, 0, 4)
		for _, s := range it.BoundingBox {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				bbox = nil
				break
			}
			bbox = append(bbox, v)
		}
		loc.BBox = bbox
	}
	return loc, nil
}

// Suggest returns up to limit display names matching the query, for
// autocomplete.
func (c *Client) Suggest(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 || limit > 10 {
		limit = 10
	}
	results, err := c.search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(results))
	for _, it := range results {
		if it.DisplayName != "" {
			names = append(names, it.DisplayName)
		}
	}
	return names, nil
}

func (c *Client) search(ctx context.Context, query string, limit int) ([]nominatimResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrNotFound
	}

	endpoint := fmt.Sprintf("%s/search?format=jsonv2&q=%s&limit=%d&addressdetails=0",
		c.baseURL, url.QueryEscape(q), limit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch geocoding result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}
	return results, nil
}
