// Package google provides search engines and lookups backed by Google:
// a rendered results-page engine and clients for the Custom Search JSON API.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fwojciec/prospect"
)

// DefaultCustomSearchURL is the Custom Search JSON API endpoint.
const DefaultCustomSearchURL = "https://www.googleapis.com/customsearch/v1"

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 30 * time.Second

// maxPerCall is the most results the API returns for one request.
const maxPerCall = 10

// Item is one Custom Search result.
type Item struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Items []Item `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the Custom Search JSON API.
type Client struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client for the given API key and search engine ID.
func NewClient(apiKey, engineID string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  DefaultCustomSearchURL,
		client:   &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns up to num results for q starting at the 1-based index
// start. num is capped at the API maximum of 10.
func (c *Client) Search(ctx context.Context, q string, num, start int) ([]Item, error) {
	if c.apiKey == "" || c.engineID == "" {
		return nil, prospect.Errorf(prospect.EUNAVAILABLE, "custom search API key and engine ID required")
	}
	num = min(max(num, 1), maxPerCall)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", q)
	params.Set("num", strconv.Itoa(num))
	if start > 1 {
		params.Set("start", strconv.Itoa(start))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode custom search response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if body.Error != nil {
			return nil, fmt.Errorf("custom search HTTP %d: %s", resp.StatusCode, body.Error.Message)
		}
		return nil, fmt.Errorf("custom search HTTP %d", resp.StatusCode)
	}
	return body.Items, nil
}
