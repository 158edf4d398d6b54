// Package hunter provides a Lookup backed by the Hunter.io email finder.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/prospect"
)

// DefaultBaseURL is the Hunter.io email-finder endpoint.
const DefaultBaseURL = "https://api.hunter.io/v2/email-finder"

// DefaultConfidence is the confidence assigned to found addresses.
const DefaultConfidence = 0.8

// DefaultTimeout is the default timeout for API requests.
const DefaultTimeout = 30 * time.Second

// Ensure Lookup implements prospect.Lookup at compile time.
var _ prospect.Lookup = (*Lookup)(nil)

// Lookup finds a professional email address for a subject by name and
// company domain (or company name when no domain is known).
type Lookup struct {
	apiKey     string
	baseURL    string
	confidence float64
	client     *http.Client
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(l *Lookup) {
		l.baseURL = u
	}
}

// WithConfidence overrides DefaultConfidence.
func WithConfidence(c float64) Option {
	return func(l *Lookup) {
		l.confidence = c
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Lookup) {
		l.client = hc
	}
}

// NewLookup creates a Lookup authenticating with apiKey.
func NewLookup(apiKey string, opts ...Option) *Lookup {
	l := &Lookup{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		confidence: DefaultConfidence,
		client:     &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lookup) Name() string {
	return "Hunter.io"
}

type finderResponse struct {
	Data struct {
		Email     string `json:"email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Company   string `json:"company"`
		Position  string `json:"position"`
		LinkedIn  string `json:"linkedin_url"`
		Phone     string `json:"phone_number"`
	} `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Details string `json:"details"`
	} `json:"errors"`
}

// Lookup returns at most one result. Subjects with neither domain nor
// company, or with a single-token name, are skipped. A 404 from the API
// means no address was found and is not an error.
func (l *Lookup) Lookup(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	first, last := subject.FirstName(), subject.LastName()
	if first == "" || last == "" {
		return nil, nil
	}

	params := url.Values{}
	switch {
	case subject.Domain != "":
		params.Set("domain", subject.Domain)
	case subject.Company != "":
		params.Set("company", subject.Company)
	default:
		return nil, nil
	}
	params.Set("first_name", first)
	params.Set("last_name", last)
	params.Set("api_key", l.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	var body finderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode hunter response (HTTP %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(body.Errors) > 0 {
			return nil, fmt.Errorf("hunter HTTP %d: %s", resp.StatusCode, body.Errors[0].Details)
		}
		return nil, fmt.Errorf("hunter HTTP %d", resp.StatusCode)
	}
	if body.Data.Email == "" {
		return nil, nil
	}

	return []prospect.LookupResult{{
		Email:       body.Data.Email,
		Phone:       body.Data.Phone,
		FirstName:   body.Data.FirstName,
		LastName:    body.Data.LastName,
		Company:     body.Data.Company,
		Title:       body.Data.Position,
		LinkedInURL: body.Data.LinkedIn,
		Confidence:  l.confidence,
		Source:      l.Name(),
	}}, nil
}
