// Package gemini provides a Lookup that asks Google Gemini, grounded with
// Google Search, for a person's public contact details.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/prospect"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used unless configured otherwise.
const DefaultModel = "gemini-2.5-flash"

// Ensure Lookup implements prospect.Lookup at compile time.
var _ prospect.Lookup = (*Lookup)(nil)

// Confidences maps the model's self-reported certainty to scores.
type Confidences struct {
	Low    float64
	Medium float64
	High   float64
}

// DefaultConfidences returns the stock mapping. High stays below the
// Hunter.io and filing sources since the answer is model-generated.
func DefaultConfidences() Confidences {
	return Confidences{Low: 0.4, Medium: 0.6, High: 0.75}
}

// Score returns the confidence for a level, treating unknown levels as low.
func (c Confidences) Score(level string) float64 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "high":
		return c.High
	case "medium":
		return c.Medium
	}
	return c.Low
}

// Lookup implements prospect.Lookup using Google Gemini.
type Lookup struct {
	client      *genai.Client
	model       string
	confidences Confidences
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(l *Lookup) {
		l.model = model
	}
}

// WithConfidences overrides DefaultConfidences.
func WithConfidences(c Confidences) Option {
	return func(l *Lookup) {
		l.confidences = c
	}
}

// NewLookup creates a new Lookup.
func NewLookup(client *genai.Client, opts ...Option) *Lookup {
	l := &Lookup{
		client:      client,
		model:       DefaultModel,
		confidences: DefaultConfidences(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lookup) Name() string {
	return "Gemini Search"
}

// Lookup asks the model for contact details of subject.
func (l *Lookup) Lookup(ctx context.Context, subject prospect.Subject) ([]prospect.LookupResult, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}

	resp, err := l.client.Models.GenerateContent(ctx, l.model,
		genai.Text(BuildPrompt(subject)),
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if resp == nil {
		return nil, prospect.Errorf(prospect.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(resp.Text(), l.Name(), l.confidences)
}

var outputSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"contacts": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"first_name":   {Type: genai.TypeString},
					"last_name":    {Type: genai.TypeString},
					"email":        {Type: genai.TypeString},
					"phone":        {Type: genai.TypeString},
					"company":      {Type: genai.TypeString},
					"title":        {Type: genai.TypeString},
					"linkedin_url": {Type: genai.TypeString},
					"confidence":   {Type: genai.TypeString, Enum: []string{"low", "medium", "high"}},
				},
				Required: []string{"email", "phone", "confidence"},
			},
		},
	},
	Required: []string{"contacts"},
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You find publicly listed professional contact details. Only report values you saw on a web page. Never guess or construct an email address or phone number.",
			}},
		},
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		Temperature:      &temp,
		CandidateCount:   1,
		ResponseMIMEType: "application/json",
		ResponseSchema:   outputSchema,
	}
}

// BuildPrompt builds the user prompt for subject.
func BuildPrompt(subject prospect.Subject) string {
	var sb strings.Builder
	sb.WriteString("Use web search to find public contact details for this person.\n\n")
	fmt.Fprintf(&sb, "Name: %s\n", strings.Join(strings.Fields(subject.Name), " "))
	if subject.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", subject.Company)
	}
	if subject.Domain != "" {
		fmt.Fprintf(&sb, "Company domain: %s\n", subject.Domain)
	}
	sb.WriteString(`
Return ONLY a JSON object {"contacts": [...]} where each contact has the keys
first_name, last_name, email, phone, company, title, linkedin_url and
confidence (one of: low, medium, high).

Rules:
- If you cannot find a field, set it to an empty string.
- Omit contacts that have neither an email nor a phone.
- Do not include extra keys.`)
	return sb.String()
}

type responseContact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	Title       string `json:"title"`
	LinkedInURL string `json:"linkedin_url"`
	Confidence  string `json:"confidence"`
}

type response struct {
	Contacts []responseContact `json:"contacts"`
}

// ParseResponse decodes the model's JSON answer into lookup results
// labeled with source. Contacts without an email or phone are dropped.
// A Markdown code fence around the JSON is tolerated.
func ParseResponse(text, source string, c Confidences) ([]prospect.LookupResult, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed response
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("gemini: parse structured json: %w", err)
	}

	var results []prospect.LookupResult
	for _, pc := range parsed.Contacts {
		r := prospect.LookupResult{
			Email:       strings.TrimSpace(pc.Email),
			Phone:       strings.TrimSpace(pc.Phone),
			FirstName:   strings.TrimSpace(pc.FirstName),
			LastName:    strings.TrimSpace(pc.LastName),
			Company:     strings.TrimSpace(pc.Company),
			Title:       strings.TrimSpace(pc.Title),
			LinkedInURL: strings.TrimSpace(pc.LinkedInURL),
			Confidence:  c.Score(pc.Confidence),
			Source:      source,
		}
		if r.Email == "" && r.Phone == "" {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}
