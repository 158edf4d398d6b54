package google

import (
	"context"

	"github.com/fwojciec/prospect"
)

var _ prospect.SearchEngine = (*CustomSearchEngine)(nil)

// CustomSearchEngine is a SearchEngine over the Custom Search JSON API.
type CustomSearchEngine struct {
	client *Client
}

// NewCustomSearchEngine creates a CustomSearchEngine using client.
func NewCustomSearchEngine(client *Client) *CustomSearchEngine {
	return &CustomSearchEngine{client: client}
}

func (e *CustomSearchEngine) Name() string {
	return "customsearch"
}

// Search pages through results ten at a time until want links are
// collected or the API runs out of results.
func (e *CustomSearchEngine) Search(ctx context.Context, query string, want int) ([]string, error) {
	var links []string
	for start := 1; len(links) < want; start += maxPerCall {
		items, err := e.client.Search(ctx, query, want-len(links), start)
		if err != nil {
			if len(links) > 0 && prospect.ErrorCode(err) != prospect.EUNAVAILABLE {
				return links, nil
			}
			return nil, err
		}
		for _, it := range items {
			if it.Link != "" {
				links = append(links, it.Link)
			}
		}
		if len(items) < maxPerCall {
			break
		}
	}
	if len(links) > want {
		links = links[:want]
	}
	return links, nil
}
