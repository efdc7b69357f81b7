package search

import (
	"context"
	"strings"

	"github.com/bububa/heroku-a2a/schema"
	"github.com/bububa/heroku-a2a/tools"
)

// DefaultMaxResults is the result limit when none is given
const DefaultMaxResults = 5

// Input Schema for input to a tool for searching for information.
// Returns a list of search results with a short snippet and URLs for further exploration
type Input struct {
	// Query The search query to execute
	Query string `json:"query" jsonschema:"title=query,description=The search query to execute" validate:"required"`
	// MaxResults Maximum number of results to return, nil uses the tool default
	MaxResults *int `json:"max_results,omitempty" jsonschema:"title=max_results,description=Maximum number of results to return,default=5,minimum=0" validate:"omitempty,gte=0"`
}

func NewInput(query string) *Input {
	return &Input{
		Query: query,
	}
}

// WithLimit sets MaxResults
func (s *Input) WithLimit(n int) *Input {
	s.MaxResults = &n
	return s
}

func (s Input) String() string {
	return schema.JSON(s)
}

// Result represents a single search result item
type Result struct {
	// Title The title of the search result
	Title string `json:"title" jsonschema:"title=title,description=Title of the search result"`
	// URL The URL of the search result
	URL string `json:"url" jsonschema:"title=url,description=URL of the search result"`
	// Snippet The content snippet of the search result
	Snippet string `json:"snippet" jsonschema:"title=snippet,description=Snippet from the search result"`
}

// Output represents the output of the search tool.
type Output struct {
	// Results List of search result items
	Results []Result `json:"results" jsonschema:"title=results,description=List of search results"`
	// Query The original search query
	Query string `json:"query" jsonschema:"title=query,description=The original search query"`
	// TotalResultsFound Number of results returned
	TotalResultsFound int `json:"total_results_found" jsonschema:"title=total_results_found,description=Total number of results found"`
}

func (s Output) String() string {
	return schema.JSON(s)
}

type Config struct {
	tools.Config
	maxResults int
	index      []Entry
}

// Tool is a mock web search over a fixed result table
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	tools.Apply(&ret.Config.Config, "search", "Search for information on the web")
	if ret.maxResults <= 0 {
		ret.maxResults = DefaultMaxResults
	}
	if ret.index == nil {
		ret.index = DefaultIndex
	}
	return ret
}

// Run matches every query term against the index keys and returns the deduplicated hits
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := t.maxResults
	if input.MaxResults != nil {
		limit = *input.MaxResults
	}
	seen := make(map[string]struct{})
	results := make([]Result, 0, limit)
	for _, term := range strings.Fields(strings.ToLower(input.Query)) {
		for _, entry := range t.index {
			if !strings.Contains(entry.Key, term) {
				continue
			}
			for _, r := range entry.Results {
				if _, ok := seen[r.URL]; ok {
					continue
				}
				seen[r.URL] = struct{}{}
				results = append(results, r)
			}
		}
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return &Output{
		Results:           results,
		Query:             input.Query,
		TotalResultsFound: len(results),
	}, nil
}
