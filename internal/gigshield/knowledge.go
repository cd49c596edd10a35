package gigshield

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// KnowledgeFilters narrows a knowledge-base search. Zero values mean
// no filtering.
type KnowledgeFilters struct {
	Category string
	State    string
	Platform string
	TopK     int
}

// SearchKnowledgeBase searches policy and rights articles. This is a
// public endpoint; no token is attached.
func (c *Client) SearchKnowledgeBase(ctx context.Context, query string, filters KnowledgeFilters) (*KnowledgeSearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.State != "" {
		params.Set("state", filters.State)
	}
	if filters.Platform != "" {
		params.Set("platform", filters.Platform)
	}
	if filters.TopK > 0 {
		params.Set("top_k", strconv.Itoa(filters.TopK))
	}

	var result KnowledgeSearchResult
	path := "/api/knowledge-base/search?" + params.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result, false); err != nil {
		return nil, err
	}
	return &result, nil
}

// KnowledgeBaseCategories lists all article categories.
func (c *Client) KnowledgeBaseCategories(ctx context.Context) ([]string, error) {
	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/knowledge-base/categories", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

// KnowledgeBaseStates lists all states covered by the knowledge base.
func (c *Client) KnowledgeBaseStates(ctx context.Context) ([]string, error) {
	var resp struct {
		States []string `json:"states"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/knowledge-base/states", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.States, nil
}

// KnowledgeBasePlatforms lists all platforms covered by the knowledge base.
func (c *Client) KnowledgeBasePlatforms(ctx context.Context) ([]string, error) {
	var resp struct {
		Platforms []string `json:"platforms"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/knowledge-base/platforms", nil, &resp, false); err != nil {
		return nil, err
	}
	return resp.Platforms, nil
}
