package gigshield

import (
	"context"
	"net/http"
)

// AnalyticsOverview fetches aggregate outcome statistics across all
// appeals. Data may include simulated cases; the summary says which.
func (c *Client) AnalyticsOverview(ctx context.Context) (*AnalyticsOverview, error) {
	var overview AnalyticsOverview
	if err := c.doJSON(ctx, http.MethodGet, "/api/analytics/overview", nil, &overview, false); err != nil {
		return nil, err
	}
	return &overview, nil
}
