package gigshield

import (
	"context"
	"net/http"
	"testing"
)

func TestAnalyticsOverview(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, AnalyticsOverview{
				Summary: AnalyticsSummary{
					TotalCases:    120,
					TotalApproved: 48,
					TotalDenied:   30,
					TotalPending:  42,
					DataSource:    "simulated + real cases",
				},
				OutcomesByPlatform: map[string]PlatformOutcomes{
					"DoorDash": {Approved: 20, Denied: 10, Pending: 12},
				},
				AvgResponseTimeDays: map[string]float64{"DoorDash": 6.5},
				ReasonDistribution:  map[string]int{"low completion rate": 34},
			}),
		},
	}
	client := NewClient(nil, WithHTTPClient(mock), WithBaseURL("http://api.test"))

	overview, err := client.AnalyticsOverview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.Summary.TotalCases != 120 {
		t.Errorf("unexpected summary: %+v", overview.Summary)
	}
	if overview.OutcomesByPlatform["DoorDash"].Approved != 20 {
		t.Errorf("unexpected outcomes: %+v", overview.OutcomesByPlatform)
	}

	req := mock.requests[0]
	if req.URL.Path != "/api/analytics/overview" {
		t.Errorf("unexpected path: %s", req.URL.Path)
	}
	if auth := req.Header.Get("Authorization"); auth != "" {
		t.Errorf("analytics is public, got auth header %q", auth)
	}
}

func TestKnowledgeBaseFacets(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, map[string][]string{"categories": {"appeals", "rights"}}),
			jsonResponse(http.StatusOK, map[string][]string{"states": {"CA", "NY"}}),
			jsonResponse(http.StatusOK, map[string][]string{"platforms": {"Uber", "DoorDash"}}),
		},
	}
	client := NewClient(nil, WithHTTPClient(mock))

	categories, err := client.KnowledgeBaseCategories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "appeals" {
		t.Errorf("unexpected categories: %v", categories)
	}

	states, err := client.KnowledgeBaseStates(context.Background())
	if err != nil {
		t.Fatalf("states: %v", err)
	}
	if len(states) != 2 {
		t.Errorf("unexpected states: %v", states)
	}

	platforms, err := client.KnowledgeBasePlatforms(context.Background())
	if err != nil {
		t.Fatalf("platforms: %v", err)
	}
	if len(platforms) != 2 {
		t.Errorf("unexpected platforms: %v", platforms)
	}

	paths := []string{
		"/api/knowledge-base/categories",
		"/api/knowledge-base/states",
		"/api/knowledge-base/platforms",
	}
	for i, want := range paths {
		if got := mock.requests[i].URL.Path; got != want {
			t.Errorf("request %d path = %s, want %s", i, got, want)
		}
	}
}
