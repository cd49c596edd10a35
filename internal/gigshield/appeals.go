package gigshield

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// AnalyzeNotice submits raw notice text for backend analysis.
func (c *Client) AnalyzeNotice(ctx context.Context, noticeText string) (*NoticeAnalysis, error) {
	if noticeText == "" {
		return nil, fmt.Errorf("notice text is empty")
	}

	req := struct {
		NoticeText string `json:"notice_text"`
	}{NoticeText: noticeText}

	var analysis NoticeAnalysis
	if err := c.doJSON(ctx, http.MethodPost, "/api/analyze-notice", req, &analysis, true); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// GenerateAppeal requests an appeal letter from the backend. The
// generated appeal is persisted server-side; the returned id is the
// only handle the client keeps.
func (c *Client) GenerateAppeal(ctx context.Context, req AppealRequest) (*GenerateResult, error) {
	if req.Platform == "" {
		return nil, fmt.Errorf("platform is required")
	}
	if req.DeactivationReason == "" {
		return nil, fmt.Errorf("deactivation reason is required")
	}

	var result GenerateResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate-appeal", req, &result, true); err != nil {
		return nil, err
	}
	return &result, nil
}

// MyAppeals fetches all appeals for the authenticated user.
func (c *Client) MyAppeals(ctx context.Context) ([]Appeal, error) {
	var resp appealsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/my-appeals", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Appeals, nil
}

// DeleteAppeal removes an appeal by id.
func (c *Client) DeleteAppeal(ctx context.Context, appealID string) error {
	if appealID == "" {
		return fmt.Errorf("appeal id is required")
	}
	path := "/api/appeals/" + url.PathEscape(appealID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, true)
}

// UpdateAppealStatus sets an appeal's status (pending/approved/denied).
func (c *Client) UpdateAppealStatus(ctx context.Context, appealID, status string) error {
	if appealID == "" {
		return fmt.Errorf("appeal id is required")
	}

	req := struct {
		Status string `json:"status"`
	}{Status: status}

	path := "/api/appeals/" + url.PathEscape(appealID) + "/status"
	return c.doJSON(ctx, http.MethodPatch, path, req, nil, true)
}
