package gigshield

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
)

// UploadEvidence uploads a single evidence file. appealID may be empty
// for files staged before an appeal exists; re-submitting with the id
// set tags the file to that appeal.
func (c *Client) UploadEvidence(ctx context.Context, appealID, filename, contentType string, r io.Reader) (*UploadResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if appealID != "" {
		if err := w.WriteField("appeal_id", appealID); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-evidence", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.doRequest(ctx, req, buf.Bytes(), true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp)
	}

	var result UploadResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListEvidence fetches evidence file references, optionally filtered to
// one appeal.
func (c *Client) ListEvidence(ctx context.Context, appealID string) ([]EvidenceFile, error) {
	path := "/api/evidence"
	if appealID != "" {
		params := url.Values{}
		params.Set("appeal_id", appealID)
		path += "?" + params.Encode()
	}

	var resp struct {
		Files []EvidenceFile `json:"files"`
		Count int            `json:"count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// DownloadEvidence streams an evidence file's contents to dst.
func (c *Client) DownloadEvidence(ctx context.Context, fileID string, dst io.Writer) error {
	if fileID == "" {
		return fmt.Errorf("file id is required")
	}

	path := "/api/evidence/" + url.PathEscape(fileID) + "/download"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.doRequest(ctx, req, nil, true)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	_, err = io.Copy(dst, resp.Body)
	return err
}

// DeleteEvidence removes an evidence file by id.
func (c *Client) DeleteEvidence(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("file id is required")
	}
	return c.doJSON(ctx, http.MethodDelete, "/api/evidence/"+url.PathEscape(fileID), nil, nil, true)
}
