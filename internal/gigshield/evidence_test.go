package gigshield

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
)

func TestUploadEvidence(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, UploadResult{
				Success:     true,
				URL:         "https://storage.test/evidence/shot.png",
				Filename:    "shot.png",
				ContentType: "image/png",
			}),
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock), WithBaseURL("http://api.test"))

	content := strings.NewReader("fake image bytes")
	result, err := client.UploadEvidence(context.Background(), "appeal-9", "shot.png", "image/png", content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success || result.URL == "" {
		t.Errorf("unexpected result: %+v", result)
	}

	req := mock.requests[0]
	if req.URL.Path != "/api/upload-evidence" {
		t.Errorf("unexpected path: %s", req.URL.Path)
	}

	mediaType, params, err := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart form, got %q (%v)", mediaType, err)
	}

	mr := multipart.NewReader(bytes.NewReader(mock.bodies[0]), params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to parse multipart body: %v", err)
	}
	if got := form.Value["appeal_id"]; len(got) != 1 || got[0] != "appeal-9" {
		t.Errorf("expected appeal_id appeal-9, got %v", got)
	}
	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected one file part, got %d", len(files))
	}
	if files[0].Filename != "shot.png" {
		t.Errorf("expected filename shot.png, got %s", files[0].Filename)
	}
	if ct := files[0].Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected content type image/png, got %s", ct)
	}
}

func TestUploadEvidenceWithoutAppealID(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, UploadResult{Success: true}),
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock))

	_, err := client.UploadEvidence(context.Background(), "", "doc.pdf", "application/pdf", strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, params, _ := mime.ParseMediaType(mock.requests[0].Header.Get("Content-Type"))
	mr := multipart.NewReader(bytes.NewReader(mock.bodies[0]), params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("failed to parse multipart body: %v", err)
	}
	if _, ok := form.Value["appeal_id"]; ok {
		t.Error("expected no appeal_id field for unstaged upload")
	}
}

func TestListEvidence(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, map[string]interface{}{
				"files": []EvidenceFile{
					{ID: "f1", AppealID: "appeal-9", Filename: "shot.png", ContentType: "image/png"},
					{ID: "f2", AppealID: "appeal-9", Filename: "receipt.pdf", ContentType: "application/pdf"},
				},
				"count": 2,
			}),
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock))

	files, err := client.ListEvidence(context.Background(), "appeal-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].ID != "f1" {
		t.Errorf("unexpected files: %+v", files)
	}
	if got := mock.requests[0].URL.Query().Get("appeal_id"); got != "appeal-9" {
		t.Errorf("expected appeal_id filter, got %q", got)
	}
}

func TestDownloadEvidence(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("file contents")),
				Header:     make(http.Header),
			},
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock))

	var buf bytes.Buffer
	if err := client.DownloadEvidence(context.Background(), "f1", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "file contents" {
		t.Errorf("unexpected contents: %q", buf.String())
	}
	if got := mock.requests[0].URL.Path; got != "/api/evidence/f1/download" {
		t.Errorf("unexpected path: %s", got)
	}
}

func TestDeleteEvidence(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, map[string]bool{"success": true}),
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock))

	if err := client.DeleteEvidence(context.Background(), "f1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mock.requests[0].Method; got != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", got)
	}

	if err := client.DeleteEvidence(context.Background(), ""); err == nil {
		t.Error("expected error for empty file id")
	}
}

func TestSearchKnowledgeBase(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, KnowledgeSearchResult{
				Query: "deactivation appeal",
				Results: []KnowledgeArticle{
					{ID: "kb-1", Title: "How appeals work", Category: "appeals", State: "All"},
				},
				Total: 1,
			}),
		},
	}
	client := NewClient(nil, WithHTTPClient(mock), WithBaseURL("http://api.test"))

	result, err := client.SearchKnowledgeBase(context.Background(), "deactivation appeal", KnowledgeFilters{
		Platform: "DoorDash",
		TopK:     5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || result.Results[0].ID != "kb-1" {
		t.Errorf("unexpected result: %+v", result)
	}

	q := mock.requests[0].URL.Query()
	if q.Get("query") != "deactivation appeal" {
		t.Errorf("unexpected query param: %q", q.Get("query"))
	}
	if q.Get("platform") != "DoorDash" || q.Get("top_k") != "5" {
		t.Errorf("unexpected filter params: %v", q)
	}
	if auth := mock.requests[0].Header.Get("Authorization"); auth != "" {
		t.Errorf("knowledge search is public, got auth header %q", auth)
	}
}

func TestChat(t *testing.T) {
	mock := &mockHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, ChatReply{
				Response: "You typically have 10 days to appeal.",
				SuggestedActions: []SuggestedAction{
					{Label: "Start an appeal", Action: "wizard"},
				},
			}),
		},
	}
	client := NewClient(&staticTokens{token: "tok"}, WithHTTPClient(mock))

	history := []ChatMessage{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}}
	reply, err := client.Chat(context.Background(), "How long do I have?", history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Response == "" || len(reply.SuggestedActions) != 1 {
		t.Errorf("unexpected reply: %+v", reply)
	}

	var sent struct {
		Message string        `json:"message"`
		History []ChatMessage `json:"conversation_history"`
	}
	if err := json.Unmarshal(mock.bodies[0], &sent); err != nil {
		t.Fatalf("failed to parse request body: %v", err)
	}
	if len(sent.History) != 2 {
		t.Errorf("expected history of 2, got %d", len(sent.History))
	}
}
