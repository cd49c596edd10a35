package evidence

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		size        int64
		wantType    string
		wantErr     bool
		errContains string
	}{
		{
			name:     "jpeg",
			filename: "receipt.jpg",
			size:     1024,
			wantType: "image/jpeg",
		},
		{
			name:     "jpeg long extension",
			filename: "receipt.jpeg",
			size:     1024,
			wantType: "image/jpeg",
		},
		{
			name:     "png",
			filename: "screenshot.png",
			size:     2048,
			wantType: "image/png",
		},
		{
			name:     "pdf",
			filename: "contract.pdf",
			size:     4096,
			wantType: "application/pdf",
		},
		{
			name:     "heic",
			filename: "photo.HEIC",
			size:     1024,
			wantType: "image/heic",
		},
		{
			name:     "webp",
			filename: "image.webp",
			size:     1024,
			wantType: "image/webp",
		},
		{
			name:     "exactly at limit",
			filename: "big.pdf",
			size:     MaxFileSize,
			wantType: "application/pdf",
		},
		{
			name:        "over limit",
			filename:    "huge.pdf",
			size:        MaxFileSize + 1,
			wantErr:     true,
			errContains: "file too large",
		},
		{
			name:        "unsupported extension",
			filename:    "notes.txt",
			size:        10,
			wantErr:     true,
			errContains: "unsupported file type",
		},
		{
			name:        "no extension",
			filename:    "README",
			size:        10,
			wantErr:     true,
			errContains: "unsupported file type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.filename, tt.size)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.wantType {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
		})
	}
}

func TestStagingAdd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proof.png")
	if err := os.WriteFile(path, []byte("fake image data"), 0o644); err != nil {
		t.Fatal(err)
	}

	var s Staging
	f, err := s.Add(path)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if f.ID == "" {
		t.Error("staged file has no id")
	}
	if f.Name != "proof.png" {
		t.Errorf("Name = %q, want %q", f.Name, "proof.png")
	}
	if f.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want %q", f.ContentType, "image/png")
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStagingAddRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	var s Staging
	if _, err := s.Add(path); err == nil {
		t.Fatal("expected validation error for .txt file")
	}
	if s.Len() != 0 {
		t.Errorf("rejected file was staged, Len = %d", s.Len())
	}
}

func TestStagingAddMissingFile(t *testing.T) {
	var s Staging
	if _, err := s.Add(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestStagingRemove(t *testing.T) {
	dir := t.TempDir()
	var s Staging
	var ids []string
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		f, err := s.Add(path)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, f.ID)
	}

	if !s.Remove(ids[1]) {
		t.Fatal("Remove returned false for staged id")
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	for _, f := range s.Files() {
		if f.ID == ids[1] {
			t.Error("removed file still present")
		}
	}
	if s.Remove("nope") {
		t.Error("Remove returned true for unknown id")
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", s.Len())
	}
}
