// Package evidence validates evidence files locally and tracks files
// staged before an appeal exists.
package evidence

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize is the upload limit enforced client-side.
const MaxFileSize = 10 << 20 // 10 MiB

// allowedTypes maps accepted file extensions to their MIME types.
var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".heic": "image/heic",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// ValidationError is a local rejection with a message meant for the
// user. No network call is made for a file that fails validation.
type ValidationError struct {
	Filename string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, e.Reason)
}

// Validate checks a file's name and size against the accepted types
// and the size limit, returning the file's MIME type.
func Validate(name string, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := allowedTypes[ext]
	if !ok {
		return "", &ValidationError{
			Filename: name,
			Reason:   "unsupported file type. Allowed: JPG, PNG, HEIC, WebP, PDF",
		}
	}
	if size > MaxFileSize {
		return "", &ValidationError{
			Filename: name,
			Reason:   "file too large. Maximum size is 10 MB",
		}
	}
	return contentType, nil
}

// ValidateFile stats path and validates it, returning the MIME type
// and size.
func ValidateFile(path string) (string, int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("cannot read file: %w", err)
	}
	if info.IsDir() {
		return "", 0, &ValidationError{Filename: path, Reason: "is a directory"}
	}
	contentType, err := Validate(filepath.Base(path), info.Size())
	if err != nil {
		return "", 0, err
	}
	return contentType, info.Size(), nil
}

// StagedFile is a locally validated file awaiting upload.
type StagedFile struct {
	ID          string
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// Staging tracks files selected before an appeal id exists. The wizard
// drains it once generation succeeds.
type Staging struct {
	files []StagedFile
}

// Add validates the file at path and stages it under an opaque id.
func (s *Staging) Add(path string) (StagedFile, error) {
	contentType, size, err := ValidateFile(path)
	if err != nil {
		return StagedFile{}, err
	}

	f := StagedFile{
		ID:          uuid.NewString(),
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        size,
	}
	s.files = append(s.files, f)
	return f, nil
}

// Files returns the staged files in the order they were added.
func (s *Staging) Files() []StagedFile {
	return s.files
}

// Len returns the number of staged files.
func (s *Staging) Len() int {
	return len(s.files)
}

// Remove unstages the file with the given id.
func (s *Staging) Remove(id string) bool {
	for i, f := range s.files {
		if f.ID == id {
			s.files = append(s.files[:i], s.files[i+1:]...)
			return true
		}
	}
	return false
}

// Clear discards all staged files.
func (s *Staging) Clear() {
	s.files = nil
}
