package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Asset represents a document or image tracked by the remote registry.
// Assets are owned by the backend; the client only ever holds the
// last-known listing.
type Asset struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	Type       string    `json:"type"` // "pdf", "txt", "docx", "image"
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"created_at"`
}

// UploadFile is a file staged for upload, held fully in memory.
type UploadFile struct {
	Name string
	MIME string
	Data []byte
}

// Meta returns the metadata view used by pre-flight validation.
func (f *UploadFile) Meta() *FileMeta {
	if f == nil {
		return nil
	}
	return &FileMeta{Name: f.Name, MIME: f.MIME, Size: int64(len(f.Data))}
}

// DetectMIME infers the MIME type from a file extension. Browsers send
// the content type with the form; a CLI has to reconstruct it.
func DetectMIME(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".txt", ".md", ".text":
		return "text/plain"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return ""
	}
}
