package domain

import "fmt"

// MaxUploadBytes is the client-side upload ceiling (10 MiB). The backend
// enforces its own limit; this just avoids pointless round trips.
const MaxUploadBytes = 10 * 1024 * 1024

// allowedMIMETypes maps accepted MIME types to their registry type labels,
// mirroring the server's allow-list.
var allowedMIMETypes = map[string]string{
	"application/pdf": "pdf",
	"text/plain":      "txt",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"image/png":  "image",
	"image/jpeg": "image",
}

// allowedTypeLabels is the human-readable allow-list used in error messages.
const allowedTypeLabels = "PDF, TXT, DOCX, PNG, JPEG"

// FileMeta is the metadata a file presents to pre-flight validation.
type FileMeta struct {
	Name string
	MIME string
	Size int64
}

// ValidationResult is the verdict of local pre-flight checks. It is
// produced synchronously and never persisted.
type ValidationResult struct {
	Valid bool
	Error string
	// TypeLabel is the detected registry type label ("pdf", "image", ...),
	// set only when Valid.
	TypeLabel string
}

// Validate runs the client-side upload checks. Rules are evaluated in a
// fixed order and the first failure wins: no file, unsupported type,
// too large, empty. The backend re-validates authoritatively; callers
// must still run this before every upload attempt.
func Validate(meta *FileMeta) ValidationResult {
	if meta == nil {
		return ValidationResult{Error: "No file selected"}
	}
	label, ok := allowedMIMETypes[meta.MIME]
	if !ok {
		return ValidationResult{Error: "Unsupported file type. Allowed: " + allowedTypeLabels}
	}
	if meta.Size > MaxUploadBytes {
		return ValidationResult{Error: fmt.Sprintf("File too large: %.2fMB (max 10MB)", float64(meta.Size)/(1024*1024))}
	}
	if meta.Size == 0 {
		return ValidationResult{Error: "File is empty"}
	}
	return ValidationResult{Valid: true, TypeLabel: label}
}
