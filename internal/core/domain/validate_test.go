package domain

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		meta      *FileMeta
		wantValid bool
		wantError string
		wantLabel string
	}{
		{
			name:      "nil file",
			meta:      nil,
			wantError: "No file selected",
		},
		{
			name:      "valid pdf",
			meta:      &FileMeta{Name: "report.pdf", MIME: "application/pdf", Size: 1024},
			wantValid: true,
			wantLabel: "pdf",
		},
		{
			name:      "valid text",
			meta:      &FileMeta{Name: "notes.txt", MIME: "text/plain", Size: 10},
			wantValid: true,
			wantLabel: "txt",
		},
		{
			name:      "valid docx",
			meta:      &FileMeta{Name: "memo.docx", MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 5000},
			wantValid: true,
			wantLabel: "docx",
		},
		{
			name:      "png maps to image label",
			meta:      &FileMeta{Name: "chart.png", MIME: "image/png", Size: 2048},
			wantValid: true,
			wantLabel: "image",
		},
		{
			name:      "jpeg maps to image label",
			meta:      &FileMeta{Name: "photo.jpg", MIME: "image/jpeg", Size: 2048},
			wantValid: true,
			wantLabel: "image",
		},
		{
			name:      "unsupported type lists allowed types",
			meta:      &FileMeta{Name: "archive.zip", MIME: "application/zip", Size: 100},
			wantError: "Unsupported file type. Allowed: PDF, TXT, DOCX, PNG, JPEG",
		},
		{
			name:      "oversized file reports size in MB",
			meta:      &FileMeta{Name: "big.png", MIME: "image/png", Size: 15 * 1024 * 1024},
			wantError: "File too large: 15.00MB (max 10MB)",
		},
		{
			name:      "empty file",
			meta:      &FileMeta{Name: "empty.pdf", MIME: "application/pdf", Size: 0},
			wantError: "File is empty",
		},
		{
			name:      "exactly at the limit passes",
			meta:      &FileMeta{Name: "max.pdf", MIME: "application/pdf", Size: MaxUploadBytes},
			wantValid: true,
			wantLabel: "pdf",
		},
		{
			name: "type check runs before size check",
			// Oversized AND unsupported: type failure must win
			meta:      &FileMeta{Name: "big.zip", MIME: "application/zip", Size: 50 * 1024 * 1024},
			wantError: "Unsupported file type. Allowed: PDF, TXT, DOCX, PNG, JPEG",
		},
		{
			name: "empty unsupported file reports the type failure",
			meta:      &FileMeta{Name: "empty.zip", MIME: "application/zip", Size: 0},
			wantError: "Unsupported file type. Allowed: PDF, TXT, DOCX, PNG, JPEG",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.meta)

			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.wantValid)
			}
			if tt.wantError != "" && got.Error != tt.wantError {
				t.Errorf("Error = %q, want %q", got.Error, tt.wantError)
			}
			if tt.wantValid && got.TypeLabel != tt.wantLabel {
				t.Errorf("TypeLabel = %q, want %q", got.TypeLabel, tt.wantLabel)
			}
			if tt.wantValid && got.Error != "" {
				t.Errorf("valid result carries error %q", got.Error)
			}
		})
	}
}

func TestDetectMIME(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "application/pdf"},
		{"REPORT.PDF", "application/pdf"},
		{"notes.txt", "text/plain"},
		{"readme.md", "text/plain"},
		{"memo.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"chart.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"archive.zip", ""},
		{"noextension", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := DetectMIME(tt.filename); got != tt.want {
				t.Errorf("DetectMIME(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestUploadFileMeta(t *testing.T) {
	f := &UploadFile{Name: "report.pdf", MIME: "application/pdf", Data: []byte("hello")}
	meta := f.Meta()
	if meta.Name != "report.pdf" || meta.MIME != "application/pdf" || meta.Size != 5 {
		t.Errorf("unexpected meta: %+v", meta)
	}

	var nilFile *UploadFile
	if nilFile.Meta() != nil {
		t.Error("nil file should produce nil meta")
	}

	// A nil meta fails validation as "no file"
	verdict := Validate(nilFile.Meta())
	if verdict.Valid || !strings.Contains(verdict.Error, "No file selected") {
		t.Errorf("unexpected verdict for nil file: %+v", verdict)
	}
}
