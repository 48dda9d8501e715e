package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

type assetDTO struct {
	ID        int64  `json:"id"`
	Filename  string `json:"filename"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	CreatedAt string `json:"created_at"`
}

// ListAssets fetches GET /assets/.
func (c *Client) ListAssets(ctx context.Context, token string) ([]domain.Asset, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/assets/", token, "", nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, statusError(status, body)
	}

	var dtos []assetDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, &ports.APIError{StatusCode: status, Detail: "malformed asset listing"}
	}
	assets := make([]domain.Asset, 0, len(dtos))
	for _, d := range dtos {
		uploaded, _ := time.Parse(time.RFC3339, d.CreatedAt)
		assets = append(assets, domain.Asset{
			ID:         d.ID,
			Filename:   d.Filename,
			Type:       d.Type,
			Size:       d.Size,
			UploadedAt: uploaded,
		})
	}
	return assets, nil
}

// UploadAsset posts the file as multipart form field "file" to
// /assets/upload/. The file is held fully in memory; no streaming.
func (c *Client) UploadAsset(ctx context.Context, token string, file *domain.UploadFile) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	header.Set("Content-Type", file.MIME)
	part, err := w.CreatePart(header)
	if err != nil {
		return &ports.APIError{Err: err}
	}
	if _, err := part.Write(file.Data); err != nil {
		return &ports.APIError{Err: err}
	}
	if err := w.Close(); err != nil {
		return &ports.APIError{Err: err}
	}

	status, body, err := c.do(ctx, http.MethodPost, "/assets/upload/", token, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	if !ok(status) {
		return statusError(status, body)
	}
	return nil
}

// DeleteAsset issues DELETE /assets/{id}/.
func (c *Client) DeleteAsset(ctx context.Context, token string, id int64) error {
	path := fmt.Sprintf("/assets/%d/", id)
	status, body, err := c.do(ctx, http.MethodDelete, path, token, "", nil)
	if err != nil {
		return err
	}
	if !ok(status) {
		return statusError(status, body)
	}
	return nil
}
