package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

type chatRequest struct {
	Question string `json:"question"`
	// AssetIDs is left nil to omit the field entirely, which scopes the
	// question to all documents. Sending an empty list is not the same
	// thing and must never happen.
	AssetIDs []int64 `json:"asset_ids,omitempty"`
}

// Ask posts a question to /api/chat/ scoped to assetIDs; nil omits the
// scope.
func (c *Client) Ask(ctx context.Context, token, question string, assetIDs []int64) (domain.Answer, error) {
	req := chatRequest{Question: question}
	if len(assetIDs) > 0 {
		req.AssetIDs = assetIDs
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return domain.Answer{}, &ports.APIError{Err: err}
	}

	status, body, err := c.do(ctx, http.MethodPost, "/api/chat/", token, "application/json", bytes.NewReader(payload))
	if err != nil {
		return domain.Answer{}, err
	}
	if !ok(status) {
		return domain.Answer{}, statusError(status, body)
	}

	var answer domain.Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		// A 2xx with an undecodable body is handled upstream as a
		// missing answer.
		return domain.Answer{}, nil
	}
	return answer, nil
}
