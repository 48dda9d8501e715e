package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kamal-hamza/docchat-cli/internal/core/domain"
	"github.com/kamal-hamza/docchat-cli/internal/core/ports"
)

// UploadStatus tags the outcome of an upload attempt.
type UploadStatus int

const (
	UploadOK UploadStatus = iota
	UploadRejected // failed client-side validation; no network call
	UploadBusy     // another upload already in flight
	UploadAuthExpired
	UploadTooLarge    // 413
	UploadUnsupported // 415
	UploadBadRequest  // 400
	UploadServerFault // 500
	UploadFailed      // any other non-2xx
	UploadTransport   // no HTTP response at all
)

// UploadOutcome is the tagged result of Upload, exhaustively switched
// by callers.
type UploadOutcome struct {
	Status UploadStatus
	Detail string // the notification text raised for this outcome
}

// DeleteStatus tags the outcome of a delete attempt.
type DeleteStatus int

const (
	DeleteOK DeleteStatus = iota
	DeleteCancelled      // confirmation declined; no side effects
	DeleteAuthExpired
	DeleteMissing // 404: already gone, downgraded to a warning
	DeleteFailed
	DeleteTransport
)

type DeleteOutcome struct {
	Status DeleteStatus
	Detail string
}

// RegistryService is the client-side façade over the asset registry.
// It owns the last-known listing; List replaces it wholesale and then
// re-validates the selection against it.
type RegistryService struct {
	api       ports.RegistryAPI
	auth      *AuthService
	notify    *Notifier
	selection *domain.SelectionSet
	confirm   ports.Confirmer

	uploading atomic.Bool

	mu     sync.Mutex
	assets []domain.Asset
}

func NewRegistryService(api ports.RegistryAPI, auth *AuthService, notify *Notifier, selection *domain.SelectionSet, confirm ports.Confirmer) *RegistryService {
	return &RegistryService{
		api:       api,
		auth:      auth,
		notify:    notify,
		selection: selection,
		confirm:   confirm,
	}
}

// SetConfirmer swaps the confirmation strategy. The workspace confirms
// through its own overlay instead of the terminal prompt. Call before
// the service is used concurrently.
func (s *RegistryService) SetConfirmer(c ports.Confirmer) {
	s.confirm = c
}

// Assets returns the last-known listing.
func (s *RegistryService) Assets() []domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Uploading reports whether an upload is in flight.
func (s *RegistryService) Uploading() bool {
	return s.uploading.Load()
}

// Refresh fetches the registry listing and replaces the local one on
// success (a full replace, not a merge). Refreshes are not mutually
// excluded; when they race, the last response to land wins.
func (s *RegistryService) Refresh(ctx context.Context) error {
	assets, err := s.api.ListAssets(ctx, s.auth.Token())
	if err != nil {
		var apiErr *ports.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			s.auth.expire(s.notify)
		}
		return err
	}
	s.mu.Lock()
	s.assets = assets
	s.mu.Unlock()
	s.selection.Retain(assets)
	return nil
}

// Upload pre-validates file locally, short-circuiting without a network
// call on failure, then submits it and maps the response status onto a
// tagged outcome. Every outcome raises its notification here; a 2xx
// also refreshes the listing.
func (s *RegistryService) Upload(ctx context.Context, file *domain.UploadFile) UploadOutcome {
	if !s.uploading.CompareAndSwap(false, true) {
		detail := "An upload is already in progress"
		s.notify.Show(detail, domain.SeverityWarning)
		return UploadOutcome{Status: UploadBusy, Detail: detail}
	}
	defer s.uploading.Store(false)

	verdict := domain.Validate(file.Meta())
	if !verdict.Valid {
		s.notify.Show(verdict.Error, domain.SeverityError)
		return UploadOutcome{Status: UploadRejected, Detail: verdict.Error}
	}

	err := s.api.UploadAsset(ctx, s.auth.Token(), file)
	if err == nil {
		detail := fmt.Sprintf("Uploaded %s (%s)", file.Name, verdict.TypeLabel)
		s.notify.Show(detail, domain.SeveritySuccess)
		_ = s.Refresh(ctx)
		return UploadOutcome{Status: UploadOK, Detail: detail}
	}

	var apiErr *ports.APIError
	if !errors.As(err, &apiErr) {
		detail := "Upload failed: " + err.Error()
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadFailed, Detail: detail}
	}

	switch {
	case apiErr.Transport():
		detail := MsgNetworkError
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadTransport, Detail: detail}
	case apiErr.StatusCode == 401:
		s.auth.expire(s.notify)
		return UploadOutcome{Status: UploadAuthExpired, Detail: MsgSessionExpired}
	case apiErr.StatusCode == 413:
		detail := "File is too large for the server"
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadTooLarge, Detail: detail}
	case apiErr.StatusCode == 415:
		detail := "The server does not support this file type"
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadUnsupported, Detail: detail}
	case apiErr.StatusCode == 400:
		detail := apiErr.Detail
		if detail == "" {
			detail = "Upload rejected by the server"
		}
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadBadRequest, Detail: detail}
	case apiErr.StatusCode == 500:
		detail := "Server error during upload. Try again later."
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadServerFault, Detail: detail}
	default:
		detail := apiErr.Detail
		if detail == "" {
			detail = fmt.Sprintf("Upload failed with status %d", apiErr.StatusCode)
		}
		s.notify.Show(detail, domain.SeverityError)
		return UploadOutcome{Status: UploadFailed, Detail: detail}
	}
}

// Delete asks the Confirmer first; a declined confirmation aborts with
// no side effects. A 2xx prunes the id from the selection and refreshes.
// A 404 means the asset is already gone: warn and refresh, nothing more.
func (s *RegistryService) Delete(ctx context.Context, id int64, filename string) DeleteOutcome {
	if !s.confirm.Confirm(fmt.Sprintf("Delete %q?", filename)) {
		return DeleteOutcome{Status: DeleteCancelled}
	}

	err := s.api.DeleteAsset(ctx, s.auth.Token(), id)
	if err == nil {
		s.selection.Prune(id)
		detail := fmt.Sprintf("Deleted %s", filename)
		s.notify.Show(detail, domain.SeveritySuccess)
		_ = s.Refresh(ctx)
		return DeleteOutcome{Status: DeleteOK, Detail: detail}
	}

	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 401:
			s.auth.expire(s.notify)
			return DeleteOutcome{Status: DeleteAuthExpired, Detail: MsgSessionExpired}
		case apiErr.StatusCode == 404:
			detail := fmt.Sprintf("%s was already deleted", filename)
			s.notify.Show(detail, domain.SeverityWarning)
			_ = s.Refresh(ctx)
			return DeleteOutcome{Status: DeleteMissing, Detail: detail}
		case apiErr.Transport():
			detail := MsgNetworkError
			s.notify.Show(detail, domain.SeverityError)
			return DeleteOutcome{Status: DeleteTransport, Detail: detail}
		}
	}
	detail := fmt.Sprintf("Failed to delete %s", filename)
	s.notify.Show(detail, domain.SeverityError)
	return DeleteOutcome{Status: DeleteFailed, Detail: detail}
}
