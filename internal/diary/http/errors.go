package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/reelbook/internal/diary/service"
	"github.com/aussiebroadwan/reelbook/pkg/diarysdk"
	"github.com/aussiebroadwan/reelbook/pkg/httpx"
	"github.com/aussiebroadwan/reelbook/pkg/slogx"
)

var statusByKind = map[error]int{
	service.ErrInvalidInput:       http.StatusBadRequest,
	service.ErrCodeExpired:        http.StatusBadRequest,
	service.ErrCodeMismatch:       http.StatusBadRequest,
	service.ErrSelfFollow:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrUnauthorized:       http.StatusUnauthorized,
	service.ErrForbidden:          http.StatusForbidden,
	service.ErrCreatorCannotLeave: http.StatusForbidden,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrConflict:           http.StatusConflict,
	service.ErrAlreadyVerified:    http.StatusConflict,
	service.ErrAlreadyFollowing:   http.StatusConflict,
	service.ErrNotFollowing:       http.StatusConflict,
	service.ErrAlreadyMember:      http.StatusConflict,
	service.ErrNotMember:          http.StatusConflict,
	service.ErrUnavailable:        http.StatusServiceUnavailable,
}

// writeServiceError renders err as an ErrorResponse. Server-side failures
// are logged and their cause is not echoed to the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := service.Kind(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	resp := diarysdk.ErrorResponse{Error: diarysdk.ErrorCodeServerError, ErrorDescription: "internal server error"}
	switch {
	case status == http.StatusServiceUnavailable:
		resp = diarysdk.ErrorResponse{Error: kind.Error(), ErrorDescription: "service temporarily unavailable"}
	case kind != nil:
		resp = diarysdk.ErrorResponse{Error: kind.Error(), ErrorDescription: err.Error()}
	}

	if status >= http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteJSON(w, status, resp)
}

// writeBadRequest reports a body or query that could not be parsed.
func writeBadRequest(w http.ResponseWriter, description string) {
	httpx.WriteJSON(w, http.StatusBadRequest, diarysdk.ErrorResponse{
		Error:            diarysdk.ErrorCodeInvalidInput,
		ErrorDescription: description,
	})
}
