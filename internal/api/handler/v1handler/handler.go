// Package v1handler serves version 1 of the account HTTP API.
package v1handler

import (
	"accounts/internal/account"
	"accounts/internal/auth"
	"accounts/pkg/logger"
	"accounts/pkg/serrors"
	"accounts/pkg/valueobject"
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Deps are the collaborators of the v1 handlers.
type Deps struct {
	Accounts account.Service
	Issuer   *auth.Issuer
	Verifier *auth.Verifier
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the v1 routes, relative to the version prefix.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users", h.CreateUser)
	mux.HandleFunc("POST /users/verify", h.VerifyEmail)
	mux.HandleFunc("POST /sessions", h.CreateSession)
	mux.Handle("GET /users/me", h.WithBearerAuth(http.HandlerFunc(h.GetMe)))
	mux.Handle("POST /users/me/email", h.WithBearerAuth(http.HandlerFunc(h.ChangeEmail)))

	return mux
}

// ErrorBody is the JSON payload of every error response.
type ErrorBody struct {
	// Code is the most specific error kind, e.g. TOO_SHORT or NOT_FOUND.
	Code string
	// Message is safe to show to the client.
	Message string
	// Field is the value object family of a validation failure.
	Field string
}

// ErrorResponse pairs an ErrorBody with its HTTP status code.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrConflict:     "conflict",
	serrors.ErrInternal:     "internal error",
}

// statusRoots maps root kinds to status codes. Kinds without a root here are
// internal errors.
var statusRoots = []struct { //nolint: gochecknoglobals
	kind   serrors.Kind
	status int
}{
	{serrors.ErrBadRequest, http.StatusBadRequest},
	{serrors.ErrUnauthorized, http.StatusUnauthorized},
	{serrors.ErrNotFound, http.StatusNotFound},
	{serrors.ErrConflict, http.StatusConflict},
}

// NewError converts err into the response sent to the client. Internal errors
// are logged and their details hidden.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)

	root, status := serrors.Kind(serrors.ErrInternal), http.StatusInternalServerError
	for _, r := range statusRoots {
		if serrors.HasAncestor(kind, r.kind) {
			root, status = r.kind, r.status

			break
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error(ctx, "internal error", zap.Error(err))

		return &ErrorResponse{
			StatusCode: status,
			Response: ErrorBody{
				Code:    serrors.ErrInternal.Error(),
				Message: defaultMessages[serrors.ErrInternal],
			},
		}
	}

	body := ErrorBody{Code: kind.Error(), Message: defaultMessages[root]}

	var voErr *valueobject.Error
	var sErr *serrors.Error
	switch {
	case errors.As(err, &voErr):
		body.Message = voErr.Error()
		body.Field = voErr.Family.Code()
	case errors.As(err, &sErr) && sErr.Message() != "":
		body.Message = sErr.Message()
	}

	logger.Debug(ctx, "request failed", zap.Int("status", status), zap.Error(err))

	return &ErrorResponse{StatusCode: status, Response: body}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(w, res.StatusCode, encodeError(res.Response))
}
