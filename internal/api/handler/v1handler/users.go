package v1handler

import (
	"accounts/internal/account"
	"net/http"

	"github.com/go-faster/jx"
)

// CreateUser registers a user and queues the verification email.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req account.RegisterRequest
	if err := readObject(w, r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			req.Name, err = optString(d)
		case "email":
			req.Email, err = d.Str()
		case "password":
			req.Password, err = d.Str()
		default:
			err = d.Skip()
		}

		return err //nolint: wrapcheck
	}); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Accounts.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusCreated, encodeUser(user))
}

// VerifyEmail consumes a verification token.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var token string
	if err := readObject(w, r, func(d *jx.Decoder, key string) error {
		if key != "token" {
			return d.Skip() //nolint: wrapcheck
		}

		var err error
		token, err = d.Str()

		return err //nolint: wrapcheck
	}); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Accounts.VerifyEmail(r.Context(), token)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, encodeUser(user))
}

// GetMe returns the authenticated user.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.deps.Accounts.Profile(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, encodeUser(user))
}

// ChangeEmail queues a verification for a new address of the authenticated user.
func (h *Handler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	var email string
	if err := readObject(w, r, func(d *jx.Decoder, key string) error {
		if key != "email" {
			return d.Skip() //nolint: wrapcheck
		}

		var err error
		email, err = d.Str()

		return err //nolint: wrapcheck
	}); err != nil {
		h.writeError(w, r, err)

		return
	}

	v, err := h.deps.Accounts.RequestEmailChange(r.Context(), GetUserIDFromContext(r.Context()), email)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	writeJSON(w, http.StatusAccepted, encodeEmailChange(v))
}
