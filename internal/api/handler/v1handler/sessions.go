package v1handler

import (
	"fmt"
	"net/http"

	"github.com/go-faster/jx"
)

// CreateSession exchanges credentials for a session token.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var email, password string
	if err := readObject(w, r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "email":
			email, err = d.Str()
		case "password":
			password, err = d.Str()
		default:
			err = d.Skip()
		}

		return err //nolint: wrapcheck
	}); err != nil {
		h.writeError(w, r, err)

		return
	}

	user, err := h.deps.Accounts.Login(r.Context(), email, password)
	if err != nil {
		h.writeError(w, r, err)

		return
	}

	token, expiresAt, err := h.deps.Issuer.Issue(user.ID.String())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("could not issue session: %w", err))

		return
	}

	writeJSON(w, http.StatusOK, encodeSession(token, expiresAt))
}
