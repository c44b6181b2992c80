package v1handler

import (
	"accounts/pkg/domain"
	"accounts/pkg/serrors"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// readObject decodes the JSON object in the request body, calling field for
// every key. Unknown keys must be skipped by field.
func readObject(w http.ResponseWriter, r *http.Request, field func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	if err := jx.DecodeBytes(body).ObjBytes(func(d *jx.Decoder, key []byte) error {
		return field(d, string(key))
	}); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, errors.Wrap(err, "decode"), "invalid JSON body")
	}

	return nil
}

// optString decodes a string that may be null.
func optString(d *jx.Decoder) (*string, error) {
	if d.Next() == jx.Null {
		return nil, d.Null()
	}

	s, err := d.Str()
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &s, nil
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func optField(e *jx.Encoder, name string, value string, ok bool) {
	e.FieldStart(name)
	if !ok {
		e.Null()

		return
	}
	e.Str(value)
}

func encodeUser(u *domain.User) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(u.ID.String())
	name, hasName := u.Name.Value()
	optField(&e, "name", name, hasName)
	var email string
	if u.Email != nil {
		email = u.Email.String()
	}
	optField(&e, "email", email, u.Email != nil)
	e.FieldStart("verified")
	e.Bool(u.Verified())
	e.FieldStart("createdAt")
	e.Str(u.CreatedAt.UTC().Format(time.RFC3339))
	optField(&e, "updatedAt", u.UpdatedAt.UTC().Format(time.RFC3339), !u.UpdatedAt.IsZero())
	e.ObjEnd()

	return e.Bytes()
}

func encodeSession(token string, expiresAt time.Time) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("token")
	e.Str(token)
	e.FieldStart("expiresAt")
	e.Str(expiresAt.UTC().Format(time.RFC3339))
	e.ObjEnd()

	return e.Bytes()
}

func encodeEmailChange(v *domain.EmailVerification) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("email")
	e.Str(v.Email.String())
	e.FieldStart("expiresAt")
	e.Str(v.ExpiresAt.UTC().Format(time.RFC3339))
	e.ObjEnd()

	return e.Bytes()
}

func encodeError(b ErrorBody) []byte {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(b.Message)
	e.FieldStart("code")
	e.Str(b.Code)
	if b.Field != "" {
		e.FieldStart("field")
		e.Str(b.Field)
	}
	e.ObjEnd()

	return e.Bytes()
}
