package v1handler_test

import (
	"accounts/pkg/serrors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCreateSession(t *testing.T) {
	api := newTestAPI(t)
	user := testUser(t, "alice@example.com")

	api.accounts.EXPECT().Login(gomock.Any(), "alice@example.com", "correct horse battery").Return(user, nil)

	code, body := api.do(t, http.MethodPost, "/sessions",
		`{"email":"alice@example.com","password":"correct horse battery"}`, "")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["expiresAt"])

	// the issued token authenticates the same user
	api.accounts.EXPECT().Profile(gomock.Any(), user.ID).Return(user, nil)
	code, _ = api.do(t, http.MethodGet, "/users/me", "", body["token"].(string))
	require.Equal(t, http.StatusOK, code)
}

func TestCreateSession_InvalidCredentials(t *testing.T) {
	api := newTestAPI(t)

	api.accounts.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrUnauthorized, "invalid email or password"))

	code, body := api.do(t, http.MethodPost, "/sessions", `{"email":"a@b.com","password":"wrong"}`, "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "invalid email or password", body["error"])
	require.NotContains(t, body, "field")
}
