package v1handler_test

import (
	"accounts/internal/api/handler/v1handler"
	"accounts/internal/auth"
	"accounts/pkg/clock"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mockaccount "accounts/internal/account/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// genRSAKeys returns a PEM-encoded private key and its PEM-encoded public key.
func genRSAKeys(tb testing.TB) (string, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return string(privPEM), string(pubPEM)
}

type testAPI struct {
	accounts *mockaccount.MockService
	issuer   *auth.Issuer
	verifier *auth.Verifier
	routes   http.Handler
}

func newTestAPI(t *testing.T) testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	accounts := mockaccount.NewMockService(ctrl)

	privPEM, pubPEM := genRSAKeys(t)
	issuer, err := auth.NewIssuer(privPEM, "accounts", time.Hour, clock.Fixed{T: time.Now()})
	require.NoError(t, err)
	verifier, err := auth.NewVerifier(pubPEM, "accounts")
	require.NoError(t, err)

	h := v1handler.New(v1handler.Deps{Accounts: accounts, Issuer: issuer, Verifier: verifier})

	return testAPI{accounts: accounts, issuer: issuer, verifier: verifier, routes: h.Routes()}
}

func (a testAPI) do(t *testing.T, method, path, body, token string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.routes.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}

	return rec.Code, out
}
