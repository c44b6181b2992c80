package controller_test

import (
	"accounts/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func serveCORS(origins []string, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(method, "/v1/users", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	controller.WithCORS(origins)(next).ServeHTTP(rec, req)

	return rec, called
}

func TestWithCORS_PreflightShortCircuits(t *testing.T) {
	rec, called := serveCORS(nil, http.MethodOptions, "https://app.example.com")

	require.False(t, called)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWithCORS_Origins(t *testing.T) {
	allowed := []string{"https://app.example.com", "https://admin.example.com"}

	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
		vary    bool
	}{
		{name: "wildcard", origins: []string{"*"}, origin: "https://evil.example.com", want: "*"},
		{name: "empty list allows all", origin: "https://app.example.com", want: "*"},
		{name: "listed origin echoed", origins: allowed, origin: "https://admin.example.com",
			want: "https://admin.example.com", vary: true},
		{name: "unlisted origin", origins: allowed, origin: "https://evil.example.com"},
		{name: "no origin header", origins: allowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, called := serveCORS(tt.origins, http.MethodGet, tt.origin)

			require.True(t, called)
			require.Equal(t, http.StatusTeapot, rec.Code)
			require.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
			require.Equal(t, tt.vary, rec.Header().Get("Vary") == "Origin")
			require.Equal(t, controller.RequestIDHeader, rec.Header().Get("Access-Control-Expose-Headers"))
		})
	}
}
