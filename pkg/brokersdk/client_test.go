package brokersdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClientKeepsSessionCookie(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeInvalidCredentials, ErrorDescription: "wrong password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "admin_session", Value: "tok", Path: "/"})
		_ = json.NewEncoder(w).Encode(StatusResponse{Status: "ok"})
	})
	mux.HandleFunc("GET /api/admin/check", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("admin_session"); err != nil || c.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(ErrorResponse{Error: ErrorCodeUnauthorized})
			return
		}
		_ = json.NewEncoder(w).Encode(AdminCheckResponse{OK: true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	client := NewClient(srv.URL + "/")

	ok, err := client.AdminCheck(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	err = client.AdminLogin(ctx, "nope", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeInvalidCredentials, apiErr.Code)
	require.Equal(t, "wrong password", apiErr.Description)

	require.NoError(t, client.AdminLogin(ctx, "pw", ""))
	ok, err = client.AdminCheck(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseErrorResponseFallback(t *testing.T) {
	t.Parallel()

	err := parseErrorResponse(&http.Response{StatusCode: http.StatusBadGateway}, []byte("<html>"))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, ErrorCodeInternal, apiErr.Code)
	require.Contains(t, apiErr.Description, "502")

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusNoContent}, nil))
}
