// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package graph

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gebl/onenote-connector/internal/auth"
)

func TestClient_MakeAuthenticatedRequest(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("<html>hi</html>"))
	}))
	defer srv.Close()

	c, err := NewClient(auth.StaticTokenSource("tok-1"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	resp, err := c.MakeAuthenticatedRequest(context.Background(), http.MethodGet, srv.URL+"/x", nil,
		map[string]string{"Accept": "text/html"})
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "<html>hi</html>", string(body))
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "text/html", gotAccept)
}

func TestClient_MakeAuthenticatedRequest_TokenError(t *testing.T) {
	c, err := NewClient(failingTokens{})
	require.NoError(t, err)

	_, err = c.MakeAuthenticatedRequest(context.Background(), http.MethodGet, "http://127.0.0.1:1/never", nil, nil)
	assert.ErrorIs(t, err, auth.ErrNotAuthenticated)
}

func TestClient_MakeAuthenticatedRequest_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()
	c, err := NewClient(auth.StaticTokenSource("t"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.MakeAuthenticatedRequest(ctx, http.MethodGet, srv.URL, nil, nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_HandleHTTPResponse(t *testing.T) {
	c := &Client{}

	tests := []struct {
		status  int
		body    string
		wantErr bool
	}{
		{http.StatusOK, "", false},
		{http.StatusCreated, "", false},
		{http.StatusNoContent, "", false},
		{http.StatusNotFound, `{"error":{"code":"itemNotFound"}}`, true},
		{http.StatusTooManyRequests, "slow down", true},
		{http.StatusInternalServerError, "boom", true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status, Body: io.NopCloser(strings.NewReader(tt.body))}
			err := c.HandleHTTPResponse(resp, "get page content")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.body, se.Body)
			assert.Contains(t, err.Error(), "get page content failed: HTTP")
		})
	}
}
