// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package graph

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gebl/onenote-connector/internal/logging"
)

// maxErrorBody caps how much of a failed response is kept in the error.
const maxErrorBody = 4 << 10

// StatusError is returned for non-success HTTP responses.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: HTTP %d - %s", e.Operation, e.StatusCode, e.Body)
}

// MakeAuthenticatedRequest sends a request to url with a bearer token from the
// client's token source. The caller owns the response body.
func (c *Client) MakeAuthenticatedRequest(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	logging.GraphLogger.Debug("Sending request", "method", method, "url", url)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.GraphLogger.Debug("Request failed", "method", method, "url", url, "error", err)
		return nil, err
	}
	logging.GraphLogger.Debug("Response received", "status", resp.StatusCode, "content_length", resp.ContentLength)
	return resp, nil
}

// HandleHTTPResponse returns a *StatusError for anything other than 200, 201 or 204.
// On error the body is drained into the error and closed.
func (c *Client) HandleHTTPResponse(resp *http.Response, operation string) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	logging.GraphLogger.Debug("Error response", "operation", operation, "status", resp.StatusCode, "body", string(body))
	return &StatusError{Operation: operation, StatusCode: resp.StatusCode, Body: string(body)}
}
