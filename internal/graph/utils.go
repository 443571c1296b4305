// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// utils.go - ID validation, sharing URL encoding and OData error inspection.

package graph

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"

	"github.com/gebl/onenote-connector/internal/logging"
)

const maxIDLength = 100

// SanitizeOneNoteID validates an ID before it is placed in a request path.
// OneNote IDs contain letters, digits, hyphens and exclamation marks,
// e.g. "0-4D24C77F19546939!40109".
func (c *Client) SanitizeOneNoteID(id, idType string) (string, error) {
	sanitized := strings.TrimSpace(id)
	if sanitized == "" {
		return "", fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, idType)
	}
	for _, r := range sanitized {
		isAlnum := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !isAlnum && r != '-' && r != '!' {
			logging.GraphLogger.Debug("Invalid character in ID", "id_type", idType, "char", string(r))
			return "", fmt.Errorf("%w: %s contains invalid characters", ErrInvalidArgument, idType)
		}
	}
	if len(sanitized) > maxIDLength {
		return "", fmt.Errorf("%w: %s is too long", ErrInvalidArgument, idType)
	}
	return sanitized, nil
}

// EncodeSharingURL turns a web URL into a shares API id ("u!" + unpadded base64url).
func EncodeSharingURL(webURL string) string {
	return "u!" + base64.RawURLEncoding.EncodeToString([]byte(webURL))
}

// ErrorCode returns the OData error code carried by err, or "".
func ErrorCode(err error) string {
	var odataErr *odataerrors.ODataError
	if !errors.As(err, &odataErr) {
		return ""
	}
	if main := odataErr.GetErrorEscaped(); main != nil && main.GetCode() != nil {
		return *main.GetCode()
	}
	return ""
}

// DescribeError renders err with its OData code and message when present.
func DescribeError(err error) string {
	var odataErr *odataerrors.ODataError
	if errors.As(err, &odataErr) {
		if main := odataErr.GetErrorEscaped(); main != nil {
			return fmt.Sprintf("%s: %s (HTTP %d)", deref(main.GetCode()), deref(main.GetMessage()), odataErr.ResponseStatusCode)
		}
	}
	return err.Error()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
