// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

// Package stream provides read-only byte sources and a reader that concatenates
// them, closing each source exactly once.
package stream

import (
	"bytes"
	"io"
)

// Source is a readable, closable byte stream that may know its total length.
type Source interface {
	io.Reader
	io.Closer

	// Len reports the total length in bytes, or false when it is not known.
	Len() (int64, bool)
}

type readCloserSource struct {
	io.ReadCloser
	length int64
}

// NewSource wraps rc. A negative length means the length is unknown.
func NewSource(rc io.ReadCloser, length int64) Source {
	return &readCloserSource{ReadCloser: rc, length: length}
}

func (s *readCloserSource) Len() (int64, bool) {
	if s.length < 0 {
		return 0, false
	}
	return s.length, true
}

// BytesSource serves b from memory.
func BytesSource(b []byte) Source {
	return NewSource(io.NopCloser(bytes.NewReader(b)), int64(len(b)))
}
