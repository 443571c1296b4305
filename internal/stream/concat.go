// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package stream

import (
	"errors"
	"io"

	"github.com/gebl/onenote-connector/internal/logging"
)

// ConcatReader reads its sources back to back in queue order. It owns them:
// each is closed when it is exhausted or, at the latest, by Close.
//
// A Read never spans two sources. It is not seekable and not writable, and
// it is not safe for concurrent use.
type ConcatReader struct {
	queue []Source
	pos   int64
}

// Concat takes ownership of sources. Nil entries are ignored.
func Concat(sources ...Source) *ConcatReader {
	r := &ConcatReader{queue: make([]Source, 0, len(sources))}
	for _, s := range sources {
		if s != nil {
			r.queue = append(r.queue, s)
		}
	}
	return r
}

// Read fills p from the front source. Exhausted sources are closed and dropped
// until one yields data. It returns io.EOF only once every source is drained.
func (r *ConcatReader) Read(p []byte) (int, error) {
	for len(r.queue) > 0 {
		if len(p) == 0 {
			return 0, nil
		}
		n, err := r.queue[0].Read(p)
		r.pos += int64(n)

		switch {
		case err == io.EOF:
			if cerr := r.releaseFront(); cerr != nil {
				return n, cerr
			}
			if n > 0 {
				return n, nil
			}
		default:
			// Data, a non-EOF error, or a (0, nil) read from a slow source.
			return n, err
		}
	}
	return 0, io.EOF
}

// releaseFront closes and dequeues the front source.
func (r *ConcatReader) releaseFront() error {
	front := r.queue[0]
	r.queue[0] = nil
	r.queue = r.queue[1:]

	if err := front.Close(); err != nil {
		logging.StreamLogger.Warn("Closing exhausted source failed", "error", err)
		return err
	}
	return nil
}

// Len is the sum of the declared lengths of the sources not yet released.
// It reports false if any of them does not know its length.
func (r *ConcatReader) Len() (int64, bool) {
	var total int64
	for _, s := range r.queue {
		n, ok := s.Len()
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

// Pos is the number of bytes returned by Read so far.
func (r *ConcatReader) Pos() int64 {
	return r.pos
}

// Remaining is the number of sources not yet released.
func (r *ConcatReader) Remaining() int {
	return len(r.queue)
}

// Close releases all remaining sources in queue order and returns their joined
// errors. Calling Close again is a no-op.
func (r *ConcatReader) Close() error {
	var errs []error
	for len(r.queue) > 0 {
		if err := r.releaseFront(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
