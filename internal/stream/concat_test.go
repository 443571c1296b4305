// Copyright (c) 2025 Gabriel Lawrence
//
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// trackedSource records how often it was closed and in what order relative to others.
type trackedSource struct {
	Source
	name     string
	closes   int
	closeLog *[]string
	closeErr error
}

func (s *trackedSource) Close() error {
	s.closes++
	if s.closeLog != nil {
		*s.closeLog = append(*s.closeLog, s.name)
	}
	_ = s.Source.Close()
	return s.closeErr
}

func tracked(name string, data string, log *[]string) *trackedSource {
	return &trackedSource{Source: BytesSource([]byte(data)), name: name, closeLog: log}
}

// eofWithData returns its payload together with io.EOF in one call.
type eofWithData struct {
	data []byte
	done bool
}

func (e *eofWithData) Read(p []byte) (int, error) {
	if e.done {
		return 0, io.EOF
	}
	e.done = true
	return copy(p, e.data), io.EOF
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestConcat_Empty(t *testing.T) {
	r := Concat()

	n, err := r.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)

	length, ok := r.Len()
	assert.True(t, ok)
	assert.Equal(t, int64(0), length)
	assert.NoError(t, r.Close())
}

func TestConcat_LengthsAndRelease(t *testing.T) {
	var log []string
	a := tracked("a", "hello", &log)
	b := tracked("b", "", &log)
	c := tracked("c", " world", &log)
	r := Concat(a, b, c)

	length, ok := r.Len()
	require.True(t, ok)
	assert.Equal(t, int64(11), length)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(out))

	assert.Equal(t, []string{"a", "b", "c"}, log)
	for _, s := range []*trackedSource{a, b, c} {
		assert.Equal(t, 1, s.closes, s.name)
	}

	length, ok = r.Len()
	assert.True(t, ok)
	assert.Equal(t, int64(0), length, "released sources no longer count")
	assert.Equal(t, int64(11), r.Pos())
	assert.Equal(t, 0, r.Remaining())

	require.NoError(t, r.Close())
	assert.Equal(t, 1, a.closes)
}

func TestConcat_FiveZeroSeven(t *testing.T) {
	r := Concat(
		BytesSource(bytes.Repeat([]byte("x"), 5)),
		BytesSource(nil),
		BytesSource(bytes.Repeat([]byte("y"), 7)),
	)
	length, ok := r.Len()
	require.True(t, ok)
	assert.Equal(t, int64(12), length)

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "xxxxxyyyyyyy", string(out))
}

func TestConcat_LenShrinksAsSourcesAreReleased(t *testing.T) {
	r := Concat(
		BytesSource(bytes.Repeat([]byte("x"), 5)),
		BytesSource(nil),
		BytesSource(bytes.Repeat([]byte("y"), 7)),
	)
	buf := make([]byte, 64)
	lenNow := func() int64 {
		n, ok := r.Len()
		require.True(t, ok)
		return n
	}

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, int64(12), lenNow(), "first source is not released until it reports EOF")

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, int64(7), lenNow())

	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, int64(0), lenNow())
}

func TestConcat_ReadDoesNotSpanSources(t *testing.T) {
	r := Concat(BytesSource([]byte("abc")), BytesSource([]byte("def")))
	buf := make([]byte, 10)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "def", string(buf[:n]))

	n, err = r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestConcat_SkipsEmptySourcesWithinOneRead(t *testing.T) {
	var log []string
	r := Concat(tracked("e1", "", &log), tracked("e2", "", &log), tracked("d", "xy", &log))

	buf := make([]byte, 4)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "xy", string(buf[:n]))
	assert.Equal(t, []string{"e1", "e2"}, log)
	assert.Equal(t, 1, r.Remaining())
}

func TestConcat_DataWithEOFReleasesImmediately(t *testing.T) {
	first := &trackedSource{Source: NewSource(io.NopCloser(&eofWithData{data: []byte("abc")}), 3), name: "first"}
	r := Concat(first, BytesSource([]byte("d")))

	buf := make([]byte, 8)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(buf[:n]))
	assert.Equal(t, 1, first.closes)
	assert.Equal(t, 1, r.Remaining())
}

func TestConcat_UnknownLength(t *testing.T) {
	unknown := NewSource(io.NopCloser(bytes.NewReader([]byte("??"))), -1)
	r := Concat(BytesSource([]byte("ok")), unknown)

	_, ok := r.Len()
	assert.False(t, ok)

	_, err := io.ReadAll(r)
	require.NoError(t, err)
	length, ok := r.Len()
	assert.True(t, ok, "known once the unknown source is released")
	assert.Equal(t, int64(0), length)
}

func TestConcat_ReadErrorKeepsSource(t *testing.T) {
	boom := errors.New("connection reset")
	var log []string
	bad := &trackedSource{Source: NewSource(io.NopCloser(failingReader{err: boom}), 4), name: "bad", closeLog: &log}
	after := tracked("after", "zz", &log)
	r := Concat(bad, after)

	_, err := r.Read(make([]byte, 4))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, bad.closes)
	assert.Equal(t, 2, r.Remaining())

	require.NoError(t, r.Close())
	assert.Equal(t, []string{"bad", "after"}, log)
	assert.Equal(t, 1, bad.closes)
	assert.Equal(t, 1, after.closes)
}

func TestConcat_CloseIsIdempotentAndJoinsErrors(t *testing.T) {
	e1 := errors.New("close one")
	e2 := errors.New("close two")
	a := &trackedSource{Source: BytesSource([]byte("a")), name: "a", closeErr: e1}
	b := &trackedSource{Source: BytesSource([]byte("b")), name: "b", closeErr: e2}
	r := Concat(a, b)

	err := r.Close()
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)

	assert.NoError(t, r.Close())
	assert.Equal(t, 1, a.closes)
	assert.Equal(t, 1, b.closes)

	n, err := r.Read(make([]byte, 1))
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}

func TestConcat_ZeroLengthBuffer(t *testing.T) {
	r := Concat(BytesSource([]byte("abc")))
	n, err := r.Read(nil)
	assert.Equal(t, 0, n)
	assert.NoError(t, err)
	assert.Equal(t, 1, r.Remaining())
}

func TestConcat_IgnoresNilSources(t *testing.T) {
	r := Concat(nil, BytesSource([]byte("a")), nil)
	assert.Equal(t, 1, r.Remaining())
}

func TestConcat_IsASource(t *testing.T) {
	inner := Concat(BytesSource([]byte("ab")), BytesSource([]byte("c")))
	outer := Concat(inner, BytesSource([]byte("d")))

	length, ok := outer.Len()
	require.True(t, ok)
	assert.Equal(t, int64(4), length)

	out, err := io.ReadAll(outer)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(out))
}

func TestConcat_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.SliceOfN(rapid.Byte(), 0, 40), 0, 8).Draw(rt, "parts")
		bufSize := rapid.IntRange(1, 64).Draw(rt, "bufSize")

		var log []string
		sources := make([]*trackedSource, len(parts))
		var all []Source
		var want []byte
		var total int64
		for i, p := range parts {
			sources[i] = &trackedSource{Source: BytesSource(p), name: string(rune('a' + i)), closeLog: &log}
			all = append(all, sources[i])
			want = append(want, p...)
			total += int64(len(p))
		}

		r := Concat(all...)
		length, ok := r.Len()
		if !ok || length != total {
			rt.Fatalf("Len() = %d, %v; want %d", length, ok, total)
		}

		// Source boundaries in the concatenated output.
		var bounds []int64
		var off int64
		for _, p := range parts {
			off += int64(len(p))
			bounds = append(bounds, off)
		}

		var got []byte
		buf := make([]byte, bufSize)
		for {
			start := r.Pos()
			n, err := r.Read(buf)
			got = append(got, buf[:n]...)
			end := start + int64(n)
			for _, b := range bounds {
				if start < b && b < end {
					rt.Fatalf("read [%d,%d) spans source boundary %d", start, end, b)
				}
			}
			if err == io.EOF {
				if n != 0 {
					rt.Fatalf("EOF with %d bytes", n)
				}
				break
			}
			if err != nil {
				rt.Fatalf("unexpected error: %v", err)
			}
		}

		if !bytes.Equal(got, want) {
			rt.Fatalf("got %q, want %q", got, want)
		}
		if length, ok := r.Len(); !ok || length != 0 {
			rt.Fatalf("Len() after EOF = %d, %v; want 0", length, ok)
		}
		if err := r.Close(); err != nil {
			rt.Fatalf("close: %v", err)
		}
		for _, s := range sources {
			if s.closes != 1 {
				rt.Fatalf("source %s closed %d times", s.name, s.closes)
			}
		}
		if len(log) != len(parts) {
			rt.Fatalf("close log %v", log)
		}
		for i, name := range log {
			if name != sources[i].name {
				rt.Fatalf("close order %v", log)
			}
		}
	})
}

func TestConcat_ClosesInOrderWithoutReading(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 10).Draw(rt, "count")
		reads := rapid.IntRange(0, 3).Draw(rt, "reads")

		var log []string
		var all []Source
		var names []string
		for i := 0; i < count; i++ {
			name := string(rune('a' + i))
			names = append(names, name)
			all = append(all, tracked(name, "0123", &log))
		}
		r := Concat(all...)
		buf := make([]byte, 4)
		for i := 0; i < reads; i++ {
			_, _ = r.Read(buf)
		}
		_ = r.Close()

		if len(log) != len(names) {
			rt.Fatalf("closed %v, want %v", log, names)
		}
		for i := range names {
			if log[i] != names[i] {
				rt.Fatalf("closed %v, want %v", log, names)
			}
		}
	})
}
