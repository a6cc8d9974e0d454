package softserve

import (
	"context"
	"errors"
	"io"
	"iter"
)

// Stream is a forward-only, single-use byte source over an opened file.
// Reads fail with the context's error once ctx is done.
type Stream struct {
	ctx      context.Context
	r        io.ReadCloser
	buf      []byte
	consumed bool
}

// NewStream wraps r in a Stream with a ChunkSize read buffer.
// The Stream takes ownership of r and closes it on Close.
func NewStream(ctx context.Context, r io.ReadCloser) *Stream {
	return &Stream{
		ctx: ctx,
		r:   r,
		buf: make([]byte, ChunkSize),
	}
}

func (s *Stream) Read(p []byte) (int, error) {
	if err := s.ctx.Err(); err != nil {
		return 0, err
	}
	return s.r.Read(p)
}

// Chunks yields the remaining contents in pieces of at most ChunkSize bytes.
// A yielded slice is only valid until the next iteration. The sequence can
// be ranged over once; a second range yields ErrStreamConsumed.
func (s *Stream) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		if s.consumed {
			yield(nil, ErrStreamConsumed)
			return
		}
		s.consumed = true

		for {
			n, err := s.Read(s.buf)
			if n > 0 {
				if !yield(s.buf[:n], nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
		}
	}
}

// WriteTo copies the stream to w chunk by chunk. It stops at the first
// read or write error.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for chunk, err := range s.Chunks() {
		if err != nil {
			return written, err
		}
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func (s *Stream) Close() error {
	return s.r.Close()
}
