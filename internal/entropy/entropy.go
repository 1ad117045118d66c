// Package entropy implements C2 from spec.md §4.2: a blocking reader
// that fills a buffer from a system entropy source, opened once per
// split operation and closed on every exit path.
package entropy

import (
	"io"

	"github.com/MrJoy/ssss/internal/securemem"
	sigilerr "github.com/MrJoy/ssss/pkg/errors"
)

// Source is a blocking entropy stream. crypto/rand.Reader is the
// recommended cryptographic source on every platform Go supports —
// the same role /dev/urandom plays in the original C tool — so the
// default Source simply wraps it; Open exists so callers (and tests)
// can substitute a different io.Reader, e.g. to exercise EntropyIO.
type Source struct {
	r      io.Reader
	closed bool
}

// Open opens a Source backed by r. The returned Source must be closed
// via Close on every exit path, mirroring ssss.c's cprng_init/cprng_deinit.
func Open(r io.Reader) (*Source, error) {
	if r == nil {
		return nil, sigilerr.ErrEntropyOpen
	}
	return &Source{r: r}, nil
}

// Read fills buf completely, restarting on short reads, and fails
// with ErrEntropyIO on any read error.
func (s *Source) Read(buf []byte) error {
	if s.closed {
		return sigilerr.ErrEntropyIO
	}
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return sigilerr.WithCause(sigilerr.ErrEntropyIO, err)
	}
	return nil
}

// ReadSecure fills a new securemem.Buffer of size n with entropy.
func (s *Source) ReadSecure(n int) (*securemem.Buffer, error) {
	b := securemem.New(n)
	if err := s.Read(b.Bytes()); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// Close marks the source closed. Closing twice is a no-op; a Source
// backed by an io.Reader that itself needs closing (not the case for
// crypto/rand.Reader) would propagate that error here instead.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return sigilerr.WithCause(sigilerr.ErrEntropyClose, err)
		}
	}
	return nil
}
