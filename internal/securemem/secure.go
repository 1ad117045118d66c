// Package securemem implements C1 from spec.md §4.1: fixed-capacity
// byte buffers that are guaranteed to be zeroed before release, with
// best-effort page locking so secret material is never swapped to
// disk.
package securemem

import (
	"runtime"
	"sync"
)

// Buffer is a fixed-size byte region intended to hold secret-bearing
// data (a coefficient, an imported secret, a decoded share). Every
// allocation routes through New/FromBytes so zeroization is
// deterministic regardless of how the caller's function returns.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	locked bool
}

// New allocates a zeroed Buffer of size bytes and attempts to lock it
// into RAM. Locking failures are not reported here — spec.md §5
// treats mlock failure as a process-wide warning, not a per-buffer
// error; see internal/securemem.LockAll for the fatal -M behavior.
func New(size int) *Buffer {
	b := &Buffer{data: make([]byte, size)}
	b.locked = mlock(b.data)
	runtime.SetFinalizer(b, func(f *Buffer) { f.Release() })
	return b
}

// FromBytes copies data into a new secure Buffer. The caller remains
// responsible for zeroing its own copy of data.
func FromBytes(data []byte) *Buffer {
	b := New(len(data))
	copy(b.data, data)
	return b
}

// Bytes returns the underlying slice. It is valid until Release is
// called; callers must not retain it past that point.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// Len returns the buffer's length, or 0 after Release.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.data)
}

// Locked reports whether the memory was successfully mlocked.
func (b *Buffer) Locked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.locked
}

// Release overwrites every byte with zero using a write the compiler
// cannot elide, unlocks the memory if it was locked, and detaches the
// finalizer. Safe to call multiple times and on every error path.
func (b *Buffer) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.data == nil {
		return
	}

	zero(b.data)

	if b.locked {
		munlock(b.data)
		b.locked = false
	}

	b.data = nil
	runtime.SetFinalizer(b, nil)
}

// zero overwrites p with zero bytes. It is written as a byte-at-a-time
// loop (rather than a pattern the compiler could recognize and drop
// when the slice isn't read again) so zeroization survives dead-store
// elimination.
func zero(p []byte) {
	for i := range p {
		p[i] = 0
	}
	runtime.KeepAlive(p)
}

// ZeroBytes zeros a plain (non-secure) byte slice in place. Used for
// stack-local buffers that were never routed through a secure
// allocation, e.g. raw stdin lines before they're imported into a
// field element.
func ZeroBytes(data []byte) {
	zero(data)
}
