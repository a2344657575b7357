// Package secret holds short-lived sensitive byte buffers (master
// passwords, derived keys, seeds) and makes sure their contents are
// overwritten before the memory is released or reused.
package secret

import "runtime"

// A Buffer is a byte slice known to hold sensitive material. The zero
// value is an empty, already-wiped buffer.
type Buffer struct {
	b []byte
}

// New wraps b as a Buffer. The caller must not retain or alias b after
// passing it to New; ownership of the underlying array transfers to the
// Buffer.
func New(b []byte) Buffer { return Buffer{b: b} }

// Make allocates a new zero-filled Buffer of the given length.
func Make(n int) Buffer { return Buffer{b: make([]byte, n)} }

// Bytes returns the buffer's contents. The returned slice aliases the
// Buffer's storage and becomes invalid after Wipe.
func (s Buffer) Bytes() []byte { return s.b }

// Len reports the number of bytes in the buffer.
func (s Buffer) Len() int { return len(s.b) }

// Wipe overwrites every byte of the buffer with zero. It is safe to call
// Wipe more than once, and safe to call it on a zero Buffer.
//
// The loop below is immediately followed by runtime.KeepAlive so that the
// compiler cannot prove the store is dead and elide it: without that
// barrier, a sufficiently aggressive optimizer could observe that b is
// about to go out of scope and drop the writes entirely.
func (s Buffer) Wipe() {
	b := s.b
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeAll wipes every buffer in bufs, in order. It tolerates zero-value
// Buffers.
func WipeAll(bufs ...Buffer) {
	for _, b := range bufs {
		b.Wipe()
	}
}
