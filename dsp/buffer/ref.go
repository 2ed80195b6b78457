package buffer

import "sync/atomic"

// Ref is a named reference to a Buffer owned by someone else.
//
// Store and MarkModified may be called from any goroutine. The reader polls
// TakeModified to learn that the content changed since it last looked.
type Ref struct {
	name     string
	buf      atomic.Pointer[Buffer]
	modified atomic.Bool
}

// NewRef returns a Ref named name pointing at b. b may be nil, in which case
// the buffer is reported as absent until Store is called.
func NewRef(name string, b *Buffer) *Ref {
	r := &Ref{name: name}
	r.buf.Store(b)

	return r
}

// Name returns the reference name.
func (r *Ref) Name() string {
	return r.name
}

// Load returns the current buffer, or nil when absent.
func (r *Ref) Load() *Buffer {
	return r.buf.Load()
}

// Store swaps in b and flags the reference as modified.
func (r *Ref) Store(b *Buffer) {
	r.buf.Store(b)
	r.modified.Store(true)
}

// MarkModified flags an in-place edit of the current buffer.
func (r *Ref) MarkModified() {
	r.modified.Store(true)
}

// TakeModified reports whether the reference was modified since the last
// call and clears the flag.
func (r *Ref) TakeModified() bool {
	return r.modified.Load() && r.modified.CompareAndSwap(true, false)
}
