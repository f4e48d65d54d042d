// Package pool provides sync.Pool wrappers for reducing GC pressure.
package pool

import (
	"strconv"
	"strings"
	"sync"
)

// PointerBuilder builds JSON Pointer strings (RFC 6901) with a reusable
// byte buffer. Acquire one from the pool and Release it when done.
type PointerBuilder struct {
	buf []byte
}

var pointerBuilderPool = sync.Pool{
	New: func() any {
		return &PointerBuilder{
			buf: make([]byte, 0, 128),
		}
	},
}

// AcquirePointerBuilder gets a PointerBuilder from the pool.
// Call Release() when done to return it to the pool.
func AcquirePointerBuilder() *PointerBuilder {
	pb := pointerBuilderPool.Get().(*PointerBuilder)
	pb.Reset()
	return pb
}

// Release returns the PointerBuilder to the pool.
func (b *PointerBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pointerBuilderPool.Put(b)
	}
}

// Reset clears the buffer without deallocating.
func (b *PointerBuilder) Reset() {
	b.buf = b.buf[:0]
}

// Len returns the current length of the pointer string.
func (b *PointerBuilder) Len() int {
	return len(b.buf)
}

// AppendToken appends one reference token, escaping "~" and "/" per RFC 6901.
func (b *PointerBuilder) AppendToken(token string) {
	b.buf = append(b.buf, '/')
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '~':
			b.buf = append(b.buf, '~', '0')
		case '/':
			b.buf = append(b.buf, '~', '1')
		default:
			b.buf = append(b.buf, token[i])
		}
	}
}

// AppendIndex appends an array index as a reference token.
func (b *PointerBuilder) AppendIndex(index int) {
	b.buf = append(b.buf, '/')
	b.buf = strconv.AppendInt(b.buf, int64(index), 10)
}

// String returns the built pointer. The empty pointer addresses the root.
func (b *PointerBuilder) String() string {
	return string(b.buf)
}

// BuildPointer builds a pointer using a callback and releases the builder.
func BuildPointer(fn func(*PointerBuilder)) string {
	pb := AcquirePointerBuilder()
	defer pb.Release()
	fn(pb)
	return pb.String()
}

// UnescapeToken decodes a reference token: "~1" -> "/", then "~0" -> "~".
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// SplitPointer splits a JSON Pointer into decoded reference tokens.
// The empty pointer yields no tokens.
func SplitPointer(pointer string) []string {
	if pointer == "" {
		return nil
	}
	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	tokens := make([]string, len(parts))
	for i, p := range parts {
		tokens[i] = UnescapeToken(p)
	}
	return tokens
}
