package schemavalidator

import (
	"strconv"

	"github.com/goccy/go-json"

	"github.com/goschema/validator/pool"
)

// Segment is one step of a location path: an object key or an array index.
type Segment struct {
	key   string
	index int
	isKey bool
}

// Key creates an object-key segment.
func Key(key string) Segment {
	return Segment{key: key, isKey: true}
}

// Index creates an array-index segment.
func Index(i int) Segment {
	return Segment{index: i}
}

// IsKey reports whether the segment is an object key.
func (s Segment) IsKey() bool { return s.isKey }

// KeyValue returns the object key (empty for index segments).
func (s Segment) KeyValue() string { return s.key }

// IndexValue returns the array index (zero for key segments).
func (s Segment) IndexValue() int { return s.index }

// String returns the segment as a reference token, unescaped.
func (s Segment) String() string {
	if s.isKey {
		return s.key
	}
	return strconv.Itoa(s.index)
}

// Path is an ordered sequence of segments locating a node inside a JSON
// document. The empty path addresses the document root.
type Path []Segment

// Append returns a new path extended by the given segments. The receiver is
// never modified, so sibling branches can share a common prefix safely.
func (p Path) Append(segs ...Segment) Path {
	next := make(Path, 0, len(p)+len(segs))
	next = append(next, p...)
	return append(next, segs...)
}

// Pointer renders the path as an RFC 6901 JSON Pointer.
// The root path renders as the empty string.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return ""
	}
	return pool.BuildPointer(func(b *pool.PointerBuilder) {
		for _, s := range p {
			if s.isKey {
				b.AppendToken(s.key)
			} else {
				b.AppendIndex(s.index)
			}
		}
	})
}

// String renders the path for humans; the root path renders as "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	return p.Pointer()
}

// MarshalJSON renders the path as an array of keys and indexes,
// e.g. ["properties","a",0].
func (p Path) MarshalJSON() ([]byte, error) {
	out := make([]any, len(p))
	for i, s := range p {
		if s.isKey {
			out[i] = s.key
		} else {
			out[i] = s.index
		}
	}
	return json.Marshal(out)
}
