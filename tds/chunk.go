package tds

import (
	"io"
	"math"

	"github.com/anaminus/parse"
)

// chunk is one node of the container tree: a tag, payload values in append
// order, and nested chunks written after the payload.
type chunk struct {
	tag      uint16
	values   []value
	children []*chunk

	// sz caches the measured subtree length for the write pass.
	sz uint32
}

func newChunk(tag uint16) *chunk {
	return &chunk{tag: tag}
}

// add appends a payload value.
func (c *chunk) add(v value) {
	c.values = append(c.values, v)
}

// addChild appends a nested chunk. Nil children are dropped, so makers
// may return nil for chunks with nothing to say.
func (c *chunk) addChild(sub *chunk) {
	if sub != nil {
		c.children = append(c.children, sub)
	}
}

// measure computes the encoded length of the chunk subtree bottom-up and
// caches each chunk's length for the write pass. The result is exact even
// when a subtree overflows the 32-bit length field; the caller compares
// it against the cached truncated value.
func (c *chunk) measure() uint64 {
	n := uint64(zHead)
	for _, v := range c.values {
		n += uint64(v.size())
	}
	for _, sub := range c.children {
		n += sub.measure()
	}
	c.sz = uint32(n)
	return n
}

// validator is implemented by values that can hold more elements than
// their encoding can express.
type validator interface {
	valid() bool
}

// validate reports whether every value in the chunk subtree fits its
// encoding.
func (c *chunk) validate() bool {
	for _, v := range c.values {
		if a, ok := v.(validator); ok && !a.valid() {
			return false
		}
	}
	for _, sub := range c.children {
		if !sub.validate() {
			return false
		}
	}
	return true
}

// write streams the chunk subtree depth-first. measure must have run
// first. Returns true if the writer failed.
func (c *chunk) write(fw *parse.BinaryWriter) bool {
	if fw.Number(c.tag) {
		return true
	}
	if fw.Number(c.sz) {
		return true
	}
	for _, v := range c.values {
		if v.write(fw) {
			return true
		}
	}
	for _, sub := range c.children {
		if sub.write(fw) {
			return true
		}
	}
	return false
}

// WriteTo sizes the chunk tree and streams it to w. It implements
// io.WriterTo.
func (c *chunk) WriteTo(w io.Writer) (int64, error) {
	if c.measure() > math.MaxUint32 {
		return 0, ErrChunkOverflow
	}
	fw := parse.NewBinaryWriter(w)
	c.write(fw)
	return fw.End()
}
