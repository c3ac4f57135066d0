package tds

import (
	"fmt"
	"strings"
)

// maxNameLength bounds every emitted name; longer names break older
// tooling.
const maxNameLength = 12

// nameRegistry maps scene names to the identifiers written into the
// container. Names are reduced to ASCII and truncated; names that collide
// after truncation get a numeric suffix, re-truncated so the bound still
// holds. A name resolves to the same identifier for the whole session.
type nameRegistry struct {
	mapping map[string]string
	used    map[string]bool
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{
		mapping: make(map[string]string),
		used:    make(map[string]bool),
	}
}

// resolve returns the container identifier for name, allocating one on
// first use.
func (r *nameRegistry) resolve(name string) string {
	if fixed, ok := r.mapping[name]; ok {
		return fixed
	}
	base := asciiName(name)
	fixed := truncateName(base, maxNameLength)
	for i := 0; r.used[fixed]; i++ {
		suffix := fmt.Sprintf(".%03d", i)
		fixed = truncateName(base, maxNameLength-len(suffix)) + suffix
	}
	r.mapping[name] = fixed
	r.used[fixed] = true
	return fixed
}

// asciiName replaces every non-ASCII rune with '?'.
func asciiName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > 0x7F {
			b.WriteByte('?')
		} else {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

func truncateName(name string, n int) string {
	if len(name) > n {
		return name[:n]
	}
	return name
}
