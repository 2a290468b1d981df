package dissect

import "strings"

// ChainEntry is one successful decoder invocation recorded into the
// protocol chain.
type ChainEntry struct {
	ShortName string
	Layer     Layer
}

// Chain is the ordered sequence of decoded protocol short-names for one
// frame.
type Chain struct {
	entries []ChainEntry
}

// Entries returns a copy of the chain entries in decoding order.
func (c *Chain) Entries() []ChainEntry {
	out := make([]ChainEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of successful decoder invocations.
func (c *Chain) Len() int { return len(c.entries) }

// Contains reports whether shortName appears anywhere in the chain.
func (c *Chain) Contains(shortName string) bool {
	for _, e := range c.entries {
		if e.ShortName == shortName {
			return true
		}
	}
	return false
}

// ContainsLayer reports whether any entry in the chain belongs to layer.
func (c *Chain) ContainsLayer(layer Layer) bool {
	for _, e := range c.entries {
		if e.Layer == layer {
			return true
		}
	}
	return false
}

// String renders the chain as colon-separated short-names, e.g. "Ethernet:IPv4:TCP:HTTP".
func (c *Chain) String() string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.ShortName
	}
	return strings.Join(names, ":")
}

// chainBuilder accumulates chain entries during a single decode call.
type chainBuilder struct {
	entries []ChainEntry
}

func newChainBuilder() *chainBuilder {
	return &chainBuilder{}
}

func (b *chainBuilder) Append(shortName string, layer Layer) {
	b.entries = append(b.entries, ChainEntry{ShortName: shortName, Layer: layer})
}

func (b *chainBuilder) ShortNames() []string {
	out := make([]string, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.ShortName
	}
	return out
}

func (b *chainBuilder) build() *Chain {
	entries := make([]ChainEntry, len(b.entries))
	copy(entries, b.entries)
	return &Chain{entries: entries}
}
