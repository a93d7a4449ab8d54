package format

import (
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/puzpuzpuz/xsync/v3"
)

// marshalCache assigns cache slots to objects sent on a connection. Slots
// are handed out round robin; reusing a slot evicts the object it held, the
// peer learns about the new occupant through the "new" flag of the frame.
type marshalCache struct {
	index *xsync.MapOf[string, int16]
	slots []string // slot -> key, "" when free
	next  int
}

func newMarshalCache(size int) *marshalCache {
	return &marshalCache{
		index: xsync.NewMapOf[string, int16](xsync.WithPresize(size)),
		slots: make([]string, size),
	}
}

// lookup returns the slot holding key
func (c *marshalCache) lookup(key string) (int16, bool) {
	return c.index.Load(key)
}

// assign stores key in the next slot and returns it
func (c *marshalCache) assign(key string) int16 {
	idx := c.next
	if old := c.slots[idx]; old != "" {
		c.index.Delete(old)
	}
	c.slots[idx] = key
	c.index.Store(key, int16(idx))
	c.next = (c.next + 1) % len(c.slots)
	return int16(idx)
}

func (c *marshalCache) len() int {
	return c.index.Size()
}

func (c *marshalCache) reset() {
	c.index.Clear()
	clear(c.slots)
	c.next = 0
}

// unmarshalCache holds the objects received from the peer by slot
type unmarshalCache struct {
	slots []commands.DataStructure
}

func newUnmarshalCache(size int) *unmarshalCache {
	return &unmarshalCache{slots: make([]commands.DataStructure, size)}
}

// valid reports whether idx addresses a slot
func (c *unmarshalCache) valid(idx int16) bool {
	return idx >= 0 && int(idx) < len(c.slots)
}

func (c *unmarshalCache) put(idx int16, ds commands.DataStructure) {
	c.slots[idx] = ds
}

// get returns the object in slot idx or nil for an empty slot
func (c *unmarshalCache) get(idx int16) commands.DataStructure {
	return c.slots[idx]
}

func (c *unmarshalCache) reset() {
	clear(c.slots)
}
