// Package entity provides generational entity identifiers and an ordered
// store for simulation objects.
package entity

import "fmt"

// ID encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. The generation increments on destroy so stale IDs never
// resolve to a newer entity. The zero ID is never issued.
type ID uint64

// None is the zero ID, used where no entity is referenced.
const None ID = 0

func newID(index, generation uint32) ID {
	return ID(uint64(generation)<<32 | uint64(index))
}

func (id ID) Index() uint32      { return uint32(id) }
func (id ID) Generation() uint32 { return uint32(id >> 32) }
func (id ID) IsZero() bool       { return id == None }

func (id ID) String() string {
	return fmt.Sprintf("%d#%d", id.Index(), id.Generation())
}

// Pool manages ID allocation with generational indices and a free list.
type Pool struct {
	generations []uint32
	freeList    []uint32
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		generations: make([]uint32, 0, 64),
		freeList:    make([]uint32, 0, 16),
	}
}

// Create allocates a fresh ID, reusing a freed slot when one is available.
func (p *Pool) Create() ID {
	if n := len(p.freeList); n > 0 {
		idx := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		return newID(idx, p.generations[idx])
	}
	idx := uint32(len(p.generations))
	// Generations start at 1 so that no live ID equals None.
	p.generations = append(p.generations, 1)
	return newID(idx, 1)
}

// Alive reports whether the ID refers to a slot that has not been destroyed.
func (p *Pool) Alive(id ID) bool {
	idx := id.Index()
	if id.IsZero() || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == id.Generation()
}

// Destroy invalidates the ID. Destroying a stale or unknown ID is a no-op
// and returns false.
func (p *Pool) Destroy(id ID) bool {
	if !p.Alive(id) {
		return false
	}
	idx := id.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		// Wrapped around; retire the slot rather than reissue generation 0.
		return true
	}
	p.freeList = append(p.freeList, idx)
	return true
}

// Len returns the number of live IDs.
func (p *Pool) Len() int {
	return len(p.generations) - len(p.freeList)
}
