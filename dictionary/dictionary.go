// Package dictionary implements the bit-addressed LZW dictionary: a binary
// trie over {0,1} strings threaded with a linked list across coded entries,
// supporting insertion, string/code lookup in both directions, code
// invalidation ("redundant" retirement), and code compaction.
//
// Nodes live in a flat arena (a slice indexed by int id) rather than a
// pointer graph. parent, next and the two children of a node are arena ids,
// with -1 standing in for "absent". This avoids the reference cycles a
// naive parent/child/next pointer graph would otherwise require reference
// counting to break.
package dictionary

import "fmt"

const none = -1

// root is always arena id 0. head, the first node in the threaded list, is
// always arena id 1 (the seed for bit 0) for the lifetime of a Dictionary:
// dropping a code never unlinks a node from the thread, it only clears the
// node's code, so the chain's first link never moves. See DESIGN.md for why
// this departs from a literal reading of "unlink from the threaded list".
const (
	rootID = 0
	headID = 1
)

// Bits is a string over the {0,1} alphabet, one element per bit, 0 or 1.
type Bits []byte

type node struct {
	bit      byte
	depth    int
	children [2]int
	parent   int
	next     int
	code     int // none if this node is not currently coded
}

// Dictionary is the bit-trie dictionary described by the specification. The
// zero value is not usable; construct one with New.
type Dictionary struct {
	nodes     []node
	index     []int // code -> arena id, len(index) == count
	tail      int   // arena id of the most recently inserted node
	redundant []int // FIFO queue of arena ids whose codes are safe to retire
}

// New constructs a Dictionary pre-seeded with the two length-1 strings {0}
// and {1}, coded 0 and 1 respectively.
func New() *Dictionary {
	d := &Dictionary{
		nodes: make([]node, 1, 64),
	}
	d.nodes[rootID] = node{parent: none, next: none, children: [2]int{none, none}, code: none}

	seed0 := d.newNode(rootID, 0, 1)
	seed1 := d.newNode(rootID, 1, 1)
	d.nodes[rootID].children[0] = seed0
	d.nodes[rootID].children[1] = seed1
	d.nodes[seed0].next = seed1

	d.index = []int{seed0, seed1}
	d.nodes[seed0].code = 0
	d.nodes[seed1].code = 1
	d.tail = seed1

	return d
}

// newNode appends a fresh, as-yet-uncoded node to the arena and returns its
// id. Callers are responsible for wiring children/code/index/tail.
func (d *Dictionary) newNode(parent int, bit byte, depth int) int {
	id := len(d.nodes)
	d.nodes = append(d.nodes, node{
		bit:      bit,
		depth:    depth,
		children: [2]int{none, none},
		parent:   parent,
		next:     none,
		code:     none,
	})
	return id
}

// Size returns the number of currently coded strings.
func (d *Dictionary) Size() int {
	return len(d.index)
}

// ContainsString reports whether some node's string equals s.
func (d *Dictionary) ContainsString(s Bits) bool {
	_, ok := d.findString(s)
	return ok
}

// ContainsCode reports whether 0 <= k < Size().
func (d *Dictionary) ContainsCode(k int) bool {
	return k >= 0 && k < len(d.index)
}

// findString walks root to s bit by bit, returning the node id or
// (0, false) if the walk hits an absent child.
func (d *Dictionary) findString(s Bits) (int, bool) {
	cursor := rootID
	for _, bit := range s {
		next := d.nodes[cursor].children[bit]
		if next == none {
			return 0, false
		}
		cursor = next
	}
	return cursor, true
}

// findCode returns the node id coded k, or (0, false) if k is out of range.
func (d *Dictionary) findCode(k int) (int, bool) {
	if k < 0 || k >= len(d.index) {
		return 0, false
	}
	return d.index[k], true
}

// StringOf reconstructs the bit string coded k by walking parent links.
// Panics if k is not a currently valid code — callers must check
// ContainsCode first, matching the contract used throughout this package.
func (d *Dictionary) StringOf(k int) Bits {
	id, ok := d.findCode(k)
	if !ok {
		panic(fmt.Sprintf("dictionary: StringOf(%d): no such code", k))
	}
	n := d.nodes[id]
	out := make(Bits, n.depth)
	cursor := id
	for i := n.depth - 1; i >= 0; i-- {
		out[i] = d.nodes[cursor].bit
		cursor = d.nodes[cursor].parent
	}
	return out
}

// CodeOf returns the code stored at the node for s and true, or (0, false)
// if that node exists but is currently uncoded. Panics if s is not present
// in the trie at all — that is a contract violation, distinct from "present
// but uncoded".
func (d *Dictionary) CodeOf(s Bits) (int, bool) {
	id, ok := d.findString(s)
	if !ok {
		panic(fmt.Sprintf("dictionary: CodeOf(%v): string not present in trie", s))
	}
	code := d.nodes[id].code
	if code == none {
		return 0, false
	}
	return code, true
}

// Insert adds s to the trie and assigns it the next available code. The
// prefix s[:len(s)-1] must already be present in the trie; violating this
// precondition is a programmer error and panics.
//
// If s's parent node was coded and now has both children populated, the
// parent's code becomes redundant (it can never again be the longest match
// of a future encoder walk) and is enqueued onto the redundant FIFO.
func (d *Dictionary) Insert(s Bits) int {
	if len(s) == 0 {
		panic("dictionary: Insert called with empty string")
	}
	parentID, ok := d.findString(s[:len(s)-1])
	if !ok {
		panic(fmt.Sprintf("dictionary: Insert(%v): prefix not present in trie", s))
	}
	bit := s[len(s)-1]
	if d.nodes[parentID].children[bit] != none {
		panic(fmt.Sprintf("dictionary: Insert(%v): string already present", s))
	}

	id := d.newNode(parentID, bit, d.nodes[parentID].depth+1)
	d.nodes[parentID].children[bit] = id

	code := len(d.index)
	d.nodes[id].code = code
	d.index = append(d.index, id)
	d.nodes[d.tail].next = id
	d.tail = id

	parent := &d.nodes[parentID]
	if parent.code != none && parent.children[0] != none && parent.children[1] != none {
		d.redundant = append(d.redundant, parentID)
	}

	return code
}

// DropOldestRedundant retires the oldest code enqueued as redundant: the
// node keeps its place in the trie and the threaded list, but loses its
// code, and every code greater than the dropped one shifts down by one to
// keep the code space contiguous. A no-op if the redundant queue is empty.
func (d *Dictionary) DropOldestRedundant() {
	if len(d.redundant) == 0 {
		return
	}
	id := d.redundant[0]
	d.redundant = d.redundant[1:]

	r := d.nodes[id].code
	d.nodes[id].code = none
	d.index = append(d.index[:r], d.index[r+1:]...)
	for i := r; i < len(d.index); i++ {
		d.nodes[d.index[i]].code = i
	}
}

// RestoreAllCodes walks every node in the trie in insertion order (via the
// threaded list, which is never broken by DropOldestRedundant) and assigns
// fresh codes 0, 1, 2, … to all of them, coded or not. Previously dropped
// strings regain a code, though not necessarily the one they had before.
// Clears the redundant queue.
func (d *Dictionary) RestoreAllCodes() {
	d.index = d.index[:0]
	for id := headID; id != none; id = d.nodes[id].next {
		d.nodes[id].code = len(d.index)
		d.index = append(d.index, id)
	}
	d.redundant = d.redundant[:0]
}
