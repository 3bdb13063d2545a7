package dictionary

import (
	"testing"

	"github.com/saxbophone/lzw-bit/internal/fixture"
)

func TestNewDictionaryHasTwoSeeds(t *testing.T) {
	d := New()
	if d.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", d.Size())
	}
	if code, ok := d.CodeOf(Bits{0}); !ok || code != 0 {
		t.Errorf("CodeOf({0}) = (%d, %v), want (0, true)", code, ok)
	}
	if code, ok := d.CodeOf(Bits{1}); !ok || code != 1 {
		t.Errorf("CodeOf({1}) = (%d, %v), want (1, true)", code, ok)
	}
	if s := d.StringOf(0); len(s) != 1 || s[0] != 0 {
		t.Errorf("StringOf(0) = %v, want {0}", s)
	}
	if s := d.StringOf(1); len(s) != 1 || s[0] != 1 {
		t.Errorf("StringOf(1) = %v, want {1}", s)
	}
}

func TestInsertAssignsContiguousCodes(t *testing.T) {
	d := New()
	c := d.Insert(Bits{0, 0})
	if c != 2 {
		t.Fatalf("Insert({0,0}) = %d, want 2", c)
	}
	if d.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", d.Size())
	}
	got := d.StringOf(2)
	want := Bits{0, 0}
	if !bitsEqual(got, want) {
		t.Errorf("StringOf(2) = %v, want %v", got, want)
	}
}

func TestInsertPrefixMissingPanics(t *testing.T) {
	d := New()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic inserting a string whose prefix is absent")
		}
	}()
	d.Insert(Bits{0, 0, 0}) // {0,0} not yet present
}

func TestRedundantCodeEnqueuedOnSecondChild(t *testing.T) {
	d := New()
	d.Insert(Bits{0, 0}) // seed0 (code 0) now has one child
	d.Insert(Bits{0, 1}) // seed0 now has both children -> its code 0 is redundant

	before := d.Size()
	d.DropOldestRedundant()
	if d.Size() != before-1 {
		t.Fatalf("Size() after drop = %d, want %d", d.Size(), before-1)
	}
	if _, ok := d.CodeOf(Bits{0}); ok {
		t.Errorf("CodeOf({0}) should be uncoded after drop")
	}
	if !d.ContainsString(Bits{0}) {
		t.Errorf("{0} should still be present in the trie after drop")
	}
}

func TestDropOldestRedundantOnEmptyQueueIsNoOp(t *testing.T) {
	d := New()
	before := d.Size()
	d.DropOldestRedundant()
	if d.Size() != before {
		t.Errorf("Size() changed on no-op drop: %d -> %d", before, d.Size())
	}
}

func TestDropKeepsCodesContiguousAndMonotonic(t *testing.T) {
	d := New()
	d.Insert(Bits{0, 0})
	d.Insert(Bits{0, 1}) // code 0 (for {0}) becomes redundant
	d.Insert(Bits{1, 0})
	d.Insert(Bits{1, 1}) // code 1 (for {1}) becomes redundant

	d.DropOldestRedundant() // drops {0}'s code
	d.DropOldestRedundant() // drops {1}'s code

	assertContiguousCodes(t, d)
}

func TestRestoreAllCodesReassignsDroppedStrings(t *testing.T) {
	d := New()
	d.Insert(Bits{0, 0})
	d.Insert(Bits{0, 1})
	d.DropOldestRedundant() // {0} now uncoded

	sizeBeforeRestore := d.Size()
	d.RestoreAllCodes()

	if d.Size() != sizeBeforeRestore+1 {
		t.Fatalf("Size() after restore = %d, want %d", d.Size(), sizeBeforeRestore+1)
	}
	if _, ok := d.CodeOf(Bits{0}); !ok {
		t.Errorf("{0} should be coded again after RestoreAllCodes")
	}
	assertContiguousCodes(t, d)
}

func TestStringOfCodeOfRoundTrip(t *testing.T) {
	d := New()
	strings := []Bits{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {0, 0, 0}, {0, 0, 1}}
	for _, s := range strings {
		d.Insert(s)
	}
	for k := 0; k < d.Size(); k++ {
		s := d.StringOf(k)
		gotCode, ok := d.CodeOf(s)
		if !ok || gotCode != k {
			t.Errorf("CodeOf(StringOf(%d)) = (%d, %v), want (%d, true)", k, gotCode, ok, k)
		}
	}
}

// TestRandomInsertDropRestoreSequenceStaysConsistent exercises a long
// sequence of insert/drop/restore operations driven by a deterministic
// fixture, checking the dictionary invariants after every step.
func TestRandomInsertDropRestoreSequenceStaysConsistent(t *testing.T) {
	rng := fixture.New(99)
	d := New()
	present := []Bits{{0}, {1}}

	for i := 0; i < 500; i++ {
		switch rng.Uint64N(3) {
		case 0, 1:
			base := present[rng.Uint64N(uint64(len(present)))]
			bit := byte(rng.Uint64N(2))
			candidate := append(append(Bits{}, base...), bit)
			if !d.ContainsString(candidate) {
				d.Insert(candidate)
				present = append(present, candidate)
			}
		case 2:
			d.DropOldestRedundant()
		}
		if rng.Uint64N(37) == 0 {
			d.RestoreAllCodes()
		}
		assertContiguousCodes(t, d)
	}
}

// TestThreadedListVisitsCodesInIncreasingOrder walks the internal next chain
// from head and checks that the codes of any coded nodes encountered along
// the way strictly increase, skipping nodes that have since been dropped
// (DropOldestRedundant never unlinks a node from the thread, it only clears
// its code — see the comment on headID).
func TestThreadedListVisitsCodesInIncreasingOrder(t *testing.T) {
	d := New()
	d.Insert(Bits{0, 0})
	d.Insert(Bits{0, 1}) // code for {0} becomes redundant
	d.Insert(Bits{1, 0})
	d.DropOldestRedundant() // drops {0}'s code

	last := -1
	seen := 0
	for id := headID; id != none; id = d.nodes[id].next {
		code := d.nodes[id].code
		if code == none {
			continue
		}
		if code <= last {
			t.Fatalf("threaded list yielded non-increasing codes: %d after %d", code, last)
		}
		last = code
		seen++
	}
	if seen != d.Size() {
		t.Fatalf("threaded list visited %d coded nodes, want %d", seen, d.Size())
	}
}

func assertContiguousCodes(t *testing.T, d *Dictionary) {
	t.Helper()
	for k := 0; k < d.Size(); k++ {
		if !d.ContainsCode(k) {
			t.Fatalf("code %d missing from contiguous range [0, %d)", k, d.Size())
		}
		s := d.StringOf(k)
		if got, ok := d.CodeOf(s); !ok || got != k {
			t.Fatalf("code %d round-trips to %d via CodeOf(StringOf(%d))", k, got, k)
		}
	}
}

func bitsEqual(a, b Bits) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
