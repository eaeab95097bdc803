package handle

import (
	"testing"
)

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	// Insert
	ref := table.Insert("test")
	if ref == 0 {
		t.Fatal("Expected non-zero ref")
	}

	// Get
	val, ok := table.Get(ref)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// Remove
	val, ok = table.Remove(ref)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_DoubleRemove(t *testing.T) {
	table := NewTable()
	ref := table.Insert(42)

	if _, ok := table.Remove(ref); !ok {
		t.Fatal("first Remove failed")
	}
	if _, ok := table.Remove(ref); ok {
		t.Fatal("second Remove should report a dead ref")
	}
	if _, ok := table.Get(ref); ok {
		t.Fatal("Get after Remove should fail")
	}
}

func TestTable_RefsAreUnique(t *testing.T) {
	table := NewTable()
	seen := make(map[Ref]bool)
	for i := 0; i < 100; i++ {
		ref := table.Insert(i)
		if seen[ref] {
			t.Fatalf("ref %d issued twice", ref)
		}
		seen[ref] = true
	}
	if table.Len() != 100 {
		t.Fatalf("Expected 100 live refs, got %d", table.Len())
	}
}

func TestTable_UnknownRef(t *testing.T) {
	table := NewTable()
	if _, ok := table.Get(Ref(999)); ok {
		t.Fatal("Get on unknown ref should fail")
	}
	if _, ok := table.Remove(Ref(999)); ok {
		t.Fatal("Remove on unknown ref should fail")
	}
	if _, ok := table.Get(Ref(0)); ok {
		t.Fatal("ref 0 is reserved and must never resolve")
	}
}
