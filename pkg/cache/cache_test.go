package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestBoundedEvictsOldestInserted(t *testing.T) {
	c := NewBounded[string, int]("test", 3)
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("c", 3)

	// reads must not refresh "a"
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}
	c.Insert("d", 4)

	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted")
	}
	for _, k := range []string{"b", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
}

func TestBoundedUpdateKeepsPosition(t *testing.T) {
	c := NewBounded[string, int]("test", 2)
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Insert("a", 10)

	if v, _ := c.Get("a"); v != 10 {
		t.Fatalf("expected updated value 10, got %d", v)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}

	// "a" is still the oldest insert even though it was just updated
	c.Insert("c", 3)
	if _, ok := c.Get("a"); ok {
		t.Error("a should have been evicted despite the in-place update")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("b should still be cached")
	}
}

func TestBoundedRemoveAndClear(t *testing.T) {
	c := NewBounded[string, []int]("test", 4)
	c.Insert("x", []int{1})
	c.Insert("y", []int{2})

	if !c.Remove("x") {
		t.Error("Remove(x) should report true")
	}
	if c.Remove("x") {
		t.Error("second Remove(x) should report false")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
	if _, ok := c.Get("y"); ok {
		t.Error("y should be gone after Clear")
	}
}

func TestBoundedMinimumCapacity(t *testing.T) {
	c := NewBounded[int, int]("test", 0)
	c.Insert(1, 1)
	c.Insert(2, 2)
	if c.Len() != 1 {
		t.Errorf("expected capacity clamp to 1, got %d entries", c.Len())
	}
}

func TestBoundedStats(t *testing.T) {
	c := NewBounded[string, int]("plain", 8)
	c.Insert("a", 1)
	c.Get("a")
	c.Get("b")
	stats := c.Stats()
	if stats["plainHits"] != 1 || stats["plainMisses"] != 1 || stats["plainEntries"] != 1 || stats["plainCapacity"] != 8 {
		t.Errorf("unexpected stats: %v", stats)
	}
}

func TestBoundedConcurrent(t *testing.T) {
	c := NewBounded[string, int]("test", 16)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("k%d", (w*500+i)%40)
				c.Insert(key, i)
				c.Get(key)
			}
		}(w)
	}
	wg.Wait()
	if c.Len() > 16 {
		t.Errorf("cache exceeded capacity: %d", c.Len())
	}
}
