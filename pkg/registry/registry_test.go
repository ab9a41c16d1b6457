package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arthur-debert/genout/pkg/errors"
)

// TestItem is a simple type for testing
type TestItem struct {
	ID    int
	Name  string
	Clean bool
}

func TestNew(t *testing.T) {
	reg := New[TestItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}
}

func TestRegister(t *testing.T) {
	reg := New[TestItem]()

	t.Run("register valid item", func(t *testing.T) {
		item := TestItem{ID: 1, Name: "LIB"}
		err := reg.Register("LIB", item)

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1", reg.Count())
		}
	})

	t.Run("register with empty name", func(t *testing.T) {
		err := reg.Register("", TestItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty name should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate keeps the first item", func(t *testing.T) {
		err := reg.Register("LIB", TestItem{ID: 3, Clean: true})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}

		got, _ := reg.Get("LIB")
		if got.ID != 1 || got.Clean {
			t.Errorf("duplicate registration replaced the item: %+v", got)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[TestItem]()
	item := TestItem{ID: 1, Name: "LIB"}
	_ = reg.Register("LIB", item)

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("LIB")

		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}

		if got != item {
			t.Errorf("Get() = %+v, want %+v", got, item)
		}
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("nope")

		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() non-existing should return ErrNotFound, got %v", err)
		}
		if errors.GetErrorDetails(err)["name"] != "nope" {
			t.Errorf("Get() error should carry the name, got %v", errors.GetErrorDetails(err))
		}
	})
}

func TestNames(t *testing.T) {
	reg := New[TestItem]()

	// Register items in non-alphabetical order
	items := []string{"charlie", "alpha", "bravo"}
	for i, name := range items {
		_ = reg.Register(name, TestItem{ID: i})
	}

	names := reg.Names()
	for i, name := range items {
		if names[i] != name {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], name)
		}
	}

	// Mutating the returned slice must not affect the registry
	names[0] = "mutated"
	if reg.Names()[0] != "charlie" {
		t.Error("Names() should return a copy")
	}
}

func TestHas(t *testing.T) {
	reg := New[TestItem]()
	_ = reg.Register("LIB", TestItem{ID: 1})

	tests := []struct {
		name     string
		itemName string
		want     bool
	}{
		{"existing item", "LIB", true},
		{"non-existing item", "APP", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Has(tt.itemName); got != tt.want {
				t.Errorf("Has(%s) = %v, want %v", tt.itemName, got, tt.want)
			}
		})
	}
}

func TestConcurrency(t *testing.T) {
	reg := New[TestItem]()
	const goroutines = 10
	const itemsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				name := fmt.Sprintf("g%d_item%d", goroutineID, i)
				if err := reg.Register(name, TestItem{ID: goroutineID*1000 + i}); err != nil {
					t.Errorf("Concurrent Register() failed: %v", err)
				}
			}
		}(g)
	}

	wg.Wait()

	expectedCount := goroutines * itemsPerGoroutine
	if reg.Count() != expectedCount {
		t.Errorf("Count() after concurrent writes = %d, want %d", reg.Count(), expectedCount)
	}
	if len(reg.Names()) != expectedCount {
		t.Errorf("Names() after concurrent writes = %d, want %d", len(reg.Names()), expectedCount)
	}
}

func TestMustRegister(t *testing.T) {
	reg := New[TestItem]()

	MustRegister(reg, "LIB", TestItem{ID: 1})
	if !reg.Has("LIB") {
		t.Error("MustRegister() should have registered the item")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() should panic on duplicate registration")
		}
	}()
	MustRegister(reg, "LIB", TestItem{ID: 2})
}

func TestMustGet(t *testing.T) {
	reg := New[TestItem]()
	_ = reg.Register("LIB", TestItem{ID: 1})

	if got := MustGet[TestItem](reg, "LIB"); got.ID != 1 {
		t.Errorf("MustGet() = %+v", got)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustGet() should panic when item not found")
		}
	}()
	MustGet[TestItem](reg, "nope")
}
