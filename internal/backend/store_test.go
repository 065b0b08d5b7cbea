package backend

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rhystmorgan/contactterm/internal/models"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.newID = sequentialIDs()

	alice, err := store.Create(ctx, models.ContactFields{Name: "Alice"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if alice.ID != "id-1" {
		t.Errorf("Expected id-1, got %s", alice.ID)
	}
	bob, _ := store.Create(ctx, models.ContactFields{Name: "Bob"})
	carol, _ := store.Create(ctx, models.ContactFields{Name: "Carol"})

	replaced, err := store.Replace(ctx, bob.ID, models.ContactFields{Name: "Robert"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if replaced.ID != bob.ID || replaced.Name != "Robert" {
		t.Errorf("Replace() = %+v", replaced)
	}

	if err := store.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Index must follow the shift after deleting the first element.
	got, err := store.Get(ctx, carol.ID)
	if err != nil || got.Name != "Carol" {
		t.Fatalf("Get(carol) = %+v, %v", got, err)
	}

	list, _ := store.List(ctx)
	if len(list) != 2 || list[0].Name != "Robert" || list[1].Name != "Carol" {
		t.Errorf("List() = %+v", list)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Get(ctx, "nope"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := store.Replace(ctx, "nope", models.ContactFields{}); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Replace() error = %v", err)
	}
	if err := store.Delete(ctx, "nope"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestMemoryStoreSkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ids := []string{"dup", "dup", "fresh"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, _ := store.Create(ctx, models.ContactFields{Name: "A"})
	second, _ := store.Create(ctx, models.ContactFields{Name: "B"})
	if first.ID != "dup" || second.ID != "fresh" {
		t.Errorf("ids = %s, %s", first.ID, second.ID)
	}
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(models.ContactFields{Name: "Alice"})

	list, _ := store.List(ctx)
	list[0].Name = "Mallory"

	again, _ := store.List(ctx)
	if again[0].Name != "Alice" {
		t.Errorf("List() exposed internal state: %+v", again)
	}
	if again[0].ID == "" {
		t.Error("seeded contact should have an id")
	}
}
