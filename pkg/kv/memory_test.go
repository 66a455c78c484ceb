package kv

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, CollectionProducts, "p1", []byte(`{"name":"Widget"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc, err := store.GetByKey(ctx, CollectionProducts, "p1")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if string(doc) != `{"name":"Widget"}` {
		t.Fatalf("GetByKey = %q", doc)
	}

	if _, err := store.GetByKey(ctx, CollectionProducts, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key err = %v, want ErrNotFound", err)
	}
	if _, err := store.GetByKey(ctx, CollectionCategories, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong collection err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, CollectionProducts, "p1", []byte(`{"name":"Widget"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, CollectionProducts, "p1", []byte(`{"name":"Gadget"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc, err := store.GetByKey(ctx, CollectionProducts, "p1")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if string(doc) != `{"name":"Gadget"}` {
		t.Fatalf("GetByKey = %q, want replaced document", doc)
	}
}

func TestMemoryStoreScan(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	docs, err := store.Scan(ctx, CollectionProducts)
	if err != nil {
		t.Fatalf("Scan empty: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("Scan empty len = %d, want 0", len(docs))
	}

	for _, key := range []string{"a", "b", "c"} {
		if err := store.Put(ctx, CollectionProducts, key, []byte(`{"id":"`+key+`"}`)); err != nil {
			t.Fatalf("Put %s: %v", key, err)
		}
	}
	docs, err = store.Scan(ctx, CollectionProducts)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("Scan len = %d, want 3", len(docs))
	}
}

func TestMemoryStoreUpdatePartial(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, CollectionProducts, "p1", []byte(`{"name":"Widget","quantity":10,"price":"3.50"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	err := store.UpdatePartial(ctx, CollectionProducts, "p1", map[string]any{
		"quantity": 4,
	})
	if err != nil {
		t.Fatalf("UpdatePartial: %v", err)
	}

	doc, err := store.GetByKey(ctx, CollectionProducts, "p1")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(doc, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["quantity"] != float64(4) {
		t.Fatalf("quantity = %v, want 4", got["quantity"])
	}
	if got["name"] != "Widget" {
		t.Fatalf("name = %v, untouched field changed", got["name"])
	}
	if got["price"] != "3.50" {
		t.Fatalf("price = %v, untouched field changed", got["price"])
	}

	if err := store.UpdatePartial(ctx, CollectionProducts, "missing", map[string]any{"quantity": 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePartial missing err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Put(ctx, CollectionProducts, "p1", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, CollectionProducts, "p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByKey(ctx, CollectionProducts, "p1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByKey after Delete err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := store.Delete(ctx, CollectionProducts, "missing"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}

func TestMemoryStoreCopiesDocuments(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := []byte(`{"name":"Widget"}`)
	if err := store.Put(ctx, CollectionProducts, "p1", doc); err != nil {
		t.Fatalf("Put: %v", err)
	}
	doc[2] = 'X'

	stored, err := store.GetByKey(ctx, CollectionProducts, "p1")
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if string(stored) != `{"name":"Widget"}` {
		t.Fatalf("stored document mutated through caller slice: %q", stored)
	}
}
