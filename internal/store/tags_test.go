package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/leetdeck/internal/store"
	"github.com/joestump/leetdeck/internal/testutil"
)

func newTagTestEnv(t *testing.T) (*store.TagStore, *store.ProblemStore) {
	t.Helper()
	db := testutil.NewTestDB(t)
	tags := store.NewTagStore(db, nil)
	return tags, store.NewProblemStore(db, tags, nil)
}

func TestTagStore_Upsert_Create(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	tag, err := ts.Upsert(ctx, store.Tag{Name: "Hash Table", Slug: "hash-table"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if tag.Name != "Hash Table" {
		t.Errorf("name = %q, want %q", tag.Name, "Hash Table")
	}
	if tag.Slug != "hash-table" {
		t.Errorf("slug = %q, want %q", tag.Slug, "hash-table")
	}
	if tag.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestTagStore_Upsert_DerivesMissingSlug(t *testing.T) {
	ts, _ := newTagTestEnv(t)

	tag, err := ts.Upsert(context.Background(), store.Tag{Name: "Binary Search_Tree"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if tag.Slug != "binary-search-tree" {
		t.Errorf("slug = %q, want %q", tag.Slug, "binary-search-tree")
	}
}

func TestTagStore_Upsert_Idempotent(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	if _, err := ts.Upsert(ctx, store.Tag{Name: "Array", Slug: "array"}); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	tag, err := ts.Upsert(ctx, store.Tag{Name: "Arrays", Slug: "array"})
	if err != nil {
		t.Fatalf("Upsert second: %v", err)
	}
	if tag.Name != "Array" {
		t.Errorf("name = %q, want the original %q", tag.Name, "Array")
	}

	all, err := ts.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len = %d, want 1", len(all))
	}
}

func TestTagStore_Upsert_Empty(t *testing.T) {
	ts, _ := newTagTestEnv(t)

	if _, err := ts.Upsert(context.Background(), store.Tag{Name: "  "}); err == nil {
		t.Error("Upsert(empty) = nil, want error")
	}
}

func TestTagStore_GetBySlug(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	if _, err := ts.Upsert(ctx, store.Tag{Name: "Dynamic Programming", Slug: "dynamic-programming"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := ts.GetBySlug(ctx, "dynamic-programming")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Name != "Dynamic Programming" {
		t.Errorf("name = %q, want %q", got.Name, "Dynamic Programming")
	}
}

func TestTagStore_GetBySlug_NotFound(t *testing.T) {
	ts, _ := newTagTestEnv(t)

	_, err := ts.GetBySlug(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetBySlug(nonexistent) = %v, want ErrNotFound", err)
	}
}

func TestTagStore_ListAll(t *testing.T) {
	ts, _ := newTagTestEnv(t)
	ctx := context.Background()

	for _, tag := range []store.Tag{{Name: "String", Slug: "string"}, {Name: "Array", Slug: "array"}} {
		if _, err := ts.Upsert(ctx, tag); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	tags, err := ts.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("len = %d, want 2", len(tags))
	}
	// Should be ordered by slug ASC.
	if tags[0].Slug != "array" {
		t.Errorf("first tag = %q, want %q", tags[0].Slug, "array")
	}
}

func TestDeriveTagSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Array", "array"},
		{"Hash Table", "hash-table"},
		{"  Two   Pointers ", "two-pointers"},
		{"Bit_Manipulation", "bit-manipulation"},
		{"Divide & Conquer", "divide-conquer"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := store.DeriveTagSlug(tt.name); got != tt.want {
				t.Errorf("DeriveTagSlug(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
