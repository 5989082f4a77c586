package catalog

import (
	"context"
	"testing"
)

func TestMemStoreListAll(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	for _, filter := range []string{"", CategoryAll} {
		got, err := s.List(ctx, filter)
		if err != nil {
			t.Fatalf("List(%q): %v", filter, err)
		}
		if len(got) != 4 {
			t.Fatalf("List(%q): got %d products, want 4", filter, len(got))
		}
		for i, p := range got {
			if p.ID != i+1 {
				t.Fatalf("List(%q): product %d has id %d, catalog order broken", filter, i, p.ID)
			}
		}
	}
}

func TestMemStoreListByCategory(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	bebidas, err := s.List(ctx, "bebidas")
	if err != nil {
		t.Fatalf("List(bebidas): %v", err)
	}
	if len(bebidas) != 3 {
		t.Fatalf("List(bebidas): got %d, want 3", len(bebidas))
	}
	for _, p := range bebidas {
		if p.Category != "bebidas" {
			t.Fatalf("List(bebidas) returned product %d with category %q", p.ID, p.Category)
		}
	}

	salgados, err := s.List(ctx, "salgados")
	if err != nil {
		t.Fatalf("List(salgados): %v", err)
	}
	if len(salgados) != 1 || salgados[0].ID != 4 {
		t.Fatalf("List(salgados): got %+v, want only product 4", salgados)
	}
}

func TestMemStoreListUnknownCategory(t *testing.T) {
	s := NewMemStore()

	got, err := s.List(context.Background(), "sobremesas")
	if err != nil {
		t.Fatalf("List(sobremesas): %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("List(sobremesas): got %v, want empty non-nil slice", got)
	}
}

func TestMemStoreGet(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	all, _ := s.List(ctx, "")
	for _, want := range all {
		got, ok, err := s.Get(ctx, want.ID)
		if err != nil || !ok {
			t.Fatalf("Get(%d): ok=%v err=%v", want.ID, ok, err)
		}
		if got != want {
			t.Fatalf("Get(%d): got %+v, want %+v", want.ID, got, want)
		}
	}

	if _, ok, err := s.Get(ctx, 999); err != nil || ok {
		t.Fatalf("Get(999): ok=%v err=%v, want miss", ok, err)
	}
}

func TestMemStoreCategories(t *testing.T) {
	s := NewMemStore()

	got, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}

	want := []string{"bebidas", "salgados"}
	if len(got) != len(want) {
		t.Fatalf("Categories: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories: got %v, want %v (first-occurrence order)", got, want)
		}
	}
}

// Filtering by each category must partition the catalog: every product shows
// up in exactly one per-category listing.
func TestMemStoreCategoryPartition(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	all, _ := s.List(ctx, CategoryAll)
	categories, _ := s.Categories(ctx)

	seen := make(map[int]int)
	for _, c := range categories {
		products, err := s.List(ctx, c)
		if err != nil {
			t.Fatalf("List(%q): %v", c, err)
		}
		for _, p := range products {
			seen[p.ID]++
		}
	}

	if len(seen) != len(all) {
		t.Fatalf("partition covers %d products, catalog has %d", len(seen), len(all))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("product %d appeared in %d category listings", id, n)
		}
	}
}
