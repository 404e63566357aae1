package docstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shashiranjanraj/vastra/pkg/docstore"
)

type widget struct {
	ID    string  `bson:"_id,omitempty"`
	Name  string  `bson:"name"`
	Price float64 `bson:"price"`
}

func TestGetMissing(t *testing.T) {
	col := docstore.NewMemory().Collection("widgets")

	var w widget
	err := col.Get(context.Background(), "nope", &w)
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory().Collection("widgets")

	if err := col.Set(ctx, "w1", widget{Name: "bolt", Price: 2.5}); err != nil {
		t.Fatal(err)
	}

	var w widget
	if err := col.Get(ctx, "w1", &w); err != nil {
		t.Fatal(err)
	}
	if w.ID != "w1" || w.Name != "bolt" || w.Price != 2.5 {
		t.Fatalf("unexpected doc: %+v", w)
	}
}

func TestMergeUpsertsAndPreservesFields(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory().Collection("widgets")

	// Merge on an absent id creates the document.
	if err := col.Merge(ctx, "w1", map[string]interface{}{"name": "bolt"}); err != nil {
		t.Fatal(err)
	}
	// A second merge of a different field leaves the first intact.
	if err := col.Merge(ctx, "w1", map[string]interface{}{"price": 2.5}); err != nil {
		t.Fatal(err)
	}

	var w widget
	if err := col.Get(ctx, "w1", &w); err != nil {
		t.Fatal(err)
	}
	if w.Name != "bolt" || w.Price != 2.5 {
		t.Fatalf("merge lost fields: %+v", w)
	}
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	col := docstore.NewMemory().Collection("widgets")

	err := col.Update(context.Background(), "nope", map[string]interface{}{"name": "x"})
	if !errors.Is(err, docstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	col := docstore.NewMemory().Collection("widgets")

	if err := col.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("delete of absent id should succeed, got %v", err)
	}
}

func TestFindFilters(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory().Collection("widgets")

	for _, w := range []widget{
		{Name: "bolt", Price: 2.5},
		{Name: "nut", Price: 1.0},
		{Name: "gear", Price: 12.0},
	} {
		if _, err := col.Add(ctx, w); err != nil {
			t.Fatal(err)
		}
	}

	var out []widget
	filters := []docstore.Filter{docstore.Gte("price", 2.0), docstore.Lte("price", 10.0)}
	if err := col.Find(ctx, filters, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Name != "bolt" {
		t.Fatalf("unexpected result: %+v", out)
	}

	// No filters returns everything in insertion order.
	if err := col.Find(ctx, nil, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[0].Name != "bolt" || out[2].Name != "gear" {
		t.Fatalf("unexpected result: %+v", out)
	}
}

func TestGetMultiSkipsMissing(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory().Collection("widgets")

	id1, err := col.Add(ctx, widget{Name: "bolt"})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := col.Add(ctx, widget{Name: "nut"})
	if err != nil {
		t.Fatal(err)
	}

	var out []widget
	if err := col.GetMulti(ctx, []string{id1, "missing", id2}, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(out))
	}
}

func TestReadsHandOutCopies(t *testing.T) {
	ctx := context.Background()
	col := docstore.NewMemory().Collection("attrs")

	if err := col.Set(ctx, "a1", map[string]interface{}{"tags": []string{"x"}}); err != nil {
		t.Fatal(err)
	}

	var first map[string]interface{}
	if err := col.Get(ctx, "a1", &first); err != nil {
		t.Fatal(err)
	}
	first["tags"] = "mutated"

	var second map[string]interface{}
	if err := col.Get(ctx, "a1", &second); err != nil {
		t.Fatal(err)
	}
	if second["tags"] == "mutated" {
		t.Fatal("stored document was mutated through a read")
	}
}
