package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/thoughtwall/thoughtwall/internal/model"
	"github.com/thoughtwall/thoughtwall/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	st, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return st
}

func TestThoughtLifecycle(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	thought := model.Thought{
		Message:   "Fresh coffee on a rainy morning",
		Category:  "food",
		CreatedAt: time.Now(),
	}
	if err := st.CreateThought(context.Background(), &thought); err != nil {
		t.Fatalf("create thought: %v", err)
	}
	if thought.ID == "" {
		t.Fatalf("expected generated id")
	}

	got, err := st.GetThought(context.Background(), thought.ID)
	if err != nil {
		t.Fatalf("get thought: %v", err)
	}
	if got.Message != thought.Message {
		t.Fatalf("unexpected message: %s", got.Message)
	}
	if got.Hearts != 0 {
		t.Fatalf("expected 0 hearts, got %d", got.Hearts)
	}

	updated, err := st.UpdateThought(context.Background(), thought.ID, "Fresh tea on a rainy morning", "drinks")
	if err != nil {
		t.Fatalf("update thought: %v", err)
	}
	if updated.Message != "Fresh tea on a rainy morning" || updated.Category != "drinks" {
		t.Fatalf("update not applied: %+v", updated)
	}

	deleted, err := st.DeleteThought(context.Background(), thought.ID)
	if err != nil {
		t.Fatalf("delete thought: %v", err)
	}
	if deleted.ID != thought.ID {
		t.Fatalf("expected deleted record, got %+v", deleted)
	}
	if _, err := st.GetThought(context.Background(), thought.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestIncrementHearts(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	thought := model.Thought{Message: "Sunshine after a week of rain", CreatedAt: time.Now()}
	if err := st.CreateThought(context.Background(), &thought); err != nil {
		t.Fatalf("create thought: %v", err)
	}

	for i := 1; i <= 3; i++ {
		got, err := st.IncrementHearts(context.Background(), thought.ID)
		if err != nil {
			t.Fatalf("increment hearts: %v", err)
		}
		if got.Hearts != i {
			t.Fatalf("expected %d hearts, got %d", i, got.Hearts)
		}
	}

	if _, err := st.IncrementHearts(context.Background(), "00000000-0000-0000-0000-000000000000"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListThoughtsPagination(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		thought := model.Thought{
			Message:   fmt.Sprintf("Happy thought number %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.CreateThought(context.Background(), &thought); err != nil {
			t.Fatalf("create thought %d: %v", i, err)
		}
	}

	page1, total, err := st.ListThoughts(context.Background(), store.ThoughtListOpts{Sort: "date", Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list page 1: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 results, got %d", len(page1))
	}
	// Newest first
	if page1[0].Message != "Happy thought number 4" {
		t.Fatalf("expected newest first, got %s", page1[0].Message)
	}

	page3, total, err := st.ListThoughts(context.Background(), store.ThoughtListOpts{Sort: "date", Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("list page 3: %v", err)
	}
	if total != 5 || len(page3) != 1 {
		t.Fatalf("expected 1 result on last page, got %d (total %d)", len(page3), total)
	}

	empty, _, err := st.ListThoughts(context.Background(), store.ThoughtListOpts{Sort: "date", Page: 10, Limit: 2})
	if err != nil {
		t.Fatalf("list past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page past end, got %d", len(empty))
	}
}

func TestListThoughtsHeartsSort(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	low := model.Thought{Message: "A quietly pleasant afternoon", CreatedAt: time.Now()}
	high := model.Thought{Message: "The best day in living memory", CreatedAt: time.Now().Add(-time.Hour)}
	for _, th := range []*model.Thought{&low, &high} {
		if err := st.CreateThought(context.Background(), th); err != nil {
			t.Fatalf("create thought: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := st.IncrementHearts(context.Background(), high.ID); err != nil {
			t.Fatalf("increment hearts: %v", err)
		}
	}

	results, _, err := st.ListThoughts(context.Background(), store.ThoughtListOpts{Sort: "hearts", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list by hearts: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Most hearts wins even though it is older
	if results[0].ID != high.ID {
		t.Fatalf("expected most-hearted first, got %s", results[0].Message)
	}
}

func TestListThoughtsCategoryFilter(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	for i, cat := range []string{"food", "food", "pets"} {
		thought := model.Thought{
			Message:   fmt.Sprintf("Categorized thought %d", i),
			Category:  cat,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}
		if err := st.CreateThought(context.Background(), &thought); err != nil {
			t.Fatalf("create thought: %v", err)
		}
	}

	results, total, err := st.ListThoughts(context.Background(), store.ThoughtListOpts{Category: "Food", Sort: "date", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected filtered total 2, got %d", total)
	}
	for _, r := range results {
		if r.Category != "food" {
			t.Fatalf("unexpected category in results: %s", r.Category)
		}
	}

	categories, err := st.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "food" || categories[1] != "pets" {
		t.Fatalf("unexpected categories: %v", categories)
	}
}

func TestDeleteThoughtsByUser(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	user := model.User{Username: "sam", Email: "sam@example.com", PasswordHash: "x", AccessToken: "tok-sam", CreatedAt: time.Now()}
	if err := st.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	mine := model.Thought{Message: "A thought that will vanish", UserID: user.ID, Username: user.Username, CreatedAt: time.Now()}
	other := model.Thought{Message: "A thought that will remain", CreatedAt: time.Now()}
	for _, th := range []*model.Thought{&mine, &other} {
		if err := st.CreateThought(context.Background(), th); err != nil {
			t.Fatalf("create thought: %v", err)
		}
	}

	removed, err := st.DeleteThoughtsByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("delete by user: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := st.GetThought(context.Background(), other.ID); err != nil {
		t.Fatalf("unrelated thought should survive: %v", err)
	}
}

func TestSiteStats(t *testing.T) {
	st := newTestStore(t)
	defer st.Close()

	user := model.User{Username: "stats", Email: "stats@example.com", PasswordHash: "x", AccessToken: "tok-stats", CreatedAt: time.Now()}
	if err := st.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	thought := model.Thought{Message: "Counting all the hearts", CreatedAt: time.Now()}
	if err := st.CreateThought(context.Background(), &thought); err != nil {
		t.Fatalf("create thought: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := st.IncrementHearts(context.Background(), thought.ID); err != nil {
			t.Fatalf("increment hearts: %v", err)
		}
	}

	stats, err := st.GetSiteStats(context.Background())
	if err != nil {
		t.Fatalf("site stats: %v", err)
	}
	if stats.Users != 1 || stats.Thoughts != 1 || stats.Hearts != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
