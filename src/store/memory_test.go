package store

import (
	"context"
	"errors"
	"testing"

	"github.com/yunbow/line-faq-bot/src/types"
)

func TestMemoryStoreSubscribers(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	if err := st.AppendSubscriber(ctx, types.Subscriber{SourceType: types.SourceUser, UserID: "U1", FollowState: types.Following}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := st.AppendSubscriber(ctx, types.Subscriber{SourceType: types.SourceUser, UserID: "U2", FollowState: types.Following}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := st.SetFollowState(ctx, 1, types.Unfollowed); err != nil {
		t.Fatalf("set follow state: %v", err)
	}

	subs, err := st.ListSubscribers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(subs))
	}
	if subs[0].FollowState != types.Following || subs[1].FollowState != types.Unfollowed {
		t.Errorf("unexpected states: %+v", subs)
	}

	// Returned slices are copies.
	subs[0].UserID = "mutated"
	again, _ := st.ListSubscribers(ctx)
	if again[0].UserID != "U1" {
		t.Errorf("store leaked internal slice")
	}
}

func TestMemoryStoreSetFollowStateOutOfRange(t *testing.T) {
	st := NewMemoryStore()
	err := st.SetFollowState(context.Background(), 0, types.Following)
	if !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestMemoryStoreReplaceFAQKeepsOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	entries := []types.FAQEntry{
		{ID: "1", Kind: types.KindMessage, Text: "a"},
		{ID: "2", Kind: types.KindMessage, Text: "b"},
	}
	if err := st.ReplaceFAQ(ctx, entries); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, _ := st.ListFAQ(ctx)
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("unexpected faq table: %+v", got)
	}
	if got[0].RowID != 1 || got[1].RowID != 2 {
		t.Errorf("row ids not assigned in order: %+v", got)
	}
}

func TestSheetRow(t *testing.T) {
	if got := SheetRow(0); got != 2 {
		t.Errorf("SheetRow(0) = %d, want 2", got)
	}
}
