package memory

import (
	"context"
	"testing"
)

func TestKVStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seed := map[string]string{"currentWeek": "2"}
	store := NewKVStore(seed)
	seed["currentWeek"] = "9"

	value, ok, err := store.Get(ctx, "currentWeek")
	if err != nil || !ok || value != "2" {
		t.Fatalf("expected seeded 2, got %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Set(ctx, "playerPicks", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Remove(ctx, "currentWeek"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "currentWeek"); ok {
		t.Fatalf("expected currentWeek removed")
	}

	snap := store.Snapshot()
	if len(snap) != 1 || snap["playerPicks"] != "[]" {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
}
