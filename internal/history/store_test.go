package history

import (
	"context"
	"testing"
	"time"

	"docshelf/internal/testsupport"
)

func TestRecordAndListRuns(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.RecordRun(context.Background(), Run{
			ID:              string(rune('a' + i)),
			StartedAt:       base.Add(time.Duration(i) * time.Hour),
			FinishedAt:      base.Add(time.Duration(i)*time.Hour + time.Minute),
			Root:            "/inbox",
			Output:          "/organized",
			Simulate:        i == 2,
			TotalFiles:      10 + i,
			SuccessfulMoves: i,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns returned %d runs, want 3", len(runs))
	}
	if runs[0].ID != "c" || runs[2].ID != "a" {
		t.Errorf("runs should come back newest first: %v, %v", runs[0].ID, runs[2].ID)
	}
	if !runs[0].Simulate {
		t.Error("simulate flag lost in round trip")
	}
	if !runs[0].StartedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("started_at round trip = %v", runs[0].StartedAt)
	}

	limited, err := store.ListRuns(context.Background(), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("limit = 2 returned %d runs", len(limited))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.RecordRun(context.Background(), Run{ID: "x", StartedAt: time.Now(), FinishedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	runs, err := second.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("reopened store should keep prior runs, got %d", len(runs))
	}
}
