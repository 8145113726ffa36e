package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testRecords(t *testing.T) *Records {
	t.Helper()
	r, err := OpenRecords(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("OpenRecords() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordsAppendIdempotent(t *testing.T) {
	ctx := context.Background()
	r := testRecords(t)

	rec := Record{
		ID:          "gen-1",
		Caller:      "acme",
		CreatedAt:   time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC),
		Prompt:      "marketecture of our platform",
		DiagramType: "marketecture",
		Tier:        "premium",
		Model:       "anthropic/claude-sonnet-4-5",
		InputTokens: 900, OutputTokens: 420,
		CostUSD: 0.0123, WallMS: 4200,
		Formats: []string{"slide", "svg"}, EntityCount: 8,
		Lang: "en", Status: StatusCompleted,
	}
	if err := r.Append(ctx, rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	rec.CostUSD = 99 // replay must not rewrite the row
	if err := r.Append(ctx, rec); err != nil {
		t.Fatalf("Append() replay error = %v", err)
	}

	count, err := r.MonthlyCount(ctx, "acme", time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MonthlyCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("MonthlyCount() = %d, want 1", count)
	}

	recs, err := r.Recent(ctx, "acme", 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Recent() = %d records, want 1", len(recs))
	}
	got := recs[0]
	if got.CostUSD != 0.0123 {
		t.Errorf("CostUSD = %v, want the original 0.0123", got.CostUSD)
	}
	if len(got.Formats) != 2 || got.Formats[0] != "slide" || got.Formats[1] != "svg" {
		t.Errorf("Formats = %v, want [slide svg]", got.Formats)
	}
	if !got.CreatedAt.Equal(rec.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, rec.CreatedAt)
	}
}

func TestRecordsMonthlyCountWindow(t *testing.T) {
	ctx := context.Background()
	r := testRecords(t)

	for i, created := range []time.Time{
		time.Date(2026, 7, 31, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 8, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	} {
		rec := Record{ID: string(rune('a' + i)), Caller: "acme", CreatedAt: created, Status: StatusCompleted}
		if err := r.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}
	if err := r.Append(ctx, Record{ID: "other", Caller: "umbrella", CreatedAt: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), Status: StatusFailed}); err != nil {
		t.Fatalf("Append(other) error = %v", err)
	}
	// Failures are on the record but do not consume quota.
	if err := r.Append(ctx, Record{ID: "boom", Caller: "acme", CreatedAt: time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), Status: StatusFailed, FailKind: "timeout"}); err != nil {
		t.Fatalf("Append(boom) error = %v", err)
	}

	count, err := r.MonthlyCount(ctx, "acme", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MonthlyCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("MonthlyCount(acme, Aug) = %d, want 2", count)
	}
}

func TestRecordsRecent(t *testing.T) {
	ctx := context.Background()
	r := testRecords(t)

	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := Record{
			ID:        []string{"g1", "g2", "g3", "g4", "g5"}[i],
			Caller:    "acme",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Status:    StatusCompleted,
		}
		if err := r.Append(ctx, rec); err != nil {
			t.Fatalf("Append(%d) error = %v", i, err)
		}
	}

	recs, err := r.Recent(ctx, "acme", 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("Recent() = %d records, want 2", len(recs))
	}
	if recs[0].ID != "g5" || recs[1].ID != "g4" {
		t.Errorf("Recent() order = %s, %s; want g5, g4", recs[0].ID, recs[1].ID)
	}

	all, err := r.Recent(ctx, "", 100)
	if err != nil {
		t.Fatalf("Recent(all) error = %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Recent(all) = %d records, want 5", len(all))
	}

	failed := Record{ID: "g6", Caller: "acme", CreatedAt: base.Add(6 * time.Hour),
		Status: StatusFailed, FailKind: "brief-rejected", FailMsg: "no entities"}
	if err := r.Append(ctx, failed); err != nil {
		t.Fatalf("Append(failed) error = %v", err)
	}
	recs, _ = r.Recent(ctx, "acme", 1)
	if recs[0].Status != StatusFailed || recs[0].FailKind != "brief-rejected" {
		t.Errorf("failed record = %+v, want status/fail_kind persisted", recs[0])
	}
}
