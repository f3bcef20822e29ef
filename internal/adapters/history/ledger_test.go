package history

import (
	"testing"
	"time"

	"breakdown/internal/ports"
)

func TestLedgerRecordAndList(t *testing.T) {
	ledger, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ledger.Close()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first := &ports.RunRecord{
		Article:    "Clippings/alpha.md",
		Folder:     "alpha-Breakdown",
		Files:      5,
		Status:     "completed",
		StartedAt:  base,
		FinishedAt: base.Add(30 * time.Second),
	}
	if err := ledger.Record(first); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected Record to assign an ID")
	}

	second := &ports.RunRecord{
		Article:    "Clippings/beta.md",
		Folder:     "beta-Breakdown",
		Files:      0,
		Status:     "failed",
		Error:      "step 2: tool write_file failed",
		StartedAt:  base.Add(time.Minute),
		FinishedAt: base.Add(time.Minute + 5*time.Second),
	}
	if err := ledger.Record(second); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	records, err := ledger.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	// Newest first
	if records[0].Article != "Clippings/beta.md" {
		t.Errorf("expected beta first, got %s", records[0].Article)
	}
	if records[0].Status != "failed" || records[0].Error == "" {
		t.Errorf("expected failed record with error, got %+v", records[0])
	}
	if records[1].Folder != "alpha-Breakdown" {
		t.Errorf("expected alpha folder, got %s", records[1].Folder)
	}
	if !records[1].StartedAt.Equal(base) {
		t.Errorf("expected started %v, got %v", base, records[1].StartedAt)
	}
}

func TestLedgerListLimit(t *testing.T) {
	ledger, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ledger.Close()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := &ports.RunRecord{
			Article:    "a.md",
			Folder:     "a-Breakdown",
			Status:     "completed",
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			FinishedAt: base.Add(time.Duration(i)*time.Minute + time.Second),
		}
		if err := ledger.Record(rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	records, err := ledger.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(records))
	}
}

func TestLedgerReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()

	ledger, err := Open(dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	rec := &ports.RunRecord{
		Article:    "a.md",
		Folder:     "a-Breakdown",
		Status:     "completed",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
	}
	if err := ledger.Record(rec); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	ledger.Close()

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	records, err := reopened.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after reopen, got %d", len(records))
	}
}
