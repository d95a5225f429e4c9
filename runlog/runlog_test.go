package runlog

import (
	"context"
	"testing"
	"time"
)

func TestLogAndRecent(t *testing.T) {
	store := OpenMemory(t)
	ctx := context.Background()

	id, err := store.Log(ctx, Record{
		Source:    "paper.md",
		Sections:  []string{"Abstract", "Introduction", "Methods"},
		Missing:   []string{"Conclusion"},
		Escalated: true,
		Duration:  1500 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	records, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.Source != "paper.md" {
		t.Errorf("source = %q", rec.Source)
	}
	if len(rec.Sections) != 3 || rec.Sections[0] != "Abstract" {
		t.Errorf("sections = %v", rec.Sections)
	}
	if len(rec.Missing) != 1 || rec.Missing[0] != "Conclusion" {
		t.Errorf("missing = %v", rec.Missing)
	}
	if !rec.Escalated {
		t.Error("escalated lost")
	}
	if rec.Duration != 1500*time.Millisecond {
		t.Errorf("duration = %v", rec.Duration)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at lost")
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	store := OpenMemory(t)
	ctx := context.Background()

	for _, src := range []string{"first.md", "second.md", "third.md"} {
		if _, err := store.Log(ctx, Record{Source: src}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Source != "third.md" || records[1].Source != "second.md" {
		t.Errorf("order = %q, %q", records[0].Source, records[1].Source)
	}
}

func TestRecent_EmptyStore(t *testing.T) {
	store := OpenMemory(t)
	records, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestLog_EmptyLists(t *testing.T) {
	// WHAT: Records without sections round-trip as nil, not [""].
	store := OpenMemory(t)
	ctx := context.Background()

	if _, err := store.Log(ctx, Record{Source: "empty.md"}); err != nil {
		t.Fatal(err)
	}
	records, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Sections != nil {
		t.Errorf("sections = %v, want nil", records[0].Sections)
	}
	if records[0].Missing != nil {
		t.Errorf("missing = %v, want nil", records[0].Missing)
	}
}
