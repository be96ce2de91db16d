package seen

import (
	"testing"

	"github.com/jimezsa/jobscan/internal/models"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Junior   Backend\tEngineer  ")
	want := "junior backend engineer"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestKey(t *testing.T) {
	got, ok := Key(models.JobTitle{WebsiteID: "site-1", Title: " Eng  II "})
	if !ok {
		t.Fatal("Key() ok = false, want true")
	}
	if want := "site-1::eng ii"; got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}

	if _, ok := Key(models.JobTitle{Title: "Eng II"}); ok {
		t.Fatal("Key() without website ok = true, want false")
	}
}

func TestDiff(t *testing.T) {
	fetched := []models.JobTitle{
		{WebsiteID: "a", Title: "Eng I"},
		{WebsiteID: "a", Title: "eng  i"},
		{WebsiteID: "b", Title: "Eng I"},
		{WebsiteID: "a", Title: "Eng II"},
		{WebsiteID: "a", Title: "   "},
	}
	history := []models.JobTitle{
		{WebsiteID: "a", Title: "Eng II"},
	}

	unseen, stats := Diff(fetched, history)

	if len(unseen) != 2 {
		t.Fatalf("Diff() unseen = %+v, want 2 entries", unseen)
	}
	if unseen[0].WebsiteID != "a" || unseen[1].WebsiteID != "b" {
		t.Fatalf("Diff() order = %+v", unseen)
	}
	if stats.Invalid != 1 || stats.Unseen != 2 || stats.Fetched != 5 || stats.History != 1 {
		t.Fatalf("Diff() stats = %+v", stats)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	history := []models.JobTitle{{WebsiteID: "a", Title: "Eng I"}}
	input := []models.JobTitle{
		{WebsiteID: "a", Title: "ENG I"},
		{WebsiteID: "a", Title: "Designer"},
		{WebsiteID: "", Title: "Orphan"},
	}

	merged, stats := Merge(history, input)
	if stats.Added != 1 || stats.Invalid != 1 || stats.Total != 2 {
		t.Fatalf("Merge() stats = %+v", stats)
	}

	again, stats := Merge(merged, input)
	if stats.Added != 0 || len(again) != len(merged) {
		t.Fatalf("second Merge() added %d, len %d -> %d", stats.Added, len(merged), len(again))
	}
}
