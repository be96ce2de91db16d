package seen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jimezsa/jobscan/internal/models"
)

func TestReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "seen.json")
	scanned := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	history := []models.JobTitle{{WebsiteID: "a", WebsiteName: "Acme", Title: "Eng I", ScannedAt: scanned}}
	if err := Write(path, history); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Eng I" || !got[0].ScannedAt.Equal(scanned) {
		t.Fatalf("Read() = %+v", got)
	}
}

func TestReadMissingIsEmpty(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Read() = %+v, want empty", got)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Fatal("Read() error = nil, want parse error")
	}
}

func TestPathRequired(t *testing.T) {
	if _, err := Read(" "); !errors.Is(err, ErrPathRequired) {
		t.Fatalf("Read() error = %v, want ErrPathRequired", err)
	}
	if err := Write("", nil); !errors.Is(err, ErrPathRequired) {
		t.Fatalf("Write() error = %v, want ErrPathRequired", err)
	}
}
