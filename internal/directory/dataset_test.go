package directory_test

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/spartan-directory/internal/directory"
	"github.com/msomdec/spartan-directory/internal/domain"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerate_Count(t *testing.T) {
	dataset := directory.Generate(newTestRNG(1), directory.DatasetSize)
	if len(dataset) != directory.DatasetSize {
		t.Fatalf("expected %d records, got %d", directory.DatasetSize, len(dataset))
	}
}

func TestGenerate_RecordShape(t *testing.T) {
	dataset := directory.Generate(newTestRNG(1), 10)

	for i, s := range dataset {
		if s.ID == "" || s.Name == "" || s.Designation == "" || s.College == "" || s.DateJoined == "" {
			t.Fatalf("record %d has empty fields: %+v", i, s)
		}
		if s.ApprovedBy != "Sahil Mehra - Central Admin" {
			t.Fatalf("record %d: unexpected approver %q", i, s.ApprovedBy)
		}
		if s.Status != domain.StatusAvailable && s.Status != domain.StatusUnavailable {
			t.Fatalf("record %d: unknown status %q", i, s.Status)
		}
		if !strings.HasPrefix(s.AvatarURL, "https://ui-avatars.com/api/") {
			t.Fatalf("record %d: unexpected avatar URL %q", i, s.AvatarURL)
		}
	}
}

func TestGenerate_UniqueIDs(t *testing.T) {
	dataset := directory.Generate(newTestRNG(1), 30)

	seen := make(map[string]bool, len(dataset))
	for _, s := range dataset {
		if seen[s.ID] {
			t.Fatalf("duplicate id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := directory.Generate(newTestRNG(42), 30)
	b := directory.Generate(newTestRNG(42), 30)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spartans.json")
	dataset := directory.Generate(newTestRNG(7), 12)

	if err := directory.Save(path, dataset); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := directory.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(dataset) {
		t.Fatalf("expected %d records, got %d", len(dataset), len(loaded))
	}
	for i := range dataset {
		if loaded[i] != dataset[i] {
			t.Fatalf("record %d differs after roundtrip: %+v vs %+v", i, loaded[i], dataset[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := directory.Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_RejectsUnknownStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spartans.json")
	dataset := directory.Generate(newTestRNG(7), 1)
	dataset[0].Status = "on-leave"

	if err := directory.Save(path, dataset); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := directory.Load(path); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
