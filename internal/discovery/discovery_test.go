package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sethgrid/petkeeper/internal/pet"
)

func TestFindSavesDirWalksUp(t *testing.T) {
	root := t.TempDir()
	saves := filepath.Join(root, SavesDirName)
	nested := filepath.Join(root, "a", "b")
	for _, d := range []string{saves, nested} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	got, found, err := FindSavesDir(nested)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("saves directory not found")
	}
	if got != saves {
		t.Errorf("FindSavesDir = %q, want %q", got, saves)
	}
}

func TestFindSavesDirDefault(t *testing.T) {
	root := t.TempDir()
	got, found, err := FindSavesDir(root)
	if err != nil {
		t.Fatal(err)
	}
	// Some ancestor of the temp dir could have a saves dir; only check the
	// default when nothing was found.
	if !found && got != filepath.Join(root, SavesDirName) {
		t.Errorf("FindSavesDir = %q, want %q", got, filepath.Join(root, SavesDirName))
	}
}

func TestSlotPath(t *testing.T) {
	tests := []struct {
		species pet.Species
		want    string
	}{
		{pet.Dog, "dog_save.txt"},
		{pet.Cat, "cat_save.txt"},
		{pet.Bunny, "bunny_save.txt"},
	}
	for _, tt := range tests {
		if got := SlotPath("saves", tt.species); got != filepath.Join("saves", tt.want) {
			t.Errorf("SlotPath(%s) = %q, want %q", tt.species, got, filepath.Join("saves", tt.want))
		}
	}
	if got := SettingsPath("saves"); got != filepath.Join("saves", "settings.txt") {
		t.Errorf("SettingsPath = %q", got)
	}
}

func TestSlots(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(SlotPath(dir, pet.Cat), []byte("name=Mochi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	slots, err := Slots(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	for _, s := range slots {
		want := s.Species == pet.Cat
		if s.Exists != want {
			t.Errorf("%s slot exists = %v, want %v", s.Species, s.Exists, want)
		}
	}
}
