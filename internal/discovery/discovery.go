package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sethgrid/petkeeper/internal/pet"
)

const (
	SavesDirName     = "saves"
	SettingsFileName = "settings.txt"
)

// FindSavesDir walks up from startDir looking for an existing saves
// directory. If none is found it returns startDir/saves and false.
func FindSavesDir(startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	start := dir

	for {
		candidate := filepath.Join(dir, SavesDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return filepath.Join(start, SavesDirName), false, nil
}

// SlotPath is the save file for a species, e.g. saves/dog_save.txt.
func SlotPath(savesDir string, s pet.Species) string {
	return filepath.Join(savesDir, strings.ToLower(s.String())+"_save.txt")
}

func SettingsPath(savesDir string) string {
	return filepath.Join(savesDir, SettingsFileName)
}

// Slot describes one species' save slot.
type Slot struct {
	Species pet.Species
	Path    string
	Exists  bool
}

// Slots reports every species slot in savesDir and whether it holds a save.
func Slots(savesDir string) ([]Slot, error) {
	slots := make([]Slot, 0, len(pet.AllSpecies))
	for _, s := range pet.AllSpecies {
		path := SlotPath(savesDir, s)
		_, err := os.Stat(path)
		switch {
		case err == nil:
			slots = append(slots, Slot{Species: s, Path: path, Exists: true})
		case os.IsNotExist(err):
			slots = append(slots, Slot{Species: s, Path: path})
		default:
			return nil, fmt.Errorf("failed to check save slot %s: %w", path, err)
		}
	}
	return slots, nil
}
