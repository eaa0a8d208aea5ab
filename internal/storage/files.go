package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sethgrid/petkeeper/internal/discovery"
	"github.com/sethgrid/petkeeper/internal/pet"
	"github.com/sethgrid/petkeeper/internal/player"
)

// SavePet writes p to its species slot in savesDir.
func SavePet(savesDir string, p *pet.Pet) error {
	var buf bytes.Buffer
	if err := EncodePet(&buf, p); err != nil {
		return err
	}
	return writeFile(discovery.SlotPath(savesDir, p.Species), buf.Bytes())
}

// LoadPet reads the save for species s. A missing slot returns
// ErrMissingSaveFile.
func LoadPet(savesDir string, s pet.Species) (*pet.Pet, error) {
	path := discovery.SlotPath(savesDir, s)
	p, err := readFile(path, DecodePet)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return p, nil
}

func SaveSettings(savesDir string, p *player.Player) error {
	var buf bytes.Buffer
	if err := EncodeSettings(&buf, p); err != nil {
		return err
	}
	return writeFile(discovery.SettingsPath(savesDir), buf.Bytes())
}

// LoadSettings reads the settings file. A missing file returns
// ErrMissingSaveFile; callers usually fall back to player.New.
func LoadSettings(savesDir string) (*player.Player, error) {
	path := discovery.SettingsPath(savesDir)
	p, err := readFile(path, DecodeSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return p, nil
}

func readFile[T any](path string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return zero, ErrMissingSaveFile
	}
	if err != nil {
		return zero, err
	}
	defer f.Close()
	return decode(f)
}

// writeFile replaces path with data. The data goes to a temp file in the same
// directory first, so a failed write leaves the old file in place.
func writeFile(path string, data []byte) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
