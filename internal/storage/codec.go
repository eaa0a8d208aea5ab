// Package storage reads and writes pet saves and player settings as
// key=value text files.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sethgrid/petkeeper/internal/pet"
)

var (
	ErrMalformedSaveData = errors.New("malformed save data")
	ErrMissingSaveFile   = errors.New("save file not found")
)

// DateLayout is how a pet's creation date is written.
const DateLayout = "2006-01-02"

const (
	keyName         = "name"
	keyType         = "type"
	keyMaxHealth    = "maxHealth"
	keyHealth       = "health"
	keyHappiness    = "happiness"
	keyFullness     = "fullness"
	keyEnergy       = "energy"
	keyCurrency     = "currency"
	keyScore        = "score"
	keyCreationDate = "creationDate"
	keyState        = "state"
)

// maxLineSize caps a single save file line.
const maxLineSize = 64 * 1024

// EncodePet writes p as key=value lines: metadata in a fixed order, then one
// line per inventory entry in inventory order. The cached state follows the
// creation date so a sleeping or hungry pet is still one after a reload.
func EncodePet(w io.Writer, p *pet.Pet) error {
	bw := bufio.NewWriter(w)
	s := &p.Stats

	fmt.Fprintf(bw, "%s=%s\n", keyName, p.Name)
	fmt.Fprintf(bw, "%s=%s\n", keyType, p.Species)
	fmt.Fprintf(bw, "%s=%d\n", keyMaxHealth, s.MaxHealth())
	fmt.Fprintf(bw, "%s=%d\n", keyHealth, s.Health())
	fmt.Fprintf(bw, "%s=%d\n", keyHappiness, s.Happiness())
	fmt.Fprintf(bw, "%s=%d\n", keyFullness, s.Fullness())
	fmt.Fprintf(bw, "%s=%d\n", keyEnergy, s.Energy())
	fmt.Fprintf(bw, "%s=%d\n", keyCurrency, s.Currency())
	fmt.Fprintf(bw, "%s=%d\n", keyScore, s.Score())
	fmt.Fprintf(bw, "%s=%s\n", keyCreationDate, p.CreatedOn.Format(DateLayout))
	fmt.Fprintf(bw, "%s=%s\n", keyState, p.State())
	for _, item := range p.Inventory.Items() {
		fmt.Fprintf(bw, "%s=%d\n", item.Name, item.Count)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write pet: %w", err)
	}
	return nil
}

// line is one parsed key=value pair and where it came from.
type line struct {
	num   int
	key   string
	value string
}

// readLines splits r into key=value pairs on the first '='. Blank lines are
// skipped; any other line without '=' is malformed.
func readLines(r io.Reader) ([]line, error) {
	var lines []line
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	num := 0
	for sc.Scan() {
		num++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing '='", ErrMalformedSaveData, num)
		}
		lines = append(lines, line{num: num, key: key, value: value})
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, fmt.Errorf("%w: line %d is longer than %d bytes", ErrMalformedSaveData, num+1, maxLineSize)
		}
		return nil, fmt.Errorf("failed to read save data: %w", err)
	}
	return lines, nil
}

func (l line) int() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(l.value))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %s is not an integer: %q", ErrMalformedSaveData, l.num, l.key, l.value)
	}
	return n, nil
}

// DecodePet reads a pet written by EncodePet. Any key that is not pet
// metadata is an inventory item. Saves without a state line re-derive the
// state from NORMAL. On error no pet is returned.
func DecodePet(r io.Reader) (*pet.Pet, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	var name, typ string
	var haveName, haveType bool
	var created time.Time
	var state pet.State
	var haveState bool
	nums := make(map[string]int)
	inv := pet.NewInventory()

	for _, l := range lines {
		switch l.key {
		case keyName:
			name, haveName = l.value, true
		case keyType:
			typ, haveType = l.value, true
		case keyMaxHealth, keyHealth, keyHappiness, keyFullness, keyEnergy, keyCurrency, keyScore:
			n, err := l.int()
			if err != nil {
				return nil, err
			}
			nums[l.key] = n
		case keyCreationDate:
			d, err := time.Parse(DateLayout, strings.TrimSpace(l.value))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad creation date %q", ErrMalformedSaveData, l.num, l.value)
			}
			created = d
		case keyState:
			st, err := pet.ParseState(strings.TrimSpace(l.value))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedSaveData, l.num, err)
			}
			state, haveState = st, true
		default:
			n, err := l.int()
			if err != nil {
				return nil, err
			}
			inv.Add(l.key, n)
		}
	}

	if !haveName {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedSaveData, keyName)
	}
	if !haveType {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedSaveData, keyType)
	}
	species, err := pet.ParseSpecies(typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSaveData, err)
	}

	stats := pet.NewStats()
	// maxHealth first so health is clamped against the saved maximum
	if v, ok := nums[keyMaxHealth]; ok {
		stats.SetMaxHealth(v)
	}
	setters := []struct {
		key string
		set func(int)
	}{
		{keyHealth, stats.SetHealth},
		{keyHappiness, stats.SetHappiness},
		{keyFullness, stats.SetFullness},
		{keyEnergy, stats.SetEnergy},
		{keyCurrency, stats.SetCurrency},
		{keyScore, stats.SetScore},
	}
	for _, s := range setters {
		if v, ok := nums[s.key]; ok {
			s.set(v)
		}
	}

	p := pet.Restore(name, species, created, stats, inv)
	if haveState {
		p.OverrideState(state)
	}
	return p, nil
}
