package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethgrid/petkeeper/internal/journal"
	"github.com/sethgrid/petkeeper/internal/pet"
	"github.com/sethgrid/petkeeper/internal/player"
	"github.com/sethgrid/petkeeper/internal/storage"
)

type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// 10:00 on a weekday, inside the default play window.
var morning = time.Date(2026, 4, 7, 10, 0, 0, 0, time.UTC)

func openSession(t *testing.T, dir string, clock Clock, counted bool) *Session {
	t.Helper()
	s, err := Open(context.Background(), Options{
		SavesDir:     dir,
		Clock:        clock,
		Rand:         zeroRand{},
		Logger:       quietLog,
		CountSession: counted,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpenWithoutSettingsUsesDefaults(t *testing.T) {
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()

	p := s.Player()
	if p.Sessions != 0 || p.AllowedStart != player.DefaultAllowedStart {
		t.Errorf("player = %+v, want defaults", p)
	}
}

func TestSessionPlayTimeAccounting(t *testing.T) {
	dir := t.TempDir()
	clock := NewFakeClock(morning)

	s := openSession(t, dir, clock, true)
	clock.Advance(17*time.Minute + 40*time.Second)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	p, err := storage.LoadSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.Sessions != 1 || p.TotalPlayTime != 17 {
		t.Errorf("after one session: sessions=%d total=%d, want 1 and 17", p.Sessions, p.TotalPlayTime)
	}

	// A second, sub-minute session counts but adds no time.
	s = openSession(t, dir, clock, true)
	clock.Advance(30 * time.Second)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	p, err = storage.LoadSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.Sessions != 2 || p.TotalPlayTime != 17 {
		t.Errorf("after two sessions: sessions=%d total=%d, want 2 and 17", p.Sessions, p.TotalPlayTime)
	}
}

func TestSaveSettingsExitDoesNotDoubleCount(t *testing.T) {
	dir := t.TempDir()
	clock := NewFakeClock(morning)
	s := openSession(t, dir, clock, true)
	clock.Advance(5 * time.Minute)

	if err := s.SaveSettings(true); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	p, err := storage.LoadSettings(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.TotalPlayTime != 5 {
		t.Errorf("total = %d, want 5", p.TotalPlayTime)
	}
}

func TestUncountedSessionLeavesSettingsAlone(t *testing.T) {
	dir := t.TempDir()
	s := openSession(t, dir, NewFakeClock(morning), false)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.LoadSettings(dir); !errors.Is(err, storage.ErrMissingSaveFile) {
		t.Errorf("settings written by an uncounted session: err = %v", err)
	}
}

func TestNewPetSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := openSession(t, dir, NewFakeClock(morning), false)
	defer s.Close()

	if _, err := s.NewPet(ctx, "", pet.Dog); !errors.Is(err, pet.ErrInvalidName) {
		t.Errorf("empty name: err = %v", err)
	}
	if _, err := s.NewPet(ctx, "Biscuit", pet.Dog); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Play(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePet(ctx); err != nil {
		t.Fatal(err)
	}

	other := openSession(t, dir, NewFakeClock(morning), false)
	defer other.Close()
	p, err := other.LoadPet(pet.Dog)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Biscuit" || p.Stats.Energy() != 90 || p.Stats.Currency() != 105 {
		t.Errorf("loaded %q energy=%d currency=%d", p.Name, p.Stats.Energy(), p.Stats.Currency())
	}

	if _, err := other.LoadPet(pet.Cat); !errors.Is(err, storage.ErrMissingSaveFile) {
		t.Errorf("missing slot: err = %v", err)
	}
}

func TestActionsWithoutPet(t *testing.T) {
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()
	if _, err := s.Feed(context.Background(), pet.Kibble); !errors.Is(err, ErrNoPet) {
		t.Errorf("err = %v, want ErrNoPet", err)
	}
	if _, err := s.Tick(context.Background()); !errors.Is(err, ErrNoPet) {
		t.Errorf("tick err = %v, want ErrNoPet", err)
	}
}

func TestPlayTimeGate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	clock := NewFakeClock(morning)
	s := openSession(t, dir, clock, false)
	defer s.Close()
	if _, err := s.NewPet(ctx, "Mochi", pet.Cat); err != nil {
		t.Fatal(err)
	}

	err := s.UpdatePlayer(func(p *player.Player) error {
		p.RestrictionsEnabled = true
		return p.SetDailyLimit(30)
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Play(ctx); err != nil {
		t.Fatalf("inside limit: %v", err)
	}

	clock.Advance(31 * time.Minute)
	if _, err := s.Play(ctx); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("over limit: err = %v, want ErrNotAllowed", err)
	}

	err = s.UpdatePlayer(func(p *player.Player) error {
		p.RestrictionsEnabled = false
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Play(ctx); err != nil {
		t.Errorf("restrictions off: %v", err)
	}
}

func TestUpdatePlayerErrorKeepsSettings(t *testing.T) {
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()

	err := s.UpdatePlayer(func(p *player.Player) error {
		p.DailyTimeLimit = 45
		return p.SetWindow(600, 500)
	})
	if err == nil {
		t.Fatal("invalid window accepted")
	}
	if s.Player().DailyTimeLimit != 0 {
		t.Errorf("failed update leaked limit %d", s.Player().DailyTimeLimit)
	}
}

func TestActionWarnings(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()
	if _, err := s.NewPet(ctx, "Rex", pet.Dog); err != nil {
		t.Fatal(err)
	}
	if err := s.View(func(p *pet.Pet) { p.Stats.SetEnergy(30) }); err != nil {
		t.Fatal(err)
	}

	out, err := s.Play(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one tired warning", out.Warnings)
	}

	out, err = s.Feed(ctx, pet.Kibble)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Warnings) != 0 {
		t.Errorf("warning repeated: %v", out.Warnings)
	}
}

func TestBuyThroughSession(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()
	if _, err := s.NewPet(ctx, "Clover", pet.Bunny); err != nil {
		t.Fatal(err)
	}

	out, err := s.Buy(ctx, pet.Carrots)
	if err != nil {
		t.Fatal(err)
	}
	if out.Result.Spent != 12 {
		t.Errorf("spent %d, want 12", out.Result.Spent)
	}
	if _, err := s.Feed(ctx, pet.Carrots); err != nil {
		t.Errorf("feeding bought carrots: %v", err)
	}
}

func TestJournalRecordsActionsAndTicks(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	j, err := journal.Open(ctx, filepath.Join(dir, "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	clock := NewFakeClock(morning)
	s, err := Open(ctx, Options{SavesDir: dir, Journal: j, Clock: clock, Rand: zeroRand{}, Logger: quietLog})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.NewPet(ctx, "Rex", pet.Dog); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	if _, err := s.Exercise(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(time.Second)
	if _, err := s.Tick(ctx); err != nil {
		t.Fatal(err)
	}

	entries, err := s.History(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Kind != journal.KindTick || entries[1].Name != pet.ActionExercise || entries[2].Name != "adopt" {
		t.Errorf("entries = %s/%s, %s/%s, %s/%s",
			entries[0].Kind, entries[0].Name, entries[1].Kind, entries[1].Name, entries[2].Kind, entries[2].Name)
	}
	for _, e := range entries {
		if e.SessionID != s.ID() || e.PetName != "Rex" || e.Species != "DOG" {
			t.Errorf("entry %+v not tied to this session's pet", e)
		}
	}
}

func TestReviveAfterDeath(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()
	if _, err := s.NewPet(ctx, "Rex", pet.Dog); err != nil {
		t.Fatal(err)
	}
	s.View(func(p *pet.Pet) { p.Stats.SetHealth(0) })

	out, err := s.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if out.State != pet.StateDead || out.Alive {
		t.Fatalf("tick outcome = %+v, want DEAD", out)
	}

	if _, err := s.Revive(ctx); err != nil {
		t.Fatal(err)
	}
	out, err = s.Tick(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Alive || out.State != pet.StateNormal {
		t.Errorf("after revive: %+v", out)
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, t.TempDir(), NewFakeClock(morning), false)
	defer s.Close()
	if _, err := s.NewPet(ctx, "Rex", pet.Dog); err != nil {
		t.Fatal(err)
	}
	if err := s.Rename(ctx, "line\nbreak"); !errors.Is(err, pet.ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
	if err := s.Rename(ctx, "Sir Rex"); err != nil {
		t.Fatal(err)
	}
	var name string
	s.View(func(p *pet.Pet) { name = p.Name })
	if name != "Sir Rex" {
		t.Errorf("name = %q", name)
	}
}

func TestDailyLimitCarriesAcrossSessions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	clock := NewFakeClock(morning)

	s := openSession(t, dir, clock, true)
	if _, err := s.NewPet(ctx, "Rex", pet.Dog); err != nil {
		t.Fatal(err)
	}
	err := s.UpdatePlayer(func(p *player.Player) error {
		p.RestrictionsEnabled = true
		return p.SetDailyLimit(0)
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SavePet(ctx); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * time.Minute)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// A later one-shot session starts its own clock but not its own allowance.
	s = openSession(t, dir, clock, false)
	defer s.Close()
	if _, err := s.LoadPet(pet.Dog); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Play(ctx); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("err = %v, want ErrNotAllowed after the limit was used", err)
	}
}
