// Package game ties a pet, the player's settings and the journal together
// into one session, and serializes every call into the engine.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sethgrid/petkeeper/internal/conditions"
	"github.com/sethgrid/petkeeper/internal/discovery"
	"github.com/sethgrid/petkeeper/internal/journal"
	"github.com/sethgrid/petkeeper/internal/pet"
	"github.com/sethgrid/petkeeper/internal/player"
	"github.com/sethgrid/petkeeper/internal/shop"
	"github.com/sethgrid/petkeeper/internal/storage"
)

var (
	ErrNotAllowed = errors.New("not allowed to play right now")
	ErrNoPet      = errors.New("no pet loaded")
	ErrClosed     = errors.New("session closed")
)

type Options struct {
	SavesDir string

	// Journal defaults to journal.Nop.
	Journal journal.Journal

	// Clock defaults to RealClock.
	Clock Clock

	// Rand is handed to every pet the session creates or loads. Nil lets
	// each pet seed its own.
	Rand pet.Rand

	Logger *slog.Logger
	Shop   *shop.Catalog

	// CountSession adds this session to the player's session count and, on
	// exit, its length to their total play time.
	CountSession bool
}

// Session is the explicit game context: one player, at most one pet.
// All methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id       uuid.UUID
	savesDir string
	clock    Clock
	rng      pet.Rand
	log      *slog.Logger
	journal  journal.Journal
	shop     *shop.Catalog
	counting bool

	player   *player.Player
	pet      *pet.Pet
	started  time.Time
	warnings conditions.Watcher
	closed   bool
	dirty    bool // settings changed since the last write
}

// Open loads the player's settings, or defaults when there are none, and
// starts a session.
func Open(ctx context.Context, opts Options) (*Session, error) {
	s := &Session{
		id:       uuid.New(),
		savesDir: opts.SavesDir,
		clock:    opts.Clock,
		rng:      opts.Rand,
		log:      opts.Logger,
		journal:  opts.Journal,
		shop:     opts.Shop,
		counting: opts.CountSession,
	}
	if s.clock == nil {
		s.clock = RealClock{}
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.journal == nil {
		s.journal = journal.Nop{}
	}
	if s.shop == nil {
		s.shop = shop.Default()
	}

	p, err := storage.LoadSettings(s.savesDir)
	switch {
	case errors.Is(err, storage.ErrMissingSaveFile):
		s.log.Debug("no settings file, using defaults", slog.String("dir", s.savesDir))
		p = player.New()
	case err != nil:
		return nil, err
	}
	s.player = p
	s.started = s.clock.Now()

	if s.counting {
		s.player.BeginSession()
		s.dirty = true
	}
	s.log.Debug("session opened",
		slog.String("session", s.id.String()),
		slog.Bool("counted", s.counting))
	return s, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) SavesDir() string { return s.savesDir }

func (s *Session) Started() time.Time { return s.started }

func (s *Session) Shop() *shop.Catalog { return s.shop }

// Player returns a copy of the current settings.
func (s *Session) Player() player.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.player
}

// UpdatePlayer applies fn to the settings and writes them out if fn
// succeeds.
func (s *Session) UpdatePlayer(fn func(p *player.Player) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	updated := *s.player
	if err := fn(&updated); err != nil {
		return err
	}
	*s.player = updated
	s.dirty = true
	return s.saveSettingsLocked(false)
}

// CheckAllowed returns ErrNotAllowed when restrictions are enabled and the
// player is outside their window or over the daily limit.
func (s *Session) CheckAllowed() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkAllowedLocked()
}

func (s *Session) checkAllowedLocked() error {
	if !s.player.RestrictionsEnabled {
		return nil
	}
	now := s.clock.Now()
	if !s.player.IsAllowedToPlay(s.started, now) {
		return fmt.Errorf("%w: allowed %s-%s, daily limit %d minutes",
			ErrNotAllowed, s.player.AllowedStart, s.player.AllowedEnd, s.player.DailyTimeLimit)
	}
	return nil
}

// NewPet creates a fresh pet of the given species and makes it current. It
// does not save; an existing save for the species is only replaced by
// SavePet.
func (s *Session) NewPet(ctx context.Context, name string, species pet.Species) (*pet.Pet, error) {
	if err := pet.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	p := pet.New(name, species, s.clock.Now())
	if s.rng != nil {
		p.SetRand(s.rng)
	}
	s.pet = p
	s.warnings.Reset()
	s.record(ctx, journal.KindAction, "adopt", nil)
	s.log.Info("adopted pet", slog.String("name", name), slog.String("species", species.String()))
	return p, nil
}

// LoadPet reads the save for species and makes it current.
func (s *Session) LoadPet(species pet.Species) (*pet.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	p, err := storage.LoadPet(s.savesDir, species)
	if err != nil {
		return nil, err
	}
	if s.rng != nil {
		p.SetRand(s.rng)
	}
	s.pet = p
	s.warnings.Reset()
	s.log.Debug("loaded pet", slog.String("name", p.Name), slog.String("species", species.String()))
	return p, nil
}

// HasPet reports whether a pet is loaded.
func (s *Session) HasPet() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pet != nil
}

// View calls fn with the current pet while holding the session lock. fn
// must not keep the pointer.
func (s *Session) View(fn func(p *pet.Pet)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pet == nil {
		return ErrNoPet
	}
	fn(s.pet)
	return nil
}

func (s *Session) SavePet(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savePetLocked(ctx)
}

func (s *Session) savePetLocked(ctx context.Context) error {
	if s.pet == nil {
		return ErrNoPet
	}
	if err := storage.SavePet(s.savesDir, s.pet); err != nil {
		return err
	}
	s.record(ctx, journal.KindSave, "", nil)
	s.log.Debug("saved pet", slog.String("path", discovery.SlotPath(s.savesDir, s.pet.Species)))
	return nil
}

// SaveSettings writes the player's settings. With exit set, the time played
// in this session is included in the total written.
func (s *Session) SaveSettings(exit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSettingsLocked(exit)
}

func (s *Session) saveSettingsLocked(exit bool) error {
	out := *s.player
	if exit && s.counting {
		out.EndSession(s.started, s.clock.Now())
	}
	if err := storage.SaveSettings(s.savesDir, &out); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// ActionOutcome is what an action did, plus any warnings it raised.
type ActionOutcome struct {
	Result   pet.Result
	Warnings []conditions.Warning
}

// Do runs one action on the current pet after checking the play-time gate.
func (s *Session) Do(ctx context.Context, action func(p *pet.Pet) (pet.Result, error)) (ActionOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ActionOutcome{}, ErrClosed
	}
	if s.pet == nil {
		return ActionOutcome{}, ErrNoPet
	}
	if err := s.checkAllowedLocked(); err != nil {
		return ActionOutcome{}, err
	}

	r, err := action(s.pet)
	if err != nil {
		return ActionOutcome{}, err
	}
	s.record(ctx, journal.KindAction, r.Action, r)
	return ActionOutcome{Result: r, Warnings: s.warnings.Check(&s.pet.Stats)}, nil
}

func (s *Session) Feed(ctx context.Context, item string) (ActionOutcome, error) {
	return s.Do(ctx, func(p *pet.Pet) (pet.Result, error) { return p.Feed(item) })
}

func (s *Session) Play(ctx context.Context) (ActionOutcome, error) {
	return s.Do(ctx, (*pet.Pet).Play)
}

func (s *Session) Sleep(ctx context.Context) (ActionOutcome, error) {
	return s.Do(ctx, (*pet.Pet).Sleep)
}

func (s *Session) Exercise(ctx context.Context) (ActionOutcome, error) {
	return s.Do(ctx, (*pet.Pet).Exercise)
}

func (s *Session) VisitVet(ctx context.Context) (ActionOutcome, error) {
	return s.Do(ctx, (*pet.Pet).VisitVet)
}

func (s *Session) UseItem(ctx context.Context, item string) (ActionOutcome, error) {
	return s.Do(ctx, func(p *pet.Pet) (pet.Result, error) { return p.UseItem(item) })
}

func (s *Session) Buy(ctx context.Context, item string) (ActionOutcome, error) {
	return s.Do(ctx, func(p *pet.Pet) (pet.Result, error) { return s.shop.Buy(p, item) })
}

func (s *Session) Revive(ctx context.Context) (ActionOutcome, error) {
	return s.Do(ctx, func(p *pet.Pet) (pet.Result, error) {
		r := p.Revive()
		s.warnings.Reset()
		return r, nil
	})
}

// Rename changes the current pet's name.
func (s *Session) Rename(ctx context.Context, name string) error {
	if err := pet.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pet == nil {
		return ErrNoPet
	}
	old := s.pet.Name
	s.pet.Name = name
	s.record(ctx, journal.KindAction, "rename", map[string]string{"from": old, "to": name})
	return nil
}

// TickOutcome reports the pet's state after one tick.
type TickOutcome struct {
	State    pet.State
	Alive    bool
	Warnings []conditions.Warning
}

// Tick advances the current pet by one simulation step.
func (s *Session) Tick(ctx context.Context) (TickOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return TickOutcome{}, ErrClosed
	}
	if s.pet == nil {
		return TickOutcome{}, ErrNoPet
	}

	state := s.pet.Update()
	s.record(ctx, journal.KindTick, "", nil)
	return TickOutcome{
		State:    state,
		Alive:    s.pet.Alive(),
		Warnings: s.warnings.Check(&s.pet.Stats),
	}, nil
}

// History returns the most recent journal entries, newest first.
func (s *Session) History(ctx context.Context, limit int) ([]journal.Entry, error) {
	return s.journal.Recent(ctx, limit)
}

// Slots lists the save slots in the session's saves directory.
func (s *Session) Slots() ([]discovery.Slot, error) {
	return discovery.Slots(s.savesDir)
}

// Close writes settings if this session changed them or is counted, then
// closes the journal. It is safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.dirty || s.counting {
		if err := s.saveSettingsLocked(true); err != nil {
			errs = append(errs, fmt.Errorf("failed to save settings: %w", err))
		}
	}
	if err := s.journal.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close journal: %w", err))
	}
	s.log.Debug("session closed",
		slog.String("session", s.id.String()),
		slog.Int("minutes", player.MinutesBetween(s.started, s.clock.Now())))
	return errors.Join(errs...)
}

// record appends to the journal. Journal failures are logged and otherwise
// ignored. Callers hold s.mu.
func (s *Session) record(ctx context.Context, kind, name string, payload any) {
	if s.pet == nil {
		return
	}
	e := journal.Entry{
		SessionID: s.id,
		Time:      s.clock.Now(),
		Kind:      kind,
		Name:      name,
		Species:   s.pet.Species.String(),
		PetName:   s.pet.Name,
		State:     s.pet.State().String(),
	}
	if payload != nil {
		var err error
		if e, err = e.WithPayload(payload); err != nil {
			s.log.Warn("journal payload dropped", slog.String("kind", kind), slog.Any("error", err))
		}
	}
	if err := s.journal.Append(ctx, e); err != nil {
		s.log.Warn("journal append failed", slog.String("kind", kind), slog.Any("error", err))
	}
}
