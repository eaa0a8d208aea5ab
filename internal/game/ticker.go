package game

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultTickInterval is the wall-clock time between ticks.
const DefaultTickInterval = 3 * time.Second

// TickEvent is handed to OnTick after every tick.
type TickEvent struct {
	Number  int64
	Outcome TickOutcome
}

// Ticker drives Session.Tick on a fixed interval.
type Ticker struct {
	session  *Session
	interval time.Duration
	log      *slog.Logger

	// OnTick, when set, is called after each tick from the Run goroutine.
	OnTick func(TickEvent)

	// SaveEvery saves the pet after this many ticks. Zero disables it.
	SaveEvery int64

	tickNumber int64
}

func NewTicker(s *Session, interval time.Duration, log *slog.Logger) *Ticker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &Ticker{session: s, interval: interval, log: log}
}

// Ticks is the number of ticks run so far.
func (t *Ticker) Ticks() int64 { return t.tickNumber }

// Run ticks until ctx is done, the pet dies or the play-time gate closes.
// It returns nil when ctx ends or the pet dies, and ErrNotAllowed when play
// time runs out.
func (t *Ticker) Run(ctx context.Context) error {
	t.log.Info("ticker started", slog.Duration("interval", t.interval))

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info("ticker stopped", slog.Int64("ticks", t.tickNumber))
			return nil
		case <-ticker.C:
			done, err := t.Step(ctx)
			if err != nil || done {
				return err
			}
		}
	}
}

// Step runs a single tick. It reports done when the pet has died.
func (t *Ticker) Step(ctx context.Context) (bool, error) {
	if err := t.session.CheckAllowed(); err != nil {
		t.log.Info("play time is over", slog.Any("reason", err))
		return true, err
	}

	out, err := t.session.Tick(ctx)
	if err != nil {
		return true, err
	}
	t.tickNumber++
	t.log.Debug("tick",
		slog.Int64("n", t.tickNumber),
		slog.String("state", out.State.String()))

	if t.OnTick != nil {
		t.OnTick(TickEvent{Number: t.tickNumber, Outcome: out})
	}

	if t.SaveEvery > 0 && t.tickNumber%t.SaveEvery == 0 {
		if err := t.session.SavePet(ctx); err != nil && !errors.Is(err, ErrNoPet) {
			t.log.Warn("autosave failed", slog.Any("error", err))
		}
	}

	if !out.Alive {
		t.log.Info("pet died, stopping ticker", slog.Int64("ticks", t.tickNumber))
		return true, nil
	}
	return false, nil
}
