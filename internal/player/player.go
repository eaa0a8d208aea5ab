// Package player holds the settings and play-time bookkeeping that outlive a
// single pet: parental controls, the allowed play window and totals.
package player

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
)

var ErrWrongPassword = errors.New("wrong parental password")

// TimeOfDay is minutes since midnight.
type TimeOfDay int

const minutesPerDay = 24 * 60

// DayLayout is how the last play date is recorded.
const DayLayout = "2006-01-02"

var (
	DefaultAllowedStart = TimeOfDay(8 * 60)
	DefaultAllowedEnd   = TimeOfDay(20 * 60)
)

// ParseTimeOfDay reads an HH:mm clock time.
func ParseTimeOfDay(v string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", v, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// TimeOfDayOf returns the local clock time of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) String() string {
	m := ((int(t) % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Player is the per-install settings record.
type Player struct {
	// TotalPlayTime is in minutes, summed over every finished session.
	TotalPlayTime int
	Sessions      int

	// PlayedToday is the minutes of finished sessions on LastPlayDate
	// (DayLayout, empty before the first session). The daily limit counts
	// them.
	PlayedToday  int
	LastPlayDate string

	// ParentalPassword is empty when unset.
	ParentalPassword string
	// DailyTimeLimit is in minutes.
	DailyTimeLimit      int
	AllowedStart        TimeOfDay
	AllowedEnd          TimeOfDay
	RestrictionsEnabled bool
	Fullscreen          bool
}

// New returns a player with default settings.
func New() *Player {
	return &Player{
		AllowedStart: DefaultAllowedStart,
		AllowedEnd:   DefaultAllowedEnd,
	}
}

// IsAllowedToPlay reports whether now falls inside [AllowedStart, AllowedEnd)
// and the daily limit has not been used up by earlier sessions today plus the
// session that began at sessionStart. Both must hold.
func (p *Player) IsAllowedToPlay(sessionStart, now time.Time) bool {
	tod := TimeOfDayOf(now)
	inWindow := tod >= p.AllowedStart && tod < p.AllowedEnd
	used := p.MinutesPlayedOn(now) + MinutesBetween(sessionStart, now)
	withinLimit := p.DailyTimeLimit-used >= 0
	return inWindow && withinLimit
}

// MinutesPlayedOn returns the minutes of finished sessions recorded for the
// calendar day of t.
func (p *Player) MinutesPlayedOn(t time.Time) int {
	if p.LastPlayDate != t.Format(DayLayout) {
		return 0
	}
	return p.PlayedToday
}

// MinutesBetween counts whole minutes from start to end.
func MinutesBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

func (p *Player) HasPassword() bool { return p.ParentalPassword != "" }

// CheckPassword returns ErrWrongPassword unless attempt matches. With no
// password set every attempt passes.
func (p *Player) CheckPassword(attempt string) error {
	if !p.HasPassword() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(p.ParentalPassword), []byte(attempt)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func (p *Player) SetPassword(password string) { p.ParentalPassword = password }

func (p *Player) ClearPassword() { p.ParentalPassword = "" }

// SetWindow changes the allowed play window. start must come before end.
func (p *Player) SetWindow(start, end TimeOfDay) error {
	if start >= end {
		return fmt.Errorf("play window start %s must be before end %s", start, end)
	}
	p.AllowedStart, p.AllowedEnd = start, end
	return nil
}

func (p *Player) SetDailyLimit(minutes int) error {
	if minutes < 0 {
		return fmt.Errorf("daily limit must not be negative, got %d", minutes)
	}
	p.DailyTimeLimit = minutes
	return nil
}

// ResetStats zeroes the play time and session totals, including today's
// minutes.
func (p *Player) ResetStats() {
	p.TotalPlayTime = 0
	p.Sessions = 0
	p.PlayedToday = 0
}

func (p *Player) BeginSession() { p.Sessions++ }

// EndSession adds the whole minutes between start and end to the total and
// to the day end falls on. Sessions shorter than a minute add nothing.
func (p *Player) EndSession(start, end time.Time) {
	m := MinutesBetween(start, end)
	if m <= 0 {
		return
	}
	p.TotalPlayTime += m
	p.PlayedToday = p.MinutesPlayedOn(end) + m
	p.LastPlayDate = end.Format(DayLayout)
}

// AveragePlayTime is the mean session length in minutes.
func (p *Player) AveragePlayTime() int {
	if p.Sessions == 0 {
		return 0
	}
	return p.TotalPlayTime / p.Sessions
}
