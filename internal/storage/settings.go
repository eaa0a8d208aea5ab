package storage

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sethgrid/petkeeper/internal/player"
)

// nullPassword is written in place of an unset parental password.
const nullPassword = "null"

const (
	keyPassword     = "parentalPassword"
	keyDailyLimit   = "dailyTimeLimit"
	keyAllowedStart = "allowedStartTime"
	keyAllowedEnd   = "allowedEndTime"
	keyTotalPlay    = "totalPlayTime"
	keySessions     = "numberOfSessions"
	keyPlayedToday  = "playedToday"
	keyLastPlayDate = "lastPlayDate"
	keyRestrictions = "timeRestrictionsEnabled"
	keyFullscreen   = "fullscreen"
	// older settings files spell it this way
	keyFullscreenAlt = "fullScreen"
)

// EncodeSettings writes the player's settings. totalPlayTime is written as
// given; callers fold in the current session before saving on exit.
func EncodeSettings(w io.Writer, p *player.Player) error {
	bw := bufio.NewWriter(w)

	password := p.ParentalPassword
	if password == "" {
		password = nullPassword
	}
	fmt.Fprintf(bw, "%s=%s\n", keyPassword, password)
	fmt.Fprintf(bw, "%s=%d\n", keyDailyLimit, p.DailyTimeLimit)
	fmt.Fprintf(bw, "%s=%s\n", keyAllowedStart, p.AllowedStart)
	fmt.Fprintf(bw, "%s=%s\n", keyAllowedEnd, p.AllowedEnd)
	fmt.Fprintf(bw, "%s=%d\n", keyTotalPlay, p.TotalPlayTime)
	fmt.Fprintf(bw, "%s=%d\n", keySessions, p.Sessions)
	fmt.Fprintf(bw, "%s=%d\n", keyPlayedToday, p.PlayedToday)
	fmt.Fprintf(bw, "%s=%s\n", keyLastPlayDate, p.LastPlayDate)
	fmt.Fprintf(bw, "%s=%t\n", keyRestrictions, p.RestrictionsEnabled)
	fmt.Fprintf(bw, "%s=%t\n", keyFullscreen, p.Fullscreen)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// DecodeSettings reads settings written by EncodeSettings. Missing keys keep
// their defaults and unknown keys are ignored.
func DecodeSettings(r io.Reader) (*player.Player, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	p := player.New()
	for _, l := range lines {
		switch l.key {
		case keyPassword:
			if l.value == nullPassword {
				p.ParentalPassword = ""
			} else {
				p.ParentalPassword = l.value
			}
		case keyDailyLimit:
			if p.DailyTimeLimit, err = l.int(); err != nil {
				return nil, err
			}
		case keyTotalPlay:
			if p.TotalPlayTime, err = l.int(); err != nil {
				return nil, err
			}
		case keySessions:
			if p.Sessions, err = l.int(); err != nil {
				return nil, err
			}
		case keyPlayedToday:
			if p.PlayedToday, err = l.int(); err != nil {
				return nil, err
			}
		case keyLastPlayDate:
			day := strings.TrimSpace(l.value)
			if day != "" {
				if _, err := time.Parse(player.DayLayout, day); err != nil {
					return nil, fmt.Errorf("%w: line %d: bad play date %q", ErrMalformedSaveData, l.num, l.value)
				}
			}
			p.LastPlayDate = day
		case keyAllowedStart:
			if p.AllowedStart, err = l.timeOfDay(); err != nil {
				return nil, err
			}
		case keyAllowedEnd:
			if p.AllowedEnd, err = l.timeOfDay(); err != nil {
				return nil, err
			}
		case keyRestrictions:
			if p.RestrictionsEnabled, err = l.bool(); err != nil {
				return nil, err
			}
		case keyFullscreen, keyFullscreenAlt:
			if p.Fullscreen, err = l.bool(); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

func (l line) bool() (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(l.value))
	if err != nil {
		return false, fmt.Errorf("%w: line %d: %s is not a boolean: %q", ErrMalformedSaveData, l.num, l.key, l.value)
	}
	return b, nil
}

func (l line) timeOfDay() (player.TimeOfDay, error) {
	t, err := player.ParseTimeOfDay(strings.TrimSpace(l.value))
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %w", ErrMalformedSaveData, l.num, err)
	}
	return t, nil
}
