package player

import (
	"errors"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 5, 2, hour, minute, 0, 0, time.UTC)
}

func TestDefaults(t *testing.T) {
	p := New()
	if p.TotalPlayTime != 0 || p.Sessions != 0 || p.DailyTimeLimit != 0 {
		t.Errorf("totals = %d/%d limit %d, want zeros", p.TotalPlayTime, p.Sessions, p.DailyTimeLimit)
	}
	if p.HasPassword() {
		t.Error("fresh player has a password")
	}
	if p.AllowedStart.String() != "08:00" || p.AllowedEnd.String() != "20:00" {
		t.Errorf("window = %s-%s, want 08:00-20:00", p.AllowedStart, p.AllowedEnd)
	}
	if p.RestrictionsEnabled || p.Fullscreen {
		t.Error("restrictions or fullscreen on by default")
	}
}

func TestIsAllowedToPlay(t *testing.T) {
	p := New()
	p.DailyTimeLimit = 60

	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		want  bool
	}{
		{"inside window", at(9, 0), at(9, 30), true},
		{"window start is inclusive", at(8, 0), at(8, 0), true},
		{"window end is exclusive", at(19, 30), at(20, 0), false},
		{"before window", at(7, 0), at(7, 10), false},
		{"limit exactly used", at(10, 0), at(11, 0), true},
		{"limit exceeded", at(10, 0), at(11, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsAllowedToPlay(tt.start, tt.now); got != tt.want {
				t.Errorf("IsAllowedToPlay(%s, %s) = %v, want %v",
					tt.start.Format("15:04"), tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestZeroLimitAllowsOnlyTheFirstMinute(t *testing.T) {
	p := New()
	start := at(12, 0)
	if !p.IsAllowedToPlay(start, start.Add(30*time.Second)) {
		t.Error("zero limit blocked play within the first minute")
	}
	if p.IsAllowedToPlay(start, start.Add(time.Minute)) {
		t.Error("zero limit allowed play after a minute")
	}
}

func TestPassword(t *testing.T) {
	p := New()
	if err := p.CheckPassword("anything"); err != nil {
		t.Errorf("no password set: %v", err)
	}

	p.SetPassword("secret")
	if err := p.CheckPassword("secret"); err != nil {
		t.Errorf("correct password: %v", err)
	}
	if err := p.CheckPassword("wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("wrong password: err = %v", err)
	}

	p.ClearPassword()
	if p.HasPassword() {
		t.Error("password still set after ClearPassword")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"08:00", 480, false},
		{"23:59", 1439, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"8am", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
			if !tt.wantErr && got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestSetWindowAndLimit(t *testing.T) {
	p := New()
	if err := p.SetWindow(600, 540); err == nil {
		t.Error("SetWindow accepted start after end")
	}
	if err := p.SetWindow(540, 600); err != nil || p.AllowedStart != 540 {
		t.Errorf("SetWindow(09:00, 10:00): %v, start %s", err, p.AllowedStart)
	}
	if err := p.SetDailyLimit(-1); err == nil {
		t.Error("SetDailyLimit accepted a negative limit")
	}
}

func TestSessionAccounting(t *testing.T) {
	p := New()
	p.BeginSession()
	p.EndSession(at(9, 0), at(9, 0).Add(59*time.Second))
	if p.TotalPlayTime != 0 {
		t.Errorf("sub-minute session added %d minutes", p.TotalPlayTime)
	}

	p.BeginSession()
	p.EndSession(at(9, 0), at(9, 45).Add(30*time.Second))
	if p.TotalPlayTime != 45 {
		t.Errorf("total = %d, want 45", p.TotalPlayTime)
	}
	if p.AveragePlayTime() != 22 {
		t.Errorf("average = %d, want 22", p.AveragePlayTime())
	}

	p.ResetStats()
	if p.TotalPlayTime != 0 || p.Sessions != 0 {
		t.Errorf("after reset: %d minutes, %d sessions", p.TotalPlayTime, p.Sessions)
	}
}

func TestEarlierSessionsCountTowardTheLimit(t *testing.T) {
	p := New()
	p.DailyTimeLimit = 30
	p.EndSession(at(9, 0), at(9, 25))
	if p.PlayedToday != 25 || p.LastPlayDate != "2026-05-02" {
		t.Fatalf("today = %d on %q, want 25 on 2026-05-02", p.PlayedToday, p.LastPlayDate)
	}

	if !p.IsAllowedToPlay(at(10, 0), at(10, 5)) {
		t.Error("blocked with 30 of 30 minutes used")
	}
	if p.IsAllowedToPlay(at(10, 0), at(10, 6)) {
		t.Error("allowed past the limit across two sessions")
	}

	p.EndSession(at(10, 0), at(10, 10))
	if p.PlayedToday != 35 {
		t.Errorf("today = %d, want 35", p.PlayedToday)
	}
	if p.IsAllowedToPlay(at(11, 0), at(11, 0)) {
		t.Error("a fresh session reset the daily allowance")
	}

	tomorrow := at(9, 0).AddDate(0, 0, 1)
	if p.MinutesPlayedOn(tomorrow) != 0 || !p.IsAllowedToPlay(tomorrow, tomorrow) {
		t.Error("yesterday's minutes counted against today")
	}
	p.EndSession(tomorrow, tomorrow.Add(3*time.Minute))
	if p.PlayedToday != 3 || p.TotalPlayTime != 38 {
		t.Errorf("new day: today=%d total=%d, want 3 and 38", p.PlayedToday, p.TotalPlayTime)
	}

	p.ResetStats()
	if p.PlayedToday != 0 {
		t.Errorf("reset left %d minutes for today", p.PlayedToday)
	}
}
