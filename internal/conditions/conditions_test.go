package conditions

import (
	"reflect"
	"testing"
	"time"

	"github.com/sethgrid/petkeeper/internal/pet"
)

func TestFormatConditions(t *testing.T) {
	tests := []struct {
		name     string
		conds    []Condition
		expected string
	}{
		{
			name:     "empty conditions returns happy",
			conds:    []Condition{},
			expected: "happy",
		},
		{
			name:     "nil slice",
			conds:    nil,
			expected: "happy",
		},
		{
			name:     "single condition",
			conds:    []Condition{CondHungry},
			expected: "hungry",
		},
		{
			name:     "two conditions",
			conds:    []Condition{CondHungry, CondTired},
			expected: "hungry, tired",
		},
		{
			name:     "three conditions",
			conds:    []Condition{CondWeak, CondHungry, CondSad},
			expected: "weak, hungry, sad",
		},
		{
			name:     "dead alone",
			conds:    []Condition{CondDead},
			expected: "dead",
		},
		{
			name:     "dead with other conditions ignores others",
			conds:    []Condition{CondDead, CondWeak, CondHungry},
			expected: "dead",
		},
		{
			name:     "dead appears after other conditions",
			conds:    []Condition{CondSad, CondDead},
			expected: "dead",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatConditions(tt.conds)
			if result != tt.expected {
				t.Errorf("FormatConditions(%v) = %q, want %q", tt.conds, result, tt.expected)
			}
		})
	}
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*pet.Pet)
		primary Condition
		all     []Condition
	}{
		{
			name:    "fresh pet is happy",
			setup:   func(*pet.Pet) {},
			primary: CondHappy,
			all:     []Condition{CondHappy},
		},
		{
			name: "low stats in priority order",
			setup: func(p *pet.Pet) {
				p.Stats.SetHappiness(10)
				p.Stats.SetEnergy(5)
				p.Stats.SetHealth(20)
			},
			primary: CondWeak,
			all:     []Condition{CondWeak, CondTired, CondSad},
		},
		{
			name:    "sleeping",
			setup:   func(p *pet.Pet) { p.OverrideState(pet.StateSleep) },
			primary: CondAsleep,
			all:     []Condition{CondAsleep},
		},
		{
			name: "dead comes first",
			setup: func(p *pet.Pet) {
				p.Stats.SetHealth(0)
				p.Update()
			},
			primary: CondDead,
			all:     []Condition{CondDead, CondWeak},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pet.New("Rex", pet.Dog, time.Now())
			tt.setup(p)
			got := DeriveStatus(p)
			if got.Primary != tt.primary {
				t.Errorf("Primary = %s, want %s", got.Primary, tt.primary)
			}
			if !reflect.DeepEqual(got.AllOrdered, tt.all) {
				t.Errorf("AllOrdered = %v, want %v", got.AllOrdered, tt.all)
			}
		})
	}
}

func TestWatcherLatches(t *testing.T) {
	var w Watcher
	s := pet.NewStats()

	if got := w.Check(&s); len(got) != 0 {
		t.Fatalf("healthy stats raised %v", got)
	}

	s.SetFullness(20)
	got := w.Check(&s)
	if len(got) != 1 || got[0].Condition != CondHungry {
		t.Fatalf("first low check = %v, want one hungry warning", got)
	}
	if got := w.Check(&s); len(got) != 0 {
		t.Errorf("warning repeated while still low: %v", got)
	}

	s.SetFullness(25)
	w.Check(&s)
	s.SetFullness(24)
	if got := w.Check(&s); len(got) != 1 {
		t.Errorf("warning not re-raised after recovery: %v", got)
	}

	w.Reset()
	if got := w.Check(&s); len(got) != 1 {
		t.Errorf("warning not raised after Reset: %v", got)
	}
}
