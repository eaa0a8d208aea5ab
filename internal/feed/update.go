package feed

import (
	"github.com/sethgrid/petkeeper/internal/conditions"
	"github.com/sethgrid/petkeeper/internal/pet"
)

// Update is the message sent to clients after every tick.
type Update struct {
	Tick     int64        `json:"tick"`
	Pet      pet.Snapshot `json:"pet"`
	Warnings []string     `json:"warnings,omitempty"`
}

func NewUpdate(tick int64, p *pet.Pet, warnings []conditions.Warning) Update {
	u := Update{Tick: tick, Pet: p.Snapshot()}
	for _, w := range warnings {
		u.Warnings = append(u.Warnings, w.Message)
	}
	return u
}
