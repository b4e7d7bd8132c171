package tile

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/game/shade"
)

type (
	// Turf is an empty cell that is captured by players that enter it.
	// The owner can change a limited number of times.
	Turf struct {
		base
		recaptures   int
		captureCount int
		capturedBy   *player.Player
	}

	// PowerTurf is turf that is energized when it is captured and next to power.
	PowerTurf struct {
		Turf
	}
)

const (
	uncapturedTurfColor = "#FFFFFF"
	powerTurfTint       = "#ffff00"
)

// NewTurf creates turf that can be recaptured the specified number of times.
func NewTurf(recaptures, x, y int) *Turf {
	t := Turf{
		base:       newBase(KindTurf, x, y, uncapturedTurfColor),
		recaptures: recaptures,
	}
	return &t
}

// NewPowerTurf creates power-connecting turf that can be recaptured the specified number of times.
func NewPowerTurf(recaptures, x, y int) *PowerTurf {
	t := PowerTurf{
		Turf: Turf{
			base:       newBase(KindPowerTurf, x, y, uncapturedTurfColor),
			recaptures: recaptures,
		},
	}
	return &t
}

// CapturedBy is the player that owns the turf, if any.
func (t *Turf) CapturedBy() (*player.Player, bool) {
	return t.capturedBy, t.capturedBy != nil
}

// CaptureCount is the number of times the turf has been captured.
func (t *Turf) CaptureCount() int {
	return t.captureCount
}

// Collides captures the turf for the player if it is not owned or has not been captured too many times.
// Turf never blocks players.
func (t *Turf) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	if t.capturedBy == nil || t.captureCount <= t.recaptures {
		owner, ok := ps.Get(p.ID)
		if !ok {
			owner = &p
		}
		t.capturedBy = owner
		t.captureCount++
	}
	return false
}

// Render shows a lighter color of the owner.
func (t *Turf) Render(a Arena) Rendering {
	return Colored(t.ownerColor())
}

// ownerColor is the lightened color of the owner, or white if there is no owner.
func (t *Turf) ownerColor() string {
	if t.capturedBy == nil {
		return t.color
	}
	return shade.Lighten(t.capturedBy.Color)
}

// Describe implements the Tile interface.
func (t *Turf) Describe() string {
	if t.capturedBy == nil {
		return t.kind.String()
	}
	return fmt.Sprintf("Player %d's turf", t.capturedBy.Number())
}

// Energized determines if the turf is captured and next to a tile that supplies power.
// Power only travels one tile: turf next to other energized turf is not energized.
func (t *PowerTurf) Energized(a Arena) bool {
	return t.capturedBy != nil && neighborEnergized(t, a, nil)
}

// Render shows the owner color tinted yellow.
func (t *PowerTurf) Render(a Arena) Rendering {
	c := shade.Tint(t.ownerColor(), powerTurfTint, shade.DefaultTint)
	return Colored(c)
}

// Describe implements the Tile interface.
func (t *PowerTurf) Describe() string {
	if t.capturedBy == nil {
		return "Power-connecting turf"
	}
	return fmt.Sprintf("Player %d's power-connecting turf", t.capturedBy.Number())
}
