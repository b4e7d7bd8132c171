package tile

import (
	"fmt"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
)

type (
	// Wall blocks all players.
	Wall struct {
		wall
	}

	// Occupied is a cell taken by a player.
	Occupied struct {
		wall
		owner *player.Player
	}

	// ColoredWall is a wall that can be painted.
	ColoredWall struct {
		wall
	}

	// PowerSource is a wall that always supplies power to its neighbors.
	PowerSource struct {
		wall
	}

	// PowerIndicator is a wall that is lit when a neighbor is energized.
	PowerIndicator struct {
		wall
	}

	// FlashingIndicator is a wall that turns on and off periodically.
	FlashingIndicator struct {
		wall
		periodMs int64
		timeFunc func() int64
	}

	// PowerCarrierWall is a wall used to lay out power in the arena.
	PowerCarrierWall struct {
		wall
	}

	// HomeSpace is a wall that only its owner can enter.
	HomeSpace struct {
		wall
		owner *player.Player
	}

	// LockedWall is a wall that players can pass through if they have enough keys.
	LockedWall struct {
		wall
		keysNeeded   int
		takeAwayKeys bool
	}

	// DirectionalWall is a one-way gate that only blocks players moving in the direction it faces.
	DirectionalWall struct {
		wall
		direction game.Direction
	}

	// ToggleableWall is a wall that players can open and close by facing it.
	ToggleableWall struct {
		wall
		closed bool
	}
)

const (
	powerSourceColor     = "red"
	lockedWallColor      = "slategray"
	directionalWallColor = "#FFEE00"
	toggleableWallColor  = "pink"
	// DefaultFlashPeriodMs is the time a flashing indicator stays on or off.
	DefaultFlashPeriodMs int64 = 1000
)

// NewWall creates a wall.
func NewWall(x, y int) *Wall {
	t := Wall{
		wall: newWall(KindWall, x, y, wallColor),
	}
	return &t
}

// NewOccupied creates a tile owned by the player.
func NewOccupied(p *player.Player, x, y int) *Occupied {
	t := Occupied{
		wall:  newWall(KindOccupied, x, y, wallColor),
		owner: p,
	}
	return &t
}

// Owner is the player that occupies the tile.
func (t *Occupied) Owner() *player.Player {
	return t.owner
}

// Render shows the color of the owner.
func (t *Occupied) Render(a Arena) Rendering {
	if t.owner == nil {
		return t.wall.Render(a)
	}
	return Colored(t.owner.Color)
}

// PreviewRender hides the owner.
func (*Occupied) PreviewRender(a Arena) Rendering {
	return Colored(BlockedColor)
}

// Describe implements the Tile interface.
func (t *Occupied) Describe() string {
	if t.owner == nil {
		return t.kind.String()
	}
	return fmt.Sprintf("Player %d's tile", t.owner.Number())
}

// NewColoredWall creates a wall with the color.
func NewColoredWall(color string, x, y int) *ColoredWall {
	t := ColoredWall{
		wall: newWall(KindColoredWall, x, y, color),
	}
	return &t
}

// Color is the color of the wall.
func (t *ColoredWall) Color() string {
	return t.color
}

// ChangeColor paints the wall.
func (t *ColoredWall) ChangeColor(color string) {
	t.color = color
}

// Describe implements the Tile interface.
func (t *ColoredWall) Describe() string {
	return "Wall colored " + t.color
}

// NewPowerSource creates a power source.
func NewPowerSource(x, y int) *PowerSource {
	t := PowerSource{
		wall: newWall(KindPowerSource, x, y, powerSourceColor),
	}
	return &t
}

// Energized implements the Tile interface.  Power sources are always energized.
func (*PowerSource) Energized(a Arena) bool {
	return true
}

// NewPowerIndicator creates an indicator of neighboring power.
func NewPowerIndicator(x, y int) *PowerIndicator {
	t := PowerIndicator{
		wall: newWall(KindPowerIndicator, x, y, wallColor),
	}
	return &t
}

// Render shows if the indicator is next to an energized tile.
func (t *PowerIndicator) Render(a Arena) Rendering {
	return indicatorRendering(NeighborEnergized(t, a))
}

// NewFlashingIndicator creates an indicator that changes every period.
// The timeFunc should return the current time in milliseconds.
// A non-positive period uses DefaultFlashPeriodMs.
func NewFlashingIndicator(x, y int, periodMs int64, timeFunc func() int64) *FlashingIndicator {
	if periodMs <= 0 {
		periodMs = DefaultFlashPeriodMs
	}
	t := FlashingIndicator{
		wall:     newWall(KindFlashingIndicator, x, y, wallColor),
		periodMs: periodMs,
		timeFunc: timeFunc,
	}
	return &t
}

// On determines if the indicator is lit at the current time.
// The indicator is on when the number of elapsed periods, rounded, is odd.
func (t *FlashingIndicator) On() bool {
	if t.timeFunc == nil {
		return false
	}
	now := t.timeFunc()
	periods := (now + t.periodMs/2) / t.periodMs
	return periods%2 != 0
}

// Render shows if the indicator is on.
func (t *FlashingIndicator) Render(a Arena) Rendering {
	return indicatorRendering(t.On())
}

// NewPowerCarrierWall creates a wall that can be used to route power.
func NewPowerCarrierWall(x, y int) *PowerCarrierWall {
	t := PowerCarrierWall{
		wall: newWall(KindPowerCarrierWall, x, y, wallColor),
	}
	return &t
}

// NewHomeSpace creates a home tile that only the owner can enter.
func NewHomeSpace(owner *player.Player, x, y int) *HomeSpace {
	t := HomeSpace{
		wall:  newWall(KindHomeSpace, x, y, wallColor),
		owner: owner,
	}
	return &t
}

// Owner is the only player that can enter the home space.
func (t *HomeSpace) Owner() *player.Player {
	return t.owner
}

// Collides blocks all players except the owner.
func (t *HomeSpace) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	return t.owner == nil || p.ID != t.owner.ID
}

// Render shows the color of the owner.
func (t *HomeSpace) Render(a Arena) Rendering {
	if t.owner == nil {
		return t.wall.Render(a)
	}
	return Colored(t.owner.Color)
}

// PreviewRender hides the owner.
func (*HomeSpace) PreviewRender(a Arena) Rendering {
	return Colored(BlockedColor)
}

// Describe implements the Tile interface.
func (t *HomeSpace) Describe() string {
	if t.owner == nil {
		return t.kind.String()
	}
	return fmt.Sprintf("Player %d's home tile", t.owner.Number())
}

// NewLockedWall creates a wall that requires keys to pass.
// If takeAwayKeys is set, players lose the keys when they pass.
func NewLockedWall(x, y, keysNeeded int, takeAwayKeys bool) *LockedWall {
	if keysNeeded < 0 {
		keysNeeded = 0
	}
	t := LockedWall{
		wall:         newWall(KindLockedWall, x, y, lockedWallColor),
		keysNeeded:   keysNeeded,
		takeAwayKeys: takeAwayKeys,
	}
	return &t
}

// KeysNeeded is the number of keys players must have to pass.
func (t *LockedWall) KeysNeeded() int {
	return t.keysNeeded
}

// Collides blocks players without enough keys.
// The keys are read from the players collection when the player is in it.
func (t *LockedWall) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	keys := p.Keys
	if p2, ok := ps.Get(p.ID); ok {
		keys = p2.Keys
	}
	if keys < t.keysNeeded {
		return true
	}
	if t.takeAwayKeys {
		ps.AddKeys(p.ID, -t.keysNeeded)
	}
	return false
}

// Describe implements the Tile interface.
func (t *LockedWall) Describe() string {
	prefix := "L"
	if t.takeAwayKeys {
		prefix = "Unstable l"
	}
	plural := "s"
	if t.keysNeeded == 1 {
		plural = ""
	}
	return fmt.Sprintf("%socked wall requiring %d key%s", prefix, t.keysNeeded, plural)
}

// NewDirectionalWall creates a one-way gate facing the direction.
// Invalid directions face north.
func NewDirectionalWall(d game.Direction, x, y int) *DirectionalWall {
	if !d.Valid() {
		d = game.North
	}
	t := DirectionalWall{
		wall:      newWall(KindDirectionalWall, x, y, directionalWallColor),
		direction: d,
	}
	return &t
}

// Direction is the direction the gate faces.
func (t *DirectionalWall) Direction() game.Direction {
	return t.direction
}

// Collides blocks players moving in the direction the gate faces.
// Checks without a direction are treated as moving south.
func (t *DirectionalWall) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	if d == game.NoDirection {
		d = game.South
	}
	return d == t.direction
}

// Describe implements the Tile interface.
func (t *DirectionalWall) Describe() string {
	return "One-way gate facing " + t.direction.String()
}

// NewToggleableWall creates a closed wall that can be opened.
func NewToggleableWall(x, y int) *ToggleableWall {
	t := ToggleableWall{
		wall:   newWall(KindToggleableWall, x, y, toggleableWallColor),
		closed: true,
	}
	return &t
}

// Closed determines if the wall blocks players.
func (t *ToggleableWall) Closed() bool {
	return t.closed
}

// Collides blocks players when the wall is closed.
func (t *ToggleableWall) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	return t.closed
}

// DoFacingAction opens the wall if it is closed, or closes it if it is open.
func (t *ToggleableWall) DoFacingAction() {
	t.closed = !t.closed
}

// Describe implements the Tile interface.
func (t *ToggleableWall) Describe() string {
	if t.closed {
		return "Closed toggleable wall"
	}
	return "Toggleable wall"
}
