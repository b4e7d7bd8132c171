// Package tile contains the cells of an arena and how they react to players.
package tile

import (
	"strings"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
)

type (
	// Tile is the behavior of a single cell of the arena.
	Tile interface {
		// Kind is the variant of the tile.
		Kind() Kind
		// Position is where the tile is.  It is only accurate while the tile is in the arena.
		Position() game.Position
		// Collides determines if the tile blocks the player from entering it while moving in the direction.
		// Some tiles change state when a player tries to enter them, even if the player is blocked.
		// Changes to players are made to the players collection, not the player, which is a copy.
		Collides(d game.Direction, p player.Player, ps player.Players) bool
		// Render is how the tile is shown.
		Render(a Arena) Rendering
		// Energized determines if the tile is supplying power to its neighbors.
		// A nil Arena causes only the intrinsic power of the tile to be considered.
		Energized(a Arena) bool
		// AfterTurn is called after the player has moved onto the tile.
		AfterTurn(p player.Player, ps player.Players, a Arena) error
		// Describe returns a short label of the tile and its state.
		Describe() string
		// Prior is the tile that was replaced by this tile, if any.
		Prior() Tile
		// Occupying is the kind of tile that was replaced by this tile, if any.
		Occupying() (Kind, bool)
		state() *base
	}

	// Arena is the grid of tiles that tiles query and change.
	Arena interface {
		// Tile gets the tile at the column and row.  False is returned if the position is not on the grid.
		Tile(x, y int) (Tile, bool)
		// Neighbor gets the tile next to the tile in the direction.  False is returned if the neighbor is not on the grid.
		Neighbor(t Tile, d game.Direction) (Tile, bool)
		// MatchingTiles returns all tiles in the grid that match.  Each tile is tested once.
		MatchingTiles(match func(t Tile) bool) []Tile
		// SetTile replaces the tile at the column and row.
		SetTile(x, y int, t Tile)
	}

	// PreviewRenderer is implemented by tiles that hide their state when players are planning moves.
	PreviewRenderer interface {
		PreviewRender(a Arena) Rendering
	}

	// FacingActor is implemented by tiles that change when a player does an action while facing them.
	FacingActor interface {
		DoFacingAction()
	}

	// Kind is a variant of tile.
	Kind int

	// base is the state and default behavior shared by all tiles.
	base struct {
		kind      Kind
		pos       game.Position
		color     string
		prior     Tile
		occupying Kind
	}

	// wall is a base that blocks all players.
	wall struct {
		base
	}
)

const (
	_ Kind = iota
	// KindSpace is an empty cell.
	KindSpace
	// KindSpawnableSpace is where players can start.
	KindSpawnableSpace
	// KindWall blocks movement.
	KindWall
	// KindOccupied is a cell taken by a player.
	KindOccupied
	// KindColoredWall is a wall with a changeable color.
	KindColoredWall
	// KindPowerSource is a wall that always supplies power.
	KindPowerSource
	// KindPowerIndicator is a wall that lights up when it is next to power.
	KindPowerIndicator
	// KindFlashingIndicator is a wall that lights up periodically.
	KindFlashingIndicator
	// KindPowerCarrier is an empty cell used to lay out power.
	KindPowerCarrier
	// KindPowerCarrierWall is a wall used to lay out power.
	KindPowerCarrierWall
	// KindTeleporter moves players to another teleporter in the same group.
	KindTeleporter
	// KindTurf is captured by players that enter it.
	KindTurf
	// KindPowerTurf is turf that conducts power when captured.
	KindPowerTurf
	// KindHomeSpace blocks all players except its owner.
	KindHomeSpace
	// KindLockedWall blocks players without enough keys.
	KindLockedWall
	// KindDirectionalWall blocks players entering in one direction.
	KindDirectionalWall
	// KindToggleableWall blocks players when closed.
	KindToggleableWall
	// KindItemBox gives a key to the first player that enters it.
	KindItemBox
)

const (
	defaultColor = "white"
	wallColor    = "black"
)

var kindNames = map[Kind]string{
	KindSpace:             "Space",
	KindSpawnableSpace:    "SpawnableSpace",
	KindWall:              "Wall",
	KindOccupied:          "Occupied",
	KindColoredWall:       "ColoredWall",
	KindPowerSource:       "PowerSource",
	KindPowerIndicator:    "PowerIndicator",
	KindFlashingIndicator: "FlashingIndicator",
	KindPowerCarrier:      "PowerCarrier",
	KindPowerCarrierWall:  "PowerCarrierWall",
	KindTeleporter:        "Teleporter",
	KindTurf:              "Turf",
	KindPowerTurf:         "PowerTurf",
	KindHomeSpace:         "HomeSpace",
	KindLockedWall:        "LockedWall",
	KindDirectionalWall:   "DirectionalWall",
	KindToggleableWall:    "ToggleableWall",
	KindItemBox:           "ItemBox",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "?"
}

// ParseKind finds the kind with the case-insensitive name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// newBase creates the shared state for a tile.
func newBase(k Kind, x, y int, color string) base {
	return base{
		kind: k,
		pos: game.Position{
			X: x,
			Y: y,
		},
		color: color,
	}
}

// newWall creates the shared state for a wall.
func newWall(k Kind, x, y int, color string) wall {
	return wall{
		base: newBase(k, x, y, color),
	}
}

// Kind implements the Tile interface.
func (b *base) Kind() Kind {
	return b.kind
}

// Position implements the Tile interface.
func (b *base) Position() game.Position {
	return b.pos
}

// Collides implements the Tile interface.  Tiles do not collide by default.
func (*base) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	return false
}

// Render implements the Tile interface by rendering the color of the tile.
func (b *base) Render(a Arena) Rendering {
	return Colored(b.color)
}

// Energized implements the Tile interface.  Tiles are not energized by default.
func (*base) Energized(a Arena) bool {
	return false
}

// AfterTurn implements the Tile interface.  Tiles do nothing after a turn by default.
func (*base) AfterTurn(p player.Player, ps player.Players, a Arena) error {
	return nil
}

// Describe implements the Tile interface by returning the name of the kind.
func (b *base) Describe() string {
	return b.kind.String()
}

// Prior implements the Tile interface.
func (b *base) Prior() Tile {
	return b.prior
}

// Occupying implements the Tile interface.
func (b *base) Occupying() (Kind, bool) {
	return b.occupying, b.occupying != 0
}

func (b *base) state() *base {
	return b
}

// Collides implements the Tile interface.  Walls always collide.
func (*wall) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	return true
}

// ChangeTo replaces the tile in the arena with the new tile.
// The new tile is moved to the position of the tile and remembers the tile so it can be changed back.
// Nothing changes if the new tile is already under the tile, since linking it again would make a loop.
func ChangeTo(t, newTile Tile, a Arena) {
	if t == nil || newTile == nil {
		return
	}
	for p := t; p != nil; p = p.Prior() {
		if p == newTile {
			return
		}
	}
	s, ns := t.state(), newTile.state()
	ns.pos = s.pos
	ns.prior = t
	ns.occupying = s.kind
	a.SetTile(ns.pos.X, ns.pos.Y, newTile)
}

// ChangeBack restores the tile that the tile replaced, returning true if there was a tile to restore.
// The restored tile is the same tile that was replaced, not a copy.
// The link to the restored tile is removed, so the tile cannot be changed back twice.
func ChangeBack(t Tile, a Arena) bool {
	if t == nil {
		return false
	}
	s := t.state()
	if s.prior == nil {
		return false
	}
	prior := s.prior
	s.prior = nil
	ps := prior.state()
	ps.pos = s.pos
	a.SetTile(ps.pos.X, ps.pos.Y, prior)
	return true
}
