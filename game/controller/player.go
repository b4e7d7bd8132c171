package controller

import (
	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/tile"
)

type (
	// player stores the tile and facing of each player in the arena.
	player struct {
		// occupied is the tile that marks the player in the arena.  It remembers the tile the player is on.
		occupied *tile.Occupied
		// facing is the direction the player last moved or faced.
		facing game.Direction
	}
)

// face changes the direction the player is facing.  Invalid directions are ignored.
func (p *player) face(d game.Direction) {
	if d.Valid() {
		p.facing = d
	}
}
