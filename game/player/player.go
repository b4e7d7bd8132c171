// Package player contains the state of the players that move around arenas.
package player

import "github.com/jacobpatterson1549/selene-arena/game"

type (
	// ID identifies a player.  IDs are small, stable, and start at zero.
	ID int

	// Player is a person moving around the arena.
	Player struct {
		// ID is the unique id of the player.
		ID ID `json:"id"`
		// Color is the hex color used to display the player and tiles that the player owns.
		Color string `json:"color"`
		// Keys is the number of keys the player holds to pass through locked walls.
		Keys int `json:"keys"`
		// Position is where the player is in the arena.
		Position game.Position `json:"position"`
	}

	// Players is the authoritative collection of players, by id.
	// Tiles change player state through this collection rather than through the copies given to collision checks.
	Players map[ID]*Player
)

// Number is the one-based number of the player that is shown to users.
func (p Player) Number() int {
	return int(p.ID) + 1
}

// New creates a Players collection from the players.
func New(players ...Player) Players {
	ps := make(Players, len(players))
	for i := range players {
		p := players[i]
		ps[p.ID] = &p
	}
	return ps
}

// Get returns the player with the id.
func (ps Players) Get(id ID) (*Player, bool) {
	p, ok := ps[id]
	return p, ok && p != nil
}

// AddKeys changes the number of keys the player has by the delta.
// False is returned if the player is not in the collection.
func (ps Players) AddKeys(id ID, delta int) bool {
	p, ok := ps.Get(id)
	if !ok {
		return false
	}
	p.Keys += delta
	return true
}

// Move sets the position of the player.
// False is returned if the player is not in the collection.
func (ps Players) Move(id ID, pos game.Position) bool {
	p, ok := ps.Get(id)
	if !ok {
		return false
	}
	p.Position = pos
	return true
}
