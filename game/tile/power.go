package tile

import "github.com/jacobpatterson1549/selene-arena/game"

// NeighborEnergized determines if any of the tiles next to the tile in the arena are energized.
// Neighbors that are off the grid are skipped.  Nothing is cached: the arena is checked each time.
func NeighborEnergized(t Tile, a Arena) bool {
	return neighborEnergized(t, a, a)
}

// neighborEnergized checks the neighbors of the tile in the arena, asking each if it is energized in the probe arena.
// A nil probe only considers the intrinsic power of neighbors.
func neighborEnergized(t Tile, a, probe Arena) bool {
	if t == nil || a == nil {
		return false
	}
	for _, d := range game.Directions {
		n, ok := a.Neighbor(t, d)
		if ok && n != nil && n.Energized(probe) {
			return true
		}
	}
	return false
}
