package tile

import "github.com/jacobpatterson1549/selene-arena/game"

// mockArena is a grid of tiles stored by row.
type mockArena [][]Tile

// newMockArena creates a grid of spaces with the width and height.
func newMockArena(width, height int) mockArena {
	a := make(mockArena, height)
	for y := range a {
		a[y] = make([]Tile, width)
		for x := range a[y] {
			a[y][x] = NewSpace(x, y)
		}
	}
	return a
}

// put stores the tile at its position.
func (a mockArena) put(t Tile) Tile {
	p := t.Position()
	a[p.Y][p.X] = t
	return t
}

func (a mockArena) Tile(x, y int) (Tile, bool) {
	if y < 0 || y >= len(a) || x < 0 || x >= len(a[y]) {
		return nil, false
	}
	return a[y][x], true
}

func (a mockArena) Neighbor(t Tile, d game.Direction) (Tile, bool) {
	p := t.Position().Add(d)
	if !d.Valid() {
		return nil, false
	}
	return a.Tile(p.X, p.Y)
}

func (a mockArena) MatchingTiles(match func(t Tile) bool) []Tile {
	var tiles []Tile
	for _, row := range a {
		for _, t := range row {
			if match(t) {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

func (a mockArena) SetTile(x, y int, t Tile) {
	if _, ok := a.Tile(x, y); ok {
		a[y][x] = t
	}
}
