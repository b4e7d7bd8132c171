// Package arena stores the grid of tiles that players move around in.
package arena

import (
	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/game/tile"
)

type (
	// Arena is a rectangular grid of tiles.
	// It is not safe for concurrent use: changes should be made by a single goroutine.
	Arena struct {
		width  int
		height int
		tiles  [][]tile.Tile // by row, then column
	}

	// Frame is the rendering of every tile in the arena at a point in time.
	Frame struct {
		Width  int    `json:"width"`
		Height int    `json:"height"`
		Cells  []Cell `json:"cells"`
	}

	// Cell is the rendering of a single tile.
	Cell struct {
		game.Position
		Rendering tile.Rendering `json:"rendering"`
		Label     string         `json:"label,omitempty"`
	}
)

// Arena implements the tile.Arena interface.
var _ tile.Arena = (*Arena)(nil)

// Width is the number of columns.
func (a *Arena) Width() int {
	return a.width
}

// Height is the number of rows.
func (a *Arena) Height() int {
	return a.height
}

// onGrid determines if the column and row are in the arena.
func (a *Arena) onGrid(x, y int) bool {
	return 0 <= x && x < a.width && 0 <= y && y < a.height
}

// Tile gets the tile at the column and row.
func (a *Arena) Tile(x, y int) (tile.Tile, bool) {
	if !a.onGrid(x, y) {
		return nil, false
	}
	return a.tiles[y][x], true
}

// Neighbor gets the tile next to the tile in the direction.
func (a *Arena) Neighbor(t tile.Tile, d game.Direction) (tile.Tile, bool) {
	if t == nil || !d.Valid() {
		return nil, false
	}
	p := t.Position().Add(d)
	return a.Tile(p.X, p.Y)
}

// MatchingTiles returns the tiles that match, by row, then column.
func (a *Arena) MatchingTiles(match func(t tile.Tile) bool) []tile.Tile {
	var tiles []tile.Tile
	for _, row := range a.tiles {
		for _, t := range row {
			if match(t) {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// SetTile replaces the tile at the column and row.  Positions that are not on the grid are ignored.
func (a *Arena) SetTile(x, y int, t tile.Tile) {
	if !a.onGrid(x, y) || t == nil {
		return
	}
	a.tiles[y][x] = t
}

// SpawnPositions are the spawnable spaces that the player can start on.
func (a *Arena) SpawnPositions(id player.ID) []game.Position {
	spaces := a.MatchingTiles(func(t tile.Tile) bool {
		s, ok := t.(*tile.SpawnableSpace)
		return ok && s.CanSpawn(id)
	})
	positions := make([]game.Position, len(spaces))
	for i, s := range spaces {
		positions[i] = s.Position()
	}
	return positions
}

// Frame renders all of the tiles.  Preview frames hide the owners of some tiles.
func (a *Arena) Frame(preview bool) Frame {
	cells := make([]Cell, 0, a.width*a.height)
	for _, row := range a.tiles {
		for _, t := range row {
			c := Cell{
				Position:  t.Position(),
				Rendering: t.Render(a),
				Label:     t.Describe(),
			}
			if preview {
				c.Rendering = tile.PreviewRender(t, a)
				if _, ok := t.(tile.PreviewRenderer); ok {
					c.Label = "" // the label names the owner
				}
			}
			cells = append(cells, c)
		}
	}
	f := Frame{
		Width:  a.width,
		Height: a.height,
		Cells:  cells,
	}
	return f
}
