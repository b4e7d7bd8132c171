// Package game contains shared structures for the arena tiles, players, and turn controller.
package game

import "strconv"

type (
	// Position is a grid coordinate.  X is the column, Y is the row.
	Position struct {
		X int `json:"x"`
		Y int `json:"y"`
	}

	// Direction is the direction a player moves or faces.
	Direction int
)

const (
	// North is towards row 0.
	North Direction = iota
	// East is towards higher columns.
	East
	// South is towards higher rows.
	South
	// West is towards column 0.
	West
	// NoDirection is used by callers that have no real direction, such as probes that are not movements.
	NoDirection Direction = -1
)

// directionNames are indexed by direction.
var directionNames = [...]string{"north", "east", "south", "west"}

// Directions are all of the valid directions, in order.
var Directions = [...]Direction{North, East, South, West}

// Valid determines if the direction is one of the four compass directions.
func (d Direction) Valid() bool {
	return North <= d && d <= West
}

// String returns the name of the direction.
func (d Direction) String() string {
	if !d.Valid() {
		return "direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// Offset returns the column and row change of moving one cell in the direction.
// Invalid directions have no offset.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Add returns the position one cell away in the direction.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Offset()
	return Position{
		X: p.X + dx,
		Y: p.Y + dy,
	}
}
