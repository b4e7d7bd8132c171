package controller

// gameWarning is an error that represents a user error.
type gameWarning string

const (
	// ErrBlocked is returned when a player cannot move onto a tile.
	ErrBlocked gameWarning = "blocked"
	// ErrOffGrid is returned when a player tries to move or face out of the arena.
	ErrOffGrid gameWarning = "not in the arena"
	// errNotSpawned is returned when a player tries to act before being placed in the arena.
	errNotSpawned gameWarning = "player is not in the arena"
)

// Error returns the string of the error.
func (w gameWarning) Error() string {
	return string(w)
}
