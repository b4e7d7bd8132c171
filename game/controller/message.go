package controller

import (
	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/arena"
	gamePlayer "github.com/jacobpatterson1549/selene-arena/game/player"
)

type (
	// ActionType is the purpose of an action.
	ActionType int

	// Action is a request to change or read the game.
	Action struct {
		// Type is the purpose of the action.
		Type ActionType `json:"type"`
		// PlayerID is the player that is acting.
		PlayerID gamePlayer.ID `json:"playerId"`
		// Direction is the direction a player moves or faces.
		Direction game.Direction `json:"direction"`
		// Preview requests a frame that hides owners.
		Preview bool `json:"preview,omitempty"`
	}

	// Result is the outcome of an action.
	Result struct {
		// Action is the action that caused the result.
		Action Action `json:"action"`
		// Info is a message about the action.
		Info string `json:"info,omitempty"`
		// Warning is set when the action is not allowed.
		Warning bool `json:"warning,omitempty"`
		// Error is set when the action caused an unexpected problem.
		Error bool `json:"error,omitempty"`
		// Frame is the rendering of the arena after the action.
		Frame *arena.Frame `json:"frame,omitempty"`
		// Players are the state of the players after the action.
		Players []gamePlayer.Player `json:"players,omitempty"`
	}
)

const (
	_ ActionType = iota
	// Spawn places a player in the arena.
	Spawn
	// Move moves a player one tile in a direction.
	Move
	// Face has the player act on the tile in a direction, such as opening a toggleable wall.
	Face
	// Leave removes a player from the arena.
	Leave
	// RefreshFrame requests the rendering of the arena.
	RefreshFrame
)

// String returns the display value for the action type.
func (t ActionType) String() string {
	switch t {
	case Spawn:
		return "spawn"
	case Move:
		return "move"
	case Face:
		return "face"
	case Leave:
		return "leave"
	case RefreshFrame:
		return "refresh frame"
	}
	return "?"
}
