// Package controller handles the turns that players take in an arena.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/arena"
	gamePlayer "github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/game/tile"
	"github.com/jacobpatterson1549/selene-arena/server/log"
)

type (
	// Game resolves the actions of players in an arena, one at a time.
	// The arena and players should only be changed by the game.
	Game struct {
		arena   *arena.Arena
		players gamePlayer.Players
		placed  map[gamePlayer.ID]*player
		Config
	}

	// Config contains the properties to create similar games.
	Config struct {
		// Debug is a flag that causes the game to log the types of actions that are read.
		Debug bool
		// Log is used to log errors and other information.
		Log log.Logger
		// RandFunc picks the spawn space of players.  It should return a number in [0,n).
		RandFunc func(n int) int
	}

	// actionHandler is a function which handles an action for a player.
	actionHandler func(a Action) (info string, err error)
)

// NewGame creates a game for the players in the arena.
func (cfg Config) NewGame(a *arena.Arena, ps gamePlayer.Players) (*Game, error) {
	if err := cfg.validate(a, ps); err != nil {
		return nil, fmt.Errorf("creating game: validation: %w", err)
	}
	g := Game{
		arena:   a,
		players: ps,
		placed:  make(map[gamePlayer.ID]*player, len(ps)),
		Config:  cfg,
	}
	return &g, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(a *arena.Arena, ps gamePlayer.Players) error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.RandFunc == nil:
		return fmt.Errorf("function to pick spawn spaces required")
	case a == nil:
		return fmt.Errorf("arena required")
	case len(ps) == 0:
		return fmt.Errorf("players required")
	}
	return nil
}

// Run handles actions until the context is done or the in channel is closed.
// Results are sent for every action.  Actions are handled one at a time, so they never change the arena concurrently.
func (g *Game) Run(ctx context.Context, in <-chan Action, out chan<- Result) {
	actionHandlers := map[ActionType]actionHandler{
		Spawn:        g.handleSpawn,
		Move:         g.handleMove,
		Face:         g.handleFace,
		Leave:        g.handleLeave,
		RefreshFrame: g.handleRefreshFrame,
	}
	for { // BLOCKING
		select {
		case <-ctx.Done():
			return
		case a, ok := <-in:
			if !ok {
				return
			}
			r := g.handleAction(a, actionHandlers)
			select {
			case <-ctx.Done():
				return
			case out <- r:
			}
		}
	}
}

// handleAction handles the action with the appropriate handler.
func (g *Game) handleAction(a Action, actionHandlers map[ActionType]actionHandler) Result {
	if g.Debug {
		g.Log.Printf("game reading action %v for player %v", a.Type, a.PlayerID)
	}
	r := Result{
		Action: a,
	}
	var err error
	ah, ok := actionHandlers[a.Type]
	switch {
	case !ok:
		err = fmt.Errorf("game does not know how to handle action type %v", a.Type)
	default:
		if _, ok := g.players.Get(a.PlayerID); !ok && a.Type != RefreshFrame {
			err = fmt.Errorf("game does not have player %v", a.PlayerID)
			break
		}
		r.Info, err = ah(a)
	}
	if err != nil {
		var w gameWarning
		switch {
		case errors.As(err, &w):
			r.Warning = true
		default:
			r.Error = true
			g.Log.Printf("game error: %v", err)
		}
		r.Info = err.Error()
	}
	f := g.Frame(a.Preview)
	r.Frame = &f
	r.Players = g.playerStates()
	return r
}

// Frame renders the arena.
func (g *Game) Frame(preview bool) arena.Frame {
	return g.arena.Frame(preview)
}

// playerStates copies the players, sorted by id.
func (g *Game) playerStates() []gamePlayer.Player {
	states := make([]gamePlayer.Player, 0, len(g.players))
	for _, p := range g.players {
		if p != nil {
			states = append(states, *p)
		}
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].ID < states[j].ID
	})
	return states
}

// Spawn places the player on a spawnable space.
func (g *Game) Spawn(id gamePlayer.ID) error {
	p, ok := g.players.Get(id)
	switch {
	case !ok:
		return fmt.Errorf("game does not have player %v", id)
	case g.placed[id] != nil:
		return gameWarning("player is already in the arena")
	}
	positions := g.arena.SpawnPositions(id)
	if len(positions) == 0 {
		return gameWarning("no spawn spaces available")
	}
	i := g.RandFunc(len(positions))
	if i < 0 || i >= len(positions) {
		i = 0
	}
	pos := positions[i]
	spawnTile, _ := g.arena.Tile(pos.X, pos.Y)
	occupied := tile.NewOccupied(p, pos.X, pos.Y)
	tile.ChangeTo(spawnTile, occupied, g.arena)
	g.players.Move(id, pos)
	g.placed[id] = &player{
		occupied: occupied,
		facing:   game.South,
	}
	return nil
}

// Move moves the player one tile in the direction.
// The tile being entered decides if the player is blocked.  It reacts after the player has moved onto it.
func (g *Game) Move(id gamePlayer.ID, d game.Direction) error {
	pl, err := g.placedPlayer(id)
	if err != nil {
		return err
	}
	if !d.Valid() {
		return gameWarning("invalid direction: " + d.String())
	}
	pl.face(d)
	target, ok := g.arena.Neighbor(pl.occupied, d)
	if !ok {
		return ErrOffGrid
	}
	p, _ := g.players.Get(id)
	if target.Collides(d, *p, g.players) {
		return fmt.Errorf("%w by %v", ErrBlocked, target.Describe())
	}
	tile.ChangeBack(pl.occupied, g.arena)
	tile.ChangeTo(target, pl.occupied, g.arena)
	g.players.Move(id, pl.occupied.Position())
	if err := target.AfterTurn(*p, g.players, g.arena); err != nil {
		if errors.Is(err, tile.ErrNoTeleportPartner) {
			return fmt.Errorf("%w: %w", gameWarning("player "+fmt.Sprint(p.Number())+" stays on the teleporter"), err)
		}
		return fmt.Errorf("after player %v moved onto %v: %w", p.Number(), target.Describe(), err)
	}
	return nil
}

// FacingAction acts on the tile next to the player in the direction.
// If the direction is not valid, the direction the player last moved or faced is used.
func (g *Game) FacingAction(id gamePlayer.ID, d game.Direction) (string, error) {
	pl, err := g.placedPlayer(id)
	if err != nil {
		return "", err
	}
	pl.face(d)
	target, ok := g.arena.Neighbor(pl.occupied, pl.facing)
	if !ok {
		return "", ErrOffGrid
	}
	fa, ok := target.(tile.FacingActor)
	if !ok {
		return "", gameWarning("nothing to do with " + target.Describe())
	}
	fa.DoFacingAction()
	return target.Describe(), nil
}

// Leave removes the player from the arena, restoring the tile the player was on.
func (g *Game) Leave(id gamePlayer.ID) error {
	pl, err := g.placedPlayer(id)
	if err != nil {
		return err
	}
	tile.ChangeBack(pl.occupied, g.arena)
	delete(g.placed, id)
	return nil
}

// placedPlayer gets the state of a player that is in the arena.
func (g *Game) placedPlayer(id gamePlayer.ID) (*player, error) {
	pl, ok := g.placed[id]
	if !ok || pl == nil {
		return nil, errNotSpawned
	}
	return pl, nil
}

// handleSpawn places the player from the action in the arena.
func (g *Game) handleSpawn(a Action) (string, error) {
	if err := g.Spawn(a.PlayerID); err != nil {
		return "", err
	}
	p, _ := g.players.Get(a.PlayerID)
	return fmt.Sprintf("player %d spawned at %v", p.Number(), p.Position), nil
}

// handleMove moves the player from the action.
func (g *Game) handleMove(a Action) (string, error) {
	if err := g.Move(a.PlayerID, a.Direction); err != nil {
		return "", err
	}
	p, _ := g.players.Get(a.PlayerID)
	return fmt.Sprintf("player %d moved %v to %v", p.Number(), a.Direction, p.Position), nil
}

// handleFace does the facing action of the player from the action.
func (g *Game) handleFace(a Action) (string, error) {
	desc, err := g.FacingAction(a.PlayerID, a.Direction)
	if err != nil {
		return "", err
	}
	return "changed tile to " + desc, nil
}

// handleLeave removes the player from the action.
func (g *Game) handleLeave(a Action) (string, error) {
	if err := g.Leave(a.PlayerID); err != nil {
		return "", err
	}
	return "player left", nil
}

// handleRefreshFrame does nothing.  The frame is added to every result.
func (*Game) handleRefreshFrame(a Action) (string, error) {
	return "", nil
}
