package tile

import (
	"fmt"
	"math/rand"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
)

type (
	// Space is an empty cell that players can move through.
	Space struct {
		base
	}

	// SpawnableSpace is an empty cell that players can start the game on.
	SpawnableSpace struct {
		base
		restriction *player.ID
	}

	// PowerCarrier is an empty cell used to lay out power in the arena.
	PowerCarrier struct {
		base
	}

	// Teleporter is an empty cell that moves players to another teleporter with the same group after they enter it.
	Teleporter struct {
		base
		group    int
		randFunc func(n int) int
	}

	// ItemBox is an empty cell that gives a key to the first player to enter it.
	ItemBox struct {
		base
		active bool
	}
)

const (
	teleporterColor = "purple"
	itemBoxColor    = "#dd66ff"
)

// NewSpace creates an empty space.
func NewSpace(x, y int) *Space {
	t := Space{
		base: newBase(KindSpace, x, y, defaultColor),
	}
	return &t
}

// NewSpawnableSpace creates a space that players can start on.
// If the restriction is not nil, only the player with that id can start on it.
func NewSpawnableSpace(restriction *player.ID, x, y int) *SpawnableSpace {
	t := SpawnableSpace{
		base: newBase(KindSpawnableSpace, x, y, defaultColor),
	}
	if restriction != nil {
		id := *restriction
		t.restriction = &id
	}
	return &t
}

// Restriction is the only player that can spawn on the space, if any.
func (t *SpawnableSpace) Restriction() (player.ID, bool) {
	if t.restriction == nil {
		return 0, false
	}
	return *t.restriction, true
}

// CanSpawn determines if the player can start on the space.
func (t *SpawnableSpace) CanSpawn(id player.ID) bool {
	return t.restriction == nil || *t.restriction == id
}

// Describe implements the Tile interface.
func (*SpawnableSpace) Describe() string {
	return "Spawn space"
}

// NewPowerCarrier creates an empty space that can be used to route power.
func NewPowerCarrier(x, y int) *PowerCarrier {
	t := PowerCarrier{
		base: newBase(KindPowerCarrier, x, y, defaultColor),
	}
	return &t
}

// NewTeleporter creates a teleporter in the group.
// The randFunc is used to pick the exit teleporter, returning a number in [0,n).  If nil, math/rand is used.
func NewTeleporter(group, x, y int, randFunc func(n int) int) *Teleporter {
	if randFunc == nil {
		randFunc = rand.Intn
	}
	t := Teleporter{
		base:     newBase(KindTeleporter, x, y, teleporterColor),
		group:    group,
		randFunc: randFunc,
	}
	return &t
}

// Group is the id shared by connected teleporters.
func (t *Teleporter) Group() int {
	return t.group
}

// AfterTurn moves the player from the teleporter to a random teleporter in the same group.
// The tile the player occupies is moved to the exit, and this teleporter is restored.
func (t *Teleporter) AfterTurn(p player.Player, ps player.Players, a Arena) error {
	exits := a.MatchingTiles(func(t2 Tile) bool {
		t3, ok := t2.(*Teleporter)
		return ok && t3 != t && t3.group == t.group
	})
	if len(exits) == 0 {
		return fmt.Errorf("%w: teleporter group %v at %v", ErrNoTeleportPartner, t.group, t.pos)
	}
	occupied, ok := a.Tile(p.Position.X, p.Position.Y)
	switch {
	case !ok:
		return fmt.Errorf("player %v is not in the arena at %v", p.Number(), p.Position)
	case occupied.Prior() != t:
		return fmt.Errorf("player %v is not on the teleporter at %v", p.Number(), t.pos)
	}
	i := t.randFunc(len(exits))
	if i < 0 || i >= len(exits) {
		i = 0
	}
	exit := exits[i]
	exitPos := exit.Position()
	ChangeBack(occupied, a)
	ChangeTo(exit, occupied, a)
	ps.Move(p.ID, exitPos)
	return nil
}

// NewItemBox creates an item box that has a key.
func NewItemBox(x, y int) *ItemBox {
	t := ItemBox{
		base:   newBase(KindItemBox, x, y, itemBoxColor),
		active: true,
	}
	return &t
}

// Active determines if the item box still has a key.
func (t *ItemBox) Active() bool {
	return t.active
}

// Collides gives the player a key if the box has one.  Item boxes never block players.
func (t *ItemBox) Collides(d game.Direction, p player.Player, ps player.Players) bool {
	if t.active && ps.AddKeys(p.ID, 1) {
		t.active = false
	}
	return false
}

// Describe implements the Tile interface.
func (t *ItemBox) Describe() string {
	if t.active {
		return "Item box"
	}
	return "Empty item box"
}
