package arena

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jacobpatterson1549/selene-arena/game"
	"github.com/jacobpatterson1549/selene-arena/game/player"
	"github.com/jacobpatterson1549/selene-arena/game/tile"
)

type (
	// Config describes how to build an arena.
	Config struct {
		// Width is the number of columns.  If zero, the length of the first row is used.
		Width int `json:"width,omitempty"`
		// Height is the number of rows.  If zero, the number of rows is used.
		Height int `json:"height,omitempty"`
		// Rows is a picture of the arena, with one character for each tile.  See the legend for the characters.
		Rows []string `json:"rows,omitempty"`
		// Tiles are placed after the rows, for tiles that need more options than the legend allows.
		Tiles []TileSpec `json:"tiles,omitempty"`
		// TimeFunc should return the current time in milliseconds.  It is used by flashing indicators.
		TimeFunc func() int64 `json:"-"`
		// RandFunc is used by teleporters to pick exits.  It should return a number in [0,n).
		RandFunc func(n int) int `json:"-"`
	}

	// TileSpec describes a single tile.  Options that do not apply to the kind of tile are ignored.
	TileSpec struct {
		// Kind is the name of the kind of tile, such as "lockedWall".
		Kind string `json:"kind"`
		X    int    `json:"x"`
		Y    int    `json:"y"`
		// Color is the color of colored walls.
		Color string `json:"color,omitempty"`
		// Keys is the number of keys needed to pass locked walls.  Defaults to 1.
		Keys *int `json:"keys,omitempty"`
		// TakeAwayKeys causes locked walls to consume keys.
		TakeAwayKeys bool `json:"takeAwayKeys,omitempty"`
		// Direction is the facing of directional walls.
		Direction game.Direction `json:"direction,omitempty"`
		// Group links teleporters.
		Group int `json:"group,omitempty"`
		// Recaptures is the number of times turf can be recaptured.
		Recaptures int `json:"recaptures,omitempty"`
		// Owner is the player that owns home spaces and occupied tiles.
		Owner *player.ID `json:"owner,omitempty"`
		// Restriction is the only player that can spawn on a spawnable space.
		Restriction *player.ID `json:"restriction,omitempty"`
		// FlashPeriodMs is the time flashing indicators stay on or off.
		FlashPeriodMs int64 `json:"flashPeriodMs,omitempty"`
	}
)

// legend maps characters in rows to tiles that need no extra options.
var legend = map[rune]func(x, y int, cfg Config) tile.Tile{
	'.': func(x, y int, cfg Config) tile.Tile { return tile.NewSpace(x, y) },
	'#': func(x, y int, cfg Config) tile.Tile { return tile.NewWall(x, y) },
	'S': func(x, y int, cfg Config) tile.Tile { return tile.NewSpawnableSpace(nil, x, y) },
	'*': func(x, y int, cfg Config) tile.Tile { return tile.NewPowerSource(x, y) },
	'o': func(x, y int, cfg Config) tile.Tile { return tile.NewPowerIndicator(x, y) },
	'!': func(x, y int, cfg Config) tile.Tile { return tile.NewFlashingIndicator(x, y, 0, cfg.TimeFunc) },
	'-': func(x, y int, cfg Config) tile.Tile { return tile.NewPowerCarrier(x, y) },
	'=': func(x, y int, cfg Config) tile.Tile { return tile.NewPowerCarrierWall(x, y) },
	'~': func(x, y int, cfg Config) tile.Tile { return tile.NewTurf(0, x, y) },
	'%': func(x, y int, cfg Config) tile.Tile { return tile.NewPowerTurf(0, x, y) },
	'L': func(x, y int, cfg Config) tile.Tile { return tile.NewLockedWall(x, y, 1, false) },
	'T': func(x, y int, cfg Config) tile.Tile { return tile.NewToggleableWall(x, y) },
	'B': func(x, y int, cfg Config) tile.Tile { return tile.NewItemBox(x, y) },
	'^': func(x, y int, cfg Config) tile.Tile { return tile.NewDirectionalWall(game.North, x, y) },
	'>': func(x, y int, cfg Config) tile.Tile { return tile.NewDirectionalWall(game.East, x, y) },
	'v': func(x, y int, cfg Config) tile.Tile { return tile.NewDirectionalWall(game.South, x, y) },
	'<': func(x, y int, cfg Config) tile.Tile { return tile.NewDirectionalWall(game.West, x, y) },
}

// ReadConfig decodes a json arena config.
func ReadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	if err := d.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding arena config: %w", err)
	}
	return &cfg, nil
}

// New creates an arena from the config.  The players are used to set the owners of tiles.
func (cfg Config) New(ps player.Players) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating arena: validation: %w", err)
	}
	width, height := cfg.size()
	a := Arena{
		width:  width,
		height: height,
		tiles:  make([][]tile.Tile, height),
	}
	for y := range a.tiles {
		a.tiles[y] = make([]tile.Tile, width)
		for x := range a.tiles[y] {
			a.tiles[y][x] = cfg.rowTile(x, y)
		}
	}
	for i, ts := range cfg.Tiles {
		t, err := ts.tile(cfg, ps)
		if err != nil {
			return nil, fmt.Errorf("creating arena: tile %v: %w", i, err)
		}
		a.tiles[ts.Y][ts.X] = t
	}
	return &a, nil
}

// Validate ensures the config can create an arena.
func (cfg Config) Validate() error {
	width, height := cfg.size()
	switch {
	case width <= 0:
		return errors.New("positive width required")
	case height <= 0:
		return errors.New("positive height required")
	case len(cfg.Rows) != 0 && len(cfg.Rows) != height:
		return fmt.Errorf("wanted %v rows, got %v", height, len(cfg.Rows))
	}
	for y, row := range cfg.Rows {
		runes := []rune(row)
		if len(runes) != width {
			return fmt.Errorf("row %v: wanted %v columns, got %v", y, width, len(runes))
		}
		for x, r := range runes {
			if _, ok := legend[r]; !ok && !isTeleporterRune(r) {
				return fmt.Errorf("row %v: unknown tile %q at column %v", y, r, x)
			}
		}
	}
	positions := make(map[game.Position]struct{}, len(cfg.Tiles))
	for i, ts := range cfg.Tiles {
		p := game.Position{X: ts.X, Y: ts.Y}
		if _, ok := tile.ParseKind(ts.Kind); !ok {
			return fmt.Errorf("tile %v: unknown kind %q", i, ts.Kind)
		}
		if ts.X < 0 || ts.X >= width || ts.Y < 0 || ts.Y >= height {
			return fmt.Errorf("tile %v: position %v is not in the arena", i, p)
		}
		if _, ok := positions[p]; ok {
			return fmt.Errorf("tile %v: duplicate position %v", i, p)
		}
		positions[p] = struct{}{}
	}
	return nil
}

// size is the width and height of the arena, read from the rows if not set.
func (cfg Config) size() (width, height int) {
	width, height = cfg.Width, cfg.Height
	if width == 0 && len(cfg.Rows) != 0 {
		width = len([]rune(cfg.Rows[0]))
	}
	if height == 0 {
		height = len(cfg.Rows)
	}
	return width, height
}

// isTeleporterRune determines if the rune is a digit, which represents a teleporter in that group.
func isTeleporterRune(r rune) bool {
	return '0' <= r && r <= '9'
}

// rowTile creates the tile from the rows at the column and row, defaulting to a space.
func (cfg Config) rowTile(x, y int) tile.Tile {
	if y >= len(cfg.Rows) {
		return tile.NewSpace(x, y)
	}
	r := []rune(cfg.Rows[y])[x]
	if isTeleporterRune(r) {
		return tile.NewTeleporter(int(r-'0'), x, y, cfg.RandFunc)
	}
	return legend[r](x, y, cfg)
}

// tile creates the tile that is described by the spec.
func (ts TileSpec) tile(cfg Config, ps player.Players) (tile.Tile, error) {
	k, ok := tile.ParseKind(ts.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", ts.Kind)
	}
	x, y := ts.X, ts.Y
	switch k {
	case tile.KindSpace:
		return tile.NewSpace(x, y), nil
	case tile.KindSpawnableSpace:
		return tile.NewSpawnableSpace(ts.Restriction, x, y), nil
	case tile.KindWall:
		return tile.NewWall(x, y), nil
	case tile.KindOccupied, tile.KindHomeSpace:
		owner, err := ts.owner(ps)
		if err != nil {
			return nil, err
		}
		if k == tile.KindOccupied {
			return tile.NewOccupied(owner, x, y), nil
		}
		return tile.NewHomeSpace(owner, x, y), nil
	case tile.KindColoredWall:
		if len(ts.Color) == 0 {
			return nil, errors.New("color required for colored wall")
		}
		return tile.NewColoredWall(ts.Color, x, y), nil
	case tile.KindPowerSource:
		return tile.NewPowerSource(x, y), nil
	case tile.KindPowerIndicator:
		return tile.NewPowerIndicator(x, y), nil
	case tile.KindFlashingIndicator:
		return tile.NewFlashingIndicator(x, y, ts.FlashPeriodMs, cfg.TimeFunc), nil
	case tile.KindPowerCarrier:
		return tile.NewPowerCarrier(x, y), nil
	case tile.KindPowerCarrierWall:
		return tile.NewPowerCarrierWall(x, y), nil
	case tile.KindTeleporter:
		return tile.NewTeleporter(ts.Group, x, y, cfg.RandFunc), nil
	case tile.KindTurf:
		return tile.NewTurf(ts.Recaptures, x, y), nil
	case tile.KindPowerTurf:
		return tile.NewPowerTurf(ts.Recaptures, x, y), nil
	case tile.KindLockedWall:
		keys := 1
		if ts.Keys != nil {
			keys = *ts.Keys
		}
		return tile.NewLockedWall(x, y, keys, ts.TakeAwayKeys), nil
	case tile.KindDirectionalWall:
		return tile.NewDirectionalWall(ts.Direction, x, y), nil
	case tile.KindToggleableWall:
		return tile.NewToggleableWall(x, y), nil
	case tile.KindItemBox:
		return tile.NewItemBox(x, y), nil
	}
	return nil, fmt.Errorf("cannot create %v", k)
}

// owner finds the owner of the tile in the players.
func (ts TileSpec) owner(ps player.Players) (*player.Player, error) {
	if ts.Owner == nil {
		return nil, fmt.Errorf("owner required for %v", ts.Kind)
	}
	p, ok := ps.Get(*ts.Owner)
	if !ok {
		return nil, fmt.Errorf("unknown owner: player %v", *ts.Owner)
	}
	return p, nil
}
