package main

import (
	_ "embed"
)

// embeddedArenaLayout is the arena that is used when no layout file is specified.
//
//go:embed embed/arena.json
var embeddedArenaLayout string
