package tile

import "errors"

// ErrNoTeleportPartner is returned when a player enters a teleporter that has no other teleporter in its group.
var ErrNoTeleportPartner = errors.New("no teleport partner")
