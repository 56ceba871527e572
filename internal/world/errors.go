package world

import "errors"

var (
	ErrInvalidSlot  = errors.New("invalid player slot")
	ErrSlotEmpty    = errors.New("player slot is empty")
	ErrInvalidTeams = errors.New("world requires exactly two teams")
)
