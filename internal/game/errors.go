package game

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrRoundActive    = errors.New("round already active")
	ErrNoRound        = errors.New("no round in progress")
	ErrNotHost        = errors.New("player is not host")
)
