package game

import (
	"errors"
	"fmt"
)

// ErrRoomNotJoinable is the admission error; every join failure wraps it.
var ErrRoomNotJoinable = errors.New("room not joinable")

var (
	ErrRoomNotFound  = fmt.Errorf("%w: room not found", ErrRoomNotJoinable)
	ErrRoomFull      = fmt.Errorf("%w: room is full", ErrRoomNotJoinable)
	ErrNotWaiting    = fmt.Errorf("%w: game already started", ErrRoomNotJoinable)
	ErrAlreadyInRoom = fmt.Errorf("%w: already in room", ErrRoomNotJoinable)
)

var (
	ErrPlayerNotFound = errors.New("player not in room")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotPlaying     = errors.New("game not started")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotInHand  = errors.New("card not in hand")
)
