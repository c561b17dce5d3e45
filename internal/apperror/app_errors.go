package apperror

import "errors"

var (
	ErrUnauthenticated = errors.New("invalid or missing token")
	ErrForbidden       = errors.New("not allowed for this action")

	ErrGameNotFound      = errors.New("game not found")
	ErrGameAlreadyExists = errors.New("game already exists")

	ErrCellOutOfRange = errors.New("cell index out of range")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrGameNotActive  = errors.New("game is not active")

	ErrPlayerNotInGame = errors.New("player is not registered in this game")
	ErrUnknownCommand  = errors.New("unknown command")
)
