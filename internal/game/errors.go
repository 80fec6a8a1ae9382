package game

import "errors"

// Rejections returned alongside a Result. None of them change the game.
var (
	ErrContainerNotFound = errors.New("container not found")
	ErrSlotNotFound      = errors.New("slot not found")
	ErrSlotOccupied      = errors.New("slot occupied")
	ErrTokenNotAvailable = errors.New("token not available")
)
