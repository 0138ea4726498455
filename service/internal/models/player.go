package models

import (
	"github.com/google/uuid"
)

// Player is a seat at an UNO table.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hand      []*Card   `json:"hand"`
	Connected bool      `json:"connected"`
	IsBot     bool      `json:"isBot"`

	// HasCalledUno mirrors the engine's standing UNO declaration.
	HasCalledUno bool `json:"hasCalledUno"`
}
