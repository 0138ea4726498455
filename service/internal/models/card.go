// internal/models/card.go
package models

import (
	"github.com/google/uuid"
)

// Card is the client-facing description of a tracked card.
type Card struct {
	ID     uuid.UUID `json:"id"`
	Type   string    `json:"type"`
	Color  string    `json:"color,omitempty"`
	Number *int      `json:"number,omitempty"` // Only set for numbered cards.
	Value  int       `json:"value"`            // Points the card is worth in a losing hand.
}
