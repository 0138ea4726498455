package models

// GameAction is a player request routed to a game session. Payload values
// arrive JSON-decoded, so numbers are float64.
type GameAction struct {
	ActionType string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}
