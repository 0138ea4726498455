// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"sync"

	engine "github.com/KisKova/UnoGameAssignment2/engine"
	"github.com/KisKova/UnoGameAssignment2/engine/agent"
	"github.com/KisKova/UnoGameAssignment2/service/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
// It receives the lobby ID, the match winner's ID and the final scores.
type OnGameEndFunc func(lobbyID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Constants defining the various GameEvent types.
const (
	EventHandStart             GameEventType = "hand_start"
	EventPlayerPlay            GameEventType = "player_play"                 // Public: Player played a card (details revealed).
	EventPlayerDraw            GameEventType = "player_draw"                 // Public: Player drew cards (IDs only).
	EventPrivateDraw           GameEventType = "private_draw"                // Private: Details of the cards drawn.
	EventPlayerPass            GameEventType = "player_pass"                 // Public: Player kept a drawn card and passed.
	EventPlayerChooseColor     GameEventType = "player_choose_color"         // Public: Color chosen for a starting WILD.
	EventPlayerUno             GameEventType = "player_uno"                  // Public: Player declared UNO.
	EventPlayerUnoCaught       GameEventType = "player_uno_caught"           // Public: Player was caught without declaring UNO.
	EventPlayerFalseAccusation GameEventType = "player_uno_false_accusation" // Public: An accusation failed.
	EventGamePlayerTurn        GameEventType = "game_player_turn"            // Public: Notification of the current player's turn.
	EventHandEnd               GameEventType = "hand_end"                    // Public: A hand finished, includes scores.
	EventGameEnd               GameEventType = "game_end"                    // Public: Match has ended, includes results.
	EventPrivateSyncState      GameEventType = "private_sync_state"          // Private: Full game state sync for a player.
	EventPrivateActionRejected GameEventType = "private_action_rejected"     // Private: The player's action was refused.
)

// Action types accepted by HandlePlayerAction.
const (
	ActionPlay        = "action_play"         // payload: {"idx": n, "color": "red"}
	ActionDraw        = "action_draw"         // no payload
	ActionPass        = "action_pass"         // no payload
	ActionChooseColor = "action_choose_color" // payload: {"color": "red"}
	ActionUno         = "action_uno"          // no payload
	ActionCatchUno    = "action_catch_uno"    // payload: {"user": {"id": "..."}}
)

// ErrNotYourTurn is reported when a turn-bound action comes from another player.
var ErrNotYourTurn = errors.New("it's not your turn")

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// EventCard identifies a card within a GameEvent payload, optionally including details.
type EventCard struct {
	ID     uuid.UUID  `json:"id"`
	Type   string     `json:"type,omitempty"`
	Color  string     `json:"color,omitempty"`
	Number *int       `json:"number,omitempty"`
	Value  int        `json:"value,omitempty"`
	Idx    *int       `json:"idx,omitempty"`  // Index in hand, if relevant.
	User   *EventUser `json:"user,omitempty"` // Owner of the card, if relevant.
}

// GameEvent is the standard structure for broadcasting game state changes and actions.
type GameEvent struct {
	Type  GameEventType `json:"type"`
	User  *EventUser    `json:"user,omitempty"`  // The user initiating or targeted by the event.
	Card  *EventCard    `json:"card,omitempty"`  // Primary card involved.
	Cards []*EventCard  `json:"cards,omitempty"` // Cards drawn, for draw events.

	Payload map[string]interface{} `json:"payload,omitempty"` // Additional arbitrary data.

	State *ObfGameState `json:"state,omitempty"` // Full obfuscated state for sync events.
}

// defaultMaxBotMoves bounds a single run of consecutive bot moves.
const defaultMaxBotMoves = 100000

// UnoGame is one UNO table: an engine match plus the players seated at it.
type UnoGame struct {
	ID      uuid.UUID // Unique identifier for this game instance.
	LobbyID uuid.UUID // ID of the lobby that created this game, if any.

	HouseRules models.HouseRules

	Players []*models.Player // Seating order.

	// Engine integration. The engine holds the authoritative game state.
	Engine         *engine.Game
	CardTracker    CardUUIDTracker
	PlayerToEngine map[uuid.UUID]int // Service player UUID -> engine index.
	EngineToPlayer []uuid.UUID       // Engine index -> service player UUID.

	// Shuffler and Policy are injectable for deterministic play; nil means random.
	Shuffler engine.Shuffler[engine.Card]
	Policy   *agent.Policy

	// MaxBotMoves stops a bot-only loop that fails to reach a human or the end of the match.
	MaxBotMoves int

	TurnID  int // Increments each turn, useful for state synchronization and checks.
	Started bool
	// GameOver is set once a player reaches the target score.
	GameOver bool

	actionIndex int
	log         *logrus.Entry
	Mu          sync.Mutex

	// Communication Callbacks
	BroadcastFn         func(ev GameEvent)                     // Sends an event to all connected players.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent) // Sends an event to a single player.
	OnGameEnd           OnGameEndFunc                          // Callback executed when the match finishes.
}

// NewUnoGame creates a new table with default house rules. A nil logger
// means the logrus standard logger.
func NewUnoGame(logger *logrus.Logger) *UnoGame {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	id, _ := uuid.NewRandom()
	return &UnoGame{
		ID:             id,
		HouseRules:     models.DefaultHouseRules(),
		PlayerToEngine: make(map[uuid.UUID]int),
		MaxBotMoves:    defaultMaxBotMoves,
		log:            logger.WithField("game_id", id),
	}
}

// AddPlayer seats a player before the game starts, or marks a known player as reconnected.
func (g *UnoGame) AddPlayer(p *models.Player) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	for _, pl := range g.Players {
		if pl.ID == p.ID {
			pl.Connected = true
			g.log.WithField("player_id", p.ID).Info("player reconnected")
			return nil
		}
	}
	if g.Started {
		return fmt.Errorf("game %s already started", g.ID)
	}
	if len(g.Players) >= engine.MaxPlayers {
		return fmt.Errorf("game %s is full (%d players)", g.ID, engine.MaxPlayers)
	}
	p.Connected = true
	g.Players = append(g.Players, p)
	g.log.WithFields(logrus.Fields{"player_id": p.ID, "name": p.Name, "bot": p.IsBot}).Info("player added")
	g.logAction(p.ID, "player_add", map[string]interface{}{"name": p.Name, "bot": p.IsBot})
	return nil
}

// Start deals the first hand and lets bots play until a human must act.
func (g *UnoGame) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started || g.GameOver {
		return fmt.Errorf("game %s already started", g.ID)
	}

	names := make([]string, len(g.Players))
	g.EngineToPlayer = make([]uuid.UUID, len(g.Players))
	for i, p := range g.Players {
		names[i] = p.Name
		if names[i] == "" {
			names[i] = p.ID.String()
		}
		g.PlayerToEngine[p.ID] = i
		g.EngineToPlayer[i] = p.ID
	}

	eg, err := engine.CreateGame(engine.GameConfig{
		Players:     names,
		TargetScore: g.HouseRules.Target(),
		Shuffler:    g.Shuffler,
		Rules:       g.HouseRules.Engine(),
	})
	if err != nil {
		g.log.WithError(err).Error("cannot create engine game")
		return err
	}
	if g.Policy == nil {
		g.Policy = agent.NewPolicy(nil)
	}
	g.Engine = eg
	g.Started = true
	g.log.WithField("players", len(names)).Info("game started")
	g.logAction(uuid.Nil, "game_start", map[string]interface{}{"targetScore": eg.TargetScore()})

	g.beginHand()
	g.runBots()
	return nil
}

// beginHand announces a freshly dealt hand.
// Assumes lock is held by caller.
func (g *UnoGame) beginHand() {
	g.initCardTracker()
	h := g.Engine.CurrentHand()
	top, topID := g.discardTopCard()
	g.fireEvent(GameEvent{
		Type: EventHandStart,
		Card: buildEventCard(top, nil, uuid.Nil, true),
		Payload: map[string]interface{}{
			"handNumber":    g.Engine.HandNumber(),
			"dealer":        g.EngineToPlayer[g.Engine.Dealer()].String(),
			"drawPileSize":  h.DrawPileSize(),
			"direction":     h.Direction(),
			"colorRequired": h.NeedsColorChoice(),
		},
	})
	g.logAction(uuid.Nil, string(EventHandStart), map[string]interface{}{"handNumber": g.Engine.HandNumber(), "discardTop": topID})

	g.broadcastSyncStateToAll()
	g.TurnID++
	g.broadcastPlayerTurn()
}

// HandlePlayerAction routes a player's request to the engine. Rejected
// actions are logged and reported privately to the player; they never
// change the game.
func (g *UnoGame) HandlePlayerAction(playerID uuid.UUID, action models.GameAction) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	entry := g.log.WithFields(logrus.Fields{"player_id": playerID, "action": action.ActionType})
	if g.GameOver {
		entry.Debug("action ignored, game over")
		return
	}
	if !g.Started {
		entry.Debug("action ignored, game not started")
		return
	}
	player := g.getPlayerByID(playerID)
	if player == nil || !player.Connected {
		entry.Warn("action from unknown or disconnected player ignored")
		return
	}
	idx := g.PlayerToEngine[playerID]
	if action.ActionType != ActionUno {
		g.botCatchHuman(idx)
	}

	var err error
	switch action.ActionType {
	case ActionPlay:
		err = g.handlePlay(idx, action.Payload)
	case ActionDraw:
		err = g.doDraw(idx)
	case ActionPass:
		err = g.doPass(idx)
	case ActionChooseColor:
		err = g.handleChooseColor(idx, action.Payload)
	case ActionUno:
		err = g.doSayUno(idx)
	case ActionCatchUno:
		err = g.handleCatchUno(idx, action.Payload)
	default:
		err = fmt.Errorf("unknown action type %q", action.ActionType)
	}
	if err != nil {
		g.rejectAction(playerID, action.ActionType, err)
		return
	}
	g.runBots()
}

// rejectAction logs a refused action and tells the player why.
// Assumes lock is held by caller.
func (g *UnoGame) rejectAction(playerID uuid.UUID, actionType string, err error) {
	g.log.WithFields(logrus.Fields{"player_id": playerID, "action": actionType}).WithError(err).Warn("action rejected")
	g.fireEventToPlayer(playerID, GameEvent{
		Type:    EventPrivateActionRejected,
		Payload: map[string]interface{}{"action": actionType, "message": err.Error()},
	})
}

// HandleDisconnect marks a player as disconnected. Their seat is kept.
func (g *UnoGame) HandleDisconnect(playerID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if p := g.getPlayerByID(playerID); p != nil {
		p.Connected = false
		g.log.WithField("player_id", playerID).Info("player disconnected")
		g.logAction(playerID, "player_disconnect", nil)
	}
}

// HandleReconnect marks a player as connected and sends them the current state.
func (g *UnoGame) HandleReconnect(playerID uuid.UUID) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	p := g.getPlayerByID(playerID)
	if p == nil {
		g.log.WithField("player_id", playerID).Warn("reconnect from unknown player")
		return
	}
	p.Connected = true
	g.logAction(playerID, "player_reconnect", nil)
	if g.Started {
		g.sendSyncState(playerID)
	}
}

// broadcastPlayerTurn notifies all players of the current player's turn.
// Assumes lock is held by caller.
func (g *UnoGame) broadcastPlayerTurn() {
	current := g.currentPlayerID()
	if current == uuid.Nil {
		return
	}
	h := g.Engine.CurrentHand()
	g.fireEvent(GameEvent{
		Type: EventGamePlayerTurn,
		User: &EventUser{ID: current},
		Payload: map[string]interface{}{
			"turnId":        g.TurnID,
			"colorRequired": h.NeedsColorChoice(),
		},
	})
}

// fireEvent broadcasts an event to all players via the BroadcastFn callback.
// Assumes lock is held by caller.
func (g *UnoGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		g.log.WithField("event", ev.Type).Debug("BroadcastFn is nil, event dropped")
		return
	}
	g.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to a specific connected player via the BroadcastToPlayerFn callback.
// Assumes lock is held by caller.
func (g *UnoGame) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn == nil {
		return
	}
	if p := g.getPlayerByID(playerID); p != nil && p.Connected && !p.IsBot {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// sendSyncState sends the obfuscated state to one player.
// Assumes lock is held by caller.
func (g *UnoGame) sendSyncState(playerID uuid.UUID) {
	state := g.obfuscatedState(playerID)
	g.fireEventToPlayer(playerID, GameEvent{Type: EventPrivateSyncState, State: &state})
}

// broadcastSyncStateToAll sends each player their own view of the game.
// Assumes lock is held by caller.
func (g *UnoGame) broadcastSyncStateToAll() {
	for _, p := range g.Players {
		g.sendSyncState(p.ID)
	}
}

// endHand folds the finished hand's score into the match and either deals
// the next hand or ends the match.
// Assumes lock is held by caller.
func (g *UnoGame) endHand() {
	h := g.Engine.CurrentHand()
	winnerIdx, _ := h.Winner()
	score, _ := h.Score()
	if _, err := g.Engine.UpdateScores(); err != nil {
		g.log.WithError(err).Error("cannot update scores")
		return
	}

	winnerID := g.EngineToPlayer[winnerIdx]
	g.fireEvent(GameEvent{
		Type: EventHandEnd,
		User: &EventUser{ID: winnerID},
		Payload: map[string]interface{}{
			"handNumber": g.Engine.HandNumber(),
			"score":      score,
			"scores":     g.scoresPayload(),
		},
	})
	g.logAction(winnerID, string(EventHandEnd), map[string]interface{}{"handNumber": g.Engine.HandNumber(), "score": score})
	g.log.WithFields(logrus.Fields{"hand": g.Engine.HandNumber(), "winner": winnerID, "score": score}).Info("hand finished")

	if _, over := g.Engine.Winner(); over {
		g.EndGame()
		return
	}
	if err := g.Engine.StartNewHand(); err != nil {
		g.log.WithError(err).Error("cannot deal next hand")
		return
	}
	g.beginHand()
}

// EndGame finalizes the match, broadcasts results and triggers the OnGameEnd callback.
// Assumes lock is held by caller.
func (g *UnoGame) EndGame() {
	if g.GameOver {
		g.log.Debug("EndGame called, but game is already over")
		return
	}
	g.GameOver = true

	winnerIdx, _ := g.Engine.Winner()
	var winner uuid.UUID
	if winnerIdx != engine.NoPlayer {
		winner = g.EngineToPlayer[winnerIdx]
	}
	scores := make(map[uuid.UUID]int, len(g.Players))
	for i, id := range g.EngineToPlayer {
		scores[id] = g.Engine.Score(i)
	}

	g.logAction(uuid.Nil, string(EventGameEnd), map[string]interface{}{"winner": winner, "hands": g.Engine.HandNumber()})
	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		User: &EventUser{ID: winner},
		Payload: map[string]interface{}{
			"winner": winner.String(),
			"scores": g.scoresPayload(),
			"hands":  g.Engine.HandNumber(),
		},
	})
	if g.OnGameEnd != nil {
		g.OnGameEnd(g.LobbyID, winner, scores)
	}
	g.log.WithFields(logrus.Fields{"winner": winner, "hands": g.Engine.HandNumber()}).Info("game ended")
}

// scoresPayload returns cumulative scores keyed by player ID string.
func (g *UnoGame) scoresPayload() map[string]int {
	out := make(map[string]int, len(g.EngineToPlayer))
	for i, id := range g.EngineToPlayer {
		out[id.String()] = g.Engine.Score(i)
	}
	return out
}

// getPlayerByID finds a seated player.
func (g *UnoGame) getPlayerByID(playerID uuid.UUID) *models.Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// logAction records an ordered trace entry for the game.
// Assumes lock is held by caller.
func (g *UnoGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	g.log.WithFields(logrus.Fields{
		"action_index": g.actionIndex,
		"actor":        actorID,
		"action":       actionType,
		"payload":      payload,
	}).Trace("game action")
}
