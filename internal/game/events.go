// internal/game/events.go
package game

import "github.com/morganrivers/DisasterGame/internal/models"

// EventType is an enum-like type for game event records.
type EventType string

const (
	EventPhaseChanged      EventType = "phase_changed"
	EventRoundStarted      EventType = "round_started"
	EventTurnStarted       EventType = "turn_started"
	EventCardDrawn         EventType = "card_drawn"         // resource draw during preparation
	EventTokenEarned       EventType = "token_earned"       // defended home
	EventDeckEmpty         EventType = "deck_empty"         // visit or hazard draw found nothing
	EventTriggerRoll       EventType = "trigger_roll"       // disaster die after each preparation choice
	EventDisasterTriggered EventType = "disaster_triggered" // first 6 on the disaster die
	EventTurnSkipped       EventType = "turn_skipped"
	EventMoveRolled        EventType = "move_rolled"
	EventTokenSpent        EventType = "token_spent"
	EventMoved             EventType = "moved"
	EventShortcutRoll      EventType = "shortcut_roll"
	EventHazardDrawn       EventType = "hazard_drawn"
	EventHazardBlocked     EventType = "hazard_blocked" // blocker discarded, effect cancelled
	EventHazardApplied     EventType = "hazard_applied"
	EventCardLost          EventType = "card_lost"   // removed from hand by a hazard
	EventPointsLost        EventType = "points_lost" // scoring penalty from a hazard
	EventDeckReshuffled    EventType = "deck_reshuffled"
	EventSafeZoneReached   EventType = "safe_zone_reached"
	EventTradeCompleted    EventType = "trade_completed"
	EventGameEnd           EventType = "game_end"
)

// Event is one record in the game's event stream. Fields are filled
// per type; consumers render or log whatever is present. Cards inside
// events are copies, never live hand state.
type Event struct {
	Type     EventType    `json:"type"`
	Phase    string       `json:"phase,omitempty"`
	Round    int          `json:"round,omitempty"`
	Player   string       `json:"player,omitempty"`
	Partner  string       `json:"partner,omitempty"`
	Card     *models.Card `json:"card,omitempty"`
	Gave     string       `json:"gave,omitempty"`
	Got      string       `json:"got,omitempty"`
	Location string       `json:"location,omitempty"`
	Roll     int          `json:"roll,omitempty"`
	From     int          `json:"from,omitempty"`
	To       int          `json:"to,omitempty"`
	Amount   int          `json:"amount,omitempty"`
	Rank     int          `json:"rank,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Scores   []Score      `json:"scores,omitempty"`
}

// emit hands the event to the sink, if one is installed. Emission is
// synchronous and in occurrence order.
func (s *Session) emit(ev Event) {
	if s.Sink != nil {
		s.Sink(ev)
	}
}
