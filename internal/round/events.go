package round

import "time"

// EventType names a round lifecycle event.
type EventType string

const (
	EventRoundStarted EventType = "round_started"
	EventLifeLost     EventType = "life_lost"
	EventHighScore    EventType = "high_score"
	EventRoundEnded   EventType = "round_ended"
)

// Event is published to a Sink when something notable happens in a round.
type Event struct {
	Type       EventType `json:"type"`
	RoundID    string    `json:"round_id"`
	Mode       string    `json:"mode"`
	Score      int       `json:"score"`
	HighScore  int       `json:"high_score"`
	Misses     int       `json:"misses"`
	Experience int       `json:"experience"`
	Time       time.Time `json:"time"`
}

// Sink receives round events. Publish must not block the tick loop.
type Sink interface {
	Publish(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Publish calls f(ev).
func (f SinkFunc) Publish(ev Event) { f(ev) }
