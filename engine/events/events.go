// Package events defines the event records a turn can emit. Front ends read
// them off the step result to react to deaths, completion and region changes.
package events

// Event types emitted by the engine.
const (
	PlayerDied       = "player_died"
	SessionCompleted = "session_completed"
	RoomEntered      = "room_entered"
	ItemTaken        = "item_taken"
	ItemDropped      = "item_dropped"
	ItemConsumed     = "item_consumed"
	TargetConsumed   = "target_consumed"
)

// Event is a single record emitted during a turn.
type Event struct {
	Type string
	Data map[string]any
}

// New builds an event with the given type and key/value payload pairs.
func New(eventType string, kv ...any) Event {
	data := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			data[key] = kv[i+1]
		}
	}
	return Event{Type: eventType, Data: data}
}

// Find returns the first event of the given type, or false.
func Find(evts []Event, eventType string) (Event, bool) {
	for _, e := range evts {
		if e.Type == eventType {
			return e, true
		}
	}
	return Event{}, false
}
