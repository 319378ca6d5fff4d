package event

// Type identifies a game event
type Type uint8

const (
	EventNone Type = iota

	// Input events produced by the host poll loop
	EventKeyPressed
	EventResized

	// Control events produced by systems
	EventQuitRequested
	EventReloadRequested
)

// Event is one queued occurrence. Payload shape depends on Type:
// EventKeyPressed carries KeyPayload, EventResized carries SizePayload
type Event struct {
	Type    Type
	Payload any
}

// KeyPayload carries one key press
type KeyPayload struct {
	Rune rune
	Name string // tcell key name for non-rune keys
}

// SizePayload carries the new terminal dimensions
type SizePayload struct {
	Width, Height int
}
