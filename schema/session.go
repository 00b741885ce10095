package schema

import "time"

// Turn is a single input/output exchange within a Session.
type Turn struct {
	Input     Message
	Output    Message
	Timestamp time.Time
	Metadata  map[string]any
}

// Session accumulates the Turns of a multi-turn conversation along with
// freeform state carried between turns (e.g. agent scratch state).
type Session struct {
	ID        string
	Turns     []Turn
	State     map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
