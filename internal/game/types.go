// internal/game/types.go
//
// Core type definitions for the placement and scoring engine.
// Defines:
//   - Mark: per-slot correctness (empty/correct/incorrect).
//   - Token, Slot, Container: the pieces on the table.
//   - Game: state for a single play session.
//   - Outcome, Event, Completion, Result: what a transition reports.

package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/pillgame/apps/go-server/internal/catalog"
)

// Mark is the tri-state correctness of a slot.
// Possible values:
//   - "empty":     slot holds no token.
//   - "correct":   slot holds a token its container accepts.
//   - "incorrect": slot holds a token its container does not accept.
type Mark string

const (
	MarkEmpty     Mark = "empty"
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

// Token is a medication pill. Tokens are immutable once created.
type Token struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Category string `json:"category"`
}

// Slot is one pocket of a blister pack.
type Slot struct {
	ID    int    `json:"id"`
	Token *Token `json:"token"` // nil while empty
	Mark  Mark   `json:"mark"`
}

// Empty reports whether the slot holds no token.
func (s Slot) Empty() bool { return s.Token == nil }

// Container is a blister pack for one condition.
type Container struct {
	ID        int                        `json:"id"`
	Condition string                     `json:"condition"`
	Icon      string                     `json:"icon"`
	Accepted  []string                   `json:"accepted"` // never modified after New
	Slots     [catalog.SlotsPerPack]Slot `json:"slots"`
}

// accepts reports whether the token name is correct for this container.
func (c *Container) accepts(name string) bool {
	for _, n := range c.Accepted {
		if n == name {
			return true
		}
	}
	return false
}

// slot returns a pointer to the slot with the given id, or nil.
func (c *Container) slot(id int) *Slot {
	for i := range c.Slots {
		if c.Slots[i].ID == id {
			return &c.Slots[i]
		}
	}
	return nil
}

// Game holds the state of a single session.
type Game struct {
	Pool       []Token     `json:"pool"`       // available tokens, in display order
	Containers []Container `json:"containers"` // blister packs, in display order
	Score      int         `json:"score"`      // running total, not clamped
	Completed  bool        `json:"completed"`  // every slot holds a token

	catalog *catalog.Catalog // source for Reset; read-only
}

// Outcome classifies the result of a transition.
type Outcome string

const (
	OutcomeCorrect           Outcome = "correct"
	OutcomeIncorrect         Outcome = "incorrect"
	OutcomeRemoved           Outcome = "removed"
	OutcomeReset             Outcome = "reset"
	OutcomeOccupied          Outcome = "occupied"
	OutcomeTokenNotAvailable Outcome = "token_not_available"
	OutcomeNothingToRemove   Outcome = "nothing_to_remove"
	OutcomeNotFound          Outcome = "not_found"
)

// Completion summarizes a finished board.
type Completion struct {
	Correct int  `json:"correct"`
	Total   int  `json:"total"`
	Perfect bool `json:"perfect"`
}

// EventKind is the discrete feedback tag consumed by presentation layers.
type EventKind string

const (
	EventCorrect          EventKind = "correct"
	EventIncorrect        EventKind = "incorrect"
	EventOccupied         EventKind = "occupied"
	EventRemoved          EventKind = "removed"
	EventCompletedPerfect EventKind = "completed-perfect"
	EventCompletedPartial EventKind = "completed-partial"
)

// Event is a feedback tag. Count is set only for EventCompletedPartial.
type Event struct {
	Kind  EventKind
	Count int
}

// String renders the wire form, e.g. "correct" or "completed-partial:6".
func (e Event) String() string {
	if e.Kind == EventCompletedPartial {
		return string(e.Kind) + ":" + strconv.Itoa(e.Count)
	}
	return string(e.Kind)
}

// MarshalText encodes the event in its wire form.
func (e Event) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText parses the wire form produced by String.
func (e *Event) UnmarshalText(b []byte) error {
	s := string(b)
	if rest, ok := strings.CutPrefix(s, string(EventCompletedPartial)+":"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("event %q: %w", s, err)
		}
		*e = Event{Kind: EventCompletedPartial, Count: n}
		return nil
	}
	switch k := EventKind(s); k {
	case EventCorrect, EventIncorrect, EventOccupied, EventRemoved, EventCompletedPerfect:
		*e = Event{Kind: k}
		return nil
	}
	return fmt.Errorf("unknown event %q", s)
}

// Event maps a completion to its feedback tag.
func (c Completion) Event() Event {
	if c.Perfect {
		return Event{Kind: EventCompletedPerfect}
	}
	return Event{Kind: EventCompletedPartial, Count: c.Correct}
}

// Result is what a transition reports back to the caller.
type Result struct {
	Outcome    Outcome     `json:"outcome"`
	Token      *Token      `json:"token,omitempty"`      // token placed or removed
	Condition  string      `json:"condition,omitempty"`  // condition of the target container
	Delta      int         `json:"delta"`                // score change applied
	Completion *Completion `json:"completion,omitempty"` // set when this placement filled the board
}

// Events lists the feedback tags for this result, in display order.
// Rejections other than an occupied slot produce no events.
func (r Result) Events() []Event {
	var out []Event
	switch r.Outcome {
	case OutcomeCorrect:
		out = append(out, Event{Kind: EventCorrect})
	case OutcomeIncorrect:
		out = append(out, Event{Kind: EventIncorrect})
	case OutcomeOccupied:
		out = append(out, Event{Kind: EventOccupied})
	case OutcomeRemoved:
		out = append(out, Event{Kind: EventRemoved})
	}
	if r.Completion != nil {
		out = append(out, r.Completion.Event())
	}
	return out
}
