package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// DefaultPriority is applied when a request leaves the priority unset.
const DefaultPriority = 5

var (
	// ErrInvalidEvent is the root of all event validation errors.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrEmptyTitle is returned when an event title is empty after trimming.
	ErrEmptyTitle = fmt.Errorf("%w: title must not be empty", ErrInvalidEvent)
)

var validate = validator.New()

// Event is a single agenda entry. Identity is the ID assigned at creation
// and survives every field edit.
type Event struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Priority    int       `json:"priority"`
	Notified    bool      `json:"notified"`
}

// MarshalJSON adds the computed category color, so display collaborators
// reading the HTTP API or the reminder channel never re-derive the
// palette mapping.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	return json.Marshal(struct {
		alias
		Color string `json:"color"`
	}{alias(e), CategoryColor(e.Category)})
}

// EventRequest carries the caller-supplied fields for create and update.
type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Priority    int       `json:"priority" validate:"min=1,max=10"`
}

// Validate normalizes and checks the request. A zero priority is replaced
// with DefaultPriority before range validation.
func (r *EventRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if r.Priority == 0 {
		r.Priority = DefaultPriority
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	return nil
}

// NewEvent builds an event from a validated request with a fresh identity.
func NewEvent(req *EventRequest) Event {
	return Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		Location:    req.Location,
		Category:    req.Category,
		Priority:    req.Priority,
	}
}
