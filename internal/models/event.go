package models

// EventFunctions holds the per-event feature toggles
type EventFunctions struct {
	CurrencyConverter bool `json:"currencyConverter"`
	Map               bool `json:"map"`
	Voting            bool `json:"voting"`
	Comments          bool `json:"comments"`
}

// DefaultEventFunctions returns the feature set assigned to new events
func DefaultEventFunctions() EventFunctions {
	return EventFunctions{CurrencyConverter: true}
}

// Event represents a single event inside the shared events document.
// Password is the plaintext access password; empty means the event is open.
type Event struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Password  string         `json:"password"`
	CreatedAt string         `json:"createdAt"`
	Functions EventFunctions `json:"functions"`
}

// HasPassword reports whether opening the event requires a password
func (e *Event) HasPassword() bool {
	return e.Password != ""
}

// EventCard is the grid view of an event. Password is only populated for
// admin callers, so the edit form can be prefilled.
type EventCard struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	CreatedAt     string         `json:"createdAt"`
	HasPassword   bool           `json:"hasPassword"`
	LastVisitedAt int64          `json:"lastVisitedAt"` // unix milliseconds, 0 = never visited
	Functions     EventFunctions `json:"functions"`
	Password      string         `json:"password,omitempty"`
}

// CreateEventRequest represents an event creation request body
type CreateEventRequest struct {
	Title    string `json:"title"`
	Password string `json:"password"`
}

// EditEventRequest represents an event edit request body.
// An empty password clears the event's password protection.
type EditEventRequest struct {
	Title    string `json:"title"`
	Password string `json:"password"`
}

// OpenEventRequest represents an event open request body
type OpenEventRequest struct {
	Password string `json:"password"`
}
