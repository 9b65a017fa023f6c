package models

import "time"

// Event represents a tracked concert: its lineup, when and where it
// happens, and whether a ticket has been purchased.
type Event struct {
	ID        string    `json:"id,omitempty"` // Assigned by the store on create
	Artists   []Artist  `json:"artists"`      // Ordered lineup; at most one headliner
	Date      time.Time `json:"date"`
	Venue     Venue     `json:"venue"`
	Purchased bool      `json:"purchased"`
}

// Clone returns a deep copy of the event. The returned value shares no
// mutable state with the receiver, so editing one never leaks into the
// other.
func (e Event) Clone() Event {
	out := e
	if e.Artists != nil {
		out.Artists = make([]Artist, len(e.Artists))
		copy(out.Artists, e.Artists)
	}
	return out
}

// Headliner returns the artist currently flagged as headliner, if any.
func (e Event) Headliner() (Artist, bool) {
	for _, a := range e.Artists {
		if a.Headliner {
			return a, true
		}
	}
	return Artist{}, false
}
