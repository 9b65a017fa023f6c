package models

// Artist is a single act on an event's lineup. All fields are
// comparable, so artists can be matched structurally with ==.
type Artist struct {
	Name      string `json:"name"`
	Genre     string `json:"genre"`
	Headliner bool   `json:"headliner"`
}
