// Package screens enumerates the application's navigable screens.
package screens

import "fmt"

// Screen identifies one navigable screen.
type Screen int

const (
	// ConcertPlanner is the default landing screen.
	ConcertPlanner Screen = iota
	ConcertHistory
	EventEditor
	ArtistCreator
	Settings
)

// Navigator moves the UI to a named screen. Implemented by the app
// shell; consumed here so state holders never touch navigation
// machinery directly.
type Navigator interface {
	Navigate(screen string)
}

var names = map[Screen]string{
	ConcertPlanner: "CONCERT_PLANNER",
	ConcertHistory: "CONCERT_HISTORY",
	EventEditor:    "EVENT_EDITOR",
	ArtistCreator:  "ARTIST_CREATOR",
	Settings:       "SETTINGS",
}

var titles = map[Screen]string{
	ConcertPlanner: "Upcoming Concerts",
	ConcertHistory: "Concert History",
	EventEditor:    "Edit Event",
	ArtistCreator:  "New Artist",
	Settings:       "Settings",
}

// Name returns the screen's stable identifier, used for navigation
// routes and persistence.
func (s Screen) Name() string {
	if name, ok := names[s]; ok {
		return name
	}
	return names[ConcertPlanner]
}

// Title returns the screen's display title.
func (s Screen) Title() string {
	if title, ok := titles[s]; ok {
		return title
	}
	return titles[ConcertPlanner]
}

// FromTitle resolves a screen by display title. Titles are fixed at
// compile time, so an unknown title is a configuration bug and
// returns an error.
func FromTitle(title string) (Screen, error) {
	for s, t := range titles {
		if t == title {
			return s, nil
		}
	}
	return ConcertPlanner, fmt.Errorf("unknown screen title %q", title)
}

// FromName resolves a screen by stable name, falling back to
// ConcertPlanner when the name is missing or unknown. Stored names may
// come from old persisted state, so degrading beats failing.
func FromName(name string) Screen {
	for s, n := range names {
		if n == name {
			return s
		}
	}
	return ConcertPlanner
}
