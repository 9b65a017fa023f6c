// Package creator holds the draft state for the artist creation
// screen.
package creator

import (
	"sync"

	"github.com/rs/zerolog"

	"beacon/internal/models"
	"beacon/internal/screens"
)

// Creator owns a single draft artist plus the callback to run when the
// user saves. What happens to the saved artist (persistence,
// attachment to an event) is the caller's business; no validation
// happens here.
type Creator struct {
	nav    screens.Navigator
	logger zerolog.Logger

	mu     sync.Mutex
	draft  models.Artist
	onSave func(models.Artist)
}

// New constructs a Creator with a blank draft and a no-op save
// callback.
func New(nav screens.Navigator, logger zerolog.Logger) *Creator {
	return &Creator{
		nav:    nav,
		logger: logger.With().Str("component", "artist_creator").Logger(),
		onSave: func(models.Artist) {},
	}
}

// Launch resets the creator and navigates to the artist-creator
// screen. A nil artist starts a blank draft; otherwise the draft is a
// copy of the supplied artist. A nil onSave keeps the no-op callback.
func (c *Creator) Launch(artist *models.Artist, onSave func(models.Artist)) {
	c.mu.Lock()
	if artist != nil {
		c.draft = *artist
	} else {
		c.draft = models.Artist{}
	}
	if onSave != nil {
		c.onSave = onSave
	} else {
		c.onSave = func(models.Artist) {}
	}
	c.mu.Unlock()

	c.logger.Debug().Str("name", c.Artist().Name).Msg("launching artist creator")
	c.nav.Navigate(screens.ArtistCreator.Name())
}

// Artist returns the current draft snapshot.
func (c *Creator) Artist() models.Artist {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// UpdateName replaces the draft's name.
func (c *Creator) UpdateName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = name
}

// UpdateGenre replaces the draft's genre.
func (c *Creator) UpdateGenre(genre string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Genre = genre
}

// Save hands the current draft snapshot to the stored callback.
func (c *Creator) Save() {
	c.mu.Lock()
	draft := c.draft
	onSave := c.onSave
	c.mu.Unlock()

	c.logger.Debug().Str("name", draft.Name).Str("genre", draft.Genre).Msg("saving artist draft")
	onSave(draft)
}
