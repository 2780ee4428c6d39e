// Package playback drives per-result video playback: clip vs full
// recording source handling, seek targeting, and a play/pause state
// machine tied to card focus.
package playback

import (
	"fmt"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
	"github.com/Inshal-Amir/production-video-rag/internal/results"
)

// State is the controller's playback state.
type State int

const (
	Idle State = iota
	Seeking
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Seeking:
		return "seeking"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Options carries playback flags to the player.
type Options struct {
	// Loop restarts playback at the end. Set for clips.
	Loop bool
	// Muted disables audio. Set for clips to satisfy autoplay policies.
	Muted bool
}

// Player is the playback surface the controller drives. Seek must
// block until the position is reached; Play must not be reported as
// started before Seek returns.
type Player interface {
	Seek(url string, seconds float64) error
	Play(url string, opts Options) error
	Pause() error
}

// Controller runs the playback state machine for one rendered result.
// The source classification happens once at construction and is never
// re-derived.
type Controller struct {
	source results.VideoSource
	url    string
	player Player

	state State
	err   string
}

// NewController builds a controller for a result. The video URL is
// resolved against baseURL once, up front.
func NewController(r api.SearchResult, clipMarkers []string, baseURL string, player Player) *Controller {
	return &Controller{
		source: results.ClassifySource(r, clipMarkers),
		url:    api.ResolveMediaURL(baseURL, r.VideoURL),
		player: player,
		state:  Idle,
	}
}

// State returns the current playback state.
func (c *Controller) State() State { return c.state }

// Source returns the ingestion-time source classification.
func (c *Controller) Source() results.VideoSource { return c.source }

// URL returns the resolved media URL.
func (c *Controller) URL() string { return c.url }

// Err returns the last playback error message, or "".
func (c *Controller) Err() string { return c.err }

// Activate fires when the hosting card becomes the active one. From
// Idle or Paused it seeks (full recordings only) and starts playback.
// Already playing or mid-seek, it is a no-op.
func (c *Controller) Activate() error {
	switch c.state {
	case Playing, Seeking:
		return nil
	}

	c.state = Seeking
	c.err = ""

	if c.source.Kind == results.FullRecording {
		if err := c.player.Seek(c.url, c.source.Offset); err != nil {
			return c.fail("seek", err)
		}
	}

	opts := Options{}
	if c.source.Kind == results.Clip {
		// Clips are pre-trimmed and self-contained: start at 0,
		// looped, muted.
		opts = Options{Loop: true, Muted: true}
	}
	if err := c.player.Play(c.url, opts); err != nil {
		return c.fail("play", err)
	}

	c.state = Playing
	return nil
}

// Deactivate fires when the card loses active status, or on explicit
// pause/end. Playing or Seeking moves to Paused; elsewhere it is a
// no-op.
func (c *Controller) Deactivate() {
	if c.state != Playing && c.state != Seeking {
		return
	}
	if err := c.player.Pause(); err != nil {
		// A pause failure still parks the card.
		c.err = err.Error()
	}
	c.state = Paused
}

// fail parks the controller in Paused with an error affordance. A
// playback-source error never crashes the controller.
func (c *Controller) fail(op string, err error) error {
	c.state = Paused
	c.err = fmt.Sprintf("%s: %v", op, err)
	return fmt.Errorf("%s: %w", op, err)
}
