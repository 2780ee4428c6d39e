package results

import (
	"math"
	"strings"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
)

// SourceKind distinguishes pre-cut clips from full recordings.
type SourceKind int

const (
	// Clip is a short, pre-trimmed segment already centered on the
	// matched event. Plays from time 0, looped and muted.
	Clip SourceKind = iota
	// FullRecording is a longer continuous recording that needs a seek
	// to reach the matched event.
	FullRecording
)

// PreRollSeconds is subtracted from a full recording's event offset so
// the matched event is visible rather than abrupt.
const PreRollSeconds = 2

// DefaultClipMarkers are the URL path fragments identifying clips.
var DefaultClipMarkers = []string{"/static/clips/", "/clips/"}

// VideoSource is a result's playback source, computed once at
// result-ingestion time and never re-derived.
type VideoSource struct {
	Kind SourceKind
	// Offset is the seek target in seconds. Always 0 for clips.
	Offset float64
}

// ClassifySource computes the playback source for a result. A URL
// containing any of the clip markers is a Clip; everything else is a
// FullRecording whose seek target is the event timestamp minus the
// pre-roll, clamped at 0. A missing or non-finite timestamp seeks to 0.
func ClassifySource(r api.SearchResult, clipMarkers []string) VideoSource {
	if isClipURL(r.VideoURL, clipMarkers) {
		return VideoSource{Kind: Clip}
	}
	offset := 0.0
	if hasFiniteTimestamp(r) {
		offset = math.Max(0, *r.Timestamp-PreRollSeconds)
	}
	return VideoSource{Kind: FullRecording, Offset: offset}
}

// Displayable reports whether a result has a usable video source: a
// clip URL, or a finite offset into a full recording. Results failing
// this are excluded from rendering in every view mode.
func Displayable(r api.SearchResult, clipMarkers []string) bool {
	if r.VideoURL == "" {
		return false
	}
	return isClipURL(r.VideoURL, clipMarkers) || hasFiniteTimestamp(r)
}

func isClipURL(videoURL string, clipMarkers []string) bool {
	if len(clipMarkers) == 0 {
		clipMarkers = DefaultClipMarkers
	}
	for _, m := range clipMarkers {
		if strings.Contains(videoURL, m) {
			return true
		}
	}
	return false
}

func hasFiniteTimestamp(r api.SearchResult) bool {
	return r.Timestamp != nil && !math.IsNaN(*r.Timestamp) && !math.IsInf(*r.Timestamp, 0)
}
