// Package results turns raw search results into everything the render
// layer needs: a match verdict per result, a playback source
// classification, and the per-view-mode projections.
package results

import "github.com/Inshal-Amir/production-video-rag/internal/api"

// Verdict is the binary match classification of one result.
type Verdict int

const (
	NoMatch Verdict = iota
	Match
)

// MatchThreshold is the score above which a result counts as a match.
// The inequality is strict: a score of exactly 0.4 is NoMatch.
const MatchThreshold = 0.4

// Classify computes the match verdict from a result's score. An absent
// score is treated as 0. Total, never fails.
func Classify(r api.SearchResult) Verdict {
	score := 0.0
	if r.Score != nil {
		score = *r.Score
	}
	if score > MatchThreshold {
		return Match
	}
	return NoMatch
}
