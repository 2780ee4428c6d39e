package results

import (
	"fmt"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
)

// ViewMode selects how an assistant turn's results are rendered.
type ViewMode int

const (
	// Narrative renders the message as prose followed by a card
	// gallery of all displayable results, order preserved.
	Narrative ViewMode = iota
	// Tabular renders the first TabularRowLimit displayable results as
	// compact rows.
	Tabular
)

// TabularRowLimit caps the rows shown in tabular mode.
const TabularRowLimit = 3

// Card is one gallery entry: the result plus its ingestion-time
// classifications.
type Card struct {
	Result  api.SearchResult
	Source  VideoSource
	Verdict Verdict
}

// Row is one tabular entry.
type Row struct {
	Verdict     Verdict
	DisplayTime string
	Description string
}

// Cards applies the hard display filter and maps the survivors into
// gallery cards. Response order is preserved and nothing is truncated.
func Cards(rs []api.SearchResult, clipMarkers []string) []Card {
	var cards []Card
	for _, r := range rs {
		if !Displayable(r, clipMarkers) {
			continue
		}
		cards = append(cards, Card{
			Result:  r,
			Source:  ClassifySource(r, clipMarkers),
			Verdict: Classify(r),
		})
	}
	return cards
}

// Rows maps the first TabularRowLimit displayable results into table
// rows, in response order. Results without a description get the
// camera fallback.
func Rows(rs []api.SearchResult, clipMarkers []string) []Row {
	var rows []Row
	for _, r := range rs {
		if !Displayable(r, clipMarkers) {
			continue
		}
		rows = append(rows, Row{
			Verdict:     Classify(r),
			DisplayTime: r.DisplayTime,
			Description: describeOrFallback(r),
		})
		if len(rows) == TabularRowLimit {
			break
		}
	}
	return rows
}

func describeOrFallback(r api.SearchResult) string {
	if r.Description != "" {
		return r.Description
	}
	return fmt.Sprintf("Event detected on %s", r.CameraID)
}
