package api

import (
	"encoding/json"
	"strings"

	"github.com/Inshal-Amir/production-video-rag/internal/filter"
)

// Compose builds a search request from free-text input and a
// normalized filter payload. It fails with a ValidationError if the
// text is empty after trimming. Pure, no I/O.
func Compose(text string, f filter.Payload) (QueryPayload, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QueryPayload{}, &ValidationError{Field: "query", Reason: "empty"}
	}

	cameras := f.Cameras
	if len(cameras) == 0 {
		cameras = []string{filter.AllCameras}
	}

	return QueryPayload{
		Query:     text,
		Cameras:   cameras,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		StartTime: f.StartTime,
		EndTime:   f.EndTime,
	}, nil
}

// ParseEnvelope decodes a response envelope. It fails with a
// MalformedResponseError if the type discriminator is missing. It never
// fabricates content; connectivity fallbacks are the caller's job.
func ParseEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, &MalformedResponseError{Reason: err.Error()}
	}
	if env.Type == "" {
		return Envelope{}, &MalformedResponseError{Reason: "missing type field"}
	}
	return env, nil
}

// FallbackEnvelope is the envelope substituted by callers when the
// backend is unreachable. Surfaced as an assistant turn like any
// normal response.
func FallbackEnvelope() Envelope {
	return Envelope{
		Type:    TypeChat,
		Message: "Sorry, I lost connection to the server.",
		Results: []SearchResult{},
	}
}
