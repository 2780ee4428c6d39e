package app

import (
	"github.com/google/uuid"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
)

// SearchResponseMsg carries a parsed response envelope for the search
// request identified by Tag. Responses whose tag no longer matches the
// active request are discarded.
type SearchResponseMsg struct {
	Tag      uuid.UUID
	Envelope api.Envelope
}

// SearchErrorMsg is sent when a search request fails at the transport
// or parse level.
type SearchErrorMsg struct {
	Tag uuid.UUID
	Err error
}

// UploadProgressMsg carries byte-transmission progress for an upload job.
type UploadProgressMsg struct {
	JobID   uuid.UUID
	Percent int
}

// UploadDoneMsg carries the completion response for an upload job.
type UploadDoneMsg struct {
	JobID  uuid.UUID
	Result api.UploadResult
}

// UploadErrorMsg is sent when an upload fails.
type UploadErrorMsg struct {
	JobID uuid.UUID
	Err   error
}

// UploadDismissTickMsg fires five seconds after a job entered Success.
// Stale job ids are ignored.
type UploadDismissTickMsg struct {
	JobID uuid.UUID
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
