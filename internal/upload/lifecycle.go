// Package upload models one in-flight footage upload as an explicit
// state machine: Idle → Uploading → Processing → Success | Error →
// Idle. At most one job exists at a time; starting a new upload
// overwrites the old one (last-writer-wins, no queueing).
package upload

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
)

// Status is the job's lifecycle state.
type Status int

const (
	Idle Status = iota
	Uploading
	Processing
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Uploading:
		return "uploading"
	case Processing:
		return "processing"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// AutoDismissAfter is how long a Success toast stays up before the job
// returns to Idle. Errors stay until dismissed manually.
const AutoDismissAfter = 5 * time.Second

// Job is the publicly observable upload state.
type Job struct {
	ID       uuid.UUID
	FileName string
	Status   Status
	Progress int // 0..100
	Message  string
}

// Lifecycle is the single-writer state machine for the one modeled
// upload job.
type Lifecycle struct {
	job Job
}

// New creates a Lifecycle in the Idle state.
func New() *Lifecycle {
	return &Lifecycle{job: Job{Status: Idle}}
}

// Job returns the current job snapshot.
func (l *Lifecycle) Job() Job { return l.job }

// Start begins a new upload, overwriting any job already in flight.
// Any pending auto-dismiss timer for the previous job is implicitly
// cancelled because its job id no longer matches. Returns the new job.
func (l *Lifecycle) Start(fileName string) Job {
	l.job = Job{
		ID:       uuid.New(),
		FileName: fileName,
		Status:   Uploading,
		Progress: 0,
		Message:  "Starting upload...",
	}
	return l.job
}

// SetProgress records byte-transmission progress for the given job.
// Updates for a superseded job id are dropped. Progress is clamped to
// the last-seen maximum so out-of-order delivery cannot move the bar
// backwards. Reaching 100 transitions Uploading → Processing — the
// transition is purely a function of progress, no server signal is
// required.
func (l *Lifecycle) SetProgress(jobID uuid.UUID, percent int) {
	if l.job.ID != jobID || l.job.Status != Uploading {
		return
	}
	if percent < l.job.Progress {
		percent = l.job.Progress
	}
	if percent > 100 {
		percent = 100
	}
	l.job.Progress = percent
	if percent == 100 {
		l.job.Status = Processing
	}
}

// Complete records the server's completion response. The message is
// the reported indexed-frame count; an absent count reads as 0.
func (l *Lifecycle) Complete(jobID uuid.UUID, framesIndexed int) {
	if l.job.ID != jobID {
		return
	}
	if l.job.Status != Processing && l.job.Status != Uploading {
		return
	}
	l.job.Status = Success
	l.job.Progress = 100
	l.job.Message = fmt.Sprintf("Indexed %d frames.", framesIndexed)
}

// Fail records a transport or server failure. Server-specific detail
// is not surfaced to the user.
func (l *Lifecycle) Fail(jobID uuid.UUID) {
	if l.job.ID != jobID {
		return
	}
	if l.job.Status != Uploading && l.job.Status != Processing {
		return
	}
	l.job.Status = Error
	l.job.Message = "Upload failed."
}

// Dismiss returns a finished job to Idle. Manual dismissal; idempotent
// with the auto-dismiss timer.
func (l *Lifecycle) Dismiss() {
	if l.job.Status == Success || l.job.Status == Error {
		l.job = Job{Status: Idle}
	}
}

// AutoDismiss fires from the timer scheduled on entering Success. It
// only dismisses the job it was scheduled for, and only from Success —
// errors wait for the user.
func (l *Lifecycle) AutoDismiss(jobID uuid.UUID) {
	if l.job.ID != jobID || l.job.Status != Success {
		return
	}
	l.job = Job{Status: Idle}
}

// Request holds the validated upload form fields.
type Request struct {
	FilePath string
	CameraID string
	// StartTimestamp is the combined date+time, e.g. "2026-01-02T09:00:00".
	StartTimestamp string
}

// BuildRequest validates the upload form and builds the request.
// Missing file, camera, or date+time fails fast with a ValidationError
// before anything touches the network.
func BuildRequest(filePath, cameraID, date, timeOfDay string) (Request, error) {
	filePath = strings.TrimSpace(filePath)
	if filePath == "" {
		return Request{}, &api.ValidationError{Field: "file", Reason: "missing"}
	}
	if strings.TrimSpace(cameraID) == "" {
		return Request{}, &api.ValidationError{Field: "camera_id", Reason: "missing"}
	}
	date = strings.TrimSpace(date)
	timeOfDay = strings.TrimSpace(timeOfDay)
	if date == "" || timeOfDay == "" {
		return Request{}, &api.ValidationError{Field: "start_timestamp", Reason: "missing date or time"}
	}
	return Request{
		FilePath:       filePath,
		CameraID:       cameraID,
		StartTimestamp: date + "T" + timeOfDay + ":00",
	}, nil
}
