// Package api provides the client and protocol types for communicating
// with the VideoRAG backend over HTTP/JSON.
package api

// QueryPayload is the request body for a search.
type QueryPayload struct {
	Query     string   `json:"query"`
	Cameras   []string `json:"cameras"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
}

// Envelope is the uniform response shape returned for both
// conversational and search-style answers.
type Envelope struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Results []SearchResult `json:"results,omitempty"`
}

// Envelope types.
const (
	TypeChat   = "chat"
	TypeSearch = "search"
)

// SearchResult is one ranked video segment in a search envelope.
type SearchResult struct {
	VideoID     string   `json:"video_id"`
	CameraID    string   `json:"camera_id"`
	VideoURL    string   `json:"video_url"`
	Timestamp   *float64 `json:"timestamp_sortable,omitempty"`
	DisplayDate string   `json:"display_date,omitempty"`
	DisplayTime string   `json:"display_time,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Description string   `json:"description,omitempty"`
}

// UploadResult is the response body of a completed upload.
type UploadResult struct {
	Status        string `json:"status,omitempty"`
	FramesIndexed int    `json:"frames_indexed"`
}

// Float64Ptr returns a pointer to a float64 value. Convenience for
// building results.
func Float64Ptr(f float64) *float64 { return &f }
