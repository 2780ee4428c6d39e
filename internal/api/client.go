package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client communicates with the VideoRAG backend over HTTP.
type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client for the given base origin (e.g.
// "http://localhost:8000") and API prefix (e.g. "/api").
func NewClient(baseURL, prefix string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  prefix,
		http:    &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// BaseURL returns the configured base origin.
func (c *Client) BaseURL() string { return c.baseURL }

// Search sends a query payload and parses the response envelope.
// Transport failures come back as *TransportError, decode failures as
// *MalformedResponseError; the caller substitutes the fallback
// envelope in either case.
func (c *Client) Search(ctx context.Context, payload QueryPayload) (Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, &TransportError{Op: "marshal search request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.prefix+"/search", bytes.NewReader(body))
	if err != nil {
		return Envelope{}, &TransportError{Op: "build search request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("search request failed", zap.Error(err))
		return Envelope{}, &TransportError{Op: "search", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, &TransportError{Op: "read search response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("search returned non-OK status", zap.Int("status", resp.StatusCode))
		return Envelope{}, &TransportError{Op: "search", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	env, err := ParseEnvelope(data)
	if err != nil {
		// Distinct from transport failures in the log, same fallback
		// for the user.
		c.logger.Error("malformed search response", zap.Error(err), zap.ByteString("body", data))
		return Envelope{}, err
	}
	return env, nil
}

// UploadRequest describes one footage upload.
type UploadRequest struct {
	FileName string
	Content  io.Reader
	Size     int64
	CameraID string
	// StartTimestamp is the ISO-8601 combined date+time the recording
	// began, e.g. "2026-01-02T09:00:00".
	StartTimestamp string
}

// ProgressFunc receives byte-upload progress as a 0..100 percentage.
type ProgressFunc func(percent int)

// Upload sends a multipart upload and returns the indexing result.
// onProgress, when non-nil, observes transmission progress.
func (c *Client) Upload(ctx context.Context, ur UploadRequest, onProgress ProgressFunc) (UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", ur.FileName)
	if err != nil {
		return UploadResult{}, &TransportError{Op: "build upload form", Err: err}
	}
	if _, err := io.Copy(part, ur.Content); err != nil {
		return UploadResult{}, &TransportError{Op: "read upload file", Err: err}
	}
	if err := w.WriteField("camera_id", ur.CameraID); err != nil {
		return UploadResult{}, &TransportError{Op: "build upload form", Err: err}
	}
	if err := w.WriteField("start_timestamp", ur.StartTimestamp); err != nil {
		return UploadResult{}, &TransportError{Op: "build upload form", Err: err}
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, &TransportError{Op: "build upload form", Err: err}
	}

	body := &progressReader{
		r:          bytes.NewReader(buf.Bytes()),
		total:      int64(buf.Len()),
		onProgress: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.prefix+"/upload", body)
	if err != nil {
		return UploadResult{}, &TransportError{Op: "build upload request", Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.ContentLength = int64(buf.Len())

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upload request failed", zap.Error(err))
		return UploadResult{}, &TransportError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("upload returned non-OK status", zap.Int("status", resp.StatusCode))
		return UploadResult{}, &TransportError{Op: "upload", Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Error("malformed upload response", zap.Error(err))
		return UploadResult{}, &MalformedResponseError{Reason: err.Error()}
	}
	return result, nil
}

// progressReader reports cumulative read progress as a percentage of
// the known total.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.onProgress != nil && p.total > 0 {
			pct := int(math.Round(float64(p.sent) * 100 / float64(p.total)))
			if pct > 100 {
				pct = 100
			}
			p.onProgress(pct)
		}
	}
	return n, err
}

// ResolveMediaURL resolves a result's video URL against the media base
// origin. URLs that already carry a scheme pass through unchanged.
func ResolveMediaURL(base, videoURL string) string {
	if videoURL == "" {
		return ""
	}
	if u, err := url.Parse(videoURL); err == nil && u.IsAbs() {
		return videoURL
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(videoURL, "/") {
		videoURL = "/" + videoURL
	}
	return base + videoURL
}
