package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientSearch(t *testing.T) {
	var gotPayload QueryPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search" {
			t.Errorf("path = %q, want /api/search", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Envelope{Type: TypeChat, Message: "Hi"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/api", nil)
	env, err := c.Search(context.Background(), QueryPayload{Query: "red car", Cameras: []string{"all"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if env.Type != TypeChat || env.Message != "Hi" {
		t.Errorf("envelope = %+v", env)
	}
	if gotPayload.Query != "red car" {
		t.Errorf("server saw query %q", gotPayload.Query)
	}
}

func TestClientSearchTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "/api", nil)
	_, err := c.Search(context.Background(), QueryPayload{Query: "q", Cameras: []string{"all"}})

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Errorf("err = %v, want TransportError", err)
	}
}

func TestClientSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/api", nil)
	_, err := c.Search(context.Background(), QueryPayload{Query: "q", Cameras: []string{"all"}})

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Errorf("err = %v, want TransportError", err)
	}
}

func TestClientSearchMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"no type here"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "/api", nil)
	_, err := c.Search(context.Background(), QueryPayload{Query: "q", Cameras: []string{"all"}})

	var merr *MalformedResponseError
	if !errors.As(err, &merr) {
		t.Errorf("err = %v, want MalformedResponseError", err)
	}
}

func TestClientUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload" {
			t.Errorf("path = %q, want /api/upload", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("camera_id"); got != "cam2" {
			t.Errorf("camera_id = %q", got)
		}
		if got := r.FormValue("start_timestamp"); got != "2026-01-02T09:00:00" {
			t.Errorf("start_timestamp = %q", got)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "footage.mp4" {
			t.Errorf("filename = %q", hdr.Filename)
		}
		json.NewEncoder(w).Encode(UploadResult{Status: "success", FramesIndexed: 42})
	}))
	defer srv.Close()

	content := strings.Repeat("x", 4096)
	var progress []int

	c := NewClient(srv.URL, "/api", nil)
	res, err := c.Upload(context.Background(), UploadRequest{
		FileName:       "footage.mp4",
		Content:        strings.NewReader(content),
		Size:           int64(len(content)),
		CameraID:       "cam2",
		StartTimestamp: "2026-01-02T09:00:00",
	}, func(percent int) {
		progress = append(progress, percent)
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if res.FramesIndexed != 42 {
		t.Errorf("framesIndexed = %d, want 42", res.FramesIndexed)
	}
	if len(progress) == 0 {
		t.Fatal("no progress reported")
	}
	if last := progress[len(progress)-1]; last != 100 {
		t.Errorf("final progress = %d, want 100", last)
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress not monotonic: %v", progress)
			break
		}
	}
}

func TestClientUploadTransportError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "/api", nil)
	_, err := c.Upload(context.Background(), UploadRequest{
		FileName: "x.mp4",
		Content:  strings.NewReader("x"),
		Size:     1,
		CameraID: "cam1",
	}, nil)

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Errorf("err = %v, want TransportError", err)
	}
}

func TestResolveMediaURL(t *testing.T) {
	tests := []struct {
		base, url, want string
	}{
		{"http://localhost:8000", "/static/clips/x.mp4", "http://localhost:8000/static/clips/x.mp4"},
		{"http://localhost:8000/", "/videos/full.mp4", "http://localhost:8000/videos/full.mp4"},
		{"http://localhost:8000", "https://cdn.example.com/v.mp4", "https://cdn.example.com/v.mp4"},
		{"http://localhost:8000", "videos/full.mp4", "http://localhost:8000/videos/full.mp4"},
		{"http://localhost:8000", "", ""},
	}

	for _, tt := range tests {
		if got := ResolveMediaURL(tt.base, tt.url); got != tt.want {
			t.Errorf("ResolveMediaURL(%q, %q) = %q, want %q", tt.base, tt.url, got, tt.want)
		}
	}
}
