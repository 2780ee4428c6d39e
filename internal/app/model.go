// Package app wires the VideoRAG terminal client together: one
// bubbletea model owning the filter state, the conversation log, the
// upload lifecycle, and per-result playback controllers.
package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
	"github.com/Inshal-Amir/production-video-rag/internal/config"
	"github.com/Inshal-Amir/production-video-rag/internal/convo"
	"github.com/Inshal-Amir/production-video-rag/internal/filter"
	"github.com/Inshal-Amir/production-video-rag/internal/playback"
	"github.com/Inshal-Amir/production-video-rag/internal/results"
	"github.com/Inshal-Amir/production-video-rag/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
)

// PanelFocus tracks which panel has keyboard focus.
type PanelFocus int

const (
	FocusInput PanelFocus = iota
	FocusResults
	FocusSidebar
)

// gallery is the rendered result set of one assistant turn: the
// displayable cards plus one playback controller each, built once at
// response-ingestion time.
type gallery struct {
	cards       []results.Card
	controllers []*playback.Controller
}

// uploadForm holds the upload modal's widget state.
type uploadForm struct {
	field     int // 0 camera, 1 date, 2 time, 3 file path
	cameraIdx int
	date      string
	timeOfDay string
	filePath  string
	status    string
}

const (
	formFieldCamera = iota
	formFieldDate
	formFieldTime
	formFieldFile
	formFieldCount
)

// Model is the root bubbletea model for the VideoRAG TUI.
type Model struct {
	cfg    *config.Config
	client *api.Client
	logger *zap.Logger
	player playback.Player

	filters *filter.Model
	store   *convo.Store
	uploads *upload.Lifecycle

	// Query input
	input        []rune
	searching    bool
	activeSearch uuid.UUID

	// Result display. Keyed by turn index in the conversation store.
	viewModes  map[int]results.ViewMode
	galleries  map[int]gallery
	selTurn    int // selected gallery turn, -1 when none
	selCard    int
	activeTurn int // card currently eligible to play, -1 when none
	activeCard int

	// Upload
	showUpload bool
	form       uploadForm
	progressCh chan int

	// UI state
	focus         PanelFocus
	sidebarCursor int
	width         int
	height        int
	chatScroll    int
	chatLive      bool

	// Errors
	errorMessage   string
	errorTransient bool
}

// New creates a Model with default state.
func New(cfg *config.Config, client *api.Client, player playback.Player, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Model{
		cfg:        cfg,
		client:     client,
		logger:     logger,
		player:     player,
		filters:    filter.New(cfg.Cameras.Roster),
		store:      convo.New(),
		uploads:    upload.New(),
		viewModes:  make(map[int]results.ViewMode),
		galleries:  make(map[int]gallery),
		selTurn:    -1,
		activeTurn: -1,
		chatLive:   true,
		form:       newUploadForm(),
	}
}

func newUploadForm() uploadForm {
	return uploadForm{
		date:      time.Now().Format("2006-01-02"),
		timeOfDay: "09:00",
	}
}

// Init returns the initial command. Nothing to do until the user acts.
func (m Model) Init() tea.Cmd {
	return nil
}

// searchCmd sends the query and reports the envelope, tagged so stale
// responses can be discarded.
func searchCmd(client *api.Client, payload api.QueryPayload, tag uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		env, err := client.Search(context.Background(), payload)
		if err != nil {
			return SearchErrorMsg{Tag: tag, Err: err}
		}
		return SearchResponseMsg{Tag: tag, Envelope: env}
	}
}

// uploadCmd runs the whole upload in the background, streaming progress
// percentages into ch. ch is closed when the transfer ends, before the
// final message is delivered.
func uploadCmd(client *api.Client, req upload.Request, jobID uuid.UUID, ch chan int) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(req.FilePath)
		if err != nil {
			close(ch)
			return UploadErrorMsg{JobID: jobID, Err: err}
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			close(ch)
			return UploadErrorMsg{JobID: jobID, Err: err}
		}

		result, err := client.Upload(context.Background(), api.UploadRequest{
			FileName:       info.Name(),
			Content:        f,
			Size:           info.Size(),
			CameraID:       req.CameraID,
			StartTimestamp: req.StartTimestamp,
		}, func(percent int) {
			select {
			case ch <- percent:
			default: // drop rather than stall the transfer
			}
		})
		close(ch)
		if err != nil {
			return UploadErrorMsg{JobID: jobID, Err: err}
		}
		return UploadDoneMsg{JobID: jobID, Result: result}
	}
}

// listenProgressCmd reads the next progress percentage. Re-armed from
// Update after each message; stops silently once ch is closed.
func listenProgressCmd(ch chan int, jobID uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		percent, ok := <-ch
		if !ok {
			return nil
		}
		return UploadProgressMsg{JobID: jobID, Percent: percent}
	}
}

// dismissTickCmd schedules the success toast auto-dismiss.
func dismissTickCmd(jobID uuid.UUID) tea.Cmd {
	return tea.Tick(upload.AutoDismissAfter, func(time.Time) tea.Msg {
		return UploadDismissTickMsg{JobID: jobID}
	})
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any
// commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SearchResponseMsg:
		if msg.Tag != m.activeSearch {
			return m, nil // a newer request redefined the active turn
		}
		m.searching = false
		m.appendAssistantTurn(msg.Envelope)
		return m, nil

	case SearchErrorMsg:
		if msg.Tag != m.activeSearch {
			return m, nil
		}
		m.searching = false
		m.logger.Warn("search failed, substituting fallback", zap.Error(msg.Err))
		m.appendAssistantTurn(api.FallbackEnvelope())
		return m, nil

	case UploadProgressMsg:
		m.uploads.SetProgress(msg.JobID, msg.Percent)
		return m, listenProgressCmd(m.progressCh, msg.JobID)

	case UploadDoneMsg:
		m.uploads.Complete(msg.JobID, msg.Result.FramesIndexed)
		if m.uploads.Job().Status == upload.Success {
			return m, dismissTickCmd(msg.JobID)
		}
		return m, nil

	case UploadErrorMsg:
		m.logger.Warn("upload failed", zap.Error(msg.Err))
		m.uploads.Fail(msg.JobID)
		return m, nil

	case UploadDismissTickMsg:
		m.uploads.AutoDismiss(msg.JobID)
		return m, nil

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// submitQuery composes and sends the current input line.
func (m *Model) submitQuery() tea.Cmd {
	payload, err := api.Compose(string(m.input), m.filters.Payload())
	if err != nil {
		m.errorMessage = "Type a question first."
		m.errorTransient = true
		return clearTransientErrorCmd()
	}

	m.store.Append(convo.Turn{Role: convo.User, Text: payload.Query})
	m.input = m.input[:0]
	m.searching = true
	m.activeSearch = uuid.New()
	m.chatLive = true
	return searchCmd(m.client, payload, m.activeSearch)
}

// appendAssistantTurn records a response envelope as an assistant turn
// and, for search envelopes, builds the turn's gallery: displayable
// cards with their source classification and playback controllers.
func (m *Model) appendAssistantTurn(env api.Envelope) {
	idx := m.store.Len()
	m.store.Append(convo.Turn{Role: convo.Assistant, Text: env.Message, Results: env.Results})

	cards := results.Cards(env.Results, m.cfg.Media.ClipMarkers)
	if len(cards) == 0 {
		return
	}

	controllers := make([]*playback.Controller, len(cards))
	for i, c := range cards {
		controllers[i] = playback.NewController(c.Result, m.cfg.Media.ClipMarkers, m.client.BaseURL(), m.player)
	}
	m.galleries[idx] = gallery{cards: cards, controllers: controllers}
	m.viewModes[idx] = results.Narrative
	m.selTurn = idx
	m.selCard = 0
}

// setActiveCard moves the single active-card slot. The previous
// controller pauses, the new one seeks and plays.
func (m *Model) setActiveCard(turn, card int) {
	if m.activeTurn == turn && m.activeCard == card {
		return
	}
	m.deactivateCard()

	g, ok := m.galleries[turn]
	if !ok || card < 0 || card >= len(g.controllers) {
		return
	}
	m.activeTurn = turn
	m.activeCard = card
	if err := g.controllers[card].Activate(); err != nil {
		m.logger.Warn("playback activation failed", zap.Error(err))
	}
}

func (m *Model) deactivateCard() {
	if m.activeTurn < 0 {
		return
	}
	if g, ok := m.galleries[m.activeTurn]; ok && m.activeCard < len(g.controllers) {
		g.controllers[m.activeCard].Deactivate()
	}
	m.activeTurn = -1
	m.activeCard = -1
}

// clearChat wipes the conversation and everything hanging off it,
// then re-seeds the greeting turn.
func (m *Model) clearChat() {
	m.deactivateCard()
	m.store = convo.New()
	m.viewModes = make(map[int]results.ViewMode)
	m.galleries = make(map[int]gallery)
	m.selTurn = -1
	m.selCard = 0
	m.chatScroll = 0
	m.chatLive = true
}

// galleryTurns returns the indices of turns that have a gallery, in
// conversation order.
func (m Model) galleryTurns() []int {
	var idxs []int
	for i := 0; i < m.store.Len(); i++ {
		if _, ok := m.galleries[i]; ok {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// startUpload validates the form and kicks off the transfer. A
// validation failure stays local: no request is sent and no job state
// changes.
func (m *Model) startUpload() tea.Cmd {
	roster := m.filters.Roster()
	cameraID := ""
	if m.form.cameraIdx < len(roster) {
		cameraID = roster[m.form.cameraIdx]
	}

	req, err := upload.BuildRequest(m.form.filePath, cameraID, m.form.date, m.form.timeOfDay)
	if err != nil {
		m.form.status = "Please fill all fields."
		return nil
	}

	job := m.uploads.Start(filepath.Base(req.FilePath))
	m.progressCh = make(chan int, 16)
	m.showUpload = false
	m.form = newUploadForm()

	return tea.Batch(
		uploadCmd(m.client, req, job.ID, m.progressCh),
		listenProgressCmd(m.progressCh, job.ID),
	)
}
