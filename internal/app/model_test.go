package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Inshal-Amir/production-video-rag/internal/api"
	"github.com/Inshal-Amir/production-video-rag/internal/config"
	"github.com/Inshal-Amir/production-video-rag/internal/convo"
	"github.com/Inshal-Amir/production-video-rag/internal/playback"
	"github.com/Inshal-Amir/production-video-rag/internal/results"
	"github.com/Inshal-Amir/production-video-rag/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
)

// nullPlayer accepts every playback call.
type nullPlayer struct {
	plays  int
	pauses int
}

func (p *nullPlayer) Seek(string, float64) error          { return nil }
func (p *nullPlayer) Play(string, playback.Options) error { p.plays++; return nil }
func (p *nullPlayer) Pause() error                        { p.pauses++; return nil }

func newTestModel() (Model, *nullPlayer) {
	cfg := config.Default()
	player := &nullPlayer{}
	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.APIPrefix, nil)
	return New(cfg, client, player, nil), player
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case KeyEnter:
		return tea.KeyMsg{Type: tea.KeyEnter}
	case KeyTab:
		return tea.KeyMsg{Type: tea.KeyTab}
	case KeyEsc:
		return tea.KeyMsg{Type: tea.KeyEsc}
	case KeyBackspace:
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case KeySpace:
		return tea.KeyMsg{Type: tea.KeySpace}
	case KeyUp:
		return tea.KeyMsg{Type: tea.KeyUp}
	case KeyDown:
		return tea.KeyMsg{Type: tea.KeyDown}
	case KeyLeft:
		return tea.KeyMsg{Type: tea.KeyLeft}
	case KeyRight:
		return tea.KeyMsg{Type: tea.KeyRight}
	case KeyQuit:
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case KeyClearChat:
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case KeyOpenUpload:
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case KeyDismissJob:
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func searchEnvelope(n int) api.Envelope {
	env := api.Envelope{Type: api.TypeSearch, Message: fmt.Sprintf("Found %d events.", n)}
	for i := 0; i < n; i++ {
		env.Results = append(env.Results, api.SearchResult{
			VideoID:  fmt.Sprintf("v%d", i),
			CameraID: "cam1",
			VideoURL: fmt.Sprintf("/static/clips/v%d.mp4", i),
			Score:    api.Float64Ptr(0.9),
		})
	}
	return env
}

func TestNewSeedsGreeting(t *testing.T) {
	m, _ := newTestModel()

	if m.store.Len() != 1 {
		t.Fatalf("turns = %d, want greeting only", m.store.Len())
	}
	if got := m.store.Turns()[0].Text; got != convo.Greeting {
		t.Errorf("greeting = %q", got)
	}
	if m.focus != FocusInput {
		t.Errorf("focus = %v, want FocusInput", m.focus)
	}
	if m.selTurn != -1 || m.activeTurn != -1 {
		t.Errorf("selTurn = %d activeTurn = %d, want -1", m.selTurn, m.activeTurn)
	}
}

func TestTypedQuerySubmits(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "red car")

	next, cmd := m.Update(keyMsg(KeyEnter))
	m = next.(Model)

	if cmd == nil {
		t.Fatal("submit should return a search command")
	}
	if !m.searching {
		t.Error("model should be searching")
	}
	if m.activeSearch == uuid.Nil {
		t.Error("submit should tag the request")
	}
	turns := m.store.Turns()
	last := turns[len(turns)-1]
	if last.Role != convo.User || last.Text != "red car" {
		t.Errorf("last turn = %+v", last)
	}
	if len(m.input) != 0 {
		t.Error("input should clear after submit")
	}
}

func TestEmptyQueryRejectedLocally(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "   ")

	next, _ := m.Update(keyMsg(KeyEnter))
	m = next.(Model)

	if m.searching {
		t.Error("blank query must not start a search")
	}
	if m.errorMessage != "Type a question first." {
		t.Errorf("error = %q", m.errorMessage)
	}
	if m.store.Len() != 1 {
		t.Errorf("turns = %d, blank query must not append", m.store.Len())
	}

	next, _ = m.Update(ClearTransientErrorMsg{})
	m = next.(Model)
	if m.errorMessage != "" {
		t.Errorf("error = %q after clear tick", m.errorMessage)
	}
}

func TestEnterWhileSearchingIgnored(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "first")
	m = press(t, m, KeyEnter)
	m = typeText(t, m, "second")

	next, cmd := m.Update(keyMsg(KeyEnter))
	m = next.(Model)

	if cmd != nil {
		t.Error("submit while in flight must be a no-op")
	}
	if string(m.input) != "second" {
		t.Errorf("input = %q, should be untouched", string(m.input))
	}
}

func TestSearchResponseBuildsGallery(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "red car")
	m = press(t, m, KeyEnter)

	next, _ := m.Update(SearchResponseMsg{Tag: m.activeSearch, Envelope: searchEnvelope(2)})
	m = next.(Model)

	if m.searching {
		t.Error("response should end the searching state")
	}
	idx := m.store.Len() - 1
	g, ok := m.galleries[idx]
	if !ok {
		t.Fatal("search envelope should build a gallery")
	}
	if len(g.cards) != 2 || len(g.controllers) != 2 {
		t.Errorf("gallery = %d cards %d controllers", len(g.cards), len(g.controllers))
	}
	if m.viewModes[idx] != results.Narrative {
		t.Errorf("view mode = %v, want Narrative", m.viewModes[idx])
	}
	if m.selTurn != idx {
		t.Errorf("selTurn = %d, want %d", m.selTurn, idx)
	}
}

func TestStaleSearchResponseDropped(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "red car")
	m = press(t, m, KeyEnter)

	next, _ := m.Update(SearchResponseMsg{Tag: uuid.New(), Envelope: searchEnvelope(1)})
	m = next.(Model)

	if !m.searching {
		t.Error("stale response must not end the active search")
	}
	if m.store.Len() != 2 {
		t.Errorf("turns = %d, stale response appended a turn", m.store.Len())
	}
}

func TestSearchErrorSubstitutesFallback(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "red car")
	m = press(t, m, KeyEnter)

	next, _ := m.Update(SearchErrorMsg{Tag: m.activeSearch, Err: fmt.Errorf("dial tcp: refused")})
	m = next.(Model)

	if m.searching {
		t.Error("error should end the searching state")
	}
	turns := m.store.Turns()
	last := turns[len(turns)-1]
	if last.Role != convo.Assistant || last.Text != "Sorry, I lost connection to the server." {
		t.Errorf("last turn = %+v", last)
	}
	if len(m.galleries) != 0 {
		t.Error("fallback turn must not get a gallery")
	}
}

func TestChatEnvelopeHasNoGallery(t *testing.T) {
	m, _ := newTestModel()
	m = typeText(t, m, "hello")
	m = press(t, m, KeyEnter)

	env := api.Envelope{Type: api.TypeChat, Message: "Hi! Ask me about your cameras."}
	next, _ := m.Update(SearchResponseMsg{Tag: m.activeSearch, Envelope: env})
	m = next.(Model)

	if len(m.galleries) != 0 {
		t.Error("chat envelope must not build a gallery")
	}
	last := m.store.Turns()[m.store.Len()-1]
	if last.Text != "Hi! Ask me about your cameras." {
		t.Errorf("last turn text = %q", last.Text)
	}
}

// respond drives one full query/response round so the model holds a
// gallery of n cards.
func respond(t *testing.T, m Model, n int) Model {
	t.Helper()
	m = typeText(t, m, "query")
	m = press(t, m, KeyEnter)
	next, _ := m.Update(SearchResponseMsg{Tag: m.activeSearch, Envelope: searchEnvelope(n)})
	return next.(Model)
}

func TestTabCyclesFocus(t *testing.T) {
	m, _ := newTestModel()

	// Without galleries the results panel is skipped.
	m = press(t, m, KeyTab)
	if m.focus != FocusSidebar {
		t.Fatalf("focus = %v, want FocusSidebar", m.focus)
	}
	m = press(t, m, KeyTab)
	if m.focus != FocusInput {
		t.Fatalf("focus = %v, want FocusInput", m.focus)
	}

	m = respond(t, m, 1)
	m = press(t, m, KeyTab)
	if m.focus != FocusResults {
		t.Fatalf("focus = %v, want FocusResults with a gallery", m.focus)
	}
	m = press(t, m, KeyTab, KeyTab)
	if m.focus != FocusInput {
		t.Fatalf("focus = %v, want FocusInput after full cycle", m.focus)
	}
}

func TestViewModeToggleIsPerTurn(t *testing.T) {
	m, _ := newTestModel()
	m = respond(t, m, 2)
	first := m.selTurn
	m = respond(t, m, 2)
	second := m.selTurn

	m = press(t, m, KeyTab, KeyViewMode)

	if m.viewModes[second] != results.Tabular {
		t.Errorf("selected turn view = %v, want Tabular", m.viewModes[second])
	}
	if m.viewModes[first] != results.Narrative {
		t.Errorf("other turn view = %v, toggle must not leak", m.viewModes[first])
	}

	m = press(t, m, KeyViewMode)
	if m.viewModes[second] != results.Narrative {
		t.Errorf("view = %v after second toggle, want Narrative", m.viewModes[second])
	}
}

func TestCardSelectionMovesPlayback(t *testing.T) {
	m, player := newTestModel()
	m = respond(t, m, 3)
	m = press(t, m, KeyTab)

	m = press(t, m, KeyEnter)
	if player.plays != 1 {
		t.Fatalf("plays = %d after enter, want 1", player.plays)
	}
	g := m.galleries[m.selTurn]
	if g.controllers[0].State() != playback.Playing {
		t.Errorf("card 0 state = %v, want Playing", g.controllers[0].State())
	}

	m = press(t, m, KeyCardNext)
	if m.selCard != 1 {
		t.Fatalf("selCard = %d, want 1", m.selCard)
	}
	if g.controllers[0].State() != playback.Paused {
		t.Errorf("card 0 state = %v, want Paused after moving on", g.controllers[0].State())
	}
	if g.controllers[1].State() != playback.Playing {
		t.Errorf("card 1 state = %v, want Playing", g.controllers[1].State())
	}
}

func TestEnterTogglesPlayPause(t *testing.T) {
	m, player := newTestModel()
	m = respond(t, m, 1)
	m = press(t, m, KeyTab, KeyEnter)

	g := m.galleries[m.selTurn]
	if g.controllers[0].State() != playback.Playing {
		t.Fatalf("state = %v, want Playing", g.controllers[0].State())
	}

	m = press(t, m, KeyEnter)
	if g.controllers[0].State() != playback.Paused {
		t.Errorf("state = %v, want Paused after toggle", g.controllers[0].State())
	}
	if player.pauses == 0 {
		t.Error("player never received the pause")
	}
	if m.activeTurn != -1 {
		t.Errorf("activeTurn = %d, want cleared", m.activeTurn)
	}
}

func TestClearChatResetsToGreeting(t *testing.T) {
	m, _ := newTestModel()
	m = respond(t, m, 2)
	m = press(t, m, KeyTab, KeyEnter) // start playback so clear must stop it

	m = press(t, m, KeyEsc, KeyClearChat)

	if m.store.Len() != 1 || m.store.Turns()[0].Text != convo.Greeting {
		t.Errorf("store after clear = %+v", m.store.Turns())
	}
	if len(m.galleries) != 0 {
		t.Error("galleries should be dropped")
	}
	if m.selTurn != -1 || m.activeTurn != -1 {
		t.Errorf("selTurn = %d activeTurn = %d, want -1", m.selTurn, m.activeTurn)
	}
}

func TestUploadModalOpensAndCancels(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, KeyOpenUpload)
	if !m.showUpload {
		t.Fatal("ctrl+u should open the upload modal")
	}
	if m.form.timeOfDay != "09:00" {
		t.Errorf("default time = %q", m.form.timeOfDay)
	}

	m = press(t, m, KeyTab, KeyTab, KeyTab) // move to the file field
	m = typeText(t, m, "/tmp/x.mp4")
	m = press(t, m, KeyEsc)

	if m.showUpload {
		t.Fatal("esc should close the modal")
	}
	m = press(t, m, KeyOpenUpload)
	if m.form.filePath != "" {
		t.Errorf("file path = %q, cancel should discard edits", m.form.filePath)
	}
}

func TestUploadValidationLeavesJobIdle(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, KeyOpenUpload)

	next, cmd := m.Update(keyMsg(KeyEnter)) // no file path set
	m = next.(Model)

	if cmd != nil {
		t.Error("invalid form must not start a transfer")
	}
	if !m.showUpload {
		t.Error("modal should stay open")
	}
	if m.form.status != "Please fill all fields." {
		t.Errorf("status = %q", m.form.status)
	}
	if m.uploads.Job().Status != upload.Idle {
		t.Errorf("job status = %v, want Idle", m.uploads.Job().Status)
	}
}

func TestUploadLifecycleMessages(t *testing.T) {
	m, _ := newTestModel()
	job := m.uploads.Start("clip.mp4")
	m.progressCh = make(chan int, 1)

	next, cmd := m.Update(UploadProgressMsg{JobID: job.ID, Percent: 55})
	m = next.(Model)
	if cmd == nil {
		t.Error("progress handler should re-arm the listener")
	}
	if got := m.uploads.Job().Progress; got != 55 {
		t.Errorf("progress = %d, want 55", got)
	}

	next, cmd = m.Update(UploadDoneMsg{JobID: job.ID, Result: api.UploadResult{FramesIndexed: 7}})
	m = next.(Model)
	if cmd == nil {
		t.Error("success should schedule the auto-dismiss tick")
	}
	got := m.uploads.Job()
	if got.Status != upload.Success || got.Message != "Indexed 7 frames." {
		t.Errorf("job = %+v", got)
	}

	next, _ = m.Update(UploadDismissTickMsg{JobID: job.ID})
	m = next.(Model)
	if m.uploads.Job().Status != upload.Idle {
		t.Errorf("status = %v after dismiss tick, want Idle", m.uploads.Job().Status)
	}
}

func TestUploadErrorWaitsForManualDismiss(t *testing.T) {
	m, _ := newTestModel()
	job := m.uploads.Start("clip.mp4")
	m.progressCh = make(chan int, 1)

	next, cmd := m.Update(UploadErrorMsg{JobID: job.ID, Err: fmt.Errorf("connection reset")})
	m = next.(Model)
	if cmd != nil {
		t.Error("errors must not schedule auto-dismiss")
	}
	got := m.uploads.Job()
	if got.Status != upload.Error || got.Message != "Upload failed." {
		t.Errorf("job = %+v", got)
	}

	next, _ = m.Update(UploadDismissTickMsg{JobID: job.ID})
	m = next.(Model)
	if m.uploads.Job().Status != upload.Error {
		t.Error("dismiss tick must not clear an error toast")
	}

	m = press(t, m, KeyDismissJob)
	if m.uploads.Job().Status != upload.Idle {
		t.Errorf("status = %v after ctrl+x, want Idle", m.uploads.Job().Status)
	}
}

func TestSidebarDrivesFilterPayload(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, KeyTab) // sidebar (no galleries yet)
	if m.focus != FocusSidebar {
		t.Fatalf("focus = %v", m.focus)
	}

	m = press(t, m, KeySpace) // row 0: enable camera axis
	if !m.filters.CameraEnabled() {
		t.Fatal("camera axis should be enabled")
	}
	m = press(t, m, KeyDown, KeySpace) // toggle cam1
	got := m.filters.Payload().Cameras
	if len(got) != 1 || got[0] != "cam1" {
		t.Errorf("cameras = %v, want [cam1]", got)
	}
}

func TestSidebarDateEditing(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, KeyTab)
	roster := len(m.filters.Roster())

	// Move to the date-enable row, open the gate, then edit start date.
	for i := 0; i < roster+1; i++ {
		m = press(t, m, KeyDown)
	}
	m = press(t, m, KeySpace, KeyDown)
	m = typeText(t, m, "2026-01-02")

	if got := m.filters.StartDate(); got != "2026-01-02" {
		t.Errorf("start date = %q", got)
	}
	p := m.filters.Payload()
	if p.StartDate != nil {
		t.Error("half-set range must be withheld from the payload")
	}
	if m.filters.Warning() == "" {
		t.Error("half-set range should warn")
	}
}

func TestWindowSizeGatesView(t *testing.T) {
	m, _ := newTestModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("view before size = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	v := m.View()
	if !strings.Contains(v, "VIDEORAG") {
		t.Error("view should render the header")
	}
	if !strings.Contains(v, "video archives") {
		t.Error("view should render the greeting turn")
	}
}

func TestViewRendersGalleryBadges(t *testing.T) {
	m, _ := newTestModel()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m = respond(t, m, 2)

	v := m.View()
	if !strings.Contains(v, "MATCH") {
		t.Error("view should render the match badge for scored results")
	}
	if !strings.Contains(v, "CLIP") {
		t.Error("view should render the clip badge")
	}
}
