package app

import (
	"github.com/Inshal-Amir/production-video-rag/internal/playback"
	"github.com/Inshal-Amir/production-video-rag/internal/results"

	tea "github.com/charmbracelet/bubbletea"
)

// sidebarRowKind identifies what a sidebar cursor position points at.
type sidebarRowKind int

const (
	rowCameraEnable sidebarRowKind = iota
	rowCameraToggle
	rowDateEnable
	rowStartDate
	rowEndDate
	rowTimeEnable
	rowStartTime
	rowEndTime
	rowUploadButton
	rowClearButton
)

// maxChatScroll is the highest top-line offset before the transcript
// is pinned to the bottom again.
func (m Model) maxChatScroll() int {
	total := len(m.chatLines(m.chatWidth()))
	visible := m.contentHeight() - 1
	if total <= visible {
		return 0
	}
	return total - visible
}

// sidebarRowCount is the number of navigable sidebar rows.
func (m Model) sidebarRowCount() int {
	return len(m.filters.Roster()) + 9
}

// sidebarRowAt maps a cursor index to a row kind; for camera toggle
// rows it also returns the roster index.
func (m Model) sidebarRowAt(i int) (sidebarRowKind, int) {
	r := len(m.filters.Roster())
	switch {
	case i == 0:
		return rowCameraEnable, 0
	case i <= r:
		return rowCameraToggle, i - 1
	}
	switch i - r {
	case 1:
		return rowDateEnable, 0
	case 2:
		return rowStartDate, 0
	case 3:
		return rowEndDate, 0
	case 4:
		return rowTimeEnable, 0
	case 5:
		return rowStartTime, 0
	case 6:
		return rowEndTime, 0
	case 7:
		return rowUploadButton, 0
	}
	return rowClearButton, 0
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyQuit {
		m.deactivateCard()
		return m, tea.Quit
	}

	if key == KeyDismissJob {
		m.uploads.Dismiss()
		return m, nil
	}

	switch key {
	case "pgup":
		if !m.showUpload {
			if m.chatLive {
				m.chatScroll = m.maxChatScroll()
				m.chatLive = false
			}
			if m.chatScroll > 0 {
				m.chatScroll--
			}
		}
		return m, nil
	case "pgdown":
		if !m.showUpload {
			maxScroll := m.maxChatScroll()
			m.chatScroll++
			if m.chatScroll >= maxScroll {
				m.chatScroll = maxScroll
				m.chatLive = true
			}
		}
		return m, nil
	}

	if m.showUpload {
		return m.handleUploadKey(msg)
	}

	if key == KeyTab {
		switch m.focus {
		case FocusInput:
			if len(m.galleryTurns()) > 0 {
				m.focus = FocusResults
			} else {
				m.focus = FocusSidebar
			}
		case FocusResults:
			m.focus = FocusSidebar
		default:
			m.focus = FocusInput
		}
		return m, nil
	}

	switch m.focus {
	case FocusInput:
		return m.handleInputKey(msg)
	case FocusResults:
		return m.handleResultsKey(msg)
	default:
		return m.handleSidebarKey(msg)
	}
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEnter:
		if m.searching {
			return m, nil
		}
		return m, m.submitQuery()

	case KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	case KeyClearChat:
		m.clearChat()
		return m, nil

	case KeyOpenUpload:
		m.showUpload = true
		m.form = newUploadForm()
		return m, nil

	case KeySpace:
		m.input = append(m.input, ' ')
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	turns := m.galleryTurns()
	if len(turns) == 0 {
		m.focus = FocusInput
		return m, nil
	}

	pos := 0
	for i, t := range turns {
		if t == m.selTurn {
			pos = i
			break
		}
	}

	switch msg.String() {
	case KeyEsc:
		m.focus = FocusInput
		return m, nil

	case KeyNavDown, KeyDown:
		if pos < len(turns)-1 {
			m.selTurn = turns[pos+1]
			m.selCard = 0
			m.setActiveCard(m.selTurn, m.selCard)
		}
		return m, nil

	case KeyNavUp, KeyUp:
		if pos > 0 {
			m.selTurn = turns[pos-1]
			m.selCard = 0
			m.setActiveCard(m.selTurn, m.selCard)
		}
		return m, nil

	case KeyCardNext, KeyRight:
		if g, ok := m.galleries[m.selTurn]; ok && m.selCard < len(g.cards)-1 {
			m.selCard++
			m.setActiveCard(m.selTurn, m.selCard)
		}
		return m, nil

	case KeyCardPrev, KeyLeft:
		if m.selCard > 0 {
			m.selCard--
			m.setActiveCard(m.selTurn, m.selCard)
		}
		return m, nil

	case KeyViewMode:
		// Purely a display projection; the stored turn is untouched.
		if m.viewModes[m.selTurn] == results.Narrative {
			m.viewModes[m.selTurn] = results.Tabular
		} else {
			m.viewModes[m.selTurn] = results.Narrative
		}
		return m, nil

	case KeyEnter, KeySpace:
		g, ok := m.galleries[m.selTurn]
		if !ok || m.selCard >= len(g.controllers) {
			return m, nil
		}
		ctrl := g.controllers[m.selCard]
		if m.activeTurn == m.selTurn && m.activeCard == m.selCard && ctrl.State() == playback.Playing {
			m.deactivateCard()
		} else {
			m.setActiveCard(m.selTurn, m.selCard)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind, camIdx := m.sidebarRowAt(m.sidebarCursor)

	switch msg.String() {
	case KeyEsc:
		m.focus = FocusInput
		return m, nil

	case KeyDown, KeyNavDown:
		if m.sidebarCursor < m.sidebarRowCount()-1 {
			m.sidebarCursor++
		}
		return m, nil

	case KeyUp, KeyNavUp:
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil

	case KeyEnter, KeySpace:
		switch kind {
		case rowCameraEnable:
			m.filters.SetCameraEnabled(!m.filters.CameraEnabled())
		case rowCameraToggle:
			m.filters.ToggleCamera(m.filters.Roster()[camIdx])
		case rowDateEnable:
			m.filters.SetDateEnabled(!m.filters.DateEnabled())
		case rowTimeEnable:
			m.filters.SetTimeEnabled(!m.filters.TimeEnabled())
		case rowUploadButton:
			m.showUpload = true
			m.form = newUploadForm()
		case rowClearButton:
			m.clearChat()
		}
		return m, nil

	case KeyBackspace:
		m.editSidebarField(kind, func(s string) string {
			if len(s) == 0 {
				return s
			}
			return s[:len(s)-1]
		})
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		runes := msg.Runes
		m.editSidebarField(kind, func(s string) string {
			return s + string(runes)
		})
	}
	return m, nil
}

// editSidebarField applies edit to the value field under the cursor.
// Every edit re-normalizes the filter payload.
func (m *Model) editSidebarField(kind sidebarRowKind, edit func(string) string) {
	switch kind {
	case rowStartDate:
		m.filters.SetStartDate(edit(m.filters.StartDate()))
	case rowEndDate:
		m.filters.SetEndDate(edit(m.filters.EndDate()))
	case rowStartTime:
		m.filters.SetStartTime(edit(m.filters.StartTime()))
	case rowEndTime:
		m.filters.SetEndTime(edit(m.filters.EndTime()))
	}
}

func (m Model) handleUploadKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.showUpload = false
		m.form = newUploadForm()
		return m, nil

	case KeyEnter:
		return m, m.startUpload()

	case KeyTab, KeyDown:
		m.form.field = (m.form.field + 1) % formFieldCount
		return m, nil

	case KeyUp:
		m.form.field = (m.form.field + formFieldCount - 1) % formFieldCount
		return m, nil

	case KeyLeft:
		if m.form.field == formFieldCamera && m.form.cameraIdx > 0 {
			m.form.cameraIdx--
		}
		return m, nil

	case KeyRight:
		if m.form.field == formFieldCamera && m.form.cameraIdx < len(m.filters.Roster())-1 {
			m.form.cameraIdx++
		}
		return m, nil

	case KeyBackspace:
		m.editFormField(func(s string) string {
			if len(s) == 0 {
				return s
			}
			return s[:len(s)-1]
		})
		return m, nil

	case KeySpace:
		m.editFormField(func(s string) string { return s + " " })
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		runes := msg.Runes
		m.editFormField(func(s string) string {
			return s + string(runes)
		})
	}
	return m, nil
}

func (m *Model) editFormField(edit func(string) string) {
	switch m.form.field {
	case formFieldDate:
		m.form.date = edit(m.form.date)
	case formFieldTime:
		m.form.timeOfDay = edit(m.form.timeOfDay)
	case formFieldFile:
		m.form.filePath = edit(m.form.filePath)
	}
}
