package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Inshal-Amir/production-video-rag/internal/convo"
	"github.com/Inshal-Amir/production-video-rag/internal/playback"
	"github.com/Inshal-Amir/production-video-rag/internal/results"
	"github.com/Inshal-Amir/production-video-rag/internal/ui"
	"github.com/Inshal-Amir/production-video-rag/internal/upload"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.showUpload {
		sections = append(sections, m.renderUploadModal())
	} else {
		sections = append(sections, m.renderMainContent())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.errorMessage != "" {
		sections = append(sections, ui.ErrorStyle.Render("Error: ")+ui.ErrorTextStyle.Render(m.errorMessage))
	}

	sections = append(sections, m.renderInputBar())

	if toast := m.renderUploadToast(); toast != "" {
		sections = append(sections, toast)
	}

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("VIDEORAG")
	server := ui.DimStyle.Render(" — " + m.client.BaseURL())
	return title + server
}

func (m Model) sidebarWidth() int {
	if m.width == 0 {
		return 26
	}
	return max(24, m.width*28/100)
}

func (m Model) chatWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.sidebarWidth()-3)
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + input(1) + footer(1) + error/toast slack
	reserved := 8
	return max(5, m.height-reserved)
}

func (m Model) renderMainContent() string {
	sideW := m.sidebarWidth()
	chatW := m.chatWidth()
	contentH := m.contentHeight()

	sidebar := m.renderSidebar(sideW, contentH)
	chat := m.renderChat(chatW, contentH)

	divider := ui.DividerStyle.Render("│")

	sideLines := strings.Split(sidebar, "\n")
	chatLinesOut := strings.Split(chat, "\n")

	var rows []string
	for i := 0; i < contentH; i++ {
		sl := strings.Repeat(" ", sideW)
		if i < len(sideLines) {
			sl = padRight(sideLines[i], sideW)
		}
		cl := ""
		if i < len(chatLinesOut) {
			cl = chatLinesOut[i]
		}
		rows = append(rows, sl+divider+cl)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderSidebar(width, height int) string {
	var header string
	if m.focus == FocusSidebar {
		header = ui.PanelTitleActiveStyle.Render("FILTERS")
	} else {
		header = ui.PanelTitleStyle.Render("FILTERS")
	}

	lines := []string{header}

	cursor := func(i int) string {
		if m.focus == FocusSidebar && m.sidebarCursor == i {
			return ui.SelectedStyle.Render("> ")
		}
		return "  "
	}
	check := func(on bool) string {
		if on {
			return ui.CheckOnStyle.Render("[x]")
		}
		return ui.CheckOffStyle.Render("[ ]")
	}

	row := 0
	lines = append(lines, cursor(row)+check(m.filters.CameraEnabled())+" Cameras")
	row++
	for _, cam := range m.filters.Roster() {
		mark := ui.CheckOffStyle.Render("○")
		if m.filters.CameraSelected(cam) {
			mark = ui.CheckOnStyle.Render("●")
		}
		label := cam
		if !m.filters.CameraEnabled() {
			label = ui.DimStyle.Render(cam)
		}
		lines = append(lines, cursor(row)+"  "+mark+" "+label)
		row++
	}

	lines = append(lines, cursor(row)+check(m.filters.DateEnabled())+" Date range")
	row++
	lines = append(lines, cursor(row)+"  from: "+m.renderFieldValue(m.filters.StartDate(), m.filters.DateEnabled(), row))
	row++
	lines = append(lines, cursor(row)+"  to:   "+m.renderFieldValue(m.filters.EndDate(), m.filters.DateEnabled(), row))
	row++

	lines = append(lines, cursor(row)+check(m.filters.TimeEnabled())+" Time of day")
	row++
	lines = append(lines, cursor(row)+"  from: "+m.renderFieldValue(m.filters.StartTime(), m.filters.TimeEnabled(), row))
	row++
	lines = append(lines, cursor(row)+"  to:   "+m.renderFieldValue(m.filters.EndTime(), m.filters.TimeEnabled(), row))
	row++

	lines = append(lines, "")
	lines = append(lines, cursor(row)+"⬆ Upload footage")
	row++
	lines = append(lines, cursor(row)+"✕ Clear chat")

	if w := m.filters.Warning(); w != "" {
		lines = append(lines, "")
		lines = append(lines, ui.WarningStyle.Render("! "+w))
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(truncateToWidth(l, width), width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFieldValue(v string, enabled bool, row int) string {
	editing := m.focus == FocusSidebar && m.sidebarCursor == row
	if v == "" {
		if editing {
			return ui.SelectedStyle.Render("▌")
		}
		return ui.DimStyle.Render("—")
	}
	if !enabled {
		return ui.DimStyle.Render(v)
	}
	if editing {
		return v + ui.SelectedStyle.Render("▌")
	}
	return v
}

// chatLines builds the full chat transcript as display lines; the view
// windows them to the panel height.
func (m Model) chatLines(width int) []string {
	var lines []string

	for idx, turn := range m.store.Turns() {
		if idx > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, m.renderTurn(idx, turn, width)...)
	}

	if m.searching {
		lines = append(lines, "")
		lines = append(lines, ui.LoadingStyle.Render("Analyzing video frames..."))
	}

	return lines
}

func (m Model) renderTurn(idx int, turn convo.Turn, width int) []string {
	var lines []string

	var label string
	if turn.Role == convo.User {
		label = ui.UserLabelStyle.Render("You ")
	} else {
		label = ui.BotLabelStyle.Render("AI  ")
	}

	wrapped := wrapText(turn.Text, max(10, width-4))
	lines = append(lines, label+wrapped[0])
	for _, wl := range wrapped[1:] {
		lines = append(lines, "    "+wl)
	}

	g, ok := m.galleries[idx]
	if !ok {
		if turn.Role == convo.Assistant && len(turn.Results) > 0 {
			// Results arrived but none had a usable video source.
			lines = append(lines, "    "+ui.DimStyle.Render("No valid video results found."))
		}
		return lines
	}

	selected := m.focus == FocusResults && m.selTurn == idx

	var modeBadge string
	if m.viewModes[idx] == results.Tabular {
		modeBadge = ui.DimStyle.Render("[table]")
	} else {
		modeBadge = ui.DimStyle.Render("[gallery]")
	}
	if selected {
		modeBadge += ui.DimStyle.Render("  v: switch view")
	}
	lines = append(lines, "    "+modeBadge)

	if m.viewModes[idx] == results.Tabular {
		lines = append(lines, m.renderRows(idx, width)...)
	} else {
		lines = append(lines, m.renderCards(g, selected, width)...)
	}
	return lines
}

func (m Model) renderCards(g gallery, selected bool, width int) []string {
	var lines []string
	for i, card := range g.cards {
		r := card.Result

		marker := "  "
		if selected && m.selCard == i {
			marker = ui.SelectedStyle.Render("▸ ")
		}

		badge := ui.NoMatchBadgeStyle.Render("·")
		if card.Verdict == results.Match {
			badge = ui.MatchBadgeStyle.Render("✓ MATCH")
		}

		date := r.DisplayDate
		if date == "" {
			date = "Unknown Date"
		}
		clock := r.DisplayTime
		if clock == "" {
			clock = "00:00:00"
		}

		head := fmt.Sprintf("[%s | %s] %s ", r.CameraID, date, clock)
		lines = append(lines, "  "+marker+head+badge)

		score := 0.0
		if r.Score != nil {
			score = *r.Score
		}
		meta := fmt.Sprintf("Score: %.1f%%  %s", score*100, r.VideoID)
		if card.Source.Kind == results.Clip {
			meta += "  " + ui.ClipBadgeStyle.Render("CLIP")
		}
		lines = append(lines, "      "+ui.DimStyle.Render(truncateToWidth(meta, max(10, width-6))))

		if i < len(g.controllers) {
			if pl := renderPlaybackState(g.controllers[i]); pl != "" {
				lines = append(lines, "      "+pl)
			}
		}
	}
	return lines
}

func renderPlaybackState(ctrl *playback.Controller) string {
	if e := ctrl.Err(); e != "" {
		return ui.ErrorTextStyle.Render("⚠ playback error") + ui.DimStyle.Render(" ("+e+")")
	}
	switch ctrl.State() {
	case playback.Playing:
		return ui.PlayingBadgeStyle.Render("▶ playing")
	case playback.Seeking:
		return ui.DimStyle.Render("… seeking")
	case playback.Paused:
		return ui.DimStyle.Render("⏸ paused")
	}
	return ""
}

func (m Model) renderRows(idx int, width int) []string {
	turn := m.store.Turns()[idx]
	rows := results.Rows(turn.Results, m.cfg.Media.ClipMarkers)

	var lines []string
	for _, row := range rows {
		badge := ui.NoMatchBadgeStyle.Render("  —   ")
		if row.Verdict == results.Match {
			badge = ui.MatchBadgeStyle.Render(" MATCH")
		}
		line := fmt.Sprintf("    %s  %-8s  %s", badge, row.DisplayTime, row.Description)
		lines = append(lines, truncateToWidth(line, width))
	}
	return lines
}

func (m Model) renderChat(width, height int) string {
	var header string
	if m.focus == FocusResults {
		header = ui.PanelTitleActiveStyle.Render("CONVERSATION")
	} else {
		header = ui.PanelTitleStyle.Render("CONVERSATION")
	}

	lines := []string{header}
	contentHeight := height - 1

	display := m.chatLines(width)

	start := 0
	if m.chatLive {
		if len(display) > contentHeight {
			start = len(display) - contentHeight
		}
	} else {
		start = m.chatScroll
	}
	if start < 0 {
		start = 0
	}
	end := start + contentHeight
	if end > len(display) {
		end = len(display)
	}

	for i := start; i < end; i++ {
		lines = append(lines, display[i])
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderUploadModal() string {
	width := m.width
	height := m.contentHeight()

	roster := m.filters.Roster()
	camera := ""
	if m.form.cameraIdx < len(roster) {
		camera = roster[m.form.cameraIdx]
	}

	field := func(i int, label, value string) string {
		marker := "  "
		if m.form.field == i {
			marker = ui.SelectedStyle.Render("> ")
			value += ui.SelectedStyle.Render("▌")
		}
		return fmt.Sprintf("%s%-12s %s", marker, label, value)
	}

	lines := []string{
		ui.PanelTitleActiveStyle.Render("UPLOAD VIDEO"),
		ui.DimStyle.Render("Add new footage to your knowledge base"),
		"",
		field(formFieldCamera, "Camera:", "◂ "+camera+" ▸"),
		field(formFieldDate, "Date:", m.form.date),
		field(formFieldTime, "Start time:", m.form.timeOfDay),
		field(formFieldFile, "File path:", m.form.filePath),
		"",
		ui.DimStyle.Render("Select the date and exact clock time the video started."),
	}

	if m.form.status != "" {
		lines = append(lines, "")
		lines = append(lines, ui.ErrorTextStyle.Render(m.form.status))
	}

	lines = append(lines, "")
	lines = append(lines, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Start upload  ")+
		ui.FooterKeyStyle.Render("Esc")+ui.FooterDescStyle.Render(" Cancel"))

	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(truncateToWidth("  "+l, width), width)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderUploadToast() string {
	job := m.uploads.Job()
	if job.Status == upload.Idle {
		return ""
	}

	var label string
	switch job.Status {
	case upload.Uploading:
		label = "Uploading video..."
	case upload.Processing:
		label = ui.ProgressProcStyle.Render("Indexing frames...")
	case upload.Success:
		label = ui.SuccessStyle.Render("Upload complete")
	case upload.Error:
		label = ui.ErrorTextStyle.Render("Upload failed")
	}

	parts := []string{ui.PanelTitleStyle.Render(job.FileName), label}

	switch job.Status {
	case upload.Uploading:
		parts = append(parts, renderProgressBar(job.Progress, false))
	case upload.Processing:
		parts = append(parts, renderProgressBar(100, true))
	case upload.Success:
		parts = append(parts, job.Message, ui.DimStyle.Render("ctrl+x dismiss"))
	case upload.Error:
		parts = append(parts, job.Message, ui.DimStyle.Render("ctrl+x dismiss"))
	}

	return truncateToWidth(strings.Join(parts, "  "), m.width)
}

func renderProgressBar(percent int, processing bool) string {
	const barLen = 20
	filled := percent * barLen / 100
	if filled > barLen {
		filled = barLen
	}

	var bar strings.Builder
	for i := 0; i < barLen; i++ {
		if i < filled {
			if processing {
				bar.WriteString(ui.ProgressProcStyle.Render("█"))
			} else {
				bar.WriteString(ui.ProgressFillStyle.Render("█"))
			}
		} else {
			bar.WriteString(ui.ProgressEmptyStyle.Render("░"))
		}
	}
	return fmt.Sprintf("%s %3d%%", bar.String(), percent)
}

func (m Model) renderInputBar() string {
	prompt := ui.BotLabelStyle.Render("❯ ")
	text := string(m.input)

	if m.focus == FocusInput && !m.showUpload {
		return prompt + text + ui.SelectedStyle.Render("▌")
	}
	if text == "" {
		return prompt + ui.DimStyle.Render("Describe the event (e.g. 'Red car turning left')...")
	}
	return prompt + text
}

func (m Model) renderFooter() string {
	var parts []string

	switch {
	case m.showUpload:
		parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Field"))
		parts = append(parts, ui.FooterKeyStyle.Render("◂▸")+ui.FooterDescStyle.Render(" Camera"))
	case m.focus == FocusResults:
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Turn"))
		parts = append(parts, ui.FooterKeyStyle.Render("h/l")+ui.FooterDescStyle.Render(" Card"))
		parts = append(parts, ui.FooterKeyStyle.Render("v")+ui.FooterDescStyle.Render(" View"))
		parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Play/Pause"))
	case m.focus == FocusSidebar:
		parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Nav"))
		parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Toggle"))
	default:
		parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Send"))
		parts = append(parts, ui.FooterKeyStyle.Render("ctrl+u")+ui.FooterDescStyle.Render(" Upload"))
		parts = append(parts, ui.FooterKeyStyle.Render("ctrl+l")+ui.FooterDescStyle.Render(" Clear"))
	}

	parts = append(parts, ui.FooterKeyStyle.Render("Tab")+ui.FooterDescStyle.Render(" Focus"))
	parts = append(parts, ui.FooterKeyStyle.Render("ctrl+c")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
