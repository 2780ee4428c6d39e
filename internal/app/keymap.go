package app

// Key binding constants used in handleKey.
const (
	KeyQuit       = "ctrl+c"
	KeyTab        = "tab"
	KeyEnter      = "enter"
	KeyEsc        = "esc"
	KeyBackspace  = "backspace"
	KeySpace      = " "
	KeyUp         = "up"
	KeyDown       = "down"
	KeyLeft       = "left"
	KeyRight      = "right"
	KeyNavDown    = "j"
	KeyNavUp      = "k"
	KeyCardPrev   = "h"
	KeyCardNext   = "l"
	KeyViewMode   = "v"
	KeyClearChat  = "ctrl+l"
	KeyOpenUpload = "ctrl+u"
	KeyDismissJob = "ctrl+x"
)
