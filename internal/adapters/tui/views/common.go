package views

import tea "github.com/charmbracelet/bubbletea"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// listHeight is the number of rows left for a list after chrome lines
func (s *ViewState) listHeight(chrome int) int {
	if s.Height <= chrome {
		return 20
	}
	return s.Height - chrome
}

// Messages for view switching
type (
	SwitchToProjectsMsg  struct{}
	SwitchToCreateMsg    struct{}
	SwitchToTreeMsg      struct{}
	SwitchToChecklistMsg struct{}
	SwitchToHelpMsg      struct{}
)

// OpenProjectMsg asks the app to load a stored project
type OpenProjectMsg struct {
	ID string
}

// EditTextMsg asks the app to edit Text in the external editor. Done
// builds the message delivered to the active view with the result.
type EditTextMsg struct {
	Text string
	Done func(text string) tea.Msg
}

// StatusMsg shows a one-line status in the active view
type StatusMsg struct {
	Text string
	Err  bool
}

// Requests handled by the app
type (
	CopyExportMsg struct{}
	ScanMsg       struct{}
	QuitMsg       struct{}
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func statusErr(err error) tea.Cmd {
	return send(StatusMsg{Text: err.Error(), Err: true})
}
