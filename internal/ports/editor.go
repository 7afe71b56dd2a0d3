package ports

import "os/exec"

// NoteEditor edits free text in the user's editor through a scratch file
type NoteEditor interface {
	// Prepare writes text to a scratch file and returns the command that
	// edits it. The command suits bubbletea's ExecProcess.
	Prepare(text string) (cmd *exec.Cmd, path string, err error)

	// Collect reads the edited text back and removes the scratch file
	Collect(path string) (string, error)
}
