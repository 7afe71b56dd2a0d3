package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"mapmyfirm/internal/ports"
)

var _ ports.NoteEditor = (*Opener)(nil)

// Opener implements ports.NoteEditor
type Opener struct {
	// Dir holds scratch files; empty means the system temp dir
	Dir string
}

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{}
}

// Prepare writes text to a scratch file and returns the editor command for it
func (o *Opener) Prepare(text string) (*exec.Cmd, string, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, "", fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	f, err := os.CreateTemp(o.Dir, "mapmyfirm-note-*.md")
	if err != nil {
		return nil, "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, "", err
	}

	// $EDITOR may carry flags, e.g. "code --wait"
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], f.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, f.Name(), nil
}

// Collect returns the edited text without its trailing newline and deletes the file
func (o *Opener) Collect(path string) (string, error) {
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// findEditor returns the editor to use
func (o *Opener) findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}
	return ""
}
