package repl

import (
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
)

const defaultEditor = "vi"

// editDoneMsg is sent when the editor exits.
type editDoneMsg struct{ err error }

// editSource suspends the program and opens the source document in the
// user's $EDITOR. The model reloads the document on [editDoneMsg].
func editSource(path string) tea.Cmd {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	return tea.ExecProcess(exec.Command(editor, path), func(err error) tea.Msg {
		return editDoneMsg{err: err}
	})
}
