package repl

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/cfgl/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	s := newSession(t, writeSource(t, sampleSource))

	return newModel(t.Context(), s, NewHistory(""), log.Make(io.Discard))
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, key := range keys {
		next, _ := m.Update(key)
		m = next.(model)
	}

	return m
}

func typed(text string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(text))
	for _, r := range text {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return keys
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestModel_CompleteSingle(t *testing.T) {
	m := press(testModel(t), typed("wi")...)

	if len(m.matches) != 1 || m.matches[0].Str != "width" {
		t.Fatalf("expected single match width, got %v", m.matches)
	}

	m = press(m, key(tea.KeyTab))

	if got := m.input.Value(); got != "width" {
		t.Errorf("expected completion to width, got %q", got)
	}

	if m.tabActive || m.matches != nil {
		t.Error("expected completion to finish tab-cycling")
	}
}

func TestModel_CycleAndCancel(t *testing.T) {
	m := press(testModel(t), typed("1 + h")...)

	if len(m.matches) < 2 {
		t.Fatalf("expected several matches, got %v", m.matches)
	}

	m = press(m, key(tea.KeyTab))
	first := m.input.Value()

	if !m.tabActive || first == "1 + h" {
		t.Fatalf("expected tab-cycling to replace word, got %q", first)
	}

	m = press(m, key(tea.KeyTab))
	if m.input.Value() == first {
		t.Errorf("expected next candidate, still %q", first)
	}

	m = press(m, key(tea.KeyShiftTab))
	if got := m.input.Value(); got != first {
		t.Errorf("expected previous candidate %q, got %q", first, got)
	}

	m = press(m, key(tea.KeyEsc))
	if got := m.input.Value(); got != "1 + h" || m.tabActive {
		t.Errorf("expected cancel to restore input, got %q", got)
	}
}

func TestModel_CompleteCommand(t *testing.T) {
	m := press(testModel(t), typed(":he")...)

	if len(m.matches) != 1 || m.matches[0].Str != "help" {
		t.Fatalf("expected help command match, got %v", m.matches)
	}

	m = press(m, key(tea.KeyTab))
	if got := m.input.Value(); got != ":help" {
		t.Errorf("expected :help, got %q", got)
	}
}

func TestModel_ExecuteAndHistory(t *testing.T) {
	m := testModel(t)

	for _, line := range []string{"width * height", "mod(width, 3)"} {
		m.input.SetValue(line)

		next, cmd := m.Update(key(tea.KeyEnter))
		m = next.(model)

		if cmd == nil {
			t.Fatalf("expected output command for %q", line)
		}

		if m.input.Value() != "" {
			t.Errorf("expected input cleared, got %q", m.input.Value())
		}
	}

	if m.history.Len() != 2 {
		t.Fatalf("expected 2 history entries, got %d", m.history.Len())
	}

	m = press(m, key(tea.KeyUp))
	if got := m.input.Value(); got != "mod(width, 3)" {
		t.Errorf("expected latest entry, got %q", got)
	}

	if !strings.Contains(m.View(), "/2") {
		t.Errorf("expected history position in view %q", m.View())
	}

	m = press(m, key(tea.KeyUp), key(tea.KeyUp))
	if got := m.input.Value(); got != "width * height" {
		t.Errorf("expected oldest entry, got %q", got)
	}

	m = press(m, key(tea.KeyDown), key(tea.KeyDown))
	if got := m.input.Value(); got != "" {
		t.Errorf("expected empty input past newest entry, got %q", got)
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		run  func(model) model
	}{
		{"ctrl+d", func(m model) model { return press(m, key(tea.KeyCtrlD)) }},
		{"ctrl+c", func(m model) model { return press(m, key(tea.KeyCtrlC)) }},
		{":quit", func(m model) model {
			m.input.SetValue(":quit")

			return press(m, key(tea.KeyEnter))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.run(testModel(t))
			if !m.quitting || m.View() != "" {
				t.Errorf("expected quitting model with empty view")
			}
		})
	}
}

func TestModel_CtrlCClearsInput(t *testing.T) {
	m := press(testModel(t), typed("wid")...)
	m = press(m, key(tea.KeyCtrlC))

	if m.quitting || m.input.Value() != "" {
		t.Errorf("expected cleared input without quitting, got %q", m.input.Value())
	}
}

func TestModel_View(t *testing.T) {
	m := testModel(t)

	if view := m.View(); !strings.Contains(view, commandPrefix+"help") {
		t.Errorf("expected empty-input hint in %q", view)
	}

	m = press(m, typed("mod(width, ")...)
	if view := m.View(); !strings.Contains(view, "mod") || !strings.Contains(view, "b") {
		t.Errorf("expected signature hint in %q", view)
	}
}

func TestHelpMessage(t *testing.T) {
	help := helpMessage()
	for _, name := range commandNames() {
		if !strings.Contains(help, commandPrefix+name) {
			t.Errorf("expected %s%s in help", commandPrefix, name)
		}
	}
}
