package keymap

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRegisterBinding(t *testing.T) {
	r := NewRegistry()
	r.RegisterBinding(Binding{Key: "j", Command: CmdCursorDown, Context: ContextMain})

	bindings := r.BindingsForContext(ContextMain)
	if len(bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(bindings))
	}
	if bindings[0].Key != "j" {
		t.Errorf("expected key 'j', got '%s'", bindings[0].Key)
	}
}

func TestLookup_Defaults(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	tests := []struct {
		key  tea.KeyMsg
		ctx  Context
		want Command
	}{
		{runeKey("j"), ContextMain, CmdCursorDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, ContextMain, CmdOpenAssignment},
		{runeKey("x"), ContextMain, CmdHideRow},
		{runeKey("R"), ContextMain, CmdResetHidden},
		{runeKey("3"), ContextMain, CmdSortColumn3},
		{runeKey("q"), ContextMain, CmdQuit},
		{tea.KeyMsg{Type: tea.KeyEsc}, ContextModal, CmdClose},
		{tea.KeyMsg{Type: tea.KeyEsc}, ContextSearch, CmdSearchCancel},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, ContextForm, CmdFormSubmit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ContextForm, CmdQuit},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.key, tt.ctx)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q, %s) = %q, %v; want %q", KeyToString(tt.key), tt.ctx, got, ok, tt.want)
		}
	}
}

func TestLookup_Unbound(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	if cmd, ok := r.Lookup(runeKey("z"), ContextMain); ok {
		t.Errorf("Lookup(z) = %q, want unbound", cmd)
	}
}

func TestLookup_UserOverrideWins(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	r.SetUserOverride(ContextMain, "x", CmdOpenInfo)

	if got, _ := r.Lookup(runeKey("x"), ContextMain); got != CmdOpenInfo {
		t.Errorf("override: got %q, want %q", got, CmdOpenInfo)
	}
	if got, _ := r.Lookup(runeKey("x"), ContextModal); got != CmdHideRow {
		t.Errorf("other context: got %q, want %q", got, CmdHideRow)
	}
}

func TestLookup_Sequence(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	if _, ok := r.Lookup(runeKey("g"), ContextMain); ok {
		t.Fatal("first key of a sequence should not resolve")
	}
	if r.PendingKey() != "g" {
		t.Errorf("PendingKey() = %q, want g", r.PendingKey())
	}
	got, ok := r.Lookup(runeKey("g"), ContextMain)
	if !ok || got != CmdCursorTop {
		t.Errorf("g g = %q, %v; want %q", got, ok, CmdCursorTop)
	}
}

func TestLookup_SequenceFallsBackToSingleKey(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.Lookup(runeKey("g"), ContextMain)
	got, ok := r.Lookup(runeKey("j"), ContextMain)
	if !ok || got != CmdCursorDown {
		t.Errorf("g j = %q, %v; want %q", got, ok, CmdCursorDown)
	}
}

func TestLookup_SequenceTimeout(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)

	r.Lookup(runeKey("g"), ContextMain)
	r.mu.Lock()
	r.pendingTime = time.Now().Add(-2 * sequenceTimeout)
	r.mu.Unlock()

	if _, ok := r.Lookup(runeKey("g"), ContextMain); ok {
		t.Error("expired sequence should not complete")
	}
	r.ResetPending()
	if r.PendingKey() != "" {
		t.Error("ResetPending did not clear")
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeyCtrlD}, "ctrl+d"},
		{tea.KeyMsg{Type: tea.KeyEnter}, "enter"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, "shift+tab"},
		{runeKey("/"), "/"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestGenerateHelp(t *testing.T) {
	r := NewRegistry()
	RegisterDefaults(r)
	help := r.GenerateHelp()

	for _, want := range []string{"TABLE:", "ASSIGNMENT INFO:", "MOUSE:", "j / ↓", "Hide assignment", "Ctrl+s"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestFormatKey(t *testing.T) {
	tests := map[string]string{
		"pgdown":    "PgDn",
		"shift+tab": "Shift+Tab",
		"ctrl+u":    "Ctrl+u",
		"down":      "↓",
		"g g":       "g g",
	}
	for in, want := range tests {
		if got := formatKey(in); got != want {
			t.Errorf("formatKey(%q) = %q, want %q", in, got, want)
		}
	}
}
