package keymap

import (
	"fmt"
	"strings"
)

// helpSections lists the contexts shown in the help modal, in order
var helpSections = []struct {
	title   string
	context Context
}{
	{"TABLE", ContextMain},
	{"NAME FILTER", ContextSearch},
	{"ASSIGNMENT INFO", ContextModal},
	{"FILTER FORM", ContextForm},
	{"GLOBAL", ContextGlobal},
}

// GenerateHelp generates help text from the registry bindings. Keys bound
// to the same command in a context are joined on one line.
func (r *Registry) GenerateHelp() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("\nASSIGNMENTS - Key Bindings\n")

	for _, sec := range helpSections {
		bindings := r.bindings[sec.context]
		if len(bindings) == 0 {
			continue
		}
		sb.WriteString("\n" + sec.title + ":\n")

		var order []Command
		keys := make(map[Command][]string)
		desc := make(map[Command]string)
		for _, b := range bindings {
			if _, ok := keys[b.Command]; !ok {
				order = append(order, b.Command)
				desc[b.Command] = b.Description
			}
			keys[b.Command] = append(keys[b.Command], formatKey(b.Key))
		}
		for _, cmd := range order {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", strings.Join(keys[cmd], " / "), desc[cmd]))
		}
	}

	sb.WriteString("\nMOUSE:\n")
	mouse := []HelpBinding{
		{Keys: "Header", Description: "Sort by column (again to reverse)"},
		{Keys: "Filter row", Description: "Edit filters"},
		{Keys: "⟳", Description: "Show hidden assignments"},
		{Keys: "Row", Description: "Open assignment"},
		{Keys: "Course cell", Description: "Open course"},
		{Keys: "✕", Description: "Hide assignment"},
	}
	for _, b := range mouse {
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", b.Keys, b.Description))
	}

	sb.WriteString("\nPress ? to close help\n")
	return sb.String()
}

// HelpBinding represents a single binding for display
type HelpBinding struct {
	Keys        string
	Description string
}

// FooterHelp generates a compact help string for the footer
func (r *Registry) FooterHelp() string {
	return "q:quit enter:open c:course x:hide R:unhide all 1-5/s:sort f:filter /:name i:info ?:help"
}

// ModalFooterHelp generates help text for the info modal footer
func (r *Registry) ModalFooterHelp() string {
	return "↑↓:scroll  enter:open  c:course  x:hide  y:copy  esc:close"
}

// formatKey formats a key string for display
func formatKey(key string) string {
	replacements := []struct{ old, new string }{
		{"pgup", "PgUp"},
		{"pgdown", "PgDn"},
		{"shift+tab", "Shift+Tab"},
		{"up", "↑"},
		{"down", "↓"},
		{"left", "←"},
		{"right", "→"},
		{"enter", "Enter"},
		{"esc", "Esc"},
		{"tab", "Tab"},
		{"space", "Space"},
		{"backspace", "Backspace"},
		{"ctrl+", "Ctrl+"},
	}

	result := key
	for _, r := range replacements {
		result = strings.ReplaceAll(result, r.old, r.new)
	}
	return result
}
