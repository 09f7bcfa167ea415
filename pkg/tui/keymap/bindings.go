package keymap

// DefaultBindings returns the default key bindings for the assignment table.
// Bindings are organized by context and follow vim conventions where applicable.
func DefaultBindings() []Binding {
	return []Binding{
		// ============================================================
		// GLOBAL BINDINGS
		// ============================================================
		{Key: "q", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextGlobal, Description: "Toggle help"},

		// ============================================================
		// MAIN TABLE BINDINGS
		// Active when no modal is open and the name filter is not focused
		// ============================================================

		// Cursor movement
		{Key: "j", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextMain, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextMain, Description: "Move up"},
		{Key: "ctrl+d", Command: CmdHalfPageDown, Context: ContextMain, Description: "Half page down"},
		{Key: "ctrl+u", Command: CmdHalfPageUp, Context: ContextMain, Description: "Half page up"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextMain, Description: "Go to top"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextMain, Description: "Go to bottom"},

		// Row actions
		{Key: "enter", Command: CmdOpenAssignment, Context: ContextMain, Description: "Open assignment"},
		{Key: "c", Command: CmdOpenCourse, Context: ContextMain, Description: "Open course"},
		{Key: "i", Command: CmdOpenInfo, Context: ContextMain, Description: "Assignment info"},
		{Key: "x", Command: CmdHideRow, Context: ContextMain, Description: "Hide assignment"},
		{Key: "R", Command: CmdResetHidden, Context: ContextMain, Description: "Show hidden assignments"},
		{Key: "y", Command: CmdCopyURL, Context: ContextMain, Description: "Copy assignment URL"},
		{Key: "r", Command: CmdRefresh, Context: ContextMain, Description: "Reload data"},

		// Sorting
		{Key: "1", Command: CmdSortColumn1, Context: ContextMain, Description: "Sort by course"},
		{Key: "2", Command: CmdSortColumn2, Context: ContextMain, Description: "Sort by name"},
		{Key: "3", Command: CmdSortColumn3, Context: ContextMain, Description: "Sort by due date"},
		{Key: "4", Command: CmdSortColumn4, Context: ContextMain, Description: "Sort by lock state"},
		{Key: "5", Command: CmdSortColumn5, Context: ContextMain, Description: "Sort by submission"},
		{Key: "s", Command: CmdCycleSortKey, Context: ContextMain, Description: "Next sort column"},

		// Filtering
		{Key: "f", Command: CmdOpenFilterForm, Context: ContextMain, Description: "Edit filters"},
		{Key: "F", Command: CmdResetFilters, Context: ContextMain, Description: "Restore default filters and sort"},
		{Key: "/", Command: CmdSearch, Context: ContextMain, Description: "Filter by name"},
		{Key: "esc", Command: CmdSearchClear, Context: ContextMain, Description: "Clear name filter"},

		// ============================================================
		// SEARCH BINDINGS
		// Active while typing into the name filter
		// ============================================================
		{Key: "enter", Command: CmdSearchConfirm, Context: ContextSearch, Description: "Apply filter"},
		{Key: "esc", Command: CmdSearchCancel, Context: ContextSearch, Description: "Cancel"},
		{Key: "ctrl+u", Command: CmdSearchClear, Context: ContextSearch, Description: "Clear filter"},
		{Key: "ctrl+w", Command: CmdSearchClear, Context: ContextSearch, Description: "Clear filter"},

		// ============================================================
		// MODAL BINDINGS (Assignment info)
		// ============================================================
		{Key: "esc", Command: CmdClose, Context: ContextModal, Description: "Close modal"},
		{Key: "i", Command: CmdClose, Context: ContextModal, Description: "Close modal"},
		{Key: "j", Command: CmdScrollDown, Context: ContextModal, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextModal, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextModal, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextModal, Description: "Scroll up"},
		{Key: "enter", Command: CmdOpenAssignment, Context: ContextModal, Description: "Open assignment"},
		{Key: "c", Command: CmdOpenCourse, Context: ContextModal, Description: "Open course"},
		{Key: "x", Command: CmdHideRow, Context: ContextModal, Description: "Hide assignment"},
		{Key: "y", Command: CmdCopyURL, Context: ContextModal, Description: "Copy assignment URL"},

		// ============================================================
		// FORM BINDINGS
		// Checked before keys are forwarded to the form
		// ============================================================
		{Key: "ctrl+s", Command: CmdFormSubmit, Context: ContextForm, Description: "Apply filters"},
		{Key: "esc", Command: CmdFormCancel, Context: ContextForm, Description: "Cancel"},

		// ============================================================
		// HELP BINDINGS
		// ============================================================
		{Key: "?", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "esc", Command: CmdToggleHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "j", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "down", Command: CmdScrollDown, Context: ContextHelp, Description: "Scroll down"},
		{Key: "k", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
		{Key: "up", Command: CmdScrollUp, Context: ContextHelp, Description: "Scroll up"},
	}
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}
