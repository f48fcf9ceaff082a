package keybinds

// DefaultRegistry returns the built-in keybindings
func DefaultRegistry() *Registry {
	r := NewRegistry()

	// Main screen, both panes. Only non-printable keys: the input pane types text.
	r.Register(ContextGlobal, "tab", ActionNextMode)
	r.Register(ContextGlobal, "shift+tab", ActionPrevMode)
	r.Register(ContextGlobal, "ctrl+s", ActionSubmit)
	r.Register(ContextGlobal, "ctrl+y", ActionCopyAll)
	r.Register(ContextGlobal, "ctrl+e", ActionExport)
	r.Register(ContextGlobal, "ctrl+p", ActionOpenProfiles)
	r.Register(ContextGlobal, "ctrl+t", ActionOpenAnalytics)
	r.Register(ContextGlobal, "f1", ActionOpenHelp)

	// Input pane
	r.Register(ContextInput, "enter", ActionSubmit)
	r.Register(ContextInput, "esc", ActionFocusResults)

	// Results pane
	r.Register(ContextResults, "q", ActionQuit)
	r.RegisterMultiple(ContextResults, []string{"esc", "i"}, ActionFocusInput)
	r.Register(ContextResults, "enter", ActionSubmit)
	r.RegisterMultiple(ContextResults, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextResults, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextResults, []string{"g", "home"}, ActionGoToTop)
	r.RegisterMultiple(ContextResults, []string{"G", "end"}, ActionGoToBottom)
	r.Register(ContextResults, "pgup", ActionPageUp)
	r.Register(ContextResults, "pgdown", ActionPageDown)
	r.Register(ContextResults, "b", ActionCycleBias)
	r.Register(ContextResults, "s", ActionCycleSentiment)
	r.Register(ContextResults, "c", ActionClearFilters)
	r.Register(ContextResults, "/", ActionSearch)
	r.Register(ContextResults, "y", ActionCopyOne)
	r.Register(ContextResults, "Y", ActionCopyAll)
	r.Register(ContextResults, "e", ActionExport)
	r.Register(ContextResults, "p", ActionOpenProfiles)
	r.Register(ContextResults, "a", ActionOpenAnalytics)
	r.Register(ContextResults, "?", ActionOpenHelp)

	// Search input
	r.Register(ContextSearch, "enter", ActionConfirm)
	r.Register(ContextSearch, "esc", ActionCancel)

	// Profile switcher
	r.RegisterMultiple(ContextProfiles, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextProfiles, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextProfiles, "enter", ActionSelect)
	r.RegisterMultiple(ContextProfiles, []string{"esc", "q"}, ActionClose)

	// Statistics
	r.RegisterMultiple(ContextAnalytics, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextAnalytics, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextAnalytics, "r", ActionRefresh)
	r.Register(ContextAnalytics, "C", ActionClearAnalytics)
	r.RegisterMultiple(ContextAnalytics, []string{"esc", "q"}, ActionClose)

	// Confirmation
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)

	// Help
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionNavigateDown)
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?", "f1"}, ActionClose)

	return r
}
