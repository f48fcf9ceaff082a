package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the screen or pane in which keybindings are active
type Context string

const (
	ContextGlobal    Context = "global"    // Main screen, both panes
	ContextInput     Context = "input"     // Input pane
	ContextResults   Context = "results"   // Result list pane
	ContextSearch    Context = "search"    // Sentence search input
	ContextProfiles  Context = "profiles"  // Profile switcher
	ContextAnalytics Context = "analytics" // Submission statistics
	ContextConfirm   Context = "confirm"   // Confirmation dialogs
	ContextHelp      Context = "help"      // Help viewer
)

const (
	ActionQuit Action = "quit"

	// Session actions
	ActionNextMode       Action = "next_mode"
	ActionPrevMode       Action = "prev_mode"
	ActionSubmit         Action = "submit"
	ActionCopyAll        Action = "copy_all"
	ActionCopyOne        Action = "copy_one"
	ActionExport         Action = "export_csv"
	ActionOpenProfiles   Action = "open_profiles"
	ActionOpenAnalytics  Action = "open_analytics"
	ActionOpenHelp       Action = "open_help"
	ActionFocusResults   Action = "focus_results"
	ActionFocusInput     Action = "focus_input"
	ActionCycleBias      Action = "cycle_bias"
	ActionCycleSentiment Action = "cycle_sentiment"
	ActionClearFilters   Action = "clear_filters"
	ActionSearch         Action = "search"

	// Navigation actions
	ActionNavigateUp   Action = "navigate_up"
	ActionNavigateDown Action = "navigate_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"

	// Modal actions
	ActionSelect         Action = "select"
	ActionClose          Action = "close"
	ActionConfirm        Action = "confirm"
	ActionCancel         Action = "cancel"
	ActionRefresh        Action = "refresh"
	ActionClearAnalytics Action = "clear_analytics"

	// ActionNone unbinds a key in a user config
	ActionNone Action = "none"
)

// contextActions lists the actions each context understands
var contextActions = map[Context][]Action{
	ContextGlobal: {
		ActionNextMode, ActionPrevMode, ActionSubmit, ActionCopyAll, ActionExport,
		ActionOpenProfiles, ActionOpenAnalytics, ActionOpenHelp,
	},
	ContextInput: {
		ActionSubmit, ActionFocusResults,
	},
	ContextResults: {
		ActionQuit, ActionFocusInput, ActionSubmit,
		ActionNavigateUp, ActionNavigateDown, ActionPageUp, ActionPageDown, ActionGoToTop, ActionGoToBottom,
		ActionCycleBias, ActionCycleSentiment, ActionClearFilters, ActionSearch,
		ActionCopyOne, ActionCopyAll, ActionExport,
		ActionOpenProfiles, ActionOpenAnalytics, ActionOpenHelp,
		ActionNextMode, ActionPrevMode,
	},
	ContextSearch:    {ActionConfirm, ActionCancel},
	ContextProfiles:  {ActionNavigateUp, ActionNavigateDown, ActionSelect, ActionClose},
	ContextAnalytics: {ActionNavigateUp, ActionNavigateDown, ActionRefresh, ActionClearAnalytics, ActionClose},
	ContextConfirm:   {ActionConfirm, ActionCancel},
	ContextHelp:      {ActionNavigateUp, ActionNavigateDown, ActionClose},
}

// inherits maps a context to the context its lookups fall back to.
// Modals do not fall back so their keys never leak into the main screen.
var inherits = map[Context]Context{
	ContextInput:   ContextGlobal,
	ContextResults: ContextGlobal,
}

// Descriptions are shown in the help screen
var descriptions = map[Action]string{
	ActionQuit:           "quit",
	ActionNextMode:       "next input mode (clears everything)",
	ActionPrevMode:       "previous input mode (clears everything)",
	ActionSubmit:         "analyze the current input",
	ActionCopyAll:        "copy every sentence",
	ActionCopyOne:        "copy the selected sentence",
	ActionExport:         "export analysis.csv",
	ActionOpenProfiles:   "switch profile",
	ActionOpenAnalytics:  "submission statistics",
	ActionOpenHelp:       "this help",
	ActionFocusResults:   "move to the results",
	ActionFocusInput:     "back to the input",
	ActionCycleBias:      "cycle bias filter",
	ActionCycleSentiment: "cycle sentiment filter",
	ActionClearFilters:   "clear filters and search",
	ActionSearch:         "fuzzy search sentences",
	ActionNavigateUp:     "previous item",
	ActionNavigateDown:   "next item",
	ActionPageUp:         "page up",
	ActionPageDown:       "page down",
	ActionGoToTop:        "first item",
	ActionGoToBottom:     "last item",
	ActionSelect:         "select",
	ActionClose:          "close",
	ActionConfirm:        "confirm",
	ActionCancel:         "cancel",
	ActionRefresh:        "reload",
	ActionClearAnalytics: "clear recorded submissions",
}

// Describe returns the help text for an action
func Describe(action Action) string {
	if d, ok := descriptions[action]; ok {
		return d
	}
	return string(action)
}

// Actions returns the actions available in a context, in help order
func Actions(context Context) []Action {
	return contextActions[context]
}

// IsValidAction reports whether action can be bound in context
func IsValidAction(context Context, action Action) bool {
	for _, a := range contextActions[context] {
		if a == action {
			return true
		}
	}
	return false
}
