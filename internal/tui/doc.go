/*
Package tui implements the interactive terminal front end of biaslens.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - model.go: Model, Update, View and the result handling
  - init.go: construction, client and analytics wiring, Run
  - keys.go: keyboard routing per view and per focused pane
  - render.go: the main screen (tabs, input, filters, results, status bar)
  - actions.go: commands that leave the event loop (HTTP, clipboard, files)
  - modals.go, profile_modal.go, analytics_modal.go: overlay screens

# Session

All analysis state lives in analysis.State. Every submission receives a
Ticket; analyzeResultMsg carries it back and State.Complete / State.Fail
drop results whose generation is no longer current. Switching tabs bumps
the generation, so a slow response can never land in another mode.

# Keybindings

Keys are resolved through a keybinds.Registry: the built-in defaults,
overlaid with ~/.biaslens/keybinds.jsonc when present. Handlers switch on
actions, never on raw keys, and the help screen and footers are generated
from the registry. ctrl+c always quits.

# Logging

The alt screen owns the terminal, so slog output goes to a file
(see logging.InitFile).
*/
package tui
