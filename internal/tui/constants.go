package tui

// UI Layout Constants

const (
	// Modal dimensions
	ModalWidthMargin  = 6 // m.width - 6
	ModalHeightMargin = 3 // m.height - 3

	// Header: title line + tab bar + blank line
	HeaderLines = 3
	// Input box: content + borders
	InputBoxLines  = 3
	TextAreaHeight = 5
	// Filter line above the results
	FilterLines = 1
	// Status bar
	StatusLines = 1

	// Results pane borders (top + bottom) and horizontal padding
	ViewportBorderWidth       = 2
	ViewportPaddingHorizontal = 4

	// Longest status message shown in the footer
	MaxStatusWidth = 100
)
