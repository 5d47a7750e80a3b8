package tui

// Color constants for the breathe TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#0F1E2A" // Deep teal night
	ColorBorder         = "#2E4756" // Slate blue

	// Text Colors
	ColorPrimaryText   = "#E8F1F2" // Titles, user input
	ColorSecondaryText = "#A9BCC4" // Instructions, captions
	ColorDisabledText  = "#60737D" // Muted text
	ColorPlaceholder   = "#A9BCC4" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (sea glass theme)
	ColorAccentMain   = "#2BB3A3" // Logo, bar fill, active borders
	ColorAccentBright = "#7FE3D4" // Phase label, highlights, current step

	// Phase Colors
	ColorInhale = "#7FE3D4"
	ColorHold   = "#C3B1E1"
	ColorExhale = "#8AB6F9"

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings, story in flight
)
