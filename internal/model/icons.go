package model

// Centralized icons for the menu buttons
// Using simple single-width characters for consistent terminal rendering
const (
	IconRun     = " " // Plain button, no icon to reduce noise
	IconSubmenu = "▸" // Opens a submenu
	IconBack    = "◂" // Returns to the parent menu
	IconQuit    = "✗" // Leaves the launcher
	IconCursor  = "›" // Marks the focused button
)
