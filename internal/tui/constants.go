package tui

import "time"

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin       = 6  // Standard horizontal margin (m.width - 6)
	ModalHeightMargin      = 3  // Standard vertical margin (m.height - 3)
	ModalWidthMarginNarrow = 10 // Narrow horizontal margin for focused modals (m.width - 10)
	ModalHeightMarginMed   = 4  // Medium vertical margin (m.height - 4)

	// Content Area Offsets
	ContentOffsetHelp = 10 // m.height - 10 for help viewer
	ContentOffsetDeck = 6  // tab bar (3) + status bar (1) + borders (2)

	// Text input modal width
	TextInputModalWidth = 50

	// Split View Ratios
	HistoryListWidthRatio = 0.55

	// History entries loaded into the journal viewer
	HistoryViewLimit = 500
)

const (
	// StatusTimeout is how long a status message stays visible
	StatusTimeout = 1500 * time.Millisecond

	// FrameInterval drives the recording indicator blink
	FrameInterval = 500 * time.Millisecond
)
