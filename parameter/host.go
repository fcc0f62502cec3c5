package parameter

// Terminal Host Layout
const (
	// TopMargin reserves row 0 for the progress indicator
	TopMargin = 1

	// RowPx is the virtual pixel height of one terminal row
	RowPx = 20.0

	// DocumentRows is the virtual page length in rows
	DocumentRows = 240

	// HeroRows is the height of the hero block at the top of the page
	HeroRows = 14

	// HeroWidthRatio is the hero card width as a fraction of the screen
	HeroWidthRatio = 0.6

	// HeroShiftCols and HeroShiftRows are the foreground displacement at full tilt
	HeroShiftCols = 6.0
	HeroShiftRows = 2.0

	// HeroBackdropRatio scales the backdrop's opposite displacement
	HeroBackdropRatio = 0.5

	// WheelRows is the scroll distance of one wheel notch
	WheelRows = 3

	// TopButtonLabel is the scroll-to-top control
	TopButtonLabel = "[ ^ top ]"

	// OverlayWidth is the debug overlay column width
	OverlayWidth = 34
)

// Window Host Layout
const (
	WindowWidth  = 960
	WindowHeight = 640

	// WindowTPS matches FrameInterval
	WindowTPS = 60

	// WheelPx is the scroll distance per wheel unit in the window host
	WheelPx = 60.0

	// WindowShiftPx is the hero foreground displacement at full tilt
	WindowShiftPx = 24.0
)
