package core

// Color identifies a side. The zero value means "no side" and is only carried
// by the empty Piece.
type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	switch c {
	case ColorWhite, ColorBlack:
		return string(c)
	default:
		return "-"
	}
}

// Name returns the display name used for turn labels
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "None"
	}
}

func (c Color) Valid() bool {
	return c == ColorWhite || c == ColorBlack
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ParseColor accepts "w"/"b" and the long forms
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "white", "White":
		return ColorWhite, true
	case "b", "black", "Black":
		return ColorBlack, true
	default:
		return 0, false
	}
}

// CheckLabel is the status text shown while the side to move is in check
const CheckLabel = "Check"

// CheckStatus converts the advisory check flag into its display string
func CheckStatus(inCheck bool) string {
	if inCheck {
		return CheckLabel
	}
	return ""
}
