package core

type Kind int

const (
	KindNone Kind = iota
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a tagged {kind, color} value. The zero Piece is an empty square.
type Piece struct {
	Kind  Kind
	Color Color
}

// Empty is the content of an unoccupied square
var Empty = Piece{}

func NewPiece(k Kind, c Color) Piece {
	return Piece{Kind: k, Color: c}
}

func (p Piece) IsEmpty() bool {
	return p.Kind == KindNone
}

// kindSymbols is the single symbol table shared by placement parsing and
// rendering. Lower case is the black spelling.
var kindSymbols = map[Kind]byte{
	Pawn:   'p',
	Rook:   'r',
	Knight: 'n',
	Bishop: 'b',
	Queen:  'q',
	King:   'k',
}

var symbolKinds = map[byte]Kind{
	'p': Pawn,
	'r': Rook,
	'n': Knight,
	'b': Bishop,
	'q': Queen,
	'k': King,
}

// Symbol returns the piece letter, upper case for white, or 0 when empty
func (p Piece) Symbol() byte {
	sym, ok := kindSymbols[p.Kind]
	if !ok {
		return 0
	}
	if p.Color == ColorWhite {
		return sym - 'a' + 'A'
	}
	return sym
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.Name() + " " + p.Kind.String()
}

// SymbolString is Symbol as a string, empty for an empty square
func (p Piece) SymbolString() string {
	if p.IsEmpty() {
		return ""
	}
	return string(p.Symbol())
}

// PieceFromSymbol is the inverse of Symbol
func PieceFromSymbol(ch byte) (Piece, bool) {
	color := ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		color = ColorWhite
		ch = ch - 'A' + 'a'
	}
	kind, ok := symbolKinds[ch]
	if !ok {
		return Empty, false
	}
	return Piece{Kind: kind, Color: color}, true
}
