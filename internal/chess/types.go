// Package chess provides core chess types and the Position arena the
// rules engine operates on.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Kind is the closed set of piece kinds.
type Kind int

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromLetter maps a FEN piece letter to its colour and kind.
// ok is false for anything outside PNBRQK/pnbrqk.
func KindFromLetter(letter byte) (colour Colour, kind Kind, ok bool) {
	colour = White
	if letter >= 'a' && letter <= 'z' {
		colour = Black
		letter -= 'a' - 'A'
	}
	switch letter {
	case 'P':
		kind = Pawn
	case 'N':
		kind = Knight
	case 'B':
		kind = Bishop
	case 'R':
		kind = Rook
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	default:
		return Black, NoKind, false
	}
	return colour, kind, true
}

// PromotionKinds lists the kinds a pawn may promote to, strongest first.
var PromotionKinds = []Kind{Queen, Rook, Bishop, Knight}

// CastleSide selects the kingside or queenside rook.
type CastleSide int

const (
	Kingside CastleSide = iota
	Queenside
)

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index for a colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return 7
}

// PawnRank returns the rank index pawns of a colour start on.
func PawnRank(colour Colour) int {
	if colour == White {
		return 1
	}
	return 6
}

// PromotionRank returns the rank index on which a pawn of a colour promotes.
func PromotionRank(colour Colour) int {
	if colour == White {
		return 7
	}
	return 0
}
