package engine

// Piece type codes. Numerically equal to the promotion move flags
// (PromoteKnight..PromoteQueen), so build(color, flag) reconstructs the
// promoted piece directly.
const (
	Pawn = iota
	Knight
	Bishop
	Rook
	Queen
	King
	PieceTypeCount
)

// Colors. Black is 0 so that piece code = pieceType + color*6 leaves black
// pieces in [0,6) and white pieces in [6,12).
const (
	Black = iota
	White
)

// NoPiece is the sentinel piece code for an empty square.
const NoPiece = 12

// PieceCount is the number of non-sentinel piece codes (6 types * 2 colors).
const PieceCount = 12

// buildPiece reconstructs a piece code from a color and a piece type.
func buildPiece(color, pieceType int) int {
	return pieceType + color*6
}

// pieceType extracts the piece type from a piece code.
func pieceType(piece int) int {
	return piece % 6
}

// pieceColor extracts the color from a piece code. Only meaningful when
// piece != NoPiece.
func pieceColor(piece int) int {
	if piece >= 6 {
		return White
	}
	return Black
}

var pieceLetters = [PieceCount]byte{
	'p', 'n', 'b', 'r', 'q', 'k',
	'P', 'N', 'B', 'R', 'Q', 'K',
}

func pieceToLetter(piece int) byte {
	if piece == NoPiece {
		return '.'
	}
	return pieceLetters[piece]
}

func letterToPiece(letter byte) int {
	for piece, l := range pieceLetters {
		if l == letter {
			return piece
		}
	}
	return NoPiece
}
