package engine

// Material values, chosen the way the teacher's piece-square evaluator
// weights material: a pawn is the unit, the rest scaled relative to it.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 975
)

var pieceValue = [PieceTypeCount]int{Pawn: PawnValue, Knight: KnightValue, Bishop: BishopValue, Rook: RookValue, Queen: QueenValue, King: 0}

// pieceSquareTables holds one static bonus array per piece type, written
// from white's point of view with rank 8 as the first row — which is also
// this engine's own square-0 rank, so the literal grid below reads exactly
// as a board diagram. Evaluate mirrors the index (63-sq) to read a black
// piece's bonus off the same table.
var pieceSquareTables = [PieceTypeCount][64]int{
	Pawn: {
		25, 25, 25, 25, 25, 25, 25, 25,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		-5, -5, -5, -5, -5, -5, -5, -5,
		-15, -2, 3, 15, 15, 3, -2, -15,
		-15, 2, 5, 5, 5, 5, 2, -15,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	},
	Knight: {
		-15, -15, -15, -15, -15, -15, -15, -15,
		-2, -2, -2, -2, -2, -2, -2, -2,
		-5, 0, 2, 2, 2, 2, 0, -5,
		-5, 0, 15, 25, 25, 15, 0, -5,
		-5, 0, 15, 25, 25, 15, 0, -5,
		-5, 0, 25, 25, 25, 25, 0, -5,
		-2, -2, -2, -2, -2, -2, -2, -2,
		-15, -15, -15, -15, -15, -15, -15, -15,
	},
	Bishop: {
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		2, 5, 5, 0, 0, 5, 5, 2,
		2, 15, 5, 0, 0, 5, 15, 2,
		2, -5, -25, 0, 0, -25, -5, 2,
	},
	Rook: {
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, 10, 10, 10, 10, 5,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 2, 2, 0, 0, 0,
		0, 0, 0, 5, 5, 0, 0, 0,
	},
	Queen: {
		-10, -5, -5, -5, -5, -5, -5, -10,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 0, 0, 0, 0, 0, -5,
		-10, -5, -5, -5, -5, -5, -5, -10,
	},
	King: {
		-75, -75, -75, -75, -75, -75, -75, -75,
		-75, -75, -75, -75, -75, -75, -75, -75,
		-75, -75, -75, -75, -75, -75, -75, -75,
		-75, -75, -75, -75, -75, -75, -75, -75,
		-75, -75, -75, -75, -75, -75, -75, -75,
		-75, -75, -75, -75, -75, -75, -75, -75,
		25, 25, -10, -50, -50, -10, 25, 25,
		75, 50, 0, 0, 0, 0, 50, 75,
	},
}

// Evaluate is the leaf evaluator: stateless, side-relative, and driven
// entirely by material plus piece-square bonus. It re-reads the bitboards
// on every call rather than tracking a running incremental score, per the
// position this is modeled on.
func (b *Board) Evaluate() int {
	var score int
	for piece := 0; piece < PieceCount; piece++ {
		bb := b.PieceBB[piece]
		t := pieceType(piece)
		color := pieceColor(piece)
		for bb != 0 {
			sq := popLSB(&bb)
			mirrored := sq
			if color == Black {
				mirrored = 63 - sq
			}
			pieceScore := pieceValue[t] + pieceSquareTables[t][mirrored]
			if color == White {
				score += pieceScore
			} else {
				score -= pieceScore
			}
		}
	}
	if b.WhiteToMove {
		return score
	}
	return -score
}
