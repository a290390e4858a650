package engine

// Move flags. The promotion flags are numerically equal to the piece-type
// codes they promote to (PromoteKnight==Knight, etc.), so buildPiece(color,
// flag) reconstructs the promoted piece directly without a lookup table.
const (
	NoFlag = iota
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
	DoublePawnPush
	EnPassant
	CastleKingside
	CastleQueenside
)

// MoveData describes one pseudo-legal move. It is intentionally a plain
// struct rather than a packed integer: the core never needs to move more
// than a handful of these per node across a function boundary, and clarity
// at the call site is worth more than the few bytes saved by packing.
type MoveData struct {
	From  uint8
	To    uint8
	Piece uint8
	Flag  uint8
}

func (m MoveData) isPromotion() bool {
	return m.Flag >= PromoteKnight && m.Flag <= PromoteQueen
}

func (m MoveData) isCastle() bool {
	return m.Flag == CastleKingside || m.Flag == CastleQueenside
}

// String renders a move in UCI long-algebraic notation, e.g. "e2e4" or
// "a7a8q".
func (m MoveData) String() string {
	s := squareToCoordinate(int(m.From)) + squareToCoordinate(int(m.To))
	if m.isPromotion() {
		s += string(pieceLetters[m.Flag])
	}
	return s
}

// NullMove is the zero value MoveData, used as a sentinel for "no move".
var NullMove = MoveData{}

func (m MoveData) isNull() bool {
	return m.From == m.To
}

// moveListCapacity bounds the number of pseudo-legal moves any single
// position can generate; 218 is the documented maximum.
const moveListCapacity = 218

// scoredMove pairs a move with its ordering score, set by the search before
// descending into a node via next().
type scoredMove struct {
	move  MoveData
	score int32
}

// MoveList is a bounded, unordered buffer of scored moves with a lazy
// partial selection-sort next(): the caller repeatedly asks for the
// highest-scoring unexplored move, and the list swaps it into place rather
// than sorting the whole buffer up front. This amortizes ordering cost to
// O(n) when the search cuts off after the first few moves, which it usually
// does.
type MoveList struct {
	moves [moveListCapacity]scoredMove
	count int
}

func (l *MoveList) push(m MoveData) {
	l.moves[l.count].move = m
	l.moves[l.count].score = 0
	l.count++
}

func (l *MoveList) Len() int {
	return l.count
}

// setScore assigns an ordering score to the move at index i.
func (l *MoveList) setScore(i int, score int32) {
	l.moves[i].score = score
}

func (l *MoveList) at(i int) MoveData {
	return l.moves[i].move
}

// next finds the highest-scoring move among indices [i, count), swaps it
// into slot i, and returns it.
func (l *MoveList) next(i int) MoveData {
	best := i
	for j := i + 1; j < l.count; j++ {
		if l.moves[j].score > l.moves[best].score {
			best = j
		}
	}
	l.moves[i], l.moves[best] = l.moves[best], l.moves[i]
	return l.moves[i].move
}
