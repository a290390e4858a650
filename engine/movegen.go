package engine

// GenerateMoves enumerates pseudo-legal moves for the side to move. It does
// NOT filter self-check: legality is decided at make-time by MakeMove via
// the reverse-attack check in attackersOf. When capturesOnly is true, only
// captures (and capture-promotions) are emitted, for quiescence search.
func (b *Board) GenerateMoves(capturesOnly bool) *MoveList {
	list := &MoveList{}
	side := Black
	if b.WhiteToMove {
		side = White
	}
	opp := opponent(side)
	occ := b.Occupancy()

	b.genPawnMoves(list, side, capturesOnly)

	b.genLeaperMoves(list, buildPiece(side, Knight), knightAttacksFrom, side, opp, capturesOnly)
	b.genSliderMoves(list, buildPiece(side, Bishop), bishopAttacks, side, opp, occ, capturesOnly)
	b.genSliderMoves(list, buildPiece(side, Rook), rookAttacks, side, opp, occ, capturesOnly)
	b.genSliderMoves(list, buildPiece(side, Queen), queenAttacks, side, opp, occ, capturesOnly)
	b.genLeaperMoves(list, buildPiece(side, King), kingAttacksFrom, side, opp, capturesOnly)

	if !capturesOnly {
		b.genCastles(list, side, occ)
	}

	return list
}

func (b *Board) genLeaperMoves(list *MoveList, piece int, attacksFrom func(int) uint64, side, opp int, capturesOnly bool) {
	bb := b.PieceBB[piece]
	for bb != 0 {
		from := popLSB(&bb)
		targets := attacksFrom(from) &^ b.ColorBB[side]
		if capturesOnly {
			targets &= b.ColorBB[opp]
		}
		for targets != 0 {
			to := popLSB(&targets)
			list.push(MoveData{From: uint8(from), To: uint8(to), Piece: uint8(piece), Flag: NoFlag})
		}
	}
}

func (b *Board) genSliderMoves(list *MoveList, piece int, attacksFrom func(int, uint64) uint64, side, opp int, occ uint64, capturesOnly bool) {
	bb := b.PieceBB[piece]
	for bb != 0 {
		from := popLSB(&bb)
		targets := attacksFrom(from, occ) &^ b.ColorBB[side]
		if capturesOnly {
			targets &= b.ColorBB[opp]
		}
		for targets != 0 {
			to := popLSB(&targets)
			list.push(MoveData{From: uint8(from), To: uint8(to), Piece: uint8(piece), Flag: NoFlag})
		}
	}
}

func (b *Board) genPawnMoves(list *MoveList, side int, capturesOnly bool) {
	piece := buildPiece(side, Pawn)
	bb := b.PieceBB[piece]
	occ := b.Occupancy()
	opp := opponent(side)
	epSquare := b.state().EnPassant

	for bb != 0 {
		from := popLSB(&bb)
		row := rowOf(from)

		if !capturesOnly {
			oneStep := from + pushDirection[side]
			if squareBB(oneStep)&occ == 0 {
				b.emitPawnMove(list, piece, from, oneStep, side, NoFlag)
				if row == secondRank[side] {
					twoStep := oneStep + pushDirection[side]
					if squareBB(twoStep)&occ == 0 {
						list.push(MoveData{From: uint8(from), To: uint8(twoStep), Piece: uint8(piece), Flag: DoublePawnPush})
					}
				}
			}
		}

		attacks := pawnAttacksFrom(from, side)
		captures := attacks & b.ColorBB[opp]
		for captures != 0 {
			to := popLSB(&captures)
			b.emitPawnMove(list, piece, from, to, side, NoFlag)
		}

		if epSquare != 0 && attacks&squareBB(epSquare) != 0 {
			list.push(MoveData{From: uint8(from), To: uint8(epSquare), Piece: uint8(piece), Flag: EnPassant})
		}
	}
}

// emitPawnMove appends a quiet pawn move or capture, expanding to all four
// promotion flags when the destination is the promotion rank.
func (b *Board) emitPawnMove(list *MoveList, piece, from, to, side int, flag uint8) {
	if rowOf(to) == promotionRank[side] {
		for _, f := range []uint8{PromoteKnight, PromoteBishop, PromoteRook, PromoteQueen} {
			list.push(MoveData{From: uint8(from), To: uint8(to), Piece: uint8(piece), Flag: f})
		}
		return
	}
	list.push(MoveData{From: uint8(from), To: uint8(to), Piece: uint8(piece), Flag: flag})
}

func (b *Board) genCastles(list *MoveList, side int, occ uint64) {
	st := b.state()
	opp := opponent(side)
	kingSq := b.KingSquare(side)

	if st.CastlingRights.kingside(side) {
		empty, kingPath := castleEmptyAndPath(side, CastleKingside)
		if occ&empty == 0 && !b.anyAttacked(kingPath, opp) {
			to := kingSq + 2*East
			list.push(MoveData{From: uint8(kingSq), To: uint8(to), Piece: uint8(buildPiece(side, King)), Flag: CastleKingside})
		}
	}
	if st.CastlingRights.queenside(side) {
		empty, kingPath := castleEmptyAndPath(side, CastleQueenside)
		if occ&empty == 0 && !b.anyAttacked(kingPath, opp) {
			to := kingSq + 2*West
			list.push(MoveData{From: uint8(kingSq), To: uint8(to), Piece: uint8(buildPiece(side, King)), Flag: CastleQueenside})
		}
	}
}

// castleEmptyAndPath returns the squares that must be empty, and the
// squares (including the king's current square) that must not be attacked,
// for a given side's castle. Queenside has one extra empty-only square
// (the knight's square, b1/b8) that need not be safe, only vacant.
func castleEmptyAndPath(side int, flag uint8) (empty, kingPath uint64) {
	kingSq := e1
	if side == Black {
		kingSq = e8
	}
	if flag == CastleKingside {
		f1, g1 := kingSq+East, kingSq+2*East
		empty = squareBB(f1) | squareBB(g1)
		kingPath = squareBB(kingSq) | squareBB(f1) | squareBB(g1)
		return
	}
	d1, c1, b1sq := kingSq+West, kingSq+2*West, kingSq+3*West
	empty = squareBB(d1) | squareBB(c1) | squareBB(b1sq)
	kingPath = squareBB(kingSq) | squareBB(d1) | squareBB(c1)
	return
}

func (b *Board) anyAttacked(squares uint64, bySide int) bool {
	for squares != 0 {
		sq := popLSB(&squares)
		if b.IsAttacked(sq, bySide) {
			return true
		}
	}
	return false
}
