package engine

import "math/rand/v2"

// zobristSeed pins the PRNG used to build the hash keys so that Zobrist
// keys, and hence transposition table contents, are reproducible across
// runs and processes. The exact values don't matter, only that they're
// fixed.
const zobristSeed1, zobristSeed2 = 0x9E3779B97F4A7C15, 0x2545F4914F6CDD1D

var (
	zobristPieces     [PieceCount][64]uint64
	zobristCastling   [16]uint64
	zobristEnPassant  [8]uint64
	zobristSideToMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(zobristSeed1, zobristSeed2))
	for piece := 0; piece < PieceCount; piece++ {
		for sq := 0; sq < 64; sq++ {
			zobristPieces[piece][sq] = rng.Uint64()
		}
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.Uint64()
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.Uint64()
	}
	zobristSideToMove = rng.Uint64()
}

// zobristKeyFromScratch recomputes a board's key by reading its current
// state rather than trusting the incrementally maintained one. Used at FEN
// load time and by the consistency tests.
func zobristKeyFromScratch(b *Board) uint64 {
	var key uint64
	for piece := 0; piece < PieceCount; piece++ {
		bb := b.PieceBB[piece]
		for bb != 0 {
			sq := popLSB(&bb)
			key ^= zobristPieces[piece][sq]
		}
	}
	key ^= zobristCastling[b.state().CastlingRights]
	if ep := b.state().EnPassant; ep != 0 {
		key ^= zobristEnPassant[fileOf(ep)]
	}
	if !b.WhiteToMove {
		key ^= zobristSideToMove
	}
	return key
}
