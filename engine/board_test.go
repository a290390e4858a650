package engine

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestFENRoundTrip(t *testing.T) {
	cases := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/8/8/4p1K1/2k1P3/8/8/8 b - - 0 1",
		"4k3/8/8/8/8/8/4R3/4K2R w K - 0 1",
	}
	for _, fen := range cases {
		b, err := ParseFEN(fen)
		require.NoError(t, err)
		require.Equal(t, fen, b.FEN())
	}
}

func TestMoveCoordinateRoundTrip(t *testing.T) {
	b := NewBoard()
	moves := b.GenerateMoves(false)
	for i := 0; i < moves.Len(); i++ {
		m := moves.at(i)
		if !b.MakeMove(m) {
			continue
		}
		b.UndoMove(m)
		got, ok := findMove(b, m.String())
		require.True(t, ok, "move %s should resolve back to itself", m)
		require.Equal(t, m, got)
	}
}

// TestMakeUnmakeRestoresBoard exercises invariant #1: after any sequence of
// make/unmake pairs, the board is bitwise-equal to what it started as.
func TestMakeUnmakeRestoresBoard(t *testing.T) {
	b := NewBoard()
	before := snapshot(b)

	rng := rand.New(rand.NewSource(1))
	var played []MoveData
	for i := 0; i < 50; i++ {
		moves := b.GenerateMoves(false)
		if moves.Len() == 0 {
			break
		}
		order := rng.Perm(moves.Len())
		made := false
		for _, idx := range order {
			m := moves.at(idx)
			if b.MakeMove(m) {
				played = append(played, m)
				made = true
				break
			}
		}
		if !made {
			break
		}
	}

	for i := len(played) - 1; i >= 0; i-- {
		b.UndoMove(played[i])
	}

	after := snapshot(b)
	if diff := cmp.Diff(before, after, cmpopts.EquateComparable()); diff != "" {
		t.Fatalf("board differs after make/unmake round trip (-before +after):\n%s", diff)
	}
}

// TestZobristConsistency exercises invariant #2 and end-to-end scenario #6:
// the incrementally maintained key always matches a from-scratch
// recomputation, including after undoing a random sequence.
func TestZobristConsistency(t *testing.T) {
	b := NewBoard()
	initialKey := b.ZobristKey

	rng := rand.New(rand.NewSource(7))
	var played []MoveData
	for i := 0; i < 50; i++ {
		moves := b.GenerateMoves(false)
		if moves.Len() == 0 {
			break
		}
		order := rng.Perm(moves.Len())
		made := false
		for _, idx := range order {
			m := moves.at(idx)
			if b.MakeMove(m) {
				played = append(played, m)
				made = true
				require.Equal(t, zobristKeyFromScratch(b), b.ZobristKey, "key diverged after move %s", m)
				break
			}
		}
		if !made {
			break
		}
	}

	for i := len(played) - 1; i >= 0; i-- {
		b.UndoMove(played[i])
	}
	require.Equal(t, initialKey, b.ZobristKey)
}

func TestMakeMoveRejectsSelfCheck(t *testing.T) {
	// White rook on e2 is pinned to the king by the black rook on e8;
	// sidestepping to d2 must be rejected.
	b, err := ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	require.NoError(t, err)
	e2, d2 := coordinateToSquare("e2"), coordinateToSquare("d2")
	m := MoveData{From: uint8(e2), To: uint8(d2), Piece: uint8(buildPiece(White, Rook)), Flag: NoFlag}
	require.False(t, b.MakeMove(m))
}

func TestInsufficientMaterialDraw(t *testing.T) {
	b, err := ParseFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	require.NoError(t, err)
	require.True(t, b.IsDraw())
}

func TestFiftyMoveDraw(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 99 60")
	require.NoError(t, err)
	m := MoveData{From: uint8(h1), To: uint8(h1 + North), Piece: uint8(buildPiece(White, Rook)), Flag: NoFlag}
	require.True(t, b.MakeMove(m))
	require.True(t, b.IsDraw())
}

func TestTwofoldRepetitionDraw(t *testing.T) {
	b := NewBoard()
	uciMoves := []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"}
	for _, u := range uciMoves {
		m, ok := findMove(b, u)
		require.True(t, ok, "move %s should be legal", u)
		require.True(t, b.MakeMove(m))
	}
	require.True(t, b.IsDraw())
}

type boardSnapshot struct {
	PieceBB        [PieceCount]uint64
	ColorBB        [2]uint64
	WhiteToMove    bool
	ZobristKey     uint64
	CastlingRights CastlingRights
	EnPassant      int
	HalfmoveClock  int
}

func snapshot(b *Board) boardSnapshot {
	st := b.state()
	return boardSnapshot{
		PieceBB:        b.PieceBB,
		ColorBB:        b.ColorBB,
		WhiteToMove:    b.WhiteToMove,
		ZobristKey:     b.ZobristKey,
		CastlingRights: st.CastlingRights,
		EnPassant:      st.EnPassant,
		HalfmoveClock:  st.HalfmoveClock,
	}
}
