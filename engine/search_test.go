package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSearchFindsMateInOne covers §8 end-to-end scenario 1: at depth >= 2
// the engine must find the mating move. It checks that the chosen move
// leaves the defender in check with no legal reply; the reported score is
// not checked. The rook delivers a back-rank mate; the defender's own pawns
// block every other flight square.
func TestSearchFindsMateInOne(t *testing.T) {
	b, err := ParseFEN("6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable(1)
	s := NewSearcher(b, tt)
	best := s.Search(SearchLimits{MaxDepth: 3})
	require.NotEqual(t, NullMove, best)

	require.True(t, b.MakeMove(best))
	require.True(t, b.InCheck(Black))
	require.Equal(t, 0, countLegalMoves(b))
}

func countLegalMoves(b *Board) int {
	moves := b.GenerateMoves(false)
	n := 0
	for i := 0; i < moves.Len(); i++ {
		m := moves.at(i)
		if b.MakeMove(m) {
			n++
			b.UndoMove(m)
		}
	}
	return n
}

// TestSearchAvoidsStalemate covers §8 end-to-end scenario 2: Qf7g6 strips
// the black king of every flight square without giving check, which is
// stalemate (an immediate draw); a search that looks one full ply past its
// own move must see that branch score as a draw and prefer another.
func TestSearchAvoidsStalemate(t *testing.T) {
	b, err := ParseFEN("7k/5Q2/5K2/8/8/8/8/8 w - - 0 1")
	require.NoError(t, err)

	tt := NewTranspositionTable(1)
	s := NewSearcher(b, tt)
	best := s.Search(SearchLimits{MaxDepth: 3})

	require.NotEqual(t, "f7g6", best.String())
}

// TestSearchReturnsZeroOnDraw covers §8 end-to-end scenario 3.
func TestSearchReturnsZeroOnDraw(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K - 99 60")
	require.NoError(t, err)
	m, ok := findMove(b, "h1h2")
	require.True(t, ok)
	require.True(t, b.MakeMove(m))
	require.True(t, b.IsDraw())

	tt := NewTranspositionTable(1)
	s := NewSearcher(b, tt)
	s.Search(SearchLimits{MaxDepth: 1})
	require.Equal(t, 0, s.rootBestEval)
}
