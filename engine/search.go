package engine

import (
	"sync/atomic"
	"time"
)

// Checkmate is the base mate score; an actual mate is reported as
// Checkmate minus the distance in plies, so closer mates score higher.
const Checkmate = 100000

const mateThreshold = Checkmate - 1000

// maxKillerPly bounds the killer-move table. Ply counts beyond this in
// practice only arise deep in quiescence, which never records killers.
const maxKillerPly = 64

// maxPVPly bounds the triangular PV table. Generous relative to
// maxKillerPly since check extensions can push the main search a handful
// of plies past the nominal depth.
const maxPVPly = 128

// defaultNodePollInterval is how often (in nodes) the search checks the
// wall clock; the external cancellation flag is checked at every node.
// Lower values improve time-limit latency at a small cost to search speed;
// see §9.
const defaultNodePollInterval = 20000

// mvvLva[attacker*6+victim] scores captures by most-valuable-victim,
// least-valuable-attacker: a pawn taking a queen outranks a queen taking a
// queen.
var mvvLva [36]int32

func init() {
	values := [PieceTypeCount]int32{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 10}
	for attacker := 0; attacker < 6; attacker++ {
		for victim := 0; victim < 6; victim++ {
			mvvLva[attacker*6+victim] = values[victim]*10 - values[attacker]
		}
	}
}

// Searcher owns everything a single search needs: the board it searches
// from, its transposition table, and per-call scratch (killers, history).
// There's no other shared state, so multiple Searchers can coexist in one
// process.
type Searcher struct {
	Board *Board
	TT    *TranspositionTable

	killers [maxKillerPly][2]MoveData
	history [2][64][64]int32

	pvTable  [maxPVPly][maxPVPly]MoveData
	pvLength [maxPVPly]int

	nodes            uint64
	seldepth         int
	nodePollInterval uint64
	deadline         time.Time
	hasDeadline      bool
	cancelled        atomic.Bool

	rootBestMove MoveData
	rootBestEval int
}

func NewSearcher(board *Board, tt *TranspositionTable) *Searcher {
	return &Searcher{
		Board:            board,
		TT:               tt,
		nodePollInterval: defaultNodePollInterval,
	}
}

// NewSearcherWithConfig is like NewSearcher but takes the node-polling
// interval from cfg rather than defaulting it, so an operator's wren.toml
// actually governs stop latency (§5/§9).
func NewSearcherWithConfig(board *Board, tt *TranspositionTable, cfg Config) *Searcher {
	s := NewSearcher(board, tt)
	if cfg.NodePollInterval > 0 {
		s.nodePollInterval = uint64(cfg.NodePollInterval)
	}
	return s
}

// SearchLimits bounds one Search call: either a fixed depth, a fixed move
// time, or both (whichever triggers first).
type SearchLimits struct {
	MaxDepth int
	MoveTime time.Duration
	HasTime  bool
	InfoFn   func(depth, seldepth, score int, mate bool, nodes uint64, elapsed time.Duration, pv []MoveData)
}

// PartitionTime implements the soft time-budget helper of §5: absent an
// explicit movetime, a controller-supplied clock is divided 5% per move.
func PartitionTime(total time.Duration) time.Duration {
	return time.Duration(float64(total) * 0.05)
}

// Search performs iterative deepening from depth 1, keeping the best move
// from the last fully completed iteration. It never returns NullMove for a
// position with at least one legal move.
func (s *Searcher) Search(limits SearchLimits) MoveData {
	s.killers = [maxKillerPly][2]MoveData{}
	s.history = [2][64][64]int32{}
	s.pvTable = [maxPVPly][maxPVPly]MoveData{}
	s.pvLength = [maxPVPly]int{}
	s.cancelled.Store(false)
	s.nodes = 0

	maxDepth := limits.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}
	if limits.HasTime {
		s.deadline = time.Now().Add(limits.MoveTime)
		s.hasDeadline = true
	} else {
		s.hasDeadline = false
	}

	start := time.Now()
	var best MoveData

	for depth := 1; depth <= maxDepth; depth++ {
		s.seldepth = 0
		s.rootBestMove = NullMove
		s.rootBestEval = -Checkmate

		eval := s.abSearch(depth, 0, -Checkmate, Checkmate)

		if s.cancelled.Load() {
			break
		}

		best = s.rootBestMove

		if limits.InfoFn != nil {
			mate := false
			score := eval
			if isMateScore(eval) {
				mate = true
				score = mateDistanceInMoves(eval)
			}
			pv := append([]MoveData(nil), s.pvTable[0][:s.pvLength[0]]...)
			limits.InfoFn(depth, s.seldepth, score, mate, s.nodes, time.Since(start), pv)
		}

		if isMateScore(eval) {
			break
		}
	}

	if best.isNull() {
		best = s.rootBestMove
	}
	if best.isNull() {
		moves := s.Board.GenerateMoves(false)
		for i := 0; i < moves.Len(); i++ {
			m := moves.at(i)
			if s.Board.MakeMove(m) {
				s.Board.UndoMove(m)
				best = m
				break
			}
		}
	}

	return best
}

func mateDistanceInMoves(eval int) int {
	plies := Checkmate - eval
	if eval < 0 {
		plies = Checkmate + eval
	}
	moves := (plies + 1) / 2
	if eval < 0 {
		return -moves
	}
	return moves
}

// Cancel requests that an in-flight Search return as soon as its next poll
// observes it. Safe to call from a different goroutine than the one
// running Search.
func (s *Searcher) Cancel() {
	s.cancelled.Store(true)
}

// pollCancel checks the node counter against the poll interval and, when
// due, tests the wall clock. Cancellation is sticky for the rest of the
// tree once set.
func (s *Searcher) pollCancel() bool {
	if s.cancelled.Load() {
		return true
	}
	if s.nodes%s.nodePollInterval == 0 && s.hasDeadline && time.Now().After(s.deadline) {
		s.cancelled.Store(true)
	}
	return s.cancelled.Load()
}

// abSearch is the negamax core: alpha-beta with PVS re-search, mate
// distance pruning, check extension, TT integration, and quiescence at the
// horizon. Returns a side-relative score.
func (s *Searcher) abSearch(depth, ply, alpha, beta int) int {
	s.nodes++
	if s.pollCancel() {
		return 0
	}

	if ply > s.seldepth {
		s.seldepth = ply
	}

	pvTracked := ply < maxPVPly
	if pvTracked {
		s.pvLength[ply] = ply
	}

	if ply > 0 {
		if s.Board.IsDraw() {
			return 0
		}
		alpha = max(alpha, -(Checkmate - ply))
		beta = min(beta, Checkmate-ply-1)
		if alpha >= beta {
			return alpha
		}
	}

	key := s.Board.ZobristKey
	ttEval, usable, ttMove := s.TT.Probe(key, depth, ply, alpha, beta)
	if ply > 0 && usable {
		return ttEval
	}

	side := colorToMove(s.Board)
	inCheck := s.Board.InCheck(side)
	if inCheck {
		depth++
	}

	if depth <= 0 {
		return s.qSearch(alpha, beta, ply)
	}

	moves := s.Board.GenerateMoves(false)
	s.scoreMoves(moves, ttMove, ply)

	legalMoves := 0
	bestLocalEval := -Checkmate
	var bestLocalMove MoveData
	bound := BoundAlpha

	for i := 0; i < moves.Len(); i++ {
		m := moves.next(i)
		if !s.Board.MakeMove(m) {
			continue
		}
		legalMoves++

		var score int
		if legalMoves == 1 {
			score = -s.abSearch(depth-1, ply+1, -beta, -alpha)
		} else {
			score = -s.abSearch(depth-1, ply+1, -alpha-1, -alpha)
			if score > alpha && score < beta {
				score = -s.abSearch(depth-1, ply+1, -beta, -alpha)
			}
		}
		s.Board.UndoMove(m)

		if s.cancelled.Load() {
			return 0
		}

		if score > bestLocalEval {
			bestLocalEval = score
			bestLocalMove = m
		}

		if score >= beta {
			s.TT.Store(key, m, BoundBeta, beta, depth, ply)
			if m.Flag == NoFlag {
				s.bumpHistory(side, m, depth)
				s.addKiller(ply, m)
			}
			if ply == 0 {
				s.rootBestMove = m
				s.rootBestEval = beta
			}
			return beta
		}
		if score > alpha {
			alpha = score
			bound = BoundExact

			if pvTracked && ply+1 < maxPVPly {
				s.pvTable[ply][ply] = m
				for next := ply + 1; next < s.pvLength[ply+1]; next++ {
					s.pvTable[ply][next] = s.pvTable[ply+1][next]
				}
				s.pvLength[ply] = s.pvLength[ply+1]
			}

			if ply == 0 {
				s.rootBestMove = m
				s.rootBestEval = score
			}
		}
	}

	if legalMoves == 0 {
		eval := 0
		if inCheck {
			eval = -(Checkmate - ply)
		}
		s.TT.Store(key, NullMove, BoundExact, eval, depth, ply)
		return eval
	}

	s.TT.Store(key, bestLocalMove, bound, alpha, depth, ply)
	return alpha
}

// qSearchPlyCap bounds qSearch's own recursion (distinct from the main
// search's depth budget, since a capture/evasion chain has no depth
// counter to exhaust it) so a pathological position can't run the stack
// out. In practice real lines resolve long before this is reached: outside
// of check qSearch only plays captures, so every check chain consumes
// material. qSearch itself never consults the draw rule.
const qSearchPlyCap = maxPVPly

// qSearch extends the search past the nominal horizon while captures
// remain, to avoid the horizon effect (§4.7). When the side to move is in
// check, it searches every legal reply (not just captures) instead of
// standing pat, since a stand-pat score is meaningless while in check:
// the side to move may have no choice but to walk into a worse position,
// and a missed mate at the horizon is a far costlier error than the extra
// nodes this costs.
func (s *Searcher) qSearch(alpha, beta, ply int) int {
	s.nodes++
	if s.pollCancel() {
		return 0
	}
	if ply > s.seldepth {
		s.seldepth = ply
	}
	if ply >= qSearchPlyCap {
		return s.Board.Evaluate()
	}

	side := colorToMove(s.Board)
	inCheck := s.Board.InCheck(side)

	if !inCheck {
		standPat := s.Board.Evaluate()
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	moves := s.Board.GenerateMoves(!inCheck)
	s.scoreMoves(moves, NullMove, ply)

	legalMoves := 0
	for i := 0; i < moves.Len(); i++ {
		m := moves.next(i)
		if !s.Board.MakeMove(m) {
			continue
		}
		legalMoves++
		score := -s.qSearch(-beta, -alpha, ply+1)
		s.Board.UndoMove(m)

		if s.cancelled.Load() {
			return 0
		}

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if inCheck && legalMoves == 0 {
		return -(Checkmate - ply)
	}
	return alpha
}

// scoreMoves assigns the ordering scores of §4.8 to every move in the
// list: the tentative root best move and the TT move sort first, then
// captures by MVV-LVA, then quiet moves by history and killer status.
func (s *Searcher) scoreMoves(moves *MoveList, ttMove MoveData, ply int) {
	side := colorToMove(s.Board)
	for i := 0; i < moves.Len(); i++ {
		m := moves.at(i)
		var score int32
		switch {
		case !s.rootBestMove.isNull() && m == s.rootBestMove:
			score = 1<<30 - 1
		case !ttMove.isNull() && m == ttMove:
			score = 1<<30 - 2
		case s.isCapture(m):
			attacker := pieceType(int(m.Piece))
			victim := pieceType(s.Board.PieceAt(int(m.To)))
			if m.Flag == EnPassant {
				victim = Pawn
			}
			score = 20000 + mvvLva[attacker*6+victim]
		default:
			score = s.history[side][m.From][m.To]
			if ply < maxKillerPly {
				if s.killers[ply][0] == m {
					score += 10000
				} else if s.killers[ply][1] == m {
					score += 10000
				}
			}
		}
		moves.setScore(i, score)
	}
}

func (s *Searcher) isCapture(m MoveData) bool {
	if m.Flag == EnPassant {
		return true
	}
	return s.Board.PieceAt(int(m.To)) != NoPiece
}

func (s *Searcher) bumpHistory(side int, m MoveData, depth int) {
	s.history[side][m.From][m.To] += int32(depth * depth)
}

func (s *Searcher) addKiller(ply int, m MoveData) {
	if ply >= maxKillerPly {
		return
	}
	if s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

func colorToMove(b *Board) int {
	if b.WhiteToMove {
		return White
	}
	return Black
}
