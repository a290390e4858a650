package engine

const megabyte = 1024 * 1024

// EvalBound tags which side of the search window a stored eval represents.
type EvalBound uint8

const (
	BoundAlpha EvalBound = iota
	BoundBeta
	BoundExact
)

// TTEntry is one transposition table slot.
type TTEntry struct {
	Key       uint64
	BestMove  MoveData
	EvalBound EvalBound
	Eval      int
	Depth     int
}

const ttEntrySize = 40 // approximate serialized size in bytes, for sizing the table

// TranspositionTable is a direct-mapped array of entries keyed by
// key mod len(entries). It never grows on its own; resizing reallocates and
// zeroes, per §5 ("TT resize is destructive").
type TranspositionTable struct {
	entries []TTEntry
}

// NewTranspositionTable allocates a table sized to hold roughly mib
// megabytes of entries.
func NewTranspositionTable(mib int) *TranspositionTable {
	tt := &TranspositionTable{}
	tt.Resize(mib)
	return tt
}

func (tt *TranspositionTable) Resize(mib int) {
	count := 0
	if mib > 0 {
		count = (mib * megabyte) / ttEntrySize
	}
	tt.entries = make([]TTEntry, count)
}

func (tt *TranspositionTable) index(key uint64) int {
	if len(tt.entries) == 0 {
		return -1
	}
	return int(key % uint64(len(tt.entries)))
}

// Store writes an entry, adjusting a mate score to be distance-from-node
// rather than distance-from-root (§4.6/§9) before saving it. Replacement
// policy: always replace an empty slot or a shallower search; when depths
// tie, keep an existing EXACT entry over a new bound.
func (tt *TranspositionTable) Store(key uint64, best MoveData, bound EvalBound, eval, depth, ply int) {
	idx := tt.index(key)
	if idx < 0 {
		return
	}
	stored := eval
	if isMateScore(eval) {
		sign := 1
		if eval < 0 {
			sign = -1
		}
		stored = (eval*sign + ply) * sign
	}

	existing := &tt.entries[idx]
	if existing.Key != 0 {
		if depth < existing.Depth {
			return
		}
		if depth == existing.Depth && existing.EvalBound == BoundExact && bound != BoundExact {
			return
		}
	}
	*existing = TTEntry{Key: key, BestMove: best, EvalBound: bound, Eval: stored, Depth: depth}
}

// Probe looks up key. usable reports whether eval can be returned directly
// (an exact hit, or a bound that already satisfies the window); best is
// always returned when the entry matches the key, even if eval isn't
// usable, so the caller can still try it first for move ordering.
func (tt *TranspositionTable) Probe(key uint64, depth, ply, alpha, beta int) (eval int, usable bool, best MoveData) {
	idx := tt.index(key)
	if idx < 0 {
		return 0, false, NullMove
	}
	e := tt.entries[idx]
	if e.Key != key {
		return 0, false, NullMove
	}
	best = e.BestMove
	if e.Depth < depth {
		return 0, false, best
	}

	eval = e.Eval
	if isMateScore(eval) {
		sign := 1
		if eval < 0 {
			sign = -1
		}
		eval = (eval*sign - ply) * sign
	}

	switch e.EvalBound {
	case BoundExact:
		return eval, true, best
	case BoundBeta:
		if eval >= beta {
			return beta, true, best
		}
	case BoundAlpha:
		if eval <= alpha {
			return alpha, true, best
		}
	}
	return eval, false, best
}

// isMateScore reports whether eval is a mate-distance score rather than a
// plain material/positional one, i.e. its magnitude is at least
// mateThreshold (within 1000 plies of Checkmate).
func isMateScore(eval int) bool {
	abs := eval
	if abs < 0 {
		abs = -abs
	}
	return abs >= mateThreshold
}
