package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Engine is the public entry point: it owns the position, the transposition
// table, and the per-search scratch, and exposes exactly the operations a
// UCI front end needs. It holds no protocol knowledge of its own.
type Engine struct {
	Board  *Board
	TT     *TranspositionTable
	Config Config
	Logger *zap.Logger

	searcher  *Searcher
	searching atomic.Bool
	stop      atomic.Bool
}

// NewEngine builds an engine at the standard starting position.
func NewEngine(cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	board := NewBoard()
	board.RepetitionCount = cfg.RepetitionCount
	tt := NewTranspositionTable(cfg.HashSizeMiB)
	return &Engine{
		Board:    board,
		TT:       tt,
		Config:   cfg,
		Logger:   logger,
		searcher: NewSearcherWithConfig(board, tt, cfg),
	}
}

// SetHashSize reallocates the transposition table. Per §5 this is
// destructive: all prior entries are lost.
func (e *Engine) SetHashSize(mib int) {
	e.Config.HashSizeMiB = mib
	e.TT.Resize(mib)
	e.Logger.Debug("resized transposition table", zap.Int("mib", mib))
}

// NewGame resets the position to startpos and clears the hash table by
// reallocating it at its current size, matching ucinewgame semantics.
func (e *Engine) NewGame() {
	e.Board = NewBoard()
	e.Board.RepetitionCount = e.Config.RepetitionCount
	e.TT.Resize(e.Config.HashSizeMiB)
	e.searcher = NewSearcherWithConfig(e.Board, e.TT, e.Config)
}

// SetPosition resets the board to fen (or startpos when fen is "startpos")
// and replays moves, each given in UCI long-algebraic form.
func (e *Engine) SetPosition(fen string, moves []string) error {
	var board *Board
	var err error
	if fen == "" || fen == "startpos" {
		board = NewBoard()
	} else {
		board, err = ParseFEN(fen)
		if err != nil {
			return fmt.Errorf("engine: set position: %w", err)
		}
	}
	board.RepetitionCount = e.Config.RepetitionCount

	for _, uci := range moves {
		m, ok := findMove(board, uci)
		if !ok {
			return fmt.Errorf("engine: illegal or malformed move %q", uci)
		}
		if !board.MakeMove(m) {
			return fmt.Errorf("engine: illegal move %q", uci)
		}
	}

	e.Board = board
	e.searcher = NewSearcherWithConfig(board, e.TT, e.Config)
	return nil
}

// findMove resolves a UCI long-algebraic move string against the legal
// moves available in board's current position.
func findMove(board *Board, uci string) (MoveData, bool) {
	if len(uci) < 4 {
		return NullMove, false
	}
	from := coordinateToSquare(uci[0:2])
	to := coordinateToSquare(uci[2:4])
	var promo byte
	if len(uci) >= 5 {
		promo = uci[4]
	}

	list := board.GenerateMoves(false)
	for i := 0; i < list.Len(); i++ {
		m := list.at(i)
		if int(m.From) != from || int(m.To) != to {
			continue
		}
		if m.isPromotion() {
			if promo == 0 || pieceLetters[m.Flag] != lowerByte(promo) {
				continue
			}
		}
		return m, true
	}
	return NullMove, false
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// GoResult is what one search call reports back to the front end.
type GoResult struct {
	Best  MoveData
	Nodes uint64
}

// Go runs a search under limits and returns the chosen move. It blocks
// until the search concludes (by depth, by time, or by Stop).
func (e *Engine) Go(limits SearchLimits) GoResult {
	e.searching.Store(true)
	defer e.searching.Store(false)
	e.stop.Store(false)

	best := e.searcher.Search(limits)
	return GoResult{Best: best, Nodes: e.searcher.nodes}
}

// Stop requests that an in-flight Go return as soon as it can.
func (e *Engine) Stop() {
	e.searcher.Cancel()
	e.stop.Store(true)
}

// Searching reports whether a Go call is currently in progress.
func (e *Engine) Searching() bool {
	return e.searching.Load()
}

// SplitTime is a convenience wrapper around PartitionTime for callers
// working with a clock-plus-increment time control rather than a raw
// total.
func SplitTime(remaining, increment time.Duration) time.Duration {
	budget := PartitionTime(remaining) + increment/2
	if budget > remaining-20*time.Millisecond {
		budget = remaining - 20*time.Millisecond
	}
	if budget < time.Millisecond {
		budget = time.Millisecond
	}
	return budget
}
