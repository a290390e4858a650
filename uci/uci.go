// Package uci implements the text protocol a chess GUI speaks to an engine:
// one command per line on stdin, one or more response lines on stdout.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"wren/engine"
)

const (
	EngineName   = "wren"
	EngineAuthor = "wren contributors"
)

// Protocol runs the UCI command loop over the given reader/writer pair,
// driving a single *engine.Engine. It blocks until the input stream is
// closed or a "quit" command is read.
type Protocol struct {
	eng *engine.Engine
	out io.Writer
	log *zap.Logger

	group  *errgroup.Group
	cancel context.CancelFunc
}

func NewProtocol(eng *engine.Engine, out io.Writer, log *zap.Logger) *Protocol {
	if log == nil {
		log = zap.NewNop()
	}
	return &Protocol{eng: eng, out: out, log: log}
}

func (p *Protocol) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			p.stopSearch()
			return nil
		}
		p.dispatch(line)
	}
	return scanner.Err()
}

func (p *Protocol) reply(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Protocol) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "uci":
		p.reply("id name %s", EngineName)
		p.reply("id author %s", EngineAuthor)
		p.reply("option name Hash type spin default %d min 1 max 4096", engine.DefaultConfig().HashSizeMiB)
		p.reply("uciok")

	case "isready":
		p.reply("readyok")

	case "setoption":
		p.setOption(fields)

	case "ucinewgame":
		p.stopSearch()
		p.eng.NewGame()

	case "position":
		if err := p.position(line); err != nil {
			p.log.Warn("position command failed", zap.Error(err), zap.String("line", line))
		}

	case "go":
		p.goCommand(fields)

	case "stop":
		p.stopSearch()

	case "debug", "ponderhit":
		// acknowledged, no behavior change.

	default:
		p.log.Debug("unrecognized command", zap.String("line", line))
	}
}

// setOption handles "setoption name <Name> value <Value>". Hash is the
// only option wired through to the engine; unknown names are logged and
// ignored rather than rejected, matching how GUIs probe for options.
func (p *Protocol) setOption(fields []string) {
	name, value := "", ""
	mode := ""
	for _, f := range fields[1:] {
		switch f {
		case "name":
			mode = "name"
			continue
		case "value":
			mode = "value"
			continue
		}
		switch mode {
		case "name":
			if name != "" {
				name += " "
			}
			name += f
		case "value":
			if value != "" {
				value += " "
			}
			value += f
		}
	}

	switch name {
	case "Hash":
		if mib, err := strconv.Atoi(value); err == nil {
			p.eng.SetHashSize(mib)
		}
	default:
		p.log.Debug("ignoring unknown option", zap.String("name", name))
	}
}

func (p *Protocol) position(line string) error {
	args := strings.TrimPrefix(line, "position ")
	var fen string
	var rest string

	switch {
	case strings.HasPrefix(args, "startpos"):
		fen = "startpos"
		rest = strings.TrimPrefix(args, "startpos")
	case strings.HasPrefix(args, "fen"):
		args = strings.TrimPrefix(args, "fen ")
		parts := strings.Fields(args)
		if len(parts) < 6 {
			return fmt.Errorf("uci: incomplete fen in %q", line)
		}
		fen = strings.Join(parts[:6], " ")
		rest = strings.Join(parts[6:], " ")
	default:
		return fmt.Errorf("uci: unrecognized position argument in %q", line)
	}

	var moves []string
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "moves") {
		moves = strings.Fields(strings.TrimPrefix(rest, "moves"))
	}

	return p.eng.SetPosition(fen, moves)
}

// goCommand parses the subset of "go" parameters §6 requires (wtime, btime,
// winc, binc, movetime, depth) and launches the search on its own
// goroutine via an errgroup, so "stop" read from the same loop can cancel
// it.
func (p *Protocol) goCommand(fields []string) {
	p.stopSearch()

	limits := engine.SearchLimits{}
	whiteToMove := p.eng.Board.WhiteToMove

	var wtime, btime, winc, binc time.Duration
	for i := 1; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					limits.MaxDepth = d
				}
				i++
			}
		case "movetime":
			if i+1 < len(fields) {
				if ms, err := strconv.Atoi(fields[i+1]); err == nil {
					limits.MoveTime = time.Duration(ms) * time.Millisecond
					limits.HasTime = true
				}
				i++
			}
		case "wtime":
			if i+1 < len(fields) {
				wtime = parseMillis(fields[i+1])
				i++
			}
		case "btime":
			if i+1 < len(fields) {
				btime = parseMillis(fields[i+1])
				i++
			}
		case "winc":
			if i+1 < len(fields) {
				winc = parseMillis(fields[i+1])
				i++
			}
		case "binc":
			if i+1 < len(fields) {
				binc = parseMillis(fields[i+1])
				i++
			}
		case "infinite":
			limits.HasTime = false
		}
	}

	if !limits.HasTime && limits.MaxDepth == 0 {
		remaining, inc := wtime, winc
		if !whiteToMove {
			remaining, inc = btime, binc
		}
		if remaining > 0 {
			limits.MoveTime = engine.SplitTime(remaining, inc)
			limits.HasTime = true
		}
	}

	limits.InfoFn = func(depth, seldepth, score int, mate bool, nodes uint64, elapsed time.Duration, pv []engine.MoveData) {
		kind := "cp"
		if mate {
			kind = "mate"
		}
		nps := int64(0)
		if elapsed > 0 {
			nps = int64(float64(nodes) / elapsed.Seconds())
		}

		currmove := "0000"
		pvStr := currmove
		if len(pv) > 0 {
			currmove = pv[0].String()
			moves := make([]string, len(pv))
			for i, m := range pv {
				moves[i] = m.String()
			}
			pvStr = strings.Join(moves, " ")
		}

		p.reply("info depth %d seldepth %d score %s %d currmove %s pv %s nodes %d nps %d time %d",
			depth, seldepth, kind, score, currmove, pvStr, nodes, nps, elapsed.Milliseconds())
	}

	ctx, cancel := context.WithCancel(context.Background())
	group, _ := errgroup.WithContext(ctx)
	p.cancel = cancel
	p.group = group

	group.Go(func() error {
		result := p.eng.Go(limits)
		if result.Best == engine.NullMove {
			return nil
		}
		p.reply("bestmove %s", result.Best.String())
		return nil
	})
}

func (p *Protocol) stopSearch() {
	if p.cancel != nil {
		p.eng.Stop()
		p.cancel()
	}
	if p.group != nil {
		p.group.Wait()
	}
	p.cancel = nil
	p.group = nil
}

func parseMillis(s string) time.Duration {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}
