package engine

import (
	"context"
	"errors"
	"io"
	"strings"
)

// runningChild is the scheduler's per-spawn bookkeeping: the live Child,
// its per-stream reassembly buffers, and how many of its output
// descriptors are still open. A child is reaped exactly once, the
// instant openStreams reaches zero.
type runningChild struct {
	host      Host
	child     *Child
	startedAt int64

	openStreams int
	lineBufs    [2]*lineBuffer
	joinBuf     *joinBuffer
	joinOutput  []byte
}

// Scheduler is the main loop: it maintains at most Config.MaxJobs
// outstanding children, drives the fdWatcher, dispatches readiness to the
// per-mode stream reassembly, and triggers reaping.
type Scheduler struct {
	cfg     Config
	hosts   HostList
	spawner Spawner
	clock   Clock
	sink    Sink
	out     *trackingWriter

	// onReap, if set, is invoked synchronously right after each child is
	// reaped, from the scheduler's single dispatch goroutine. It exists
	// for optional observers (internal/stats) that need per-host exit
	// results without changing the core's control flow.
	onReap func(Host, ExitStatus)
}

// NewScheduler wires a validated Config, an ordered HostList, a Spawner,
// a Clock, and the Sink for the selected Mode. out should be the same
// writer passed to the Sink's own constructor (ideally both built from a
// single NewOutput call), so the reaper's exit lines and the Sink's own
// writes share one newline cursor.
func NewScheduler(cfg Config, hosts HostList, spawner Spawner, clock Clock, sink Sink, out io.Writer) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		hosts:   hosts,
		spawner: spawner,
		clock:   clock,
		sink:    sink,
		out:     newTrackingWriter(out),
	}
}

// OnReap registers a callback invoked once per reaped child, in reap
// order. Must be called before Run.
func (s *Scheduler) OnReap(fn func(Host, ExitStatus)) {
	s.onReap = fn
}

// Run executes the fan-out to completion. It returns the JoinAggregator
// populated with every host's output when Config.Mode is ModeJoin (nil
// otherwise), and a fatal *OrchestratorError if one occurred. A non-zero
// child exit status is never an error here; it is recorded and, if
// configured, reported inline.
func (s *Scheduler) Run(ctx context.Context) (*JoinAggregator, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	total := len(s.hosts)
	var aggregator *JoinAggregator
	var joinDone []*runningChild
	if s.cfg.Mode == ModeJoin {
		aggregator = newJoinAggregator()
		joinDone = make([]*runningChild, total)
	}
	if total == 0 {
		return aggregator, nil
	}

	watcher := newFdWatcher(total * 4)
	running := make(map[int]*runningChild, s.cfg.MaxJobs)

	cursor := 0
	outstanding := 0
	done := 0

	fill := func() error {
		for cursor < total && outstanding < s.cfg.MaxJobs {
			host := s.hosts[cursor]
			if s.cfg.Trim {
				host.Display = trimHostName(host.Display)
			}

			child, err := s.spawner.Spawn(ctx, host)
			if err != nil {
				return err
			}

			rc := &runningChild{host: host, child: child, startedAt: s.clock.NowMillis()}
			if s.cfg.Mode == ModeJoin {
				rc.openStreams = 1
				rc.joinBuf = newJoinBuffer(s.cfg.MaxOutputLength)
				watcher.watch(cursor, StreamStdout, child.Stdout)
			} else {
				rc.openStreams = 2
				if s.cfg.Mode == ModeLine {
					rc.lineBufs[StreamStdout] = newLineBuffer(s.cfg.MaxLineLength)
					rc.lineBufs[StreamStderr] = newLineBuffer(s.cfg.MaxLineLength)
				}
				watcher.watch(cursor, StreamStdout, child.Stdout)
				watcher.watch(cursor, StreamStderr, child.Stderr)
			}

			running[cursor] = rc
			cursor++
			outstanding++
		}
		return nil
	}

	if err := fill(); err != nil {
		return aggregator, err
	}

	events := watcher.events()
	for cursor < total || outstanding > 0 {
		ev := <-events
		rc, ok := running[ev.childIndex]
		if !ok {
			continue
		}

		if ev.err != nil {
			if !errors.Is(ev.err, io.EOF) {
				return aggregator, ioError("read", ev.err)
			}

			rc.openStreams--
			switch s.cfg.Mode {
			case ModeLine:
				rc.lineBufs[ev.stream].finalize(func(line []byte) {
					s.sink.Line(rc.host, ev.stream, line)
				})
			case ModeJoin:
				rc.joinOutput = rc.joinBuf.finalize()
			}

			if rc.openStreams > 0 {
				continue
			}

			printExit := s.cfg.ExitCodes || s.cfg.Debug
			status := reap(s.out, rc.host, rc.child, s.clock, rc.startedAt, printExit)
			if s.onReap != nil {
				s.onReap(rc.host, status)
			}

			delete(running, ev.childIndex)
			outstanding--
			done++

			if aggregator != nil {
				joinDone[ev.childIndex] = rc
				s.sink.Progress(done, total)
			}

			if err := fill(); err != nil {
				return aggregator, err
			}
			if done == total {
				s.sink.Finish()
			}
			continue
		}

		if s.cfg.Silent {
			continue
		}

		switch s.cfg.Mode {
		case ModeLine:
			rc.lineBufs[ev.stream].feed(ev.chunk, func(line []byte) {
				s.sink.Line(rc.host, ev.stream, line)
			})
		case ModeGroup:
			s.sink.Chunk(rc.host, ev.stream, ev.chunk)
		case ModeJoin:
			rc.joinBuf.feed(ev.chunk)
		}
	}

	// Record JOIN results in host-list order rather than reap order, so
	// the report does not depend on which child finished first.
	for _, rc := range joinDone {
		aggregator.record(rc.host, rc.joinOutput)
	}

	return aggregator, nil
}

// trimHostName truncates name at its first '.', matching Config.Trim's
// display-only host name shortening.
func trimHostName(name string) string {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return name
}
