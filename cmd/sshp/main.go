// Command sshp fans a remote command out across a list of hosts over
// ssh, streaming their output back under one of three disciplines
// (line, group, join) with bounded parallelism.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sshp-go/sshp/engine"
	"github.com/sshp-go/sshp/internal/colorize"
	"github.com/sshp-go/sshp/internal/hostlist"
	"github.com/sshp-go/sshp/internal/obslog"
	"github.com/sshp-go/sshp/internal/settings"
	"github.com/sshp-go/sshp/internal/sshargv"
	"github.com/sshp-go/sshp/internal/stats"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		var oerr *engine.OrchestratorError
		if ok := asOrchestratorError(err, &oerr); ok {
			fmt.Fprintln(os.Stderr, oerr.Error())
			return oerr.Kind.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	return 0
}

func asOrchestratorError(err error, target **engine.OrchestratorError) bool {
	for err != nil {
		if oerr, ok := err.(*engine.OrchestratorError); ok {
			*target = oerr
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

func newRootCmd() *cobra.Command {
	var (
		anonymous    bool
		exitCodes    bool
		silent       bool
		trim         bool
		debug        bool
		maxJobs      int
		maxLine      int
		maxOutput    int
		mode         string
		colorMode    string
		hostFile     string
		sshBinary    string
		identityFile string
		login        string
		port         int
		knownHosts   string
		quiet        bool
		noStrict     bool
		tty          bool
		showStats    bool
		dryRun       bool
		progName     string
		configFile   string
	)

	cmd := &cobra.Command{
		Use:     "sshp [flags] -- <command> [args...]",
		Short:   "Fan a command out across many hosts over ssh",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := settings.NewManager()
			if err := mgr.Viper().BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			st, err := mgr.Load(configFile)
			if err != nil {
				return err
			}
			if len(args) == 0 && !dryRun {
				return &engine.OrchestratorError{Kind: engine.KindConfig, Op: "args", Err: fmt.Errorf("a remote command is required after --")}
			}
			st.Command = args
			return runOrchestrator(cmd.Context(), st)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&anonymous, "anonymous", false, "suppress host-name prefix in line mode")
	flags.BoolVar(&exitCodes, "exit-codes", false, "print a per-host exit line once each child is reaped")
	flags.BoolVar(&silent, "silent", false, "discard all child output")
	flags.BoolVar(&trim, "trim", false, "truncate host names at the first '.' for display")
	flags.BoolVar(&debug, "debug", false, "verbose startup prelude and forced exit lines")
	flags.IntVarP(&maxJobs, "max-jobs", "j", engine.DefaultMaxJobs, "maximum outstanding children")
	flags.IntVar(&maxLine, "max-line-length", engine.DefaultMaxLineLength, "line-mode line length bound")
	flags.IntVar(&maxOutput, "max-output-length", engine.DefaultMaxOutputLength, "join-mode per-host output bound")
	flags.StringVarP(&mode, "mode", "m", "line", "output discipline: line, group, or join")
	flags.StringVar(&colorMode, "color", "auto", "colorize output: auto, on, or off")
	flags.StringVarP(&hostFile, "file", "f", "-", "host list file, or - for standard input")
	flags.StringVar(&sshBinary, "ssh-binary", "ssh", "ssh executable to invoke")
	flags.StringVarP(&identityFile, "identity", "i", "", "ssh identity file (-i)")
	flags.StringVarP(&login, "login", "l", "", "remote login name (-l)")
	flags.IntVarP(&port, "port", "p", 0, "remote ssh port (-p)")
	flags.StringVar(&knownHosts, "known-hosts", "", "validate this known_hosts file before spawning")
	flags.BoolVarP(&quiet, "quiet", "q", false, "pass -q to ssh, suppressing its own diagnostics")
	flags.BoolVarP(&noStrict, "no-strict", "N", false, "disable ssh host-key checking for this run")
	flags.BoolVarP(&tty, "tty", "y", false, "force pseudo-tty allocation on the remote session (-t)")
	flags.BoolVar(&showStats, "stats", false, "print a final per-host summary")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "print the resolved argv per host and exit")
	flags.StringVar(&progName, "prog-name", "sshp", "program name used in the join-mode progress line")
	flags.StringVar(&configFile, "config", "", "path to an explicit config file")

	return cmd
}

// runOrchestrator wires every collaborator and drives the Scheduler to
// completion. It is the one place that has all of config, host list,
// argv builder, colorizer, logger, and stats tracker in scope at once.
func runOrchestrator(ctx context.Context, st *settings.Settings) error {
	logger := obslog.New(os.Stderr, obslog.WithDebug(st.Debug))

	if err := sshargv.ValidateKnownHosts(st.KnownHosts); err != nil {
		return &engine.OrchestratorError{Kind: engine.KindConfig, Op: "known-hosts", Err: err}
	}

	hosts, err := hostlist.LoadFile(st.HostFile)
	if err != nil {
		return &engine.OrchestratorError{Kind: engine.KindConfig, Op: "host-list", Err: err}
	}
	if len(hosts) == 0 {
		return &engine.OrchestratorError{Kind: engine.KindConfig, Op: "host-list", Err: fmt.Errorf("no hosts to run against")}
	}
	logger.Debug("loaded hosts", "count", len(hosts))

	build := sshargv.Builder(sshargv.Options{
		SSHBinary:    st.SSHBinary,
		IdentityFile: st.IdentityFile,
		Login:        st.Login,
		Port:         st.Port,
		Quiet:        st.Quiet,
		NoStrict:     st.NoStrict,
		TTY:          st.TTY,
		Command:      st.Command,
	})

	if st.DryRun {
		return printDryRun(os.Stdout, hosts, build)
	}

	terminalStdout := colorize.IsTerminal(os.Stdout)
	colorEnabled := colorize.Resolve(colorize.Mode(st.Color), terminalStdout)
	st.Config.ColorEnabled = colorEnabled

	var colors engine.Colors = engine.NoColors{}
	if colorEnabled {
		colors = colorize.New()
	}

	if err := st.Config.Validate(); err != nil {
		return err
	}

	var sink engine.Sink
	out := engine.NewOutput(os.Stdout)
	switch st.Mode {
	case engine.ModeGroup:
		sink = engine.NewGroupSink(out, colors)
	case engine.ModeJoin:
		sink = engine.NewJoinSink(out, st.ProgName, terminalStdout, len(hosts))
	default:
		sink = engine.NewLineSink(out, st.Anonymous, colors)
	}

	spawner := engine.NewSpawner(build, st.Mode == engine.ModeJoin)
	clock := engine.NewSteadyClock()

	scheduler := engine.NewScheduler(st.Config, hosts, spawner, clock, sink, out)

	var tracker *stats.Tracker
	if st.Stats {
		tracker = stats.NewTracker(len(hosts))
		scheduler.OnReap(tracker.Observe)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	aggregator, err := scheduler.Run(ctx)
	if err != nil {
		return err
	}

	if aggregator != nil {
		if err := aggregator.Report(out); err != nil {
			return &engine.OrchestratorError{Kind: engine.KindIO, Op: "join-report", Err: err}
		}
	}

	if tracker != nil {
		tracker.WriteSummary(os.Stderr)
	}

	return nil
}

func printDryRun(w *os.File, hosts engine.HostList, build engine.ArgvBuilder) error {
	for _, host := range hosts {
		argv, err := build(host)
		if err != nil {
			return &engine.OrchestratorError{Kind: engine.KindConfig, Op: "build-argv", Err: err}
		}
		fmt.Fprintf(w, "%s: %s\n", host.Display, strings.Join(argv, " "))
	}
	return nil
}
