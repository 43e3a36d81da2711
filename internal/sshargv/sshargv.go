// Package sshargv builds the argv for one host's remote command via
// engine.ArgvBuilder. It wraps the system ssh client; the core never
// parses or otherwise interprets the resulting argument vector.
package sshargv

import (
	"fmt"

	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/sshp-go/sshp/engine"
)

// Options configures how the ssh invocation is built for each host.
type Options struct {
	// SSHBinary is the ssh executable to run. Defaults to "ssh".
	SSHBinary string

	// IdentityFile is passed as -i when non-empty.
	IdentityFile string

	// Login is passed as -l when non-empty.
	Login string

	// Port is passed as -p when non-zero.
	Port int

	// Quiet passes -q, suppressing ssh's own diagnostics.
	Quiet bool

	// NoStrict passes -o StrictHostKeyChecking=no -o
	// UserKnownHostsFile=/dev/null, bypassing host-key verification.
	NoStrict bool

	// TTY passes -t, forcing pseudo-tty allocation for the remote session.
	TTY bool

	// ExtraArgs are inserted after ssh's own flags and before the host.
	ExtraArgs []string

	// Command is the remote command and its arguments, appended after
	// the host. At least one element is required.
	Command []string
}

// Builder returns an engine.ArgvBuilder that runs opts.Command on each
// host via ssh, in the form `ssh [flags] <host> <command>`.
func Builder(opts Options) engine.ArgvBuilder {
	binary := opts.SSHBinary
	if binary == "" {
		binary = "ssh"
	}

	return func(host engine.Host) ([]string, error) {
		if len(opts.Command) == 0 {
			return nil, fmt.Errorf("sshargv: no remote command configured")
		}

		argv := []string{binary}
		if opts.Quiet {
			argv = append(argv, "-q")
		}
		if opts.IdentityFile != "" {
			argv = append(argv, "-i", opts.IdentityFile)
		}
		if opts.Login != "" {
			argv = append(argv, "-l", opts.Login)
		}
		if opts.Port != 0 {
			argv = append(argv, "-p", fmt.Sprint(opts.Port))
		}
		if opts.NoStrict {
			argv = append(argv, "-o", "StrictHostKeyChecking=no", "-o", "UserKnownHostsFile=/dev/null")
		}
		if opts.TTY {
			argv = append(argv, "-t")
		}
		argv = append(argv, opts.ExtraArgs...)
		argv = append(argv, host.Name)
		argv = append(argv, opts.Command...)
		return argv, nil
	}
}

// ValidateKnownHosts checks that path parses as an OpenSSH known_hosts
// file, surfacing a clear error before any child is spawned rather than
// letting every ssh invocation fail independently. The core never uses
// the resulting callback: host-key verification is left to the ssh child
// itself.
func ValidateKnownHosts(path string) error {
	if path == "" {
		return nil
	}
	if _, err := knownhosts.New(path); err != nil {
		return fmt.Errorf("known-hosts file %q: %w", path, err)
	}
	return nil
}
