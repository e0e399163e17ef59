package app

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aigforge/aigforge/pkg/aig/balance"
	"github.com/aigforge/aigforge/pkg/aig/refactor"
	"github.com/aigforge/aigforge/pkg/aig/resub"
	"github.com/aigforge/aigforge/pkg/aig/rewrite"
)

// Shell exit codes, per spec.md §6: 0 success, 1 usage/error, -1 quit,
// -2 quit-with-full-cleanup.
const (
	ExitSuccess       = 0
	ExitUsageError    = 1
	ExitQuit          = -1
	ExitQuitFullClean = -2
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive read_aiger/balance/rewrite/... shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			code := runShell(cmd.InOrStdin(), cmd.OutOrStdout())
			if code != ExitSuccess && code != ExitQuit {
				return fmt.Errorf("shell exited with code %d", code)
			}
			return nil
		},
	}
}

// runShell reads commands line by line from r, dispatching each to the one
// live Session, and returns the exit code of the line that ended the
// session (quit/quit!) or ExitSuccess at EOF.
func runShell(r io.Reader, w io.Writer) int {
	sess := NewSession(cfg, log)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, msg := dispatch(sess, line)
		if msg != "" {
			fmt.Fprintln(w, msg)
		}
		if code == ExitQuit || code == ExitQuitFullClean {
			return code
		}
	}
	return ExitSuccess
}

// dispatch runs one shell command line against sess, matching spec.md §6's
// vocabulary: read_aiger [-c] <file>, write_aiger [-s] <file>, balance
// [-ds], rewrite [-xz], refactor [-N n] [-C n] [-zd], resub [-K n] [-N n],
// drw [-C n] [-N n] [-zr], drf [-M n] [-K n] [-C n] [-ez], zero, quit,
// quit!, help.
func dispatch(sess *Session, line string) (code int, msg string) {
	fields := strings.Fields(line)
	name, rest := fields[0], fields[1:]

	switch name {
	case "help":
		return ExitSuccess, helpText
	case "quit":
		return ExitQuit, ""
	case "quit!":
		return ExitQuitFullClean, ""

	case "read_aiger":
		var compact bool
		path, rest := takeFlag(rest, "-c", &compact)
		if path == "" {
			return ExitUsageError, "usage: read_aiger [-c] <file>"
		}
		_ = rest
		if err := sess.ReadAiger(path, compact); err != nil {
			return ExitUsageError, err.Error()
		}
		return ExitSuccess, fmt.Sprintf("%d ANDs", sess.Store().NumAnds())

	case "write_aiger":
		var symbols bool
		path, rest := takeFlag(rest, "-s", &symbols)
		if path == "" {
			return ExitUsageError, "usage: write_aiger [-s] <file>"
		}
		_ = rest
		if err := sess.WriteAiger(path, symbols); err != nil {
			if err == ErrNoNetwork {
				return ExitSuccess, err.Error()
			}
			return ExitUsageError, err.Error()
		}
		return ExitSuccess, ""

	case "balance":
		// -s selects Selective (critical-path-aware duplication); -d (ABC's
		// "disable zero-cost replacements") has no analogue here and is
		// accepted but ignored.
		selective := hasFlag(rest, 's')
		r, err := sess.Balance(balance.Options{Selective: selective})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "rewrite":
		// -z accepts zero-gain rewrites; -x ("exhaustive" NPN matching in
		// ABC) has no analogue against this engine's curated class subset
		// and is accepted but ignored.
		useZeros := hasFlag(rest, 'z')
		r, err := sess.Rewrite(rewrite.Options{UseZeros: useZeros})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "refactor":
		n := intFlag(rest, "-N")
		c := intFlag(rest, "-C")
		// -z accepts zero-gain refactors; -d is accepted but ignored.
		useZeros := hasFlag(rest, 'z')
		r, err := sess.Refactor(refactor.Options{NLeafMax: n, FaninLimit: c, UseZeros: useZeros})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "resub":
		k := intFlag(rest, "-K")
		n := intFlag(rest, "-N")
		r, err := sess.Resub(resub.Options{NCutsMax: k, NStepsMax: n})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "drw":
		c := intFlag(rest, "-C")
		// -z accepts zero-gain rewrites; -r is accepted but ignored.
		useZeros := hasFlag(rest, 'z')
		r, err := sess.Drw(rewrite.Options{NCutsMax: c, UseZeros: useZeros})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "drf":
		k := intFlag(rest, "-K")
		c := intFlag(rest, "-C")
		// -e and -z both accept zero-gain refactors here.
		useZeros := hasFlag(rest, 'e', 'z')
		r, err := sess.Drf(refactor.Options{NLeafMax: k, FaninLimit: c, UseZeros: useZeros})
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "zero":
		r, err := sess.Zero()
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	case "restrash_zero":
		r, err := sess.RestrashZero()
		return resultCode(r.NodesBefore, r.NodesAfter, err)

	default:
		return ExitUsageError, fmt.Sprintf("unknown command %q; try 'help'", name)
	}
}

func resultCode(before, after int, err error) (int, string) {
	if err == ErrNoNetwork {
		return ExitSuccess, err.Error()
	}
	if err != nil {
		return ExitUsageError, err.Error()
	}
	return ExitSuccess, fmt.Sprintf("%d -> %d nodes", before, after)
}

// takeFlag scans args for a boolean flag and the single positional
// argument expected alongside it, returning the positional and the
// remaining args.
func takeFlag(args []string, flag string, set *bool) (positional string, rest []string) {
	for _, a := range args {
		if a == flag {
			*set = true
			continue
		}
		if positional == "" {
			positional = a
		} else {
			rest = append(rest, a)
		}
	}
	return positional, rest
}

// hasFlag reports whether any of args names a short flag made of any of
// letters (e.g. hasFlag(rest, 'd', 's') matches "-d", "-s", or "-ds").
func hasFlag(args []string, letters ...byte) bool {
	for _, a := range args {
		if len(a) < 2 || a[0] != '-' {
			continue
		}
		for i := 1; i < len(a); i++ {
			for _, l := range letters {
				if a[i] == l {
					return true
				}
			}
		}
	}
	return false
}

// intFlag looks for "-<name> <value>" in args and parses value, returning
// 0 (meaning "use the pass's built-in default") if absent or malformed.
func intFlag(args []string, name string) int {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				return v
			}
		}
	}
	return 0
}

const helpText = `commands: read_aiger [-c] <file>, write_aiger [-s] <file>,
balance [-ds], rewrite [-xz], refactor [-N n] [-C n] [-zd],
resub [-K n] [-N n], drw [-C n] [-N n] [-zr], drf [-M n] [-K n] [-C n] [-ez],
zero, restrash_zero, quit, quit!, help`
