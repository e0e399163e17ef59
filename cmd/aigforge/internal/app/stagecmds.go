package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aigforge/aigforge/pkg/aig/balance"
	"github.com/aigforge/aigforge/pkg/aig/refactor"
	"github.com/aigforge/aigforge/pkg/aig/resub"
	"github.com/aigforge/aigforge/pkg/aig/rewrite"
)

// runThen runs each named extra stage (with built-in-default options) after
// a command's own primary stage, the `--pipe` composability SPEC_FULL.md
// describes: `aigforge balance --in in.aig --then rewrite,zero --out out.aig`
// runs balance,
// rewrite and zero in one process sharing a single Session, rather than
// requiring three separate invocations round-tripping through a file.
func runThen(sess *Session, names []string) error {
	for _, name := range names {
		var err error
		switch name {
		case "balance":
			_, err = sess.Balance(balance.Options{})
		case "rewrite":
			_, err = sess.Rewrite(rewrite.Options{})
		case "refactor":
			_, err = sess.Refactor(refactor.Options{})
		case "resub":
			_, err = sess.Resub(resub.Options{})
		case "zero":
			_, err = sess.Zero()
		case "restrash_zero":
			_, err = sess.RestrashZero()
		default:
			return fmt.Errorf("unknown --then stage %q", name)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type result struct {
	pass                    string
	nodesBefore, nodesAfter int
}

func (r result) String() string {
	return fmt.Sprintf("%s: %d -> %d nodes", r.pass, r.nodesBefore, r.nodesAfter)
}

func newReadCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Load an AIGER file as the current network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(args[0], compact); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "read %s: %d ANDs\n", args[0], sess.Store().NumAnds())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "restrash after read")
	return cmd
}

func newWriteCmd() *cobra.Command {
	var in string
	var symbols bool
	cmd := &cobra.Command{
		Use:   "write <file>",
		Short: "Save the current network as an AIGER file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			return sess.WriteAiger(args[0], symbols)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().BoolVarP(&symbols, "symbols", "s", false, "write the symbol table")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newBalanceCmd() *cobra.Command {
	var in, out string
	var then []string
	var selective bool
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Run the level-balancing pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Balance(balance.Options{Selective: selective})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			if err := runThen(sess, then); err != nil {
				return err
			}
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().BoolVarP(&selective, "selective", "s", false, "allow critical-path-shortening duplication")
	cmd.Flags().StringSliceVar(&then, "then", nil, "extra stages to run afterward, e.g. rewrite,zero")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newRewriteCmd() *cobra.Command {
	var in, out string
	var then []string
	var useZeros bool
	var cutsMax int
	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Run the DAG-aware rewriting pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Rewrite(rewrite.Options{NCutsMax: cutsMax, UseZeros: useZeros})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			if err := runThen(sess, then); err != nil {
				return err
			}
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().BoolVarP(&useZeros, "zero-gain", "z", false, "accept zero-gain rewrites")
	cmd.Flags().IntVarP(&cutsMax, "cuts-max", "x", 0, "candidate cuts per node (0: use the pass default)")
	cmd.Flags().StringSliceVar(&then, "then", nil, "extra stages to run afterward")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newRefactorCmd() *cobra.Command {
	var in, out string
	var then []string
	var useZeros bool
	var leafMax, faninLimit int
	cmd := &cobra.Command{
		Use:   "refactor",
		Short: "Run the refactoring pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Refactor(refactor.Options{NLeafMax: leafMax, FaninLimit: faninLimit, UseZeros: useZeros})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			if err := runThen(sess, then); err != nil {
				return err
			}
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().IntVarP(&leafMax, "leaf-max", "N", 0, "largest cut to refactor (0: use the pass default)")
	cmd.Flags().IntVarP(&faninLimit, "fanin-limit", "C", 0, "frontier fanout bound (0: use the pass default)")
	cmd.Flags().BoolVarP(&useZeros, "zero-gain", "z", false, "accept zero-gain refactors")
	cmd.Flags().StringSliceVar(&then, "then", nil, "extra stages to run afterward")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newResubCmd() *cobra.Command {
	var in, out string
	var then []string
	var cutsMax, stepsMax int
	cmd := &cobra.Command{
		Use:   "resub",
		Short: "Run the resubstitution pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Resub(resub.Options{NCutsMax: cutsMax, NStepsMax: stepsMax})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			if err := runThen(sess, then); err != nil {
				return err
			}
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().IntVarP(&cutsMax, "cuts-max", "K", 0, "cut size bound (0: use the pass default)")
	cmd.Flags().IntVarP(&stepsMax, "steps-max", "N", 0, "replacement complexity class bound (0: use the pass default)")
	cmd.Flags().StringSliceVar(&then, "then", nil, "extra stages to run afterward")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newDrwCmd() *cobra.Command {
	var in, out string
	var useZeros bool
	var cutsMax int
	cmd := &cobra.Command{
		Use:   "drw",
		Short: "Run balance then rewrite as a single composite pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Drw(rewrite.Options{NCutsMax: cutsMax, UseZeros: useZeros})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().IntVarP(&cutsMax, "cuts-max", "C", 0, "candidate cuts per node (0: use the pass default)")
	cmd.Flags().BoolVarP(&useZeros, "zero-gain", "z", false, "accept zero-gain rewrites")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newDrfCmd() *cobra.Command {
	var in, out string
	var useZeros bool
	var faninLimit int
	cmd := &cobra.Command{
		Use:   "drf",
		Short: "Run balance then refactor as a single composite pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Drf(refactor.Options{FaninLimit: faninLimit, UseZeros: useZeros})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	cmd.Flags().IntVarP(&faninLimit, "fanin-limit", "C", 0, "frontier fanout bound (0: use the pass default)")
	cmd.Flags().BoolVarP(&useZeros, "zero-gain", "z", false, "accept zero-gain refactors")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func newZeroCmd() *cobra.Command {
	var in, out string
	cmd := &cobra.Command{
		Use:   "zero",
		Short: "Fix every don't-care latch reset to 0",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := NewSession(cfg, log)
			if err := sess.ReadAiger(in, false); err != nil {
				return err
			}
			r, err := sess.Zero()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result{r.Pass, r.NodesBefore, r.NodesAfter})
			return writeIfRequested(sess, out)
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input AIGER file (required)")
	cmd.Flags().StringVar(&out, "out", "", "output AIGER file")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func writeIfRequested(sess *Session, out string) error {
	if out == "" {
		return nil
	}
	return sess.WriteAiger(out, false)
}
