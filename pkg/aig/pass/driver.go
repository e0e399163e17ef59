package pass

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/aigforge/aigforge/pkg/aig"
	"github.com/aigforge/aigforge/pkg/aig/balance"
	"github.com/aigforge/aigforge/pkg/aig/refactor"
	"github.com/aigforge/aigforge/pkg/aig/resub"
	"github.com/aigforge/aigforge/pkg/aig/rewrite"
)

// ErrIntegrityViolation is returned by Driver whenever a pass's own
// integrity check fails, wrapping the violations as the error's cause so
// a CLI boundary can print the full chain under --debug.
var ErrIntegrityViolation = errors.New("pass produced an integrity violation")

// Driver owns the one *aig.Store the rest of the system consumes and
// serialises access to it: a single sync.Mutex, not a scheduler, since the
// store is never touched concurrently with a pass in this system (only
// cmd/aigforge serve's metrics HTTP server and the pass goroutine could
// ever race, and the metrics server never reads the store directly).
type Driver struct {
	mu  sync.Mutex
	s   *aig.Store
	log *logrus.Logger
	obs Observer
}

// Observer receives a notification after every successful pass, so a
// caller (pkg/metrics) can update its own gauges/counters without this
// package importing anything metrics-specific.
type Observer interface {
	ObservePass(pass string, nodesBefore, nodesAfter int, levelMax uint32)
}

// NewDriver wraps s. A nil logger falls back to logrus.StandardLogger().
func NewDriver(s *aig.Store, log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{s: s, log: log}
}

// SetObserver installs o to be notified after every successful pass. A nil
// Observer (the default) disables notification.
func (d *Driver) SetObserver(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.obs = o
}

func maxLevel(s *aig.Store) uint32 {
	var m uint32
	for id := aig.ID(0); id <= s.MaxID(); id++ {
		if lvl := s.Node(id).Level(); lvl > m {
			m = lvl
		}
	}
	return m
}

// Store returns the driver's current store handle. The pointer is only
// valid until the next pass, since every pass replaces it with a freshly
// renumbered store.
func (d *Driver) Store() *aig.Store {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.s
}

// Result reports one pass invocation's effect for logging and the CLI's
// gain reporting.
type Result struct {
	Pass        string
	NodesBefore int
	NodesAfter  int
	Gain        int
	Elapsed     time.Duration
}

// Finish performs the pass driver's mandatory tail: (a) recursive cleanup
// of dangling nodes, (b)-(d) DFS-based id renumbering with hash-table and
// level rebuild (Renumber folds these three together, see rebuild.go), and
// (e) an integrity check of the result.
func Finish(s *aig.Store) (*aig.Store, error) {
	s.Cleanup()
	ns := Renumber(s)
	if violations := ns.Verify(); len(violations) > 0 {
		return ns, errors.Wrap(ErrIntegrityViolation, violations.Error())
	}
	return ns, nil
}

func (d *Driver) run(name string, mutate func(s *aig.Store)) (Result, error) {
	return d.runWith(name, mutate, Finish)
}

func (d *Driver) runWith(name string, mutate func(s *aig.Store), finish func(*aig.Store) (*aig.Store, error)) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	before := d.s.NumAnds()
	mutate(d.s)
	after, err := finish(d.s)
	elapsed := time.Since(start)
	if err != nil {
		d.log.WithFields(logrus.Fields{"pass": name, "elapsed": elapsed}).
			WithError(err).Error("pass failed its integrity check")
		return Result{Pass: name, NodesBefore: before, NodesAfter: before, Elapsed: elapsed}, err
	}

	d.s = after
	result := Result{
		Pass:        name,
		NodesBefore: before,
		NodesAfter:  d.s.NumAnds(),
		Gain:        before - d.s.NumAnds(),
		Elapsed:     elapsed,
	}
	d.log.WithFields(logrus.Fields{
		"pass":         name,
		"nodes_before": result.NodesBefore,
		"nodes_after":  result.NodesAfter,
		"gain":         result.Gain,
		"elapsed":      elapsed,
	}).Info("pass complete")
	if d.obs != nil {
		d.obs.ObservePass(name, result.NodesBefore, result.NodesAfter, maxLevel(d.s))
	}
	return result, nil
}

// Balance runs the level-balancing pass.
func (d *Driver) Balance(opts balance.Options) (Result, error) {
	return d.run("balance", func(s *aig.Store) { balance.Run(s, opts) })
}

// Rewrite runs the DAG-aware rewriting pass.
func (d *Driver) Rewrite(opts rewrite.Options) (Result, error) {
	return d.run("rewrite", func(s *aig.Store) { rewrite.Run(s, opts) })
}

// Refactor runs the refactoring pass.
func (d *Driver) Refactor(opts refactor.Options) (Result, error) {
	return d.run("refactor", func(s *aig.Store) { refactor.Run(s, opts) })
}

// Resubstitute runs the resubstitution pass.
func (d *Driver) Resubstitute(opts resub.Options) (Result, error) {
	return d.run("resub", func(s *aig.Store) { resub.Run(s, opts) })
}

// RestrashZero rebuilds the hash table and id ordering with no rewriting:
// a cheap canonicalisation step, typically run between two
// potentially-duplicating transforms (e.g. after Zero).
func (d *Driver) RestrashZero() (Result, error) {
	return d.run("restrash_zero", func(*aig.Store) {})
}

// Zero implements the `zero` command and scenario S5: every latch whose
// reset is don't-care is fixed to reset 0, with a complementation pushed
// into its next-state cone and every consuming site so the all-zero-start
// sequence matches the original don't-care sequence. Safe only when no
// later analysis depends on distinguishing a don't-care reset from a
// fixed one; that is a caller contract, not something this pass can check.
func (d *Driver) Zero() (Result, error) {
	return d.runWith("zero", func(*aig.Store) {}, finishZero)
}

// finishZero is Finish's Zero-specific variant: cleanup, then a rebuild
// that flips the polarity of every don't-care-reset latch instead of a
// plain Renumber, then the same integrity check.
func finishZero(s *aig.Store) (*aig.Store, error) {
	s.Cleanup()
	ns := rebuild(s, func(l aig.Latch) bool { return l.Reset == aig.ResetDontCare })
	if violations := ns.Verify(); len(violations) > 0 {
		return ns, errors.Wrap(ErrIntegrityViolation, violations.Error())
	}
	return ns, nil
}
