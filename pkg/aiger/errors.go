package aiger

import "github.com/pkg/errors"

// Sentinel errors a caller can branch on, matching the teacher's
// typed/sentinel error style (var Err... = errors.New(...)).
var (
	// ErrBadHeader is returned when the header line is missing required
	// fields, isn't the binary "aig" keyword, or fails M == I+L+A.
	ErrBadHeader = errors.New("aiger: malformed header")

	// ErrUnsupportedFeature is returned for header fields this engine has
	// no model for: a nonzero bad-state, constraint, justice, or fairness
	// count. Silently dropping them on read would make write_aiger lossy
	// in a way invariant round-tripping could not detect.
	ErrUnsupportedFeature = errors.New("aiger: unsupported header feature (B/C/J/F)")

	// ErrBadLatchReset is returned when a latch's reset field is not one
	// of 0, 1, or its own (self) literal.
	ErrBadLatchReset = errors.New("aiger: latch reset must be 0, 1, or self-literal")

	// ErrTruncated is returned when the input ends before every declared
	// latch, PO, or AND record has been read.
	ErrTruncated = errors.New("aiger: truncated input")
)
