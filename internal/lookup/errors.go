package lookup

import (
	"errors"
	"log/slog"
	"strings"
)

var (
	// ErrDuplicateKey is returned when two keys compare equal, or when more
	// than one key is NA.
	ErrDuplicateKey = errors.New("lookup: duplicate keys")
	// ErrLengthMismatch is returned when explicit values are not parallel to
	// the keys.
	ErrLengthMismatch = errors.New("lookup: keys and values differ in length")
)

// WarningKind classifies non-fatal diagnostics.
type WarningKind string

const (
	// EmptyKeys means there was nothing to look up in; every result is NA.
	EmptyKeys WarningKind = "empty_keys"
	// MissingValues means some queries matched no key; those results are NA.
	MissingValues WarningKind = "missing_values"
)

// Warning is a diagnostic raised during a lookup. It never changes the
// result.
type Warning struct {
	Kind WarningKind
	// Missing lists distinct unmatched queries in first-seen order, in their
	// compared form.
	Missing []string
}

func (w Warning) String() string {
	switch w.Kind {
	case EmptyKeys:
		return "lookup keys are empty, all results are NA"
	case MissingValues:
		return "values not found in lookup keys:\n" + strings.Join(w.Missing, "\n")
	}
	return string(w.Kind)
}

// LogWarning writes w to the default slog logger.
func LogWarning(w Warning) {
	if w.Kind == MissingValues {
		slog.Warn(w.String(), slog.String("kind", string(w.Kind)), slog.Int("missing", len(w.Missing)))
		return
	}
	slog.Warn(w.String(), slog.String("kind", string(w.Kind)))
}
