// Package lookup resolves queries against a key/value reference the way a
// spreadsheet XLOOKUP does: exact match on the string form of each value,
// case-insensitive by default, with NA handled as a key of its own.
//
// Case folding upper-cases with language-neutral Unicode rules.
// Locale-specific casing (Turkish dotted I and the like) is not supported.
package lookup

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type options struct {
	values        []any
	warnOnMissing bool
	ignoreCase    bool
	warn          func(Warning)
}

// Option configures a lookup.
type Option func(*options)

// WithValues sets the values paired with keys. Without it, the value of
// the i-th key is its 1-based position i.
func WithValues(values []any) Option {
	return func(o *options) {
		if values == nil {
			values = []any{}
		}
		o.values = values
	}
}

// WarnOnMissing toggles the MissingValues diagnostic. Enabled by default.
func WarnOnMissing(enabled bool) Option {
	return func(o *options) { o.warnOnMissing = enabled }
}

// IgnoreCase toggles case-insensitive matching. Enabled by default.
func IgnoreCase(enabled bool) Option {
	return func(o *options) { o.ignoreCase = enabled }
}

// WithWarnFunc routes diagnostics to fn instead of LogWarning.
func WithWarnFunc(fn func(Warning)) Option {
	return func(o *options) {
		if fn != nil {
			o.warn = fn
		}
	}
}

func newOptions(opts []Option) options {
	o := options{warnOnMissing: true, ignoreCase: true, warn: LogWarning}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Index is a validated key/value reference ready to resolve queries. It
// holds no mutable state and can be shared between goroutines.
type Index struct {
	opts      options
	positions map[string]int
	values    []any
	naValue   any
}

// NewIndex validates keys and values and builds an Index. Empty keys are
// accepted without further checks; resolving against them warns and
// yields NA.
func NewIndex(keys []any, opts ...Option) (*Index, error) {
	o := newOptions(opts)
	idx := &Index{opts: o, positions: make(map[string]int, len(keys)), naValue: NA}
	if len(keys) == 0 {
		return idx, nil
	}

	values := o.values
	if values == nil {
		values = Positions(len(keys))
	}

	fold := o.folder()
	naPos := -1
	for i, k := range keys {
		if IsNA(k) {
			if naPos >= 0 {
				return nil, fmt.Errorf("%w: NA at positions %d and %d", ErrDuplicateKey, naPos+1, i+1)
			}
			naPos = i
			continue
		}
		s := fold(Key(k))
		if prev, ok := idx.positions[s]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateKey, s, prev+1, i+1)
		}
		idx.positions[s] = i
	}

	if len(values) != len(keys) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	idx.values = values
	if naPos >= 0 {
		idx.naValue = values[naPos]
	}
	return idx, nil
}

// Len returns the number of non-NA keys.
func (x *Index) Len() int {
	return len(x.positions)
}

// Resolve maps every query to its value. The result has the same length
// and order as queries; unmatched queries resolve to NA and NA queries to
// the value paired with the NA key.
func (x *Index) Resolve(queries []any) []any {
	if len(queries) == 0 {
		return []any{}
	}
	out := make([]any, len(queries))
	if x.values == nil {
		x.opts.warn(Warning{Kind: EmptyKeys})
		for i := range out {
			out[i] = NA
		}
		return out
	}

	fold := x.opts.folder()
	var missing []string
	seen := map[string]struct{}{}
	for i, q := range queries {
		if IsNA(q) {
			out[i] = x.naValue
			continue
		}
		s := fold(Key(q))
		pos, ok := x.positions[s]
		if !ok {
			out[i] = NA
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				missing = append(missing, s)
			}
			continue
		}
		out[i] = x.values[pos]
	}

	if x.opts.warnOnMissing && len(missing) > 0 {
		x.opts.warn(Warning{Kind: MissingValues, Missing: missing})
	}
	return out
}

// Lookup resolves queries against keys in one call. See Index for the
// matching rules.
//
// Checks run in this order: no queries returns an empty result, no keys
// warns with EmptyKeys and returns all NA, duplicate keys fail with
// ErrDuplicateKey, and values of the wrong length fail with
// ErrLengthMismatch.
func Lookup(queries, keys []any, opts ...Option) ([]any, error) {
	if len(queries) == 0 {
		return []any{}, nil
	}
	idx, err := NewIndex(keys, opts...)
	if err != nil {
		return nil, err
	}
	return idx.Resolve(queries), nil
}

func (o options) folder() func(string) string {
	if !o.ignoreCase {
		return func(s string) string { return s }
	}
	// A Caser is stateful; every call site gets its own.
	caser := cases.Upper(language.Und)
	return caser.String
}
