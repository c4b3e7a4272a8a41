// Package freshness flags catalog records whose verification date is old or unknown.
package freshness

import (
	"strings"
	"time"
)

// DefaultMaxAge is how long a verification is trusted.
const DefaultMaxAge = 180 * 24 * time.Hour

// DateLayout is the verification date format. Month and day may omit leading zeros.
const DateLayout = "2006-1-2"

// IsStale reports whether a record verified on date should be flagged at now.
// A missing or unparsable date is always stale.
func IsStale(date string, now time.Time) bool {
	return NewChecker(DefaultMaxAge).StaleAt(date, now)
}

// Checker decides staleness against a configurable max age and clock.
type Checker struct {
	maxAge time.Duration
	now    func() time.Time
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock overrides the clock used by Stale.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) { c.now = now }
}

// NewChecker returns a checker; a non-positive maxAge means DefaultMaxAge.
func NewChecker(maxAge time.Duration, opts ...Option) *Checker {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	c := &Checker{maxAge: maxAge, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxAge returns the configured threshold.
func (c *Checker) MaxAge() time.Duration {
	return c.maxAge
}

// Stale reports whether date is stale right now.
func (c *Checker) Stale(date string) bool {
	return c.StaleAt(date, c.now())
}

// StaleAt reports whether date is stale at now.
func (c *Checker) StaleAt(date string, now time.Time) bool {
	verified, ok := Parse(date, now.Location())
	if !ok {
		return true
	}
	return now.Sub(verified) > c.maxAge
}

// Parse parses a verification date at midnight in loc.
func Parse(date string, loc *time.Location) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
