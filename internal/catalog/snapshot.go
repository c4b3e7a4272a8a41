// Package catalog loads support-record catalogs and hands out immutable snapshots of them.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// ErrNotFound is returned by Lookup when no record has the requested ID.
var ErrNotFound = errors.New("support record not found")

// Snapshot is a read-only, ordered view of a catalog. It is safe for concurrent use.
type Snapshot struct {
	records     []*models.SupportRecord
	byID        map[string]*models.SupportRecord
	source      string
	fingerprint string
	loadedAt    time.Time
}

// ErrNoUsableRecords is returned when a non-empty catalog has no record that can be served.
var ErrNoUsableRecords = errors.New("catalog has no usable records")

// Problem describes a catalog entry that cannot be served.
type Problem struct {
	Index  int
	ID     string
	Reason string
}

func (p Problem) Error() string {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Sprintf("record %d %s", p.Index, p.Reason)
	}
	return fmt.Sprintf("record %q %s", p.ID, p.Reason)
}

// Check returns one Problem per record that BuildSnapshot would leave out.
// Every record needs a non-empty ID not used by an earlier record and at least one audience.
func Check(records []*models.SupportRecord) []Problem {
	_, problems := usable(records)
	return problems
}

// NewSnapshot wraps records in a Snapshot, rejecting the whole catalog if any
// record fails Check.
func NewSnapshot(records []*models.SupportRecord, source string) (*Snapshot, error) {
	kept, problems := usable(records)
	if len(problems) > 0 {
		errs := make([]error, len(problems))
		for i, p := range problems {
			errs[i] = p
		}
		return nil, errors.Join(errs...)
	}
	return newSnapshot(kept, source), nil
}

// BuildSnapshot wraps the usable records in a Snapshot and reports the ones it
// left out. For duplicate IDs the first record wins.
func BuildSnapshot(records []*models.SupportRecord, source string) (*Snapshot, []Problem) {
	kept, problems := usable(records)
	return newSnapshot(kept, source), problems
}

func usable(records []*models.SupportRecord) ([]*models.SupportRecord, []Problem) {
	kept := make([]*models.SupportRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var problems []Problem
	for i, r := range records {
		if r == nil {
			problems = append(problems, Problem{Index: i, Reason: "is empty"})
			continue
		}
		p := Problem{Index: i, ID: r.ID}
		_, dup := seen[r.ID]
		switch {
		case strings.TrimSpace(r.ID) == "":
			p.Reason = "has no id"
		case dup:
			p.Reason = "duplicates an earlier id"
		case len(r.Audiences) == 0:
			p.Reason = "has no audience"
		default:
			seen[r.ID] = struct{}{}
			kept = append(kept, r)
			continue
		}
		problems = append(problems, p)
	}
	return kept, problems
}

func newSnapshot(records []*models.SupportRecord, source string) *Snapshot {
	byID := make(map[string]*models.SupportRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	return &Snapshot{
		records:     records,
		byID:        byID,
		source:      source,
		fingerprint: Fingerprint(records),
		loadedAt:    time.Now(),
	}
}

// Records returns the records in catalog order. The slice is a copy; the records are shared.
func (s *Snapshot) Records() []*models.SupportRecord {
	return append([]*models.SupportRecord(nil), s.records...)
}

// Get returns the record with id.
func (s *Snapshot) Get(id string) (*models.SupportRecord, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// Lookup is Get returning ErrNotFound for unknown ids.
func (s *Snapshot) Lookup(id string) (*models.SupportRecord, error) {
	if r, ok := s.byID[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Source names where the snapshot came from: a file path or EmbeddedSource.
func (s *Snapshot) Source() string {
	return s.source
}

// Fingerprint identifies the catalog content.
func (s *Snapshot) Fingerprint() string {
	return s.fingerprint
}

// LoadedAt is when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}
