package catalog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hyperjump/stodlotsen/internal/metrics"
)

// Source hands out the current catalog snapshot.
type Source interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// Provider loads the catalog once and serves the same snapshot to every
// reader until Reload swaps in a new one.
type Provider struct {
	path    string
	current atomic.Pointer[Snapshot]
	group   singleflight.Group
	logger  *zap.Logger
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets a logger for load events.
func WithLogger(l *zap.Logger) ProviderOption {
	return func(p *Provider) { p.logger = l }
}

// NewProvider returns a provider for the catalog file at path. An empty path
// uses the embedded catalog. Nothing is read until the first Snapshot call.
func NewProvider(path string, opts ...ProviderOption) *Provider {
	p := &Provider{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewStaticProvider returns a provider that always serves snap.
func NewStaticProvider(snap *Snapshot) *Provider {
	p := NewProvider("")
	p.current.Store(snap)
	return p
}

// Path returns the configured catalog path.
func (p *Provider) Path() string {
	return p.path
}

// Snapshot returns the current snapshot, loading it on first use.
func (p *Provider) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := p.current.Load(); snap != nil {
		return snap, nil
	}
	return p.Reload(ctx)
}

// Reload reads the catalog again and makes it current. Concurrent calls share
// one load. On failure the previous snapshot stays in place.
func (p *Provider) Reload(ctx context.Context) (*Snapshot, error) {
	v, err, _ := p.group.Do("reload", func() (interface{}, error) {
		snap, err := p.load(ctx)
		if err != nil {
			metrics.ObserveCatalogReload(false)
			p.logger.Warn("catalog load failed", zap.String("path", p.path), zap.Error(err))
			return nil, err
		}
		if cur := p.current.Load(); cur != nil && cur.Source() == snap.Source() && cur.Fingerprint() == snap.Fingerprint() {
			metrics.ObserveCatalogReload(true)
			p.logger.Debug("catalog unchanged", zap.String("fingerprint", cur.Fingerprint()))
			return cur, nil
		}
		p.current.Store(snap)
		metrics.ObserveCatalogReload(true)
		metrics.SetCatalogRecords(snap.Len())
		p.logger.Info("catalog loaded",
			zap.String("source", snap.Source()),
			zap.Int("records", snap.Len()),
			zap.String("fingerprint", snap.Fingerprint()),
		)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (p *Provider) load(ctx context.Context) (*Snapshot, error) {
	if p.path == "" {
		return Embedded()
	}
	if _, err := os.Stat(p.path); errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("catalog file not found, using embedded catalog", zap.String("path", p.path))
		return Embedded()
	}
	snap, problems, err := LoadFile(ctx, p.path)
	for _, pr := range problems {
		p.logger.Warn("skipping catalog record",
			zap.String("path", p.path),
			zap.Int("index", pr.Index),
			zap.String("id", pr.ID),
			zap.String("reason", pr.Reason),
		)
	}
	return snap, err
}
