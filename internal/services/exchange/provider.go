package exchange

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

const DefaultRefreshInterval = 15 * time.Minute

type Config struct {
	Base            string
	RefreshInterval time.Duration
}

// Provider serves rate quotes from a snapshot store, refreshing it from the
// source once the snapshot is older than the refresh interval.
type Provider struct {
	source  Source
	store   SnapshotStore
	config  Config
	logger  *slog.Logger
	metrics MetricsCollector
	now     func() time.Time
}

func NewProvider(source Source, store SnapshotStore, config Config, logger *slog.Logger, metrics MetricsCollector) *Provider {
	if source == nil {
		panic("rate source is required")
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if config.Base == "" {
		config.Base = BaseCurrency
	}
	if config.RefreshInterval <= 0 {
		config.RefreshInterval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &Provider{
		source:  source,
		store:   store,
		config:  config,
		logger:  logger.With("component", "exchange"),
		metrics: metrics,
		now:     time.Now,
	}
}

// Rates returns the current quote. It never fails: when neither a fresh
// snapshot nor the live source is available it returns FallbackRates.
func (p *Provider) Rates(ctx context.Context) Quote {
	base := p.config.Base
	now := p.now()

	snap, err := p.store.Load(ctx, base)
	switch {
	case err == nil && snap.Age(now) < p.config.RefreshInterval:
		p.metrics.RecordQuote(SourceCache)
		return Quote{Rates: snap.Rates, Source: SourceCache, AsOf: snap.FetchedAt}
	case err != nil && !errors.Is(err, ErrSnapshotNotFound):
		p.metrics.RecordError("load")
		p.logger.WarnContext(ctx, "rate snapshot unavailable", "base", base, "error", err)
	}

	start := p.now()
	rates, err := p.source.Latest(ctx, base)
	p.metrics.RecordFetchDuration(p.now().Sub(start))
	if err != nil {
		p.metrics.RecordError("fetch")
		p.metrics.RecordQuote(SourceFallback)
		p.logger.WarnContext(ctx, "exchange rate fetch failed, using fallback rates", "base", base, "error", err)
		return Quote{Rates: FallbackRates(base), Source: SourceFallback, AsOf: now}
	}

	fetched := &Snapshot{Base: base, Rates: rates, FetchedAt: now}
	if err := p.store.Save(ctx, fetched); err != nil {
		p.metrics.RecordError("save")
		p.logger.WarnContext(ctx, "failed to store rate snapshot", "base", base, "error", err)
	}

	p.metrics.RecordQuote(SourceLive)
	return Quote{Rates: rates, Source: SourceLive, AsOf: now}
}

// Info returns the current rates in their public form.
func (p *Provider) Info(ctx context.Context) RateInfo {
	return p.info(p.Rates(ctx))
}

func (p *Provider) info(q Quote) RateInfo {
	return RateInfo{
		Base:   p.config.Base,
		Rates:  q.Rates,
		Date:   q.AsOf.Format(time.DateOnly),
		Cached: q.Source == SourceCache,
		Source: q.Source,
	}
}

// Invalidate drops the stored snapshot so the next call fetches again.
func (p *Provider) Invalidate(ctx context.Context) error {
	return p.store.Delete(ctx, p.config.Base)
}

// Refresh invalidates the snapshot and fetches new rates.
func (p *Provider) Refresh(ctx context.Context) (RateInfo, error) {
	if err := p.Invalidate(ctx); err != nil {
		return RateInfo{}, err
	}
	return p.info(p.Rates(ctx)), nil
}
