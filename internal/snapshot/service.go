// Package snapshot builds and caches the grouped flood-forecast snapshot and
// runs alert evaluation against it.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/terraguard/floodwatch/internal/domain"
	"github.com/terraguard/floodwatch/internal/observability"
)

// ErrAreaNotFound is returned when a requested LGA is absent from the snapshot.
var ErrAreaNotFound = errors.New("area not found")

// ForecastFetcher retrieves a community's multi-day forecast from the provider.
type ForecastFetcher interface {
	FetchForecast(ctx context.Context, c domain.Community) (domain.ForecastPayload, error)
}

// Service owns the process-wide grouped snapshot. The snapshot is built
// lazily on first request and kept for the process lifetime; concurrent
// first requests share a single build via singleflight so the provider is
// never hit with a duplicate fetch storm.
type Service struct {
	communities  []domain.Community
	fetcher      ForecastFetcher
	notifier     *Notifier
	logger       *slog.Logger
	metrics      *observability.Metrics
	fetchTimeout time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	cache *domain.GroupedResults
}

// NewService creates a snapshot Service over the given community list.
func NewService(
	communities []domain.Community,
	fetcher ForecastFetcher,
	notifier *Notifier,
	logger *slog.Logger,
	metrics *observability.Metrics,
	fetchTimeout time.Duration,
) *Service {
	return &Service{
		communities:  communities,
		fetcher:      fetcher,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
		fetchTimeout: fetchTimeout,
	}
}

// GetAll returns the grouped snapshot, building it on first use, then kicks
// off alert evaluation and notification in the background. The notification
// step runs on every call, cached or not, matching the alerting contract of
// the read endpoint.
func (s *Service) GetAll(ctx context.Context) (*domain.GroupedResults, error) {
	grouped, err := s.buildOrGet(ctx)
	if err != nil {
		return nil, err
	}

	go s.notifier.Run(context.WithoutCancel(ctx), grouped)

	return grouped, nil
}

// GetByArea returns one LGA's community results from the snapshot.
// Returns ErrAreaNotFound when the LGA is absent.
func (s *Service) GetByArea(ctx context.Context, lga string) ([]domain.CommunityResult, error) {
	grouped, err := s.buildOrGet(ctx)
	if err != nil {
		return nil, err
	}

	results, ok := grouped.ByArea(lga)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAreaNotFound, lga)
	}
	return results, nil
}

// CheckReadiness returns nil once a snapshot has been built, or an error
// describing why the service is not yet ready.
func (s *Service) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache == nil {
		return errors.New("snapshot has not been built yet")
	}
	return nil
}

// buildOrGet returns the cached snapshot or runs exactly one build. A failed
// build caches nothing, so the next request retries.
func (s *Service) buildOrGet(ctx context.Context) (*domain.GroupedResults, error) {
	s.mu.RLock()
	cached := s.cache
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := s.group.Do("snapshot", func() (any, error) {
		// Re-check: another caller may have completed the build while this
		// one was queued behind the flight.
		s.mu.RLock()
		cached := s.cache
		s.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		grouped, err := s.build(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache = grouped
		s.mu.Unlock()
		s.metrics.SnapshotReady.Set(1)
		return grouped, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.GroupedResults), nil
}

// build fetches and scores every community in input order. A failed fetch or
// an unscorable payload skips that community only; the rest of the build
// continues. Best effort, no retries.
func (s *Service) build(ctx context.Context) (*domain.GroupedResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build snapshot: %w", err)
	}

	s.logger.Info("building grouped snapshot", "communities", len(s.communities))
	grouped := domain.NewGroupedResults()

	for _, community := range s.communities {
		result, err := s.analyzeOne(ctx, community)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("build snapshot: %w", ctx.Err())
			}
			s.logger.Warn("skipping community",
				"community", community.Name,
				"lga", community.LGA,
				"error", err,
			)
			continue
		}
		grouped.Add(result)
	}

	s.metrics.SnapshotBuilds.Inc()
	s.metrics.SnapshotCommunities.Observe(float64(grouped.Communities()))
	s.logger.Info("snapshot built",
		"areas", len(grouped.Areas()),
		"communities", grouped.Communities(),
	)

	return grouped, nil
}

// analyzeOne fetches one community's forecast under a bounded timeout and
// scores it.
func (s *Service) analyzeOne(ctx context.Context, community domain.Community) (domain.CommunityResult, error) {
	fetchCtx := ctx
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}

	payload, err := s.fetcher.FetchForecast(fetchCtx, community)
	if err != nil {
		return domain.CommunityResult{}, fmt.Errorf("fetch forecast: %w", err)
	}

	return domain.AnalyzeCommunity(community, payload)
}
