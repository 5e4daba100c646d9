package interactions

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/j-veylop/interaction-sector-viewer/internal/logger"
	"github.com/j-veylop/interaction-sector-viewer/internal/models"
)

// Result is one completed fetch.
type Result struct {
	FetchedAt time.Time
	Source    string
	Records   []models.InteractionRecord
	Duration  time.Duration
}

// Config holds configuration for the fetch service.
type Config struct {
	Retries        int
	InitialBackoff time.Duration

	// OnComplete runs once per completed fetch, before any caller that
	// joined it is released.
	OnComplete func(ctx context.Context, res Result, err error)
}

// DefaultConfig returns the default configuration: a single attempt.
func DefaultConfig() Config {
	return Config{
		Retries:        0,
		InitialBackoff: 500 * time.Millisecond,
	}
}

// Service fetches records, making sure at most one request is in flight.
type Service struct {
	source Source
	group  singleflight.Group
	config Config
	now    func() time.Time
}

// New creates a fetch service for source.
func New(source Source, config Config) *Service {
	if config.InitialBackoff <= 0 {
		config.InitialBackoff = DefaultConfig().InitialBackoff
	}
	return &Service{
		source: source,
		config: config,
		now:    time.Now,
	}
}

// Source returns the underlying data source.
func (s *Service) Source() Source {
	return s.source
}

// Fetch loads the record list. Callers that arrive while a fetch is running
// share its result instead of issuing another request. The returned error,
// if any, is a *FetchError.
func (s *Service) Fetch(ctx context.Context) (Result, error) {
	v, err, shared := s.group.Do("fetch", func() (any, error) {
		res, err := s.fetchWithRetry(ctx)
		if s.config.OnComplete != nil {
			s.config.OnComplete(ctx, res, err)
		}
		return res, err
	})
	if shared {
		logger.Debug("joined in-flight fetch", "source", s.source.String())
	}

	res, _ := v.(Result)
	return res, err
}

func (s *Service) fetchWithRetry(ctx context.Context) (Result, error) {
	start := s.now()
	backoff := s.config.InitialBackoff

	var records []models.InteractionRecord
	var err error
	for attempt := 0; attempt <= s.config.Retries; attempt++ {
		records, err = s.source.Fetch(ctx)
		// Only transport failures are worth another attempt.
		if err == nil || !errors.Is(err, ErrNetwork) || attempt == s.config.Retries {
			break
		}

		logger.Warn("fetch failed, retrying", "source", s.source.String(),
			"attempt", attempt+1, "backoff", backoff, "error", err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			err = networkError(s.source.String(), ctx.Err())
			attempt = s.config.Retries
		}
		backoff *= 2
	}

	res := Result{
		FetchedAt: start,
		Source:    s.source.String(),
		Records:   records,
		Duration:  s.now().Sub(start),
	}

	if err != nil {
		logger.Error("fetch failed", "source", res.Source, "error", err)
		return res, err
	}

	logger.Info("fetched interactions", "source", res.Source, "records", len(records), "duration", res.Duration)
	return res, nil
}
