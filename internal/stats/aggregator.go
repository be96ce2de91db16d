// Package stats merges the backend's overview with locally derived counts.
package stats

import (
	"context"

	"github.com/jimezsa/jobscan/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Source names used in Summary.Fallbacks.
const (
	SourceStats    = "stats"
	SourceWebsites = "websites"
	SourceJobs     = "jobs"
)

// Source is the set of reads the aggregator fans out over.
type Source interface {
	Stats(ctx context.Context) (*models.ServerStats, error)
	AllWebsites(ctx context.Context) ([]models.Website, error)
	AllJobBatches(ctx context.Context) ([]models.JobBatch, error)
}

// Outcome is the settled result of one fetch. A failed fetch carries the
// empty fallback value in Value.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) Failed() bool {
	return o.Err != nil
}

func settle[T any](ctx context.Context, fetch func(context.Context) (T, error), fallback T) Outcome[T] {
	value, err := fetch(ctx)
	if err != nil {
		return Outcome[T]{Value: fallback, Err: err}
	}
	return Outcome[T]{Value: value}
}

type Aggregator struct {
	source Source
	logger zerolog.Logger
}

func NewAggregator(source Source, logger zerolog.Logger) *Aggregator {
	return &Aggregator{source: source, logger: logger}
}

// Aggregate fetches all three sources concurrently and computes the summary
// once every fetch has settled. A failing source falls back to empty and is
// named in Summary.Fallbacks; Aggregate itself never fails.
func (a *Aggregator) Aggregate(ctx context.Context) models.Summary {
	var (
		g        errgroup.Group
		server   Outcome[*models.ServerStats]
		websites Outcome[[]models.Website]
		batches  Outcome[[]models.JobBatch]
	)

	g.Go(func() error {
		server = settle(ctx, a.source.Stats, nil)
		return nil
	})
	g.Go(func() error {
		websites = settle(ctx, a.source.AllWebsites, []models.Website{})
		return nil
	})
	g.Go(func() error {
		batches = settle(ctx, a.source.AllJobBatches, []models.JobBatch{})
		return nil
	})
	_ = g.Wait()

	summary := Compute(server.Value, websites.Value, batches.Value)
	for _, failed := range []struct {
		name string
		err  error
	}{
		{SourceStats, server.Err},
		{SourceWebsites, websites.Err},
		{SourceJobs, batches.Err},
	} {
		if failed.err == nil {
			continue
		}
		a.logger.Warn().Err(failed.err).Str("source", failed.name).Msg("statistics source unavailable, using empty fallback")
		summary.Fallbacks = append(summary.Fallbacks, failed.name)
	}
	return summary
}

// Compute derives the summary from already fetched data. Server website
// counts win whenever they are present, including a reported zero. Job and
// batch counts are always local.
func Compute(server *models.ServerStats, websites []models.Website, batches []models.JobBatch) models.Summary {
	if server == nil {
		server = &models.ServerStats{}
	}

	totalJobs := 0
	for _, batch := range batches {
		totalJobs += len(batch.Titles)
	}

	active, withErrors := 0, 0
	for _, site := range websites {
		if site.IsActive {
			active++
		}
		if site.HasError() {
			withErrors++
		}
	}

	return models.Summary{
		TotalJobs:          totalJobs,
		TotalWebsites:      prefer(server.TotalWebsites, len(websites)),
		ActiveWebsites:     prefer(server.ActiveWebsites, active),
		WebsitesWithErrors: withErrors,
		ScannedWebsites:    len(batches),
		ScanResults:        server.TotalJobDocuments,
		RecentJobs:         server.RecentJobs,
	}
}

func prefer(server *int, local int) int {
	if server != nil {
		return *server
	}
	return local
}
