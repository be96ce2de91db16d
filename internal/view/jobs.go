package view

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobscan/internal/filter"
	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
)

type JobAPI interface {
	ScanStatus(ctx context.Context) (models.ScanStatus, error)
	AllJobBatches(ctx context.Context) ([]models.JobBatch, error)
	TriggerScan(ctx context.Context) (models.ScanResult, error)
}

type Jobs struct {
	base
	api      JobAPI
	pipeline *filter.Pipeline[models.JobBatch, filter.JobCriteria]
}

func OpenJobs(ctx context.Context, api JobAPI, opts Options) (*Jobs, error) {
	b, err := newBase(ctx, api, opts)
	if err != nil {
		return nil, err
	}
	return &Jobs{base: b, api: api, pipeline: filter.NewJobPipeline()}, nil
}

// Refresh re-fetches every batch. On failure the previous list is kept.
func (v *Jobs) Refresh(ctx context.Context) error {
	batches, err := v.api.AllJobBatches(ctx)
	if err != nil {
		return fmt.Errorf("fetch jobs: %w", err)
	}
	if v.closed() {
		return ErrClosed
	}
	v.pipeline.SetSource(batches)
	return nil
}

func (v *Jobs) SetCriteria(c filter.JobCriteria) { v.pipeline.SetCriteria(c) }
func (v *Jobs) Criteria() filter.JobCriteria    { return v.pipeline.Criteria() }
func (v *Jobs) Clear()                          { v.pipeline.Clear() }
func (v *Jobs) View() []models.JobBatch         { return v.pipeline.View() }

// Scan asks the backend to scan every active website, then re-fetches the
// batches. It is refused while a scan is already running.
func (v *Jobs) Scan(ctx context.Context) (models.ScanResult, error) {
	if v.IsScanning() {
		return models.ScanResult{}, gate.ErrScanInProgress
	}
	result, err := v.api.TriggerScan(ctx)
	if err != nil {
		return result, fmt.Errorf("trigger scan: %w", err)
	}
	return result, v.Refresh(ctx)
}
