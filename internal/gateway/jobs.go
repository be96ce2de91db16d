package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/jimezsa/jobscan/internal/models"
)

func (g *Gateway) ListJobBatches(ctx context.Context, q models.JobBatchQuery) ([]models.JobBatch, error) {
	query := url.Values{}
	if q.WebsiteID != "" {
		query.Set("websiteId", q.WebsiteID)
	}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.IsActive != nil {
		query.Set("isActive", strconv.FormatBool(*q.IsActive))
	}

	var raw json.RawMessage
	if err := g.get(ctx, "/jobs", query, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.JobBatch](raw, "jobs")
}

func (g *Gateway) AllJobBatches(ctx context.Context) ([]models.JobBatch, error) {
	return g.ListJobBatches(ctx, models.JobBatchQuery{})
}

// Stats returns the backend's overview, or nil when it answered null.
func (g *Gateway) Stats(ctx context.Context) (*models.ServerStats, error) {
	var stats *models.ServerStats
	if err := g.get(ctx, "/jobs/stats/overview", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (g *Gateway) ScanStatus(ctx context.Context) (models.ScanStatus, error) {
	var status models.ScanStatus
	err := g.get(ctx, "/jobs/scanning-status", nil, &status)
	return status, err
}

// TriggerScan asks the backend to start a scan of all active websites and
// waits for its reply.
func (g *Gateway) TriggerScan(ctx context.Context) (models.ScanResult, error) {
	var result models.ScanResult
	err := g.get(ctx, "/jobs/scan-jobs", nil, &result)
	return result, err
}
