package gateway

import (
	"context"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobscan/internal/models"
)

// GeneralSettings returns the stored settings, or nil when none exist yet.
func (g *Gateway) GeneralSettings(ctx context.Context) (*models.GeneralSettings, error) {
	var settings *models.GeneralSettings
	if err := g.get(ctx, "/general", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (g *Gateway) UpdateGeneralSettings(ctx context.Context, keywords []string, interval int) (models.GeneralSettings, error) {
	body := struct {
		Keywords []string `json:"keywords"`
		Interval int      `json:"interval"`
	}{Keywords: keywords, Interval: interval}
	if body.Keywords == nil {
		body.Keywords = []string{}
	}

	var saved models.GeneralSettings
	err := g.do(ctx, fhttp.MethodPut, "/general", nil, body, &saved)
	return saved, err
}
