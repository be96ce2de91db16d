package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/jobscan/internal/models"
)

// ListWebsites fetches websites, optionally filtered server-side.
func (g *Gateway) ListWebsites(ctx context.Context, q models.WebsiteQuery) ([]models.Website, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.IsActive != nil {
		query.Set("isActive", strconv.FormatBool(*q.IsActive))
	}

	var raw json.RawMessage
	if err := g.get(ctx, "/websites", query, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Website](raw, "websites")
}

// AllWebsites fetches the unfiltered list used for local filtering.
func (g *Gateway) AllWebsites(ctx context.Context) ([]models.Website, error) {
	return g.ListWebsites(ctx, models.WebsiteQuery{})
}

func (g *Gateway) GetWebsite(ctx context.Context, id string) (models.Website, error) {
	escaped, err := escapeID(id)
	if err != nil {
		return models.Website{}, err
	}
	var website models.Website
	err = g.get(ctx, "/websites/"+escaped, nil, &website)
	return website, err
}

func (g *Gateway) CreateWebsite(ctx context.Context, in models.WebsiteInput) (models.Website, error) {
	var website models.Website
	err := g.do(ctx, fhttp.MethodPost, "/websites", nil, in, &website)
	return website, err
}

func (g *Gateway) UpdateWebsite(ctx context.Context, id string, in models.WebsiteInput) (models.Website, error) {
	escaped, err := escapeID(id)
	if err != nil {
		return models.Website{}, err
	}
	var website models.Website
	err = g.do(ctx, fhttp.MethodPut, "/websites/"+escaped, nil, in, &website)
	return website, err
}

// DeleteWebsite removes a website. Deleting an id that no longer exists is
// reported as ErrNotFound.
func (g *Gateway) DeleteWebsite(ctx context.Context, id string) error {
	escaped, err := escapeID(id)
	if err != nil {
		return err
	}
	return g.do(ctx, fhttp.MethodDelete, "/websites/"+escaped, nil, nil, nil)
}

func (g *Gateway) ToggleWebsite(ctx context.Context, id string) (models.Website, error) {
	escaped, err := escapeID(id)
	if err != nil {
		return models.Website{}, err
	}
	var website models.Website
	err = g.do(ctx, fhttp.MethodPatch, "/websites/"+escaped+"/toggle", nil, nil, &website)
	return website, err
}

func (g *Gateway) ClearWebsiteErrors(ctx context.Context, id string) (models.Website, error) {
	escaped, err := escapeID(id)
	if err != nil {
		return models.Website{}, err
	}
	var website models.Website
	err = g.do(ctx, fhttp.MethodPatch, "/websites/"+escaped+"/clear-errors", nil, nil, &website)
	return website, err
}
