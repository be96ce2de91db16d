package view

import (
	"context"
	"fmt"

	"github.com/jimezsa/jobscan/internal/filter"
	"github.com/jimezsa/jobscan/internal/gate"
	"github.com/jimezsa/jobscan/internal/models"
)

type WebsiteAPI interface {
	ScanStatus(ctx context.Context) (models.ScanStatus, error)
	AllWebsites(ctx context.Context) ([]models.Website, error)
	CreateWebsite(ctx context.Context, in models.WebsiteInput) (models.Website, error)
	UpdateWebsite(ctx context.Context, id string, in models.WebsiteInput) (models.Website, error)
	DeleteWebsite(ctx context.Context, id string) error
	ToggleWebsite(ctx context.Context, id string) (models.Website, error)
	ClearWebsiteErrors(ctx context.Context, id string) (models.Website, error)
}

type Websites struct {
	base
	api      WebsiteAPI
	pipeline *filter.Pipeline[models.Website, filter.WebsiteCriteria]
}

// OpenWebsites starts the view's poller. The list stays empty until Refresh.
func OpenWebsites(ctx context.Context, api WebsiteAPI, opts Options) (*Websites, error) {
	b, err := newBase(ctx, api, opts)
	if err != nil {
		return nil, err
	}
	return &Websites{base: b, api: api, pipeline: filter.NewWebsitePipeline()}, nil
}

// Refresh re-fetches the full list. On failure the previous list is kept.
func (v *Websites) Refresh(ctx context.Context) error {
	sites, err := v.api.AllWebsites(ctx)
	if err != nil {
		return fmt.Errorf("fetch websites: %w", err)
	}
	if v.closed() {
		return ErrClosed
	}
	v.pipeline.SetSource(sites)
	return nil
}

func (v *Websites) SetCriteria(c filter.WebsiteCriteria) { v.pipeline.SetCriteria(c) }
func (v *Websites) Criteria() filter.WebsiteCriteria    { return v.pipeline.Criteria() }
func (v *Websites) Clear()                              { v.pipeline.Clear() }
func (v *Websites) View() []models.Website              { return v.pipeline.View() }
func (v *Websites) All() []models.Website               { return v.pipeline.Source() }

// Find looks id up in the last fetched list.
func (v *Websites) Find(id string) (models.Website, bool) {
	for _, site := range v.pipeline.Source() {
		if site.ID == id {
			return site, true
		}
	}
	return models.Website{}, false
}

// HasErrors reports whether any fetched website carries a last error.
func (v *Websites) HasErrors() bool {
	for _, site := range v.pipeline.Source() {
		if site.HasError() {
			return true
		}
	}
	return false
}

func (v *Websites) Create(ctx context.Context, in models.WebsiteInput) error {
	return v.mutate(ctx, gate.Create, "", func(ctx context.Context) error {
		_, err := v.api.CreateWebsite(ctx, in)
		return err
	}, v.Refresh)
}

func (v *Websites) Update(ctx context.Context, id string, in models.WebsiteInput) error {
	return v.mutate(ctx, gate.Edit, "", func(ctx context.Context) error {
		_, err := v.api.UpdateWebsite(ctx, id, in)
		return err
	}, v.Refresh)
}

func (v *Websites) Toggle(ctx context.Context, id string) error {
	return v.mutate(ctx, gate.ToggleActive, "", func(ctx context.Context) error {
		_, err := v.api.ToggleWebsite(ctx, id)
		return err
	}, v.Refresh)
}

func (v *Websites) Delete(ctx context.Context, id string) error {
	prompt := fmt.Sprintf("Delete website %s?", v.label(id))
	return v.mutate(ctx, gate.Delete, prompt, func(ctx context.Context) error {
		return v.api.DeleteWebsite(ctx, id)
	}, v.Refresh)
}

func (v *Websites) ClearErrors(ctx context.Context, id string) error {
	prompt := fmt.Sprintf("Clear the last error of %s?", v.label(id))
	return v.mutate(ctx, gate.ClearErrors, prompt, func(ctx context.Context) error {
		_, err := v.api.ClearWebsiteErrors(ctx, id)
		return err
	}, v.Refresh)
}

func (v *Websites) label(id string) string {
	if site, ok := v.Find(id); ok && site.Name != "" {
		return fmt.Sprintf("%q (%s)", site.Name, id)
	}
	return id
}
