package cmd

import (
	"strings"

	"github.com/jimezsa/jobscan/internal/export"
	"github.com/jimezsa/jobscan/internal/models"
	"github.com/jimezsa/jobscan/internal/stats"
)

type StatsCmd struct {
	OutputOptions
}

func (c *StatsCmd) Run(ctx *Context) error {
	summary, err := aggregate(ctx)
	if err != nil {
		return err
	}
	return c.write(ctx, summary)
}

func aggregate(ctx *Context) (models.Summary, error) {
	api, err := ctx.API()
	if err != nil {
		return models.Summary{}, err
	}
	summary := stats.NewAggregator(api, ctx.Logger).Aggregate(ctx.Context())
	if len(summary.Fallbacks) > 0 && ctx.UI != nil {
		ctx.UI.Warnf("Some sources were unavailable (%s); their figures are shown as empty.", strings.Join(summary.Fallbacks, ", "))
	}
	return summary, nil
}

func (c *StatsCmd) write(ctx *Context, summary models.Summary) error {
	format, err := c.resolveFormat(ctx)
	if err != nil {
		return err
	}
	w, closeOut, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer closeOut()
	return export.WriteSummary(w, summary, format)
}
