package gateway

import (
	"context"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
)

// ProbeResult is one endpoint's answer to a scan-status request.
type ProbeResult struct {
	Endpoint string        `json:"endpoint"`
	Status   int           `json:"status"`
	Latency  time.Duration `json:"latency_ns"`
	Error    string        `json:"error,omitempty"`
}

func (r ProbeResult) Healthy() bool {
	return r.Error == "" && r.Status >= 200 && r.Status < 300
}

// Probe sends a scan-status request straight to base, bypassing rotation,
// and reports the outcome back to the rotation state.
func (g *Gateway) Probe(ctx context.Context, base *url.URL, timeout time.Duration) ProbeResult {
	result := ProbeResult{Endpoint: base.String()}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, base.String()+"/jobs/scanning-status", nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := g.doer.Do(req)
	result.Latency = time.Since(start)
	if err != nil {
		g.endpoints.Report(base, 0)
		result.Error = err.Error()
		return result
	}
	_ = resp.Body.Close()

	g.endpoints.Report(base, resp.StatusCode)
	result.Status = resp.StatusCode
	return result
}

// Endpoints lists the configured API base URLs in priority order.
func (g *Gateway) Endpoints() []*url.URL {
	return g.endpoints.All()
}
