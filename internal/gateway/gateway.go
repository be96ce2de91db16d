package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/google/uuid"
	"github.com/jimezsa/jobscan/internal/network"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Gateway is the only path from the console to the scraper backend. Each
// method is one request-response; nothing is retried.
type Gateway struct {
	doer      network.Doer
	endpoints *network.Endpoints
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

type Option func(*Gateway)

// WithRateLimit caps outgoing requests per second. Zero disables the cap.
func WithRateLimit(perSecond float64) Option {
	return func(g *Gateway) {
		if perSecond <= 0 {
			g.limiter = nil
			return
		}
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func New(doer network.Doer, endpoints *network.Endpoints, logger zerolog.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		doer:      doer,
		endpoints: endpoints,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) get(ctx context.Context, path string, query url.Values, out any) error {
	return g.do(ctx, fhttp.MethodGet, path, query, nil, out)
}

func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		bodyReader = bytes.NewReader(data)
	}

	base := g.endpoints.Current()
	target := base.String() + path
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := fhttp.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := g.doer.Do(req)
	if err != nil {
		g.endpoints.Report(base, 0)
		g.logger.Debug().
			Str("request_id", requestID).
			Str("method", method).
			Str("url", target).
			Err(err).
			Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	g.endpoints.Report(base, resp.StatusCode)
	g.logger.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode >= 400 {
		return parseError(method, path, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			// List routes treat an empty body as an empty list.
			if _, ok := out.(*json.RawMessage); ok {
				return nil
			}
			return fmt.Errorf("%s %s: %w", method, path, ErrEmptyResponse)
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeList accepts either a bare JSON array or an object carrying the
// array under key. Anything else is an empty list.
func decodeList[T any](raw json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []T{}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	case '{':
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, err
		}
		inner, ok := wrapper[key]
		if !ok || len(bytes.TrimSpace(inner)) == 0 || bytes.TrimSpace(inner)[0] != '[' {
			return []T{}, nil
		}
		return decodeList[T](inner, key)
	default:
		return []T{}, nil
	}
}

func escapeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	return url.PathEscape(id), nil
}
