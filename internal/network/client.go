package network

import (
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// Doer is the part of the transport the gateway and preview fetcher use.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

type Client struct {
	http      tls_client.HttpClient
	userAgent string
}

func NewClient(timeout time.Duration, userAgent string) (*Client, error) {
	seconds := int(timeout / time.Second)
	if seconds <= 0 {
		seconds = 30
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(seconds),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      client,
		userAgent: userAgent,
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}
