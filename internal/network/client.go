package network

import (
	"math"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

const DefaultTimeout = 10 * time.Second

// Options configures the backend transport.
type Options struct {
	Timeout   time.Duration
	Proxy     string
	UserAgent string
}

// Client sends requests to the JobFlow backend.
type Client struct {
	http      tls_client.HttpClient
	userAgent string
}

func NewClient(opts Options) (*Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	clientOpts := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds(timeout)),
		tls_client.WithNotFollowRedirects(),
	}
	if proxy := strings.TrimSpace(opts.Proxy); proxy != "" {
		if _, err := url.Parse(proxy); err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, tls_client.WithProxyUrl(proxy))
	}

	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), clientOpts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      client,
		userAgent: strings.TrimSpace(opts.UserAgent),
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.http.Do(req)
}

func timeoutSeconds(timeout time.Duration) int {
	seconds := int(math.Ceil(timeout.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}
