package vjudge

import (
	"net/http/cookiejar"
	"net/url"
	"time"

	"rankcrawl/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultFingerprints is the empirically observed participant name list used
// as a corroborating signal during table selection. It is page-instance
// specific; deployments should override it through ClientOptions.
var DefaultFingerprints = []string{
	"Krutoichel", "zxzuam", "ARSENTOP1LEGENDA", "Mukhamediyar", "zertinii", "Sarsenbai",
}

const defaultBaseUrl = "https://vjudge.net"

type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client

	fingerprints []string
	endpoints    []string
	browser      BrowserFetcher
	tel          telemetry.API
}

type ClientOptions struct {
	// BaseUrl of the contest site, defaults to the public vjudge instance.
	BaseUrl string
	// Timeout bounds every single fetch. Defaults to 15 seconds.
	Timeout time.Duration
	// Fingerprints overrides DefaultFingerprints when non-nil.
	Fingerprints []string
	// Endpoints overrides DefaultEndpoints when non-nil. Each entry is a
	// path template where %s stands in for the contest id.
	Endpoints []string
	// Browser is the optional browser-automation collaborator used as the
	// last extraction fallback. May be nil.
	Browser BrowserFetcher
	// Telemetry receives structured progress events. Defaults to NoopAPI.
	Telemetry telemetry.API
}

// NewClient builds a scraper client around one reusable HTTP session with
// browser-mimicking headers. The client is safe to reuse sequentially across
// contests but must not be shared between concurrent callers.
func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = defaultBaseUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 15
	}
	if opts.Fingerprints == nil {
		opts.Fingerprints = DefaultFingerprints
	}
	if opts.Endpoints == nil {
		opts.Endpoints = DefaultEndpoints
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NoopAPI{}
	}
	tel := telemetry.NewScopedAPI("vjudge_scraper", opts.Telemetry)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)

	httpClient.SetHeaders(map[string]string{
		"user-agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
		"accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"accept-language":           "en-US,en;q=0.5",
		"connection":                "keep-alive",
		"upgrade-insecure-requests": "1",
	})
	httpClient.SetTimeout(opts.Timeout)

	// 2 requests max per second, max burst >= 2 means no request is dropped
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, tel)

	c := &Client{
		BaseUrl:      baseUrl,
		Http:         httpClient,
		fingerprints: opts.Fingerprints,
		endpoints:    opts.Endpoints,
		browser:      opts.Browser,
		tel:          tel,
	}
	return c, nil
}
