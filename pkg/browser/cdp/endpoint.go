package cdp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"mailprov/pkg/logger"
	"mailprov/pkg/serrors"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Version is the payload of the DevTools /json/version endpoint.
type Version struct {
	Browser              string `json:"Browser"`
	ProtocolVersion      string `json:"Protocol-Version"`
	UserAgent            string `json:"User-Agent"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// VersionURL maps a DevTools endpoint given as ws://, http:// or a bare
// host:port to its http://host:port/json/version URL.
func VersionURL(endpoint string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		// host:port without scheme parses as scheme "host"
		u, err = url.Parse("http://" + endpoint)
		if err != nil {
			return "", fmt.Errorf("could not parse browser endpoint: %w", err)
		}
	}
	if u.Host == "" {
		return "", serrors.With(serrors.ErrInvalidConfig, "browser endpoint %q has no host", endpoint)
	}

	switch u.Scheme {
	case "wss", "https":
		u.Scheme = "https"
	default:
		u.Scheme = "http"
	}
	u.Path = "/json/version"
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

// WaitEndpoint polls the DevTools version endpoint until the browser answers.
// The browser usually runs as a sidecar container that may still be starting
// when the CLI is launched.
func WaitEndpoint(ctx context.Context, client *resty.Client, endpoint string, retries int,
	wait time.Duration) (*Version, error) {
	versionURL, err := VersionURL(endpoint)
	if err != nil {
		return nil, err
	}

	client = client.
		SetRetryCount(retries).
		SetRetryWaitTime(wait).
		SetRetryMaxWaitTime(wait).
		SetLogger(logger.Get(ctx).Sugar()).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r == nil || r.StatusCode() >= 500
		})

	var version Version
	resp, err := client.R().
		SetContext(ctx).
		// DevTools only answers /json requests addressed to an IP or localhost
		SetHeader("Host", "localhost").
		SetResult(&version).
		Get(versionURL)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "browser endpoint %s is not reachable", versionURL)
	}
	if resp.IsError() {
		return nil, serrors.With(serrors.ErrUnavailable, "browser endpoint %s answered %d", versionURL,
			resp.StatusCode())
	}

	logger.Debug(ctx, "browser endpoint is up",
		zap.String("browser", version.Browser),
		zap.String("protocol", version.ProtocolVersion))

	return &version, nil
}
