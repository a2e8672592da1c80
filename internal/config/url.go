package config

import (
	"fmt"
	"net"
	"net/url"
	"path"
	"strings"
)

// NormalizePanelURL returns a canonical form of the panel login URL:
//   - a missing scheme becomes https
//   - scheme and host are lower-cased
//   - default ports (http:80, https:443) are dropped, others such as 2083 are kept
//   - the path is cleaned and the fragment removed
//
// Only http and https URLs with a host are accepted.
func NormalizePanelURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	host := strings.ToLower(u.Host)
	if ph, port, err := net.SplitHostPort(host); err == nil {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			host = ph
			if strings.Contains(host, ":") {
				host = "[" + host + "]"
			}
		}
	}
	if host == "" {
		return "", fmt.Errorf("missing host in %q", raw)
	}
	u.Host = host

	if u.Path != "" {
		cleaned := path.Clean(u.Path)
		if strings.HasSuffix(u.Path, "/") && cleaned != "/" {
			cleaned += "/"
		}
		u.Path = cleaned
	}
	u.Fragment = ""

	return u.String(), nil
}
