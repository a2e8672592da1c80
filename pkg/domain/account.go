package domain

import (
	"fmt"
	"strings"
)

// AccountRequest describes one mailbox to create. It is built per iteration
// and never persisted.
type AccountRequest struct {
	// LocalPart is the part before "@", e.g. "user001".
	LocalPart string
	// Password is the mailbox password typed into the form.
	Password string
	// Domain is the mail domain. Empty means the panel's default domain,
	// which is only known once the form has been rendered.
	Domain string
}

// Address returns local@domain, or only the local part when the domain is unknown.
func (r AccountRequest) Address() string {
	if r.Domain == "" {
		return r.LocalPart
	}

	return r.LocalPart + "@" + r.Domain
}

// WithDomain returns a copy of r with the domain replaced.
func (r AccountRequest) WithDomain(domain string) AccountRequest {
	r.Domain = domain

	return r
}

// LocalPart builds the sequential local part for the i-th account: prefix
// followed by i zero-padded to three digits.
func LocalPart(prefix string, i int) string {
	return fmt.Sprintf("%s%03d", prefix, i)
}

// SessionToken is the authenticated URL prefix handed out by the panel after
// login, e.g. "https://host:2083/cpsess0123456789/". Every deep link is built
// on top of it.
type SessionToken string

// Route joins a relative application route onto the token.
func (t SessionToken) Route(path string) string {
	base := string(t)
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	return base + strings.TrimPrefix(path, "/")
}
