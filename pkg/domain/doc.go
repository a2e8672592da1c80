// Package domain contains the core types of the provisioning run: the account
// being requested, the session token captured at login and the outcome of
// each attempt. They carry no browser or infrastructure concerns so they can
// be shared across packages.
package domain
