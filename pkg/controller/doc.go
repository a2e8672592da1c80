// Package controller contains the HTTP middleware and helper handlers used by
// the status endpoint.
//
// Provided middleware:
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//
// Provided helpers:
//   - RegisterPprof: Mounts the net/http/pprof handlers under /debug/pprof/.
//   - WriteJSON: Encodes a value as a JSON response.
package controller
