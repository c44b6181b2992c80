// Package controller contains HTTP middlewares and helper handlers used by the API server.
//
// Provided middlewares:
//   - WithCORS: Allows the configured browser origins and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers under PprofPrefix.
package controller
