// Package server serves the browser UI and the JSON review API.
//
// Routes:
//
//	GET  /                   embedded single-page UI
//	GET  /api/health         liveness and provider info
//	POST /api/intake         preview which of a list of paths would be sent
//	POST /api/review         review pasted code
//	POST /api/review/upload  review an uploaded folder (multipart)
//
// Review endpoints share one token-bucket limiter so a single instance cannot
// exhaust the provider quota. Errors are returned as {"error": "..."} with a
// status derived from the failure kind.
package server
