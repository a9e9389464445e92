// Package api implements driven.DraftStore against the remote Persistence API.
//
// Requests carry an OAuth2 bearer token and are throttled by a token
// bucket. Every response body is wrapped in an envelope:
//
//	{"success": true, "result": {...}, "messages": [{"code": "...", "description": "..."}]}
//
// Non-2xx statuses map onto domain errors: 404 to ErrNotFound, 401 and
// 403 to ErrAuthRequired, 429 to ErrRateLimited and anything else to
// ErrRemote. Failed requests are not retried.
package api
