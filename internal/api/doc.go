// Package api handles incoming HTTP requests, request validation and
// response formatting. It adapts HTTP to the extraction pipeline and the
// task list, mapping internal errors to safe client-facing messages.
package api
