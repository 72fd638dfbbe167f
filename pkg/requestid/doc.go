// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a valid client-supplied X-Request-ID header or generates
// a UUIDv4, echoes it back in the response, and stores it in the request
// context for log correlation.
package requestid
