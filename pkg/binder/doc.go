// Package binder decodes HTTP request bodies into typed structs.
//
// JSON enforces an application/json content type and a 1MB body cap, and
// rejects trailing data after the JSON value. Unknown fields are ignored so
// clients can send supersets of a request shape.
package binder
