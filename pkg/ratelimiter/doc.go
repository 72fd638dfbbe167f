// Package ratelimiter implements token-bucket rate limiting with pluggable
// storage backends and an HTTP middleware.
//
// The Store interface abstracts bucket state: MemoryStore serves a single
// process, RedisStore shares buckets across replicas via an atomic Lua
// script.
package ratelimiter
