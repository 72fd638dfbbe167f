// Package redis constructs go-redis clients from env configuration with
// connection retries.
package redis
