// Package session keeps the builder sessions served by the HTTP API. Each
// session owns one builder State, and the Manager bounds how many are kept
// in memory, discarding the least recently used.
package session
