// Package server implements the HTTP API of the builder service
//
// This package provides REST endpoints for the step catalog, builder
// sessions and their mutations, ticket submission, test file generation,
// and a WebSocket stream of session changes
package server
