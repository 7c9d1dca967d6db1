// Package api defines the shared data types for the test procedure builder
//
// This package contains the catalog templates, the working selection of steps
// and parameters, the derived payload types, change events, and the HTTP and
// WebSocket messages exchanged with clients
package api
