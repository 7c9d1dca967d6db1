// Package ticket pushes a builder session's description and parameter
// payload to an issue tracker, either directly against the Jira REST API
// or through a relay service that does so on the caller's behalf.
package ticket
