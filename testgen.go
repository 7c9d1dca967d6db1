// Package testgen is the root of the test procedure builder service
package testgen

const (
	// Name is the service name reported in logs and health responses
	Name = "testgen"

	// Version is the service version reported in logs and health responses
	Version = "0.4.0"
)
