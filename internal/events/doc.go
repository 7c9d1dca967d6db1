// Package events fans builder change events out to any number of consumers
// and provides filters for selecting the events a consumer cares about
package events
