// Package builder implements the working selection of a test procedure
//
// A State holds the ordered list of selected steps and their parameters,
// applies copy-on-write mutations to it, notifies an observer after every
// mutation that changed something, and derives the numbered description and
// the typed JSON payload from the current selection
package builder
