// Package generator turns a structured test case description into a manual
// automation test class. Each described step is resolved to a method call
// through a table of known step phrasings.
package generator
