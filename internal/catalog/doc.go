// Package catalog loads the step and parameter templates a builder draws
// from
//
// Each template resource is a flat list of lines, read from a blob bucket or
// an HTTP endpoint. Every non-empty trimmed line becomes one template whose
// ID and label are both the line text
package catalog
