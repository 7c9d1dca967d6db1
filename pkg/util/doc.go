// Package util provides small generic data structures shared by the builder
// and the server
//
// The list helpers never edit their input in place: each returns a new slice
// so that callers holding the previous slice see an unchanged value
package util
