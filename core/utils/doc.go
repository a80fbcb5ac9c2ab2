// Package utils converts loosely typed values decoded from JSON exports
// into strings, integers, booleans and timestamps.
package utils
