// Package report renders match reports as JSON and CSV artifacts and
// publishes them to object storage.
package report
