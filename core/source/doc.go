// Package source turns raw JSON exports into canonical match records.
//
// A Mapping names the record array inside a document and, for every canonical
// field, an ordered list of JMESPath expressions. Presets cover the IntakeQ
// intake and appointment exports and vtiger lead exports.
//
// Documents come from a Loader (local file or object storage). LoadSnapshot
// reads both collections concurrently and Cache reuses a snapshot for a TTL.
package source
