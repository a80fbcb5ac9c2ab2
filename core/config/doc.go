// Package config loads the reconciler configuration.
//
// Values come from struct tag defaults, an optional .env file and the
// environment, in increasing precedence. Nested keys map to upper-case
// environment names joined by underscores (match.date_window becomes
// MATCH_DATE_WINDOW).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit
//   - Storage: MinIO/S3 credentials and bucket
//   - Log: level and format
//   - Database: mysql or sqlite connection
//   - Match: date window and worker count
//   - Source: input locations and mapping presets
//
// LoadConfig validates the result and fails fast on invalid values.
package config
