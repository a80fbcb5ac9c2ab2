// Package middleware groups the fiber middleware mounted by the start command.
//
//   - rayid: assigns every request a ray ID used by logger.WithRayID.
//   - auth: requires the X-API-Key header when an API key is configured.
package middleware
