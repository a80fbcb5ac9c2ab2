// Package reconciliation exposes the matching engine over HTTP.
//
// # Endpoints
//
//   - POST /reconcile: match inline collections sent in the body.
//   - POST /reconcile/sources: match the configured exports, persist the run
//     and optionally publish the artifacts to storage.
//   - GET /reconcile/runs/:id: fetch a persisted run.
//
// Runs are stored in the runs and run_results tables. Without a database
// the inline endpoint still works and run lookups answer 503.
package reconciliation
