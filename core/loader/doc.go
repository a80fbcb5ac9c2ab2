// Package loader registers HTTP features and mounts the enabled ones.
//
//	mgr := loader.NewManager()
//	mgr.Register(reconciliation.NewFeature(svc))
//	loaded, err := mgr.LoadAll(app)
//
// Features are mounted in registration order. A feature whose IsEnabled
// returns false is skipped; a feature depending on the database reports
// itself disabled when no connection is available.
package loader
