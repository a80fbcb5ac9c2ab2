// Package models defines the gorm tables holding persisted reconciliation runs.
package models
