// Package leads turns a reconciliation of CRM leads against appointments into
// status updates.
//
// BuildPlan selects matched leads whose status is not yet "success" and Apply
// executes the plan through an Updater once confirmed. StatusStore is the
// gorm-backed Updater used by the leads command; it also remembers leads
// flagged by earlier passes so repeated runs stay idempotent.
package leads
